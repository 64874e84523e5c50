// Package service implements the vehicle catalog: public browsing with a
// read-through cache and admin listing management that feeds the alert
// pipeline.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"autocenter_backend/internal/catalog/repository"
	"autocenter_backend/internal/events"
	"autocenter_backend/platform/apperr"
	"autocenter_backend/platform/cache"
	"autocenter_backend/platform/logger"
	"autocenter_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	cacheKeyPrefix   = "catalog:"
	cacheKeyFeatured = cacheKeyPrefix + "featured"

	featuredLimit = 6
)

var slugCleanRegex = regexp.MustCompile(`[^a-z0-9]+`)

type Service struct {
	repo  *repository.Repository
	cache *cache.Cache
	bus   events.Bus
	log   *logger.Logger
}

func New(repo *repository.Repository, c *cache.Cache, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cache: c, bus: bus, log: log}
}

// List returns one page of vehicles. Unfiltered first pages are served
// through the cache since they take nearly all public traffic.
func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]repository.Vehicle, int, error) {
	type page struct {
		Vehicles []repository.Vehicle `json:"vehicles"`
		Total    int                  `json:"total"`
	}

	if cacheable(filter) {
		var cached page
		err := s.cache.GetOrLoad(ctx, listCacheKey(filter), &cached, func(ctx context.Context) (interface{}, error) {
			vehicles, total, err := s.repo.List(ctx, filter)
			if err != nil {
				return nil, err
			}
			return page{Vehicles: vehicles, Total: total}, nil
		})
		if err != nil {
			return nil, 0, err
		}
		return cached.Vehicles, cached.Total, nil
	}

	return s.repo.List(ctx, filter)
}

// Featured returns the front-page picks, served through the cache under a
// single key.
func (s *Service) Featured(ctx context.Context) ([]repository.Vehicle, error) {
	var cached []repository.Vehicle
	err := s.cache.GetOrLoad(ctx, cacheKeyFeatured, &cached, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListFeatured(ctx, featuredLimit)
	})
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func (s *Service) Get(ctx context.Context, idOrSlug string) (repository.Vehicle, error) {
	var vehicle repository.Vehicle
	var err error

	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		vehicle, err = s.repo.GetByID(ctx, id)
	} else {
		vehicle, err = s.repo.GetBySlug(ctx, idOrSlug)
	}

	if errors.Is(err, repository.ErrNotFound) {
		return repository.Vehicle{}, apperr.NotFound("vehicle not found")
	}
	return vehicle, err
}

// CreateInput mirrors the admin create form after transport validation.
type CreateInput struct {
	Make         string
	Model        string
	Year         int
	PriceEur     int
	Mileage      int
	FuelType     string
	Transmission string
	BodyType     string
	Color        string
	Description  string
}

// Create stores a new listing and publishes VehicleListed, which triggers
// the alert matching pass.
func (s *Service) Create(ctx context.Context, in CreateInput) (repository.Vehicle, error) {
	vehicle, err := s.repo.Create(ctx, repository.CreateVehicleParams{
		Slug:         s.slugFor(in.Make, in.Model, in.Year),
		Make:         strings.TrimSpace(in.Make),
		Model:        strings.TrimSpace(in.Model),
		Year:         in.Year,
		PriceEur:     in.PriceEur,
		Mileage:      in.Mileage,
		FuelType:     optional(in.FuelType),
		Transmission: optional(in.Transmission),
		BodyType:     optional(in.BodyType),
		Color:        optional(in.Color),
		Description:  optional(sanitize.Text(in.Description)),
	})
	if err != nil {
		s.log.DatabaseError("create vehicle", err)
		return repository.Vehicle{}, apperr.Internal("save vehicle")
	}

	s.invalidateListings(ctx)

	s.bus.Publish(ctx, events.VehicleListed{
		BaseEvent:    events.NewBaseEvent(),
		VehicleID:    vehicle.ID,
		Make:         vehicle.Make,
		Model:        vehicle.Model,
		Year:         vehicle.Year,
		PriceEur:     vehicle.PriceEur,
		Mileage:      vehicle.Mileage,
		FuelType:     optionalString(vehicle.FuelType),
		BodyType:     optionalString(vehicle.BodyType),
		Transmission: optionalString(vehicle.Transmission),
	})

	return vehicle, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, actorID uuid.UUID, params repository.UpdateVehicleParams) (repository.Vehicle, error) {
	if params.Description != nil {
		clean := sanitize.Text(*params.Description)
		params.Description = &clean
	}

	vehicle, err := s.repo.Update(ctx, id, params)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Vehicle{}, apperr.NotFound("vehicle not found")
	}
	if err != nil {
		s.log.DatabaseError("update vehicle", err)
		return repository.Vehicle{}, apperr.Internal("update vehicle")
	}

	s.invalidateListings(ctx)
	s.bus.Publish(ctx, events.VehicleUpdated{
		BaseEvent: events.NewBaseEvent(),
		VehicleID: vehicle.ID,
		ActorID:   actorID,
	})
	return vehicle, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("vehicle not found")
	}
	if err != nil {
		s.log.DatabaseError("delete vehicle", err)
		return apperr.Internal("delete vehicle")
	}

	s.invalidateListings(ctx)
	s.bus.Publish(ctx, events.VehicleDeleted{
		BaseEvent: events.NewBaseEvent(),
		VehicleID: id,
		ActorID:   actorID,
	})
	return nil
}

func (s *Service) slugFor(make, model string, year int) string {
	base := strings.ToLower(fmt.Sprintf("%s %s %d", make, model, year))
	slug := strings.Trim(slugCleanRegex.ReplaceAllString(base, "-"), "-")
	// Random suffix keeps slugs unique without a lookup.
	return slug + "-" + uuid.NewString()[:8]
}

func (s *Service) invalidateListings(ctx context.Context) {
	// First pages only get cached; clearing a few fixed keys suffices.
	keys := []string{cacheKeyFeatured}
	for _, status := range []string{"", repository.StatusAvailable} {
		for page := 1; page <= 3; page++ {
			keys = append(keys, listCacheKey(repository.ListFilter{Status: status, Page: page, Limit: 10}))
		}
	}
	s.cache.Delete(ctx, keys...)
}

// cacheable reports whether a listing query is one of the hot first pages.
// The public handler defaults status to AVAILABLE, so that status must stay
// cacheable or public traffic never hits the cache.
func cacheable(filter repository.ListFilter) bool {
	if filter.Status != "" && filter.Status != repository.StatusAvailable {
		return false
	}
	return filter.Make == "" && filter.FuelType == "" &&
		filter.MinPrice == 0 && filter.MaxPrice == 0 &&
		filter.MinYear == 0 && filter.MaxYear == 0 &&
		filter.Search == "" && filter.Page <= 3 &&
		(filter.Limit == 0 || filter.Limit == 10)
}

func listCacheKey(filter repository.ListFilter) string {
	status := "all"
	if filter.Status != "" {
		status = strings.ToLower(filter.Status)
	}
	return fmt.Sprintf("%slist:%s:p%d:l%d", cacheKeyPrefix, status, filter.Page, filter.Limit)
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func optionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
