// Package service implements the lead intake pipeline: validate, sanitize,
// score, persist, notify. Scoring itself lives in the scoring package and
// stays free of I/O.
package service

import (
	"context"
	"errors"
	"strings"

	"autocenter_backend/internal/email"
	"autocenter_backend/internal/events"
	"autocenter_backend/internal/leads/repository"
	"autocenter_backend/internal/leads/scoring"
	"autocenter_backend/internal/leads/transport"
	"autocenter_backend/platform/apperr"
	"autocenter_backend/platform/logger"
	"autocenter_backend/platform/phone"
	"autocenter_backend/platform/sanitize"
	"autocenter_backend/platform/validator"

	"github.com/google/uuid"
)

const sourceContactForm = "contact_form"

type Service struct {
	repo     *repository.Repository
	engine   *scoring.Engine
	bus      events.Bus
	mail     email.Sender
	validate *validator.Validator
	log      *logger.Logger
}

func New(repo *repository.Repository, engine *scoring.Engine, bus events.Bus, mail email.Sender, validate *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, engine: engine, bus: bus, mail: mail, validate: validate, log: log}
}

// SubmitInput carries a contact-form submission plus request metadata.
type SubmitInput struct {
	Form      transport.ContactRequest
	ClientIP  string
	UserAgent string
}

// Submit runs the full intake pipeline for one contact-form submission and
// returns the stored lead.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (repository.Lead, error) {
	if err := s.validateContact(in.Form); err != nil {
		return repository.Lead{}, err
	}

	// Injection heuristics are a defense-in-depth signal: log and continue,
	// since legitimate messages can resemble the patterns.
	s.flagSuspiciousInput(in)

	name := sanitize.Text(in.Form.Name)
	message := sanitize.Text(in.Form.Message)
	emailAddr := strings.ToLower(strings.TrimSpace(in.Form.Email))
	phoneNumber := phone.Strip(strings.TrimSpace(in.Form.Phone))
	carInterest := sanitize.Text(in.Form.CarInterest)

	result := s.engine.Score(scoring.Input{
		Name:        name,
		Email:       emailAddr,
		Phone:       phoneNumber,
		Message:     message,
		CarInterest: carInterest,
	})
	s.log.LeadScored(emailAddr, result.Score, result.Quality, result.Factors)

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		Name:        name,
		Email:       emailAddr,
		Phone:       optional(phoneNumber),
		Message:     message,
		CarInterest: optional(carInterest),
		Score:       result.Score,
		Quality:     result.Quality,
		Priority:    result.Priority(),
		Factors:     result.Factors,
		Source:      sourceContactForm,
		IP:          firstIP(in.ClientIP),
		UserAgent:   in.UserAgent,
	})
	if err != nil {
		s.log.DatabaseError("create lead", err)
		return repository.Lead{}, apperr.Internal("save lead")
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Email:     lead.Email,
		Name:      lead.Name,
		Score:     lead.Score,
		Quality:   lead.Quality,
		Priority:  lead.Priority,
	})

	// Acknowledgement failure never fails the submission.
	if err := s.mail.SendContactAckEmail(ctx, lead.Email, lead.Name); err != nil {
		s.log.DispatchFailed(lead.Email, "contact acknowledgement", err)
	}

	return lead, nil
}

func (s *Service) GetLead(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, err
}

func (s *Service) ListLeads(ctx context.Context, filter repository.ListFilter) ([]repository.Lead, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	err := s.repo.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("lead not found")
	}
	return err
}

func (s *Service) GetStats(ctx context.Context) (repository.Stats, error) {
	return s.repo.GetStats(ctx)
}

func (s *Service) flagSuspiciousInput(in SubmitInput) {
	fields := map[string]string{
		"name":    in.Form.Name,
		"email":   in.Form.Email,
		"phone":   in.Form.Phone,
		"message": in.Form.Message,
	}
	for field, value := range fields {
		if !sanitize.IsInputSafe(value) {
			s.log.SuspiciousInput(in.ClientIP, field)
		}
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// firstIP keeps only the first address of a forwarded chain.
func firstIP(ip string) string {
	if idx := strings.Index(ip, ","); idx >= 0 {
		return strings.TrimSpace(ip[:idx])
	}
	return ip
}
