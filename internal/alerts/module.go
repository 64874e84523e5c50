// Package alerts provides the inventory alert bounded context: saved
// search subscriptions and the notification pass for new listings.
package alerts

import (
	"context"

	"autocenter_backend/internal/alerts/handler"
	"autocenter_backend/internal/alerts/repository"
	"autocenter_backend/internal/alerts/service"
	"autocenter_backend/internal/email"
	"autocenter_backend/internal/events"
	apphttp "autocenter_backend/internal/http"
	"autocenter_backend/internal/scheduler"
	"autocenter_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config interface {
	service.SecretConfig
	service.BaseURLConfig
}

type Module struct {
	handler  *handler.Handler
	service  *service.Service
	enqueuer scheduler.AlertsEnqueuer
	log      *logger.Logger
}

// NewModule wires the alerts module. enqueuer may be nil when no task
// queue is configured; matching then runs inline on the event handler.
func NewModule(pool *pgxpool.Pool, cfg Config, mail email.Sender, bus events.Bus, enqueuer scheduler.AlertsEnqueuer, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, mail, cfg, cfg, log)
	h := handler.New(svc)

	m := &Module{handler: h, service: svc, enqueuer: enqueuer, log: log}
	bus.Subscribe(events.VehicleListed{}.EventName(), events.HandlerFunc(m.onVehicleListed))
	return m
}

func (m *Module) Name() string {
	return "alerts"
}

func (m *Module) Service() *service.Service {
	return m.service
}

// TaskNotifier adapts the alerts service to the task queue worker.
func (m *Module) TaskNotifier() scheduler.AlertNotifier {
	return &taskNotifier{svc: m.service}
}

// RegisterRoutes mounts the alert routes. Creation and listing share the
// public form rate limiter; notify is secret-guarded inside the service.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.POST("/alerts", m.handler.CreateAlert)
	ctx.Public.GET("/alerts", m.handler.ListAlerts)
	ctx.Public.GET("/alerts/unsubscribe", m.handler.Unsubscribe)
	ctx.Public.POST("/alerts/unsubscribe", m.handler.Unsubscribe)

	ctx.V1.POST("/alerts/notify", m.handler.Notify)
}

// onVehicleListed reacts to a new listing by scheduling the matching
// pass, or running it inline when no queue is available.
func (m *Module) onVehicleListed(ctx context.Context, event events.Event) error {
	listed, ok := event.(events.VehicleListed)
	if !ok {
		return nil
	}

	if m.enqueuer != nil {
		return m.enqueuer.EnqueueAlertsNotify(ctx, scheduler.AlertsNotifyPayload{
			VehicleID:    listed.VehicleID.String(),
			Make:         listed.Make,
			Model:        listed.Model,
			Year:         listed.Year,
			PriceEur:     listed.PriceEur,
			Mileage:      listed.Mileage,
			FuelType:     listed.FuelType,
			BodyType:     listed.BodyType,
			Transmission: listed.Transmission,
		})
	}

	_, err := m.service.NotifyMatchingAlerts(ctx, service.Listing{
		ID:           listed.VehicleID.String(),
		Make:         listed.Make,
		Model:        listed.Model,
		Year:         listed.Year,
		PriceEur:     listed.PriceEur,
		Mileage:      listed.Mileage,
		FuelType:     listed.FuelType,
		BodyType:     listed.BodyType,
		Transmission: listed.Transmission,
	})
	return err
}

type taskNotifier struct {
	svc *service.Service
}

func (n *taskNotifier) NotifyForListing(ctx context.Context, payload scheduler.AlertsNotifyPayload) (int, error) {
	return n.svc.NotifyMatchingAlerts(ctx, service.Listing{
		ID:           payload.VehicleID,
		Make:         payload.Make,
		Model:        payload.Model,
		Year:         payload.Year,
		PriceEur:     payload.PriceEur,
		Mileage:      payload.Mileage,
		FuelType:     payload.FuelType,
		BodyType:     payload.BodyType,
		Transmission: payload.Transmission,
	})
}

var _ apphttp.Module = (*Module)(nil)
