// Package leads provides the lead intake and scoring bounded context.
package leads

import (
	"autocenter_backend/internal/email"
	"autocenter_backend/internal/events"
	apphttp "autocenter_backend/internal/http"
	"autocenter_backend/internal/leads/handler"
	"autocenter_backend/internal/leads/repository"
	"autocenter_backend/internal/leads/scoring"
	"autocenter_backend/internal/leads/service"
	"autocenter_backend/platform/httpkit"
	"autocenter_backend/platform/logger"
	"autocenter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, bus events.Bus, mail email.Sender, validate *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, scoring.New(), bus, mail, validate, log)
	h := handler.New(svc, validate)

	return &Module{handler: h, service: svc}
}

func (m *Module) Name() string {
	return "leads"
}

func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public contact form and the admin lead views.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.POST("/contact", m.handler.SubmitContact)

	ctx.Admin.GET("/leads", m.handler.ListLeads)
	ctx.Admin.GET("/leads/stats", m.handler.GetStats)
	ctx.Admin.GET("/leads/:id", m.handler.GetLead)
	ctx.Admin.PATCH("/leads/:id/status", httpkit.RequireRole(httpkit.RoleAdmin), m.handler.UpdateStatus)
}

var _ apphttp.Module = (*Module)(nil)
