// Package auth provides the authentication bounded context module.
package auth

import (
	"autocenter_backend/internal/auth/handler"
	"autocenter_backend/internal/auth/repository"
	"autocenter_backend/internal/auth/service"
	"autocenter_backend/internal/events"
	apphttp "autocenter_backend/internal/http"
	"autocenter_backend/platform/config"
	"autocenter_backend/platform/httpkit"
	"autocenter_backend/platform/logger"
	"autocenter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, bus events.Bus, validate *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, log)
	h := handler.New(svc, validate)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for use by other composition points.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes share the form rate limiter.
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.FormRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	ctx.Protected.GET("/users/me", m.handler.GetMe)
	ctx.Protected.POST("/users/me/password", m.handler.ChangePassword)

	ctx.Admin.GET("/users", m.handler.ListUsers)
	ctx.Admin.POST("/users", httpkit.RequireRole(httpkit.RoleAdmin), m.handler.CreateUser)
	ctx.Admin.PUT("/users/:id/role", httpkit.RequireRole(httpkit.RoleAdmin), m.handler.SetUserRole)
	ctx.Admin.PUT("/users/:id/active", httpkit.RequireRole(httpkit.RoleAdmin), m.handler.SetUserActive)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
