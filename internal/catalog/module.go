// Package catalog provides the vehicle catalog bounded context.
package catalog

import (
	"autocenter_backend/internal/catalog/handler"
	"autocenter_backend/internal/catalog/repository"
	"autocenter_backend/internal/catalog/service"
	"autocenter_backend/internal/events"
	apphttp "autocenter_backend/internal/http"
	"autocenter_backend/platform/cache"
	"autocenter_backend/platform/httpkit"
	"autocenter_backend/platform/logger"
	"autocenter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, c *cache.Cache, bus events.Bus, validate *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, c, bus, log)
	h := handler.New(svc, validate)

	return &Module{handler: h, service: svc}
}

func (m *Module) Name() string {
	return "catalog"
}

func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts public browsing and admin listing management.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/cars", m.handler.ListVehicles)
	ctx.V1.GET("/cars/featured", m.handler.ListFeatured)
	ctx.V1.GET("/cars/:id", m.handler.GetVehicle)

	ctx.Admin.POST("/cars", httpkit.RequireRole(httpkit.RoleAdmin), m.handler.CreateVehicle)
	ctx.Admin.PATCH("/cars/:id", httpkit.RequireRole(httpkit.RoleAdmin), m.handler.UpdateVehicle)
	ctx.Admin.DELETE("/cars/:id", httpkit.RequireRole(httpkit.RoleAdmin), m.handler.DeleteVehicle)
}

var _ apphttp.Module = (*Module)(nil)
