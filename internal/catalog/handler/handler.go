package handler

import (
	"net/http"
	"strconv"

	"autocenter_backend/internal/catalog/repository"
	"autocenter_backend/internal/catalog/service"
	"autocenter_backend/internal/catalog/transport"
	"autocenter_backend/platform/httpkit"
	"autocenter_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc      *service.Service
	validate *validator.Validator
}

func New(svc *service.Service, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, validate: validate}
}

// ListVehicles serves public browsing with optional filters. Customers
// only see available stock unless they filter by status explicitly.
func (h *Handler) ListVehicles(c *gin.Context) {
	filter := repository.ListFilter{
		Make:     c.Query("make"),
		FuelType: c.Query("fuelType"),
		Status:   c.DefaultQuery("status", repository.StatusAvailable),
		MinPrice: queryInt(c, "minPrice", 0),
		MaxPrice: queryInt(c, "maxPrice", 0),
		MinYear:  queryInt(c, "minYear", 0),
		MaxYear:  queryInt(c, "maxYear", 0),
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
	}

	vehicles, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	httpkit.OK(c, transport.VehicleListResponse{
		Vehicles: out,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	})
}

// ListFeatured serves the front-page picks.
func (h *Handler) ListFeatured(c *gin.Context) {
	vehicles, err := h.svc.Featured(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	httpkit.OK(c, out)
}

func (h *Handler) GetVehicle(c *gin.Context) {
	vehicle, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, toVehicleResponse(vehicle))
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var req transport.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	vehicle, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		PriceEur:     req.PriceEur,
		Mileage:      req.Mileage,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		BodyType:     req.BodyType,
		Color:        req.Color,
		Description:  req.Description,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Created(c, toVehicleResponse(vehicle))
}

func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid vehicle id", nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	vehicle, err := h.svc.Update(c.Request.Context(), id, identity.UserID(), repository.UpdateVehicleParams{
		PriceEur:    req.PriceEur,
		Mileage:     req.Mileage,
		Status:      req.Status,
		Description: req.Description,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, toVehicleResponse(vehicle))
}

func (h *Handler) DeleteVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid vehicle id", nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, identity.UserID()); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OKMessage(c, nil, "vehicle removed")
}

func toVehicleResponse(v repository.Vehicle) transport.VehicleResponse {
	return transport.VehicleResponse{
		ID:           v.ID.String(),
		Slug:         v.Slug,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		PriceEur:     v.PriceEur,
		Mileage:      v.Mileage,
		FuelType:     optionalString(v.FuelType),
		Transmission: optionalString(v.Transmission),
		BodyType:     optionalString(v.BodyType),
		Color:        optionalString(v.Color),
		Description:  optionalString(v.Description),
		Status:       v.Status,
		IsFeatured:   v.IsFeatured,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func optionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
