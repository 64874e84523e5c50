package handler

import (
	"fmt"
	"net/http"

	"autocenter_backend/internal/alerts/repository"
	"autocenter_backend/internal/alerts/service"
	"autocenter_backend/internal/alerts/transport"
	"autocenter_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// CreateAlert handles the public subscription form.
func (h *Handler) CreateAlert(c *gin.Context) {
	var req transport.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Virheelliset tiedot", nil)
		return
	}

	alert, err := h.svc.CreateAlert(c.Request.Context(), req.Email, req.Name, service.Criteria{
		VehicleMake:  req.Criteria.VehicleMake,
		VehicleModel: req.Criteria.VehicleModel,
		MaxPrice:     req.Criteria.MaxPrice,
		MinYear:      req.Criteria.MinYear,
		MaxMileage:   req.Criteria.MaxMileage,
		BodyType:     req.Criteria.BodyType,
		FuelType:     req.Criteria.FuelType,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OKMessage(c, toAlertResponse(alert), "Ilmoitushälytys luotu onnistuneesti")
}

// ListAlerts returns the active subscriptions for an email address.
func (h *Handler) ListAlerts(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		httpkit.Error(c, http.StatusBadRequest, "Sähköpostiosoite vaaditaan", nil)
		return
	}

	alerts, err := h.svc.GetAlertsByEmail(c.Request.Context(), email)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		out = append(out, toAlertResponse(alert))
	}
	httpkit.OK(c, out)
}

// Notify triggers the matching pass for one listing. The webhook secret
// is verified before anything else happens.
func (h *Handler) Notify(c *gin.Context) {
	var req transport.NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid request data", nil)
		return
	}

	if err := h.svc.VerifySecret(req.Secret); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	if req.Car.ID == "" || req.Car.Make == "" || req.Car.Model == "" {
		httpkit.Error(c, http.StatusBadRequest, "Invalid request data", nil)
		return
	}

	sent, err := h.svc.NotifyMatchingAlerts(c.Request.Context(), service.Listing{
		ID:           req.Car.ID,
		Make:         req.Car.Make,
		Model:        req.Car.Model,
		Year:         req.Car.Year,
		PriceEur:     req.Car.Price,
		Mileage:      req.Car.Mileage,
		FuelType:     req.Car.FuelType,
		BodyType:     req.Car.BodyType,
		Transmission: req.Car.Transmission,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OKMessage(c,
		transport.NotifyResponse{CarID: req.Car.ID, NotificationsSent: sent},
		fmt.Sprintf("Sent %d notifications for new car", sent))
}

// Unsubscribe deactivates the alert referenced by the token query param.
func (h *Handler) Unsubscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		httpkit.Error(c, http.StatusBadRequest, "Unsubscribe token is required", nil)
		return
	}

	if err := h.svc.Unsubscribe(c.Request.Context(), token); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OKMessage(c, nil, "Olet peruuttanut tilauksen onnistuneesti")
}

func toAlertResponse(alert repository.Alert) transport.AlertResponse {
	return transport.AlertResponse{
		ID:                alert.ID.String(),
		Email:             alert.Email,
		Name:              optionalString(alert.Name),
		VehicleMake:       optionalString(alert.VehicleMake),
		VehicleModel:      optionalString(alert.VehicleModel),
		MaxPrice:          alert.MaxPrice,
		MinYear:           alert.MinYear,
		MaxMileage:        alert.MaxMileage,
		BodyType:          optionalString(alert.BodyType),
		FuelType:          optionalString(alert.FuelType),
		IsActive:          alert.IsActive,
		NotificationCount: alert.NotificationCount,
		LastNotifiedAt:    alert.LastNotifiedAt,
		CreatedAt:         alert.CreatedAt,
	}
}

func optionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
