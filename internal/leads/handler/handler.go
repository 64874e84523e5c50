package handler

import (
	"net/http"
	"strconv"

	"autocenter_backend/internal/leads/repository"
	"autocenter_backend/internal/leads/service"
	"autocenter_backend/internal/leads/transport"
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

// SubmitContact handles the public contact form.
func (h *Handler) SubmitContact(c *gin.Context) {
	var req transport.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Virheellinen pyyntö. Tarkista tiedot ja yritä uudelleen.", nil)
		return
	}

	lead, err := h.svc.Submit(c.Request.Context(), service.SubmitInput{
		Form:      req,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OKMessage(c,
		transport.ContactResponse{LeadID: lead.ID.String()},
		"Viesti lähetetty onnistuneesti! Otamme sinuun yhteyttä pian.")
}

func (h *Handler) ListLeads(c *gin.Context) {
	filter := repository.ListFilter{
		Priority: c.Query("priority"),
		Status:   c.Query("status"),
		Limit:    queryInt(c, "limit", 50),
		Offset:   queryInt(c, "offset", 0),
	}

	leads, total, err := h.svc.ListLeads(c.Request.Context(), filter)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, toLeadResponse(lead))
	}
	httpkit.OK(c, transport.LeadListResponse{
		Leads:  out,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

func (h *Handler) GetLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	lead, err := h.svc.GetLead(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, toLeadResponse(lead))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OKMessage(c, gin.H{"id": id.String(), "status": req.Status}, "status updated")
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.LeadStatsResponse{
		Total:        stats.Total,
		AverageScore: stats.AverageScore,
		ByPriority:   stats.ByPriority,
		ByStatus:     stats.ByStatus,
	})
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:          lead.ID.String(),
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       optionalString(lead.Phone),
		Message:     lead.Message,
		CarInterest: optionalString(lead.CarInterest),
		Score:       lead.Score,
		Quality:     lead.Quality,
		Priority:    lead.Priority,
		Factors:     lead.Factors,
		Status:      lead.Status,
		Source:      lead.Source,
		CreatedAt:   lead.CreatedAt,
		UpdatedAt:   lead.UpdatedAt,
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
