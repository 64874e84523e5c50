package transport

import "time"

// ContactRequest is the public contact-form payload. Validation errors are
// returned in Finnish because the form is Finnish-facing.
type ContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Message     string `json:"message"`
	CarInterest string `json:"carInterest,omitempty"`
}

type ContactResponse struct {
	LeadID string `json:"leadId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=NEW CONTACTED QUALIFIED CONVERTED CLOSED"`
}

type LeadResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone,omitempty"`
	Message     string         `json:"message"`
	CarInterest string         `json:"carInterest,omitempty"`
	Score       int            `json:"score"`
	Quality     string         `json:"quality"`
	Priority    string         `json:"priority"`
	Factors     map[string]int `json:"factors,omitempty"`
	Status      string         `json:"status"`
	Source      string         `json:"source"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type LeadListResponse struct {
	Leads  []LeadResponse `json:"leads"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type LeadStatsResponse struct {
	Total        int            `json:"total"`
	AverageScore float64        `json:"averageScore"`
	ByPriority   map[string]int `json:"byPriority"`
	ByStatus     map[string]int `json:"byStatus"`
}
