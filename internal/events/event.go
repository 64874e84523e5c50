// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"autocenter_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a contact-form submission is persisted.
type LeadCreated struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Score    int       `json:"score"`
	Quality  string    `json:"quality"`
	Priority string    `json:"priority"`
}

func (e LeadCreated) EventName() string { return "leads.created" }

// =============================================================================
// Catalog Domain Events
// =============================================================================

// VehicleListed is published when a new vehicle becomes available in the
// catalog. The alerts module reacts by matching stored subscriptions.
type VehicleListed struct {
	BaseEvent
	VehicleID    uuid.UUID `json:"vehicleId"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	PriceEur     int       `json:"priceEur"`
	Mileage      int       `json:"mileage"`
	FuelType     string    `json:"fuelType,omitempty"`
	BodyType     string    `json:"bodyType,omitempty"`
	Transmission string    `json:"transmission,omitempty"`
}

func (e VehicleListed) EventName() string { return "catalog.vehicle.listed" }

// VehicleUpdated is published after an admin edits a listing.
type VehicleUpdated struct {
	BaseEvent
	VehicleID uuid.UUID `json:"vehicleId"`
	ActorID   uuid.UUID `json:"actorId"`
}

func (e VehicleUpdated) EventName() string { return "catalog.vehicle.updated" }

// VehicleDeleted is published after an admin removes a listing.
type VehicleDeleted struct {
	BaseEvent
	VehicleID uuid.UUID `json:"vehicleId"`
	ActorID   uuid.UUID `json:"actorId"`
}

func (e VehicleDeleted) EventName() string { return "catalog.vehicle.deleted" }

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserCreated is published when an admin provisions a new account.
type UserCreated struct {
	BaseEvent
	UserID  uuid.UUID `json:"userId"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	ActorID uuid.UUID `json:"actorId"`
}

func (e UserCreated) EventName() string { return "auth.user.created" }

// =============================================================================
// Newsletter Domain Events
// =============================================================================

// NewsletterSubscribed is published when a newsletter subscription is stored.
type NewsletterSubscribed struct {
	BaseEvent
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (e NewsletterSubscribed) EventName() string { return "newsletter.subscribed" }
