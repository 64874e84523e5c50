package transport

import "time"

// CriteriaRequest carries the optional search criteria of an alert
// subscription. Absent fields mean "any".
type CriteriaRequest struct {
	VehicleMake  string `json:"vehicleMake,omitempty"`
	VehicleModel string `json:"vehicleModel,omitempty"`
	MaxPrice     *int   `json:"maxPrice,omitempty"`
	MinYear      *int   `json:"minYear,omitempty"`
	MaxMileage   *int   `json:"maxMileage,omitempty"`
	BodyType     string `json:"bodyType,omitempty"`
	FuelType     string `json:"fuelType,omitempty"`
}

type CreateAlertRequest struct {
	Email    string          `json:"email"`
	Name     string          `json:"name,omitempty"`
	Criteria CriteriaRequest `json:"criteria"`
}

// NotifyRequest is the webhook payload announcing a new listing.
type NotifyRequest struct {
	Car    CarPayload `json:"car"`
	Secret string     `json:"secret,omitempty"`
}

type CarPayload struct {
	ID           string `json:"id"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Price        int    `json:"price"`
	Mileage      int    `json:"mileage"`
	FuelType     string `json:"fuelType,omitempty"`
	BodyType     string `json:"bodyType,omitempty"`
	Transmission string `json:"transmission,omitempty"`
}

type AlertResponse struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Name              string     `json:"name,omitempty"`
	VehicleMake       string     `json:"vehicleMake,omitempty"`
	VehicleModel      string     `json:"vehicleModel,omitempty"`
	MaxPrice          *int       `json:"maxPrice,omitempty"`
	MinYear           *int       `json:"minYear,omitempty"`
	MaxMileage        *int       `json:"maxMileage,omitempty"`
	BodyType          string     `json:"bodyType,omitempty"`
	FuelType          string     `json:"fuelType,omitempty"`
	IsActive          bool       `json:"isActive"`
	NotificationCount int        `json:"notificationCount"`
	LastNotifiedAt    *time.Time `json:"lastNotifiedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

type NotifyResponse struct {
	CarID             string `json:"carId"`
	NotificationsSent int    `json:"notificationsSent"`
}
