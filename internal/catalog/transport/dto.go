package transport

import "time"

type CreateVehicleRequest struct {
	Make         string `json:"make" validate:"required,min=1,max=60"`
	Model        string `json:"model" validate:"required,min=1,max=60"`
	Year         int    `json:"year" validate:"required,min=1950"`
	PriceEur     int    `json:"priceEur" validate:"required,gt=0"`
	Mileage      int    `json:"mileage" validate:"min=0"`
	FuelType     string `json:"fuelType,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	BodyType     string `json:"bodyType,omitempty"`
	Color        string `json:"color,omitempty"`
	Description  string `json:"description,omitempty" validate:"max=10000"`
}

type UpdateVehicleRequest struct {
	PriceEur    *int    `json:"priceEur,omitempty" validate:"omitempty,gt=0"`
	Mileage     *int    `json:"mileage,omitempty" validate:"omitempty,min=0"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=AVAILABLE RESERVED SOLD"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	IsFeatured  *bool   `json:"isFeatured,omitempty"`
}

type VehicleResponse struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	PriceEur     int       `json:"priceEur"`
	Mileage      int       `json:"mileage"`
	FuelType     string    `json:"fuelType,omitempty"`
	Transmission string    `json:"transmission,omitempty"`
	BodyType     string    `json:"bodyType,omitempty"`
	Color        string    `json:"color,omitempty"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	IsFeatured   bool      `json:"isFeatured"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type VehicleListResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}
