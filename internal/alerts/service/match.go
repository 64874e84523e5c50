package service

import (
	"strings"

	"autocenter_backend/internal/alerts/repository"
)

// Listing is the vehicle snapshot matched against subscriptions. Make,
// model, year, price and mileage are always present; fuel, body and
// transmission may be empty on underspecified listings.
type Listing struct {
	ID           string
	Make         string
	Model        string
	Year         int
	PriceEur     int
	Mileage      int
	FuelType     string
	BodyType     string
	Transmission string
}

// MatchesCriteria reports whether a listing satisfies every present
// criterion of an alert. Absent criteria always pass. When the alert
// specifies a field the listing lacks (empty fuel or body type), the
// criterion fails: an underspecified listing must not trigger
// notifications it may not deserve.
func MatchesCriteria(listing Listing, alert repository.Alert) bool {
	if alert.VehicleMake != nil && !strings.EqualFold(listing.Make, *alert.VehicleMake) {
		return false
	}
	if alert.VehicleModel != nil && !strings.EqualFold(listing.Model, *alert.VehicleModel) {
		return false
	}
	if alert.MaxPrice != nil && listing.PriceEur > *alert.MaxPrice {
		return false
	}
	if alert.MinYear != nil && listing.Year < *alert.MinYear {
		return false
	}
	if alert.MaxMileage != nil && listing.Mileage > *alert.MaxMileage {
		return false
	}
	if alert.FuelType != nil && !strings.EqualFold(listing.FuelType, *alert.FuelType) {
		return false
	}
	if alert.BodyType != nil && !strings.EqualFold(listing.BodyType, *alert.BodyType) {
		return false
	}
	return true
}
