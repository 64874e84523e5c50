package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAlertsNotify = "alerts.notify"

// AlertsNotifyPayload carries the listing snapshot needed to match saved
// inventory alerts against a newly published vehicle.
type AlertsNotifyPayload struct {
	VehicleID    string `json:"vehicleId"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	PriceEur     int    `json:"priceEur"`
	Mileage      int    `json:"mileage"`
	FuelType     string `json:"fuelType,omitempty"`
	BodyType     string `json:"bodyType,omitempty"`
	Transmission string `json:"transmission,omitempty"`
}

func NewAlertsNotifyTask(payload AlertsNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAlertsNotify, data), nil
}

func ParseAlertsNotifyPayload(task *asynq.Task) (AlertsNotifyPayload, error) {
	var payload AlertsNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AlertsNotifyPayload{}, err
	}
	return payload, nil
}
