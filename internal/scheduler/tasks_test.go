package scheduler

import (
	"testing"

	"github.com/hibiken/asynq"
)

func TestAlertsNotifyTaskRoundTrip(t *testing.T) {
	payload := AlertsNotifyPayload{
		VehicleID: "3f1e9a44-1111-2222-3333-444455556666",
		Make:      "BMW",
		Model:     "3-series",
		Year:      2018,
		PriceEur:  25000,
		Mileage:   80000,
		FuelType:  "PETROL",
	}

	task, err := NewAlertsNotifyTask(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TaskAlertsNotify {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	parsed, err := ParseAlertsNotifyPayload(task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != payload {
		t.Fatalf("round-trip mismatch: %+v != %+v", parsed, payload)
	}
}

func TestParseAlertsNotifyPayloadRejectsGarbage(t *testing.T) {
	task := asynq.NewTask(TaskAlertsNotify, []byte("{not json"))
	if _, err := ParseAlertsNotifyPayload(task); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
