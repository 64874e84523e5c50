package scheduler

import (
	"context"
	"fmt"

	"autocenter_backend/platform/config"
	"autocenter_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// AlertNotifier matches a listing against active inventory alerts and
// dispatches notifications. Returns the number of attempted dispatches.
type AlertNotifier interface {
	NotifyForListing(ctx context.Context, payload AlertsNotifyPayload) (int, error)
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	notifier AlertNotifier
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, notifier AlertNotifier, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		notifier: notifier,
		log:      log,
	}

	mux.HandleFunc(TaskAlertsNotify, w.handleAlertsNotify)

	return w, nil
}

func (w *Worker) handleAlertsNotify(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAlertsNotifyPayload(task)
	if err != nil {
		return err
	}

	attempted, err := w.notifier.NotifyForListing(ctx, payload)
	if err != nil {
		return err
	}

	w.log.Info("alert notifications dispatched",
		"vehicle_id", payload.VehicleID,
		"attempted", attempted,
	)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
