// Package worker runs submissions received over NATS and publishes the
// outcome as an assessment event.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/tradecheck/tradecheck/internal/domain"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Processor assesses one submission end to end.
type Processor interface {
	Process(ctx context.Context, sub domain.Submission) (*domain.AssessmentReport, error)
}

// Publisher is the subset of *nats.Conn the worker publishes through.
type Publisher interface {
	PublishMsg(msg *nats.Msg) error
}

type Config struct {
	RequestSubject string
	EventSubject   string
	QueueGroup     string
}

// Event is published on the event subject after every submission.
type Event struct {
	SubmissionID string                   `json:"submissionId"`
	Status       string                   `json:"status"`
	Error        string                   `json:"error,omitempty"`
	Report       *domain.AssessmentReport `json:"report,omitempty"`
}

type Worker struct {
	cfg    Config
	proc   Processor
	pub    Publisher
	logger *zap.Logger
}

func New(cfg Config, proc Processor, pub Publisher, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{cfg: cfg, proc: proc, pub: pub, logger: logger}
}

// Run subscribes with the configured queue group and blocks until ctx is
// done, then drains the subscription.
func (w *Worker) Run(ctx context.Context, conn *nats.Conn) error {
	sub, err := conn.QueueSubscribe(w.cfg.RequestSubject, w.cfg.QueueGroup, func(msg *nats.Msg) {
		w.Handle(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", w.cfg.RequestSubject, err)
	}
	w.logger.Info("worker started",
		zap.String("subject", w.cfg.RequestSubject),
		zap.String("queue", w.cfg.QueueGroup),
	)

	<-ctx.Done()
	if err := sub.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return fmt.Errorf("draining subscription: %w", err)
	}
	w.logger.Info("worker stopped")
	return nil
}

// Handle processes one request message. Bodies that are not a submission are
// logged and dropped; every other outcome produces an event.
func (w *Worker) Handle(ctx context.Context, msg *nats.Msg) {
	ctx = otel.GetTextMapPropagator().Extract(ctx, (*headerCarrier)(msg))
	ctx, span := otel.Tracer("tradecheck/worker").Start(ctx, "assess submission")
	defer span.End()

	var sub domain.Submission
	if err := json.Unmarshal(msg.Data, &sub); err != nil {
		w.logger.Warn("dropping malformed submission", zap.String("subject", msg.Subject), zap.Error(err))
		return
	}

	event := Event{SubmissionID: sub.ID, Status: StatusCompleted}
	if strings.TrimSpace(sub.ID) == "" {
		event.Status = StatusFailed
		event.Error = "submission id is required"
	} else if sub.Mileage < 0 {
		event.Status = StatusFailed
		event.Error = fmt.Sprintf("mileage must be >= 0 (got %d)", sub.Mileage)
	} else if report, err := w.proc.Process(ctx, sub); err != nil {
		w.logger.Error("assessment failed", zap.String("submission_id", sub.ID), zap.Error(err))
		span.RecordError(err)
		event.Status = StatusFailed
		event.Error = err.Error()
	} else {
		event.Report = report
	}

	if err := w.publish(ctx, event); err != nil {
		w.logger.Error("publishing assessment event", zap.String("submission_id", sub.ID), zap.Error(err))
	}
}

func (w *Worker) publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	out := &nats.Msg{Subject: w.cfg.EventSubject, Data: data}
	otel.GetTextMapPropagator().Inject(ctx, (*headerCarrier)(out))
	return w.pub.PublishMsg(out)
}
