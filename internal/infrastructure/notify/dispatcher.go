package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/platform/logging"
)

const defaultDeliveryTimeout = 30 * time.Second

// RejectRecorder counts events dropped on a saturated pool.
type RejectRecorder interface {
	RecordDispatchRejected()
}

type DispatcherConfig struct {
	Workers         int
	DeliveryTimeout time.Duration
	Rejects         RejectRecorder
	Logger          *logging.Logger
}

// Dispatcher hands change events to a slower publisher on a bounded worker
// pool so board edits never wait on delivery. Submission never blocks: a full
// pool rejects the event.
type Dispatcher struct {
	next    lineup.ChangePublisher
	pool    *ants.Pool
	timeout time.Duration
	rejects RejectRecorder
	logger  *logging.Logger
}

func NewDispatcher(next lineup.ChangePublisher, cfg DispatcherConfig) (*Dispatcher, error) {
	if next == nil {
		return nil, fmt.Errorf("publisher is required")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	timeout := cfg.DeliveryTimeout
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create dispatch pool: %w", err)
	}

	return &Dispatcher{
		next:    next,
		pool:    pool,
		timeout: timeout,
		rejects: cfg.Rejects,
		logger:  logger,
	}, nil
}

func (d *Dispatcher) PublishSelectionChanged(ctx context.Context, event lineup.ChangeEvent) error {
	event.Selection = event.Selection.Clone()
	detached := context.WithoutCancel(ctx)

	err := d.pool.Submit(func() {
		deliveryCtx, cancel := context.WithTimeout(detached, d.timeout)
		defer cancel()

		if err := d.next.PublishSelectionChanged(deliveryCtx, event); err != nil {
			d.logger.WarnContext(deliveryCtx, "selection change delivery failed",
				"fixture_id", event.FixtureID,
				"team", event.Scope.Team,
				"period", event.Scope.Period,
				"revision", event.Revision,
				"error", err,
			)
		}
	})
	if err != nil {
		if d.rejects != nil {
			d.rejects.RecordDispatchRejected()
		}
		return fmt.Errorf("dispatch selection change: %w", err)
	}
	return nil
}

// Close waits up to timeout for in-flight deliveries. Deliveries still running
// at the deadline are abandoned and logged.
func (d *Dispatcher) Close(timeout time.Duration) error {
	if err := d.pool.ReleaseTimeout(timeout); err != nil {
		d.logger.Warn("change deliveries abandoned on close",
			"in_flight", d.pool.Running(),
			"timeout_ms", timeout.Milliseconds(),
			"error", err,
		)
		return err
	}
	return nil
}

// LogPublisher writes change events to the log. It is the receiver used when
// no webhook is configured.
type LogPublisher struct {
	logger *logging.Logger
}

func NewLogPublisher(logger *logging.Logger) *LogPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishSelectionChanged(ctx context.Context, event lineup.ChangeEvent) error {
	p.logger.InfoContext(ctx, "selection changed",
		"fixture_id", event.FixtureID,
		"team", event.Scope.Team,
		"period", event.Scope.Period,
		"revision", event.Revision,
		"slots", len(event.Selection),
	)
	return nil
}
