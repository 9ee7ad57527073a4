package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/platform/logging"
	"github.com/riskibarqy/touchline/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	EventSelectionChanged = "selection.changed"

	HeaderEvent     = "X-Touchline-Event"
	HeaderDelivery  = "X-Touchline-Delivery"
	HeaderSignature = "X-Touchline-Signature"
	HeaderAttempt   = "X-Touchline-Attempt"

	defaultTimeout = 10 * time.Second
	defaultBackoff = 250 * time.Millisecond
)

var errWebhookTransient = crerr.New("webhook transient failure")

// DeliveryRecorder observes the final result of each delivery.
type DeliveryRecorder interface {
	RecordDelivery(err error)
}

type Config struct {
	HTTPClient     *http.Client
	URL            string
	Secret         string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Recorder       DeliveryRecorder
	Logger         *logging.Logger
}

// Publisher posts selection change events to a single HTTP endpoint.
type Publisher struct {
	client     *http.Client
	url        string
	secret     []byte
	maxRetries int
	backoff    time.Duration
	recorder   DeliveryRecorder
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	newID      func() string
}

func NewPublisher(cfg Config) (*Publisher, error) {
	target, err := validateHTTPURL(cfg.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid WEBHOOK_URL")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if client.Timeout <= 0 {
		client.Timeout = defaultTimeout
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("webhook circuit breaker state changed", "from", string(from), "to", string(to))
	})

	return &Publisher{
		client:     client,
		url:        target,
		secret:     []byte(strings.TrimSpace(cfg.Secret)),
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    backoff,
		recorder:   cfg.Recorder,
		logger:     logger,
		breaker:    breaker,
		newID:      uuid.NewString,
	}, nil
}

type assignmentPayload struct {
	PlayerID            string `json:"playerId"`
	Position            string `json:"position"`
	IsSubstitution      bool   `json:"isSubstitution"`
	PerformanceCategory string `json:"performanceCategory,omitempty"`
}

type selectionChangedPayload struct {
	Event      string                       `json:"event"`
	DeliveryID string                       `json:"deliveryId"`
	FixtureID  string                       `json:"fixtureId"`
	Team       int                          `json:"team"`
	Period     int                          `json:"period"`
	Revision   int64                        `json:"revision"`
	OccurredAt time.Time                    `json:"occurredAt"`
	Selection  map[string]assignmentPayload `json:"selection"`
	Rows       []selectionRowPayload        `json:"rows"`
}

// selectionRowPayload mirrors one stored row per occupied slot.
type selectionRowPayload struct {
	PeriodNumber int    `json:"periodNumber"`
	TeamNumber   int    `json:"teamNumber"`
	SlotKey      string `json:"slotKey"`
	PlayerID     string `json:"playerId"`
}

func (p *Publisher) PublishSelectionChanged(ctx context.Context, event lineup.ChangeEvent) error {
	err := p.publish(ctx, event)
	if p.recorder != nil {
		p.recorder.RecordDelivery(err)
	}
	return err
}

func (p *Publisher) publish(ctx context.Context, event lineup.ChangeEvent) error {
	if err := p.breaker.Allow(); err != nil {
		p.logger.WarnContext(ctx, "webhook circuit breaker rejected delivery", "state", string(p.breaker.State()), "fixture_id", event.FixtureID)
		return fmt.Errorf("webhook is temporarily unavailable: %w", err)
	}

	deliveryID := p.newID()
	payload := buildPayload(deliveryID, event)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return crerr.Wrap(err, "marshal selection changed payload")
	}
	body := buf.Bytes()
	signature := p.sign(body)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.url", p.url),
			attribute.String("webhook.delivery_id", deliveryID),
			attribute.Int64("webhook.revision", event.Revision),
		)
	}

	var lastErr error
	for attempt := 1; attempt <= p.maxRetries+1; attempt++ {
		lastErr = p.post(ctx, body, deliveryID, signature, attempt)
		if lastErr == nil {
			p.recordCircuitResult(nil)
			p.logger.DebugContext(ctx, "webhook delivered",
				"delivery_id", deliveryID,
				"fixture_id", event.FixtureID,
				"team", event.Scope.Team,
				"period", event.Scope.Period,
				"attempt", attempt,
			)
			return nil
		}
		if !stderrors.Is(lastErr, errWebhookTransient) || attempt > p.maxRetries {
			break
		}

		wait := p.backoff * time.Duration(1<<(attempt-1))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			p.recordCircuitResult(lastErr)
			return crerr.Wrap(ctx.Err(), "webhook delivery cancelled")
		case <-timer.C:
		}
	}

	p.recordCircuitResult(lastErr)
	return lastErr
}

func (p *Publisher) post(ctx context.Context, body []byte, deliveryID, signature string, attempt int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return crerr.Wrap(err, "create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEvent, EventSelectionChanged)
	req.Header.Set(HeaderDelivery, deliveryID)
	req.Header.Set(HeaderAttempt, strconv.Itoa(attempt))
	if signature != "" {
		req.Header.Set(HeaderSignature, signature)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post webhook delivery_id=%s: %v", errWebhookTransient, deliveryID, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 == 2 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if isRetryableStatus(resp.StatusCode) {
		return fmt.Errorf("%w: webhook status=%d delivery_id=%s body=%s", errWebhookTransient, resp.StatusCode, deliveryID, strings.TrimSpace(string(raw)))
	}
	return crerr.Newf("webhook rejected delivery status=%d delivery_id=%s body=%s", resp.StatusCode, deliveryID, strings.TrimSpace(string(raw)))
}

// sign returns "sha256=<hex hmac>" of body, or "" without a secret.
func (p *Publisher) sign(body []byte) string {
	if len(p.secret) == 0 {
		return ""
	}
	mac := hmac.New(sha256.New, p.secret)
	_, _ = mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func buildPayload(deliveryID string, event lineup.ChangeEvent) selectionChangedPayload {
	selection := make(map[string]assignmentPayload, len(event.Selection))
	rows := make([]selectionRowPayload, 0, len(event.Selection))
	for _, slotID := range event.Selection.SlotIDs() {
		a := event.Selection[slotID]
		selection[slotID] = assignmentPayload{
			PlayerID:            a.PlayerID,
			Position:            a.Position,
			IsSubstitution:      a.IsSubstitution,
			PerformanceCategory: string(a.PerformanceCategory),
		}
		rows = append(rows, selectionRowPayload{
			PeriodNumber: event.Scope.Period,
			TeamNumber:   event.Scope.Team,
			SlotKey:      slotID,
			PlayerID:     a.PlayerID,
		})
	}

	return selectionChangedPayload{
		Event:      EventSelectionChanged,
		DeliveryID: deliveryID,
		FixtureID:  event.FixtureID,
		Team:       event.Scope.Team,
		Period:     event.Scope.Period,
		Revision:   event.Revision,
		OccurredAt: event.OccurredAt.UTC(),
		Selection:  selection,
		Rows:       rows,
	}
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}

func (p *Publisher) recordCircuitResult(err error) {
	if err != nil && stderrors.Is(err, errWebhookTransient) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
