// Package scheduling queries appointment availability from the external
// scheduling webhook. It is the only side-effecting operation in the call
// core: every outcome, including failure, maps to a speakable string.
package scheduling

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/symrax/voice-frontdesk/internal/observability/metrics"
	"github.com/symrax/voice-frontdesk/pkg/logging"
)

var tracer = otel.Tracer("frontdesk.internal.scheduling")

const (
	// ActionGetSlot tags the webhook payload with the operation name.
	ActionGetSlot = "get_slot"

	// NoPreference is the sentinel the conversational layer sends when the
	// caller did not supply a date or time. It is passed through verbatim.
	NoPreference = "false"

	defaultPhoneField = "Phone Number"
	defaultTimeout    = 10 * time.Second
)

// Fixed result strings spoken to the caller. The conversational layer
// relies on these being stable.
const (
	MsgMissingResult = "No availability data received"
	MsgRejected      = "Sorry, I'm having trouble checking availability right now."
	MsgTimeout       = "The availability system is temporarily slow to respond."
	MsgUnreachable   = "The availability system is temporarily unavailable."
)

// Config controls how the scheduling client behaves.
type Config struct {
	WebhookURL string
	PhoneField string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
	Metrics    *metrics.AgentMetrics
}

// Client issues availability lookups against the scheduling webhook.
type Client struct {
	webhookURL string
	phoneField string
	timeout    time.Duration
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.AgentMetrics
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errors.New("scheduling: webhook URL is required")
	}
	phoneField := strings.TrimSpace(cfg.PhoneField)
	if phoneField == "" {
		phoneField = defaultPhoneField
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		webhookURL: webhookURL,
		phoneField: phoneField,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger,
		metrics:    cfg.Metrics,
	}, nil
}

// SlotRequest carries the parameters of one availability lookup. It is
// created fresh per lookup and never persisted.
type SlotRequest struct {
	AppointmentType string
	BookingDate     string // YYYY-MM-DD or NoPreference
	BookingTime     string // HH:MM 24-hour or NoPreference
	CallerPhone     string
}

// CheckSlot performs a single bounded lookup and always returns a
// presentable string. No error escapes this boundary; no retries are
// attempted. Type, date and time are passed through without validation --
// business-hours checks belong to the remote service.
func (c *Client) CheckSlot(ctx context.Context, req SlotRequest) string {
	ctx, span := tracer.Start(ctx, "scheduling.check_slot")
	defer span.End()
	span.SetAttributes(
		attribute.String("frontdesk.appointment_type", req.AppointmentType),
		attribute.String("frontdesk.booking_date", req.BookingDate),
	)

	start := time.Now()
	result, class := c.checkSlot(ctx, req)
	span.SetAttributes(attribute.String("frontdesk.lookup_result", class))
	c.metrics.ObserveLookup(class, time.Since(start).Seconds())
	return result
}

func (c *Client) checkSlot(ctx context.Context, req SlotRequest) (string, string) {
	payload := map[string]string{
		"action":          ActionGetSlot,
		"appointmentType": req.AppointmentType,
		"bookingDate":     req.BookingDate,
		"bookingTime":     req.BookingTime,
		c.phoneField:      req.CallerPhone,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("scheduling: marshal payload", "error", err)
		return MsgUnreachable, "unreachable"
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("scheduling: build request", "error", err)
		return MsgUnreachable, "unreachable"
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			c.logger.Error("scheduling: webhook timeout for get_slot")
			return MsgTimeout, "timeout"
		}
		c.logger.Error("scheduling: webhook call failed for get_slot", "error", err)
		return MsgUnreachable, "unreachable"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("scheduling: webhook error", "status", resp.StatusCode, "action", ActionGetSlot)
		return MsgRejected, "rejected"
	}

	var parsed struct {
		Result *string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// The bound covers the whole response: Do returns once headers
		// arrive, so a timeout can also surface while reading the body.
		if isTimeout(err) {
			c.logger.Error("scheduling: webhook timeout for get_slot")
			return MsgTimeout, "timeout"
		}
		c.logger.Error("scheduling: decode webhook response", "error", err)
		return MsgUnreachable, "unreachable"
	}
	if parsed.Result == nil {
		return MsgMissingResult, "missing_result"
	}

	c.logger.Info("scheduling: get_slot completed", "result", *parsed.Result)
	return *parsed.Result, "ok"
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
