package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/symrax/voice-frontdesk/internal/session"
	"github.com/symrax/voice-frontdesk/pkg/logging"
)

var voiceTracer = otel.Tracer("frontdesk.internal.http.voice")

// ----- Voice webhook event types -----

// VoiceEvent is the top-level webhook payload delivered by the hosting
// runtime: call lifecycle notifications and tool invocations from the
// conversational model.
type VoiceEvent struct {
	// EventType identifies the event: "call.initiated", "call.ended",
	// or "tool_call".
	EventType string `json:"event_type"`
	// CallID groups events within one call.
	CallID string `json:"call_id"`
	// CallerID is the identifier the telephony layer reported for the
	// connected participant. May be empty, SIP-prefixed, or decorated.
	CallerID string `json:"caller_id,omitempty"`
	// Payload holds tool-specific data for tool_call events.
	Payload VoiceToolPayload `json:"payload,omitempty"`
}

// VoiceToolPayload carries one tool invocation.
type VoiceToolPayload struct {
	// ToolName is the capability being invoked.
	ToolName string `json:"tool_name,omitempty"`
	// ToolCallID must be echoed back so the runtime can correlate the
	// result.
	ToolCallID string `json:"tool_call_id,omitempty"`
	// Arguments is the named argument map supplied by the model.
	Arguments map[string]string `json:"arguments,omitempty"`
}

// CallEventResponse is returned for call lifecycle events. For rejected
// calls Message carries the fixed script the runtime must speak before
// terminating; for active calls Instructions and Tools describe the
// session handed to the model.
type CallEventResponse struct {
	SessionID    string   `json:"session_id"`
	State        string   `json:"state"`
	Message      string   `json:"message,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Tools        []string `json:"tools,omitempty"`
}

// VoiceToolResponse is the JSON body returned for tool calls. The
// runtime's TTS speaks Response to the caller.
type VoiceToolResponse struct {
	ToolCallID string `json:"tool_call_id"`
	Response   string `json:"response"`
}

// VoiceErrorResponse is returned when an event cannot be processed.
type VoiceErrorResponse struct {
	ToolCallID string `json:"tool_call_id,omitempty"`
	Error      string `json:"error"`
}

// ----- Handler -----

// VoiceWebhookHandler adapts runtime webhook events onto the session
// manager: call.initiated opens (and classifies) a session, call.ended
// tears it down, tool_call dispatches to the session's tool surface.
type VoiceWebhookHandler struct {
	sessions *session.Manager
	logger   *logging.Logger
}

// NewVoiceWebhookHandler creates a VoiceWebhookHandler.
func NewVoiceWebhookHandler(sessions *session.Manager, logger *logging.Logger) *VoiceWebhookHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &VoiceWebhookHandler{sessions: sessions, logger: logger}
}

// HandleCallEvent is the HTTP handler for POST /webhooks/voice/events.
func (h *VoiceWebhookHandler) HandleCallEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := h.readEvent(w, r)
	if !ok {
		return
	}

	switch event.EventType {
	case "call.initiated":
		s := h.sessions.Begin(r.Context(), event.CallID, event.CallerID)
		resp := CallEventResponse{
			SessionID: s.ID(),
			State:     string(s.State()),
		}
		if s.State() == session.StateRejecting {
			resp.Message = s.RejectMessage()
		} else {
			resp.Instructions = s.Instructions()
			resp.Tools = s.Tools()
		}
		h.writeJSON(w, http.StatusOK, resp)
	case "call.ended":
		h.sessions.End(event.CallID)
		h.writeJSON(w, http.StatusOK, CallEventResponse{
			SessionID: event.CallID,
			State:     string(session.StateEnded),
		})
	default:
		h.logger.Warn("voice: unhandled event type", "event_type", event.EventType)
		h.writeJSON(w, http.StatusBadRequest, VoiceErrorResponse{Error: "unknown event type"})
	}
}

// HandleToolCall is the HTTP handler for POST /webhooks/voice/tool-call.
func (h *VoiceWebhookHandler) HandleToolCall(w http.ResponseWriter, r *http.Request) {
	ctx, span := voiceTracer.Start(r.Context(), "voice.tool_call")
	defer span.End()

	event, ok := h.readEvent(w, r)
	if !ok {
		return
	}
	span.SetAttributes(
		attribute.String("frontdesk.call_id", event.CallID),
		attribute.String("frontdesk.tool_name", event.Payload.ToolName),
	)

	s, found := h.sessions.Get(event.CallID)
	if !found {
		h.logger.Warn("voice: tool call for unknown session", "call_id", event.CallID)
		h.writeJSON(w, http.StatusNotFound, VoiceErrorResponse{
			ToolCallID: event.Payload.ToolCallID,
			Error:      "session not found",
		})
		return
	}

	result, err := s.HandleTool(ctx, event.Payload.ToolName, event.Payload.Arguments)
	if err != nil {
		h.logger.Warn("voice: tool dispatch failed",
			"call_id", event.CallID,
			"tool_name", event.Payload.ToolName,
			"error", err,
		)
		h.writeJSON(w, http.StatusUnprocessableEntity, VoiceErrorResponse{
			ToolCallID: event.Payload.ToolCallID,
			Error:      err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, VoiceToolResponse{
		ToolCallID: event.Payload.ToolCallID,
		Response:   result,
	})
}

func (h *VoiceWebhookHandler) readEvent(w http.ResponseWriter, r *http.Request) (VoiceEvent, bool) {
	var event VoiceEvent
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		h.logger.Error("voice: failed to read body", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return event, false
	}
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("voice: failed to parse event", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return event, false
	}
	return event, true
}

func (h *VoiceWebhookHandler) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
