// Package session manages one agent session per inbound call: caller
// classification, the reject/active branch, and the tool surface exposed
// to the conversational model.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/symrax/voice-frontdesk/internal/clinic"
	"github.com/symrax/voice-frontdesk/internal/scheduling"
	"github.com/symrax/voice-frontdesk/pkg/logging"
)

// State is the lifecycle position of a call session.
type State string

const (
	StateAwaitingCaller State = "awaiting_caller"
	StateClassifying    State = "classifying"
	StateRejecting      State = "rejecting"
	StateActive         State = "active"
	StateEnded          State = "ended"
)

// Tool names exposed to the conversational model.
const (
	ToolCurrentDateTime = "get_current_date_and_time"
	ToolGetSlot         = "get_slot"
)

// SlotChecker is the capability a session needs from the scheduling client.
type SlotChecker interface {
	CheckSlot(ctx context.Context, req scheduling.SlotRequest) string
}

// Session is the request-scoped state for one call. The caller's canonical
// phone number is fixed at classification time and attached to every
// lookup the model requests; nothing here outlives the call.
type Session struct {
	id       string
	callerID string
	phone    string

	checker       SlotChecker
	calendar      *clinic.Calendar
	hours         clinic.Hours
	rejectMessage string
	logger        *logging.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	state State
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CallerID returns the raw identifier the telephony layer reported.
func (s *Session) CallerID() string { return s.callerID }

// CallerPhone returns the canonical phone number attached to lookups.
// Empty for rejected sessions.
func (s *Session) CallerPhone() string { return s.phone }

// RejectMessage returns the fixed script delivered on the rejecting
// branch, or "" when the session is active.
func (s *Session) RejectMessage() string {
	if s.State() != StateRejecting {
		return ""
	}
	return s.rejectMessage
}

// Instructions returns the conversational script handed to the model at
// session start, with the current clinic time and hours appended as
// session context. Rejected sessions get none.
func (s *Session) Instructions() string {
	if s.State() != StateActive {
		return ""
	}
	var b strings.Builder
	b.WriteString(clinic.Instructions)
	b.WriteString("\n## Session Context\n")
	fmt.Fprintf(&b, "- Current time: %s\n", s.calendar.CurrentCompact())
	fmt.Fprintf(&b, "- Operating hours: %s\n", s.hours.Describe())
	fmt.Fprintf(&b, "- Next business day: %s\n", s.calendar.NextBusinessDay())
	return b.String()
}

// Tools lists the capabilities exposed to the model. Empty unless the
// session is active.
func (s *Session) Tools() []string {
	if s.State() != StateActive {
		return nil
	}
	return []string{ToolCurrentDateTime, ToolGetSlot}
}

// HandleTool dispatches one tool invocation from the model. Arguments the
// model omitted fall back to the documented defaults.
func (s *Session) HandleTool(ctx context.Context, name string, args map[string]string) (string, error) {
	if s.State() != StateActive {
		return "", fmt.Errorf("session %s: no tools available in state %s", s.id, s.State())
	}
	s.logger.Debug("tool invoked", "session_id", s.id, "tool", name)
	switch name {
	case ToolCurrentDateTime:
		return "The current date and time is " + s.calendar.CurrentSpoken(), nil
	case ToolGetSlot:
		req := scheduling.SlotRequest{
			AppointmentType: args["appointmentType"],
			BookingDate:     argOrDefault(args, "bookingDate", scheduling.NoPreference),
			BookingTime:     argOrDefault(args, "bookingTime", scheduling.NoPreference),
			CallerPhone:     s.phone,
		}
		lctx, done := s.lookupContext(ctx)
		defer done()
		result := s.checker.CheckSlot(lctx, req)
		if s.State() == StateEnded {
			// The call went away while the lookup was outstanding; the
			// result is moot and must not be spoken.
			return "", fmt.Errorf("session %s: ended during lookup", s.id)
		}
		return result, nil
	default:
		return "", fmt.Errorf("session %s: unknown tool %q", s.id, name)
	}
}

// lookupContext ties a lookup to both the request and the session, so the
// attempt is abandoned when either ends.
func (s *Session) lookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}

// End terminates the session and cancels any outstanding lookup.
func (s *Session) End() {
	s.mu.Lock()
	s.state = StateEnded
	s.mu.Unlock()
	s.cancel()
}

func argOrDefault(args map[string]string, key, fallback string) string {
	if v, ok := args[key]; ok && v != "" {
		return v
	}
	return fallback
}

func newSessionID() string {
	return uuid.NewString()
}
