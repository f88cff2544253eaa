package session

import (
	"context"
	"sync"

	"github.com/symrax/voice-frontdesk/internal/caller"
	"github.com/symrax/voice-frontdesk/internal/clinic"
	"github.com/symrax/voice-frontdesk/internal/observability/metrics"
	"github.com/symrax/voice-frontdesk/pkg/logging"
)

// Config wires the collaborators every session shares. Built once at
// startup; read-only afterward.
type Config struct {
	Checker       SlotChecker
	Calendar      *clinic.Calendar
	Hours         clinic.Hours
	Normalizer    caller.Normalizer
	RejectMessage string
	Logger        *logging.Logger
	Metrics       *metrics.AgentMetrics
}

// Manager creates and tracks live sessions, one per call.
type Manager struct {
	cfg Config

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager.
func NewManager(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Hours == (clinic.Hours{}) {
		cfg.Hours = clinic.DefaultHours
	}
	return &Manager{
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

// Begin classifies the connected caller and opens a session on the
// rejecting or active branch. callID may be empty, in which case an id is
// generated.
func (m *Manager) Begin(ctx context.Context, callID, callerID string) *Session {
	if callID == "" {
		callID = newSessionID()
	}
	sctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s := &Session{
		id:            callID,
		callerID:      callerID,
		checker:       m.cfg.Checker,
		calendar:      m.cfg.Calendar,
		hours:         m.cfg.Hours,
		rejectMessage: m.cfg.RejectMessage,
		logger:        m.cfg.Logger,
		ctx:           sctx,
		cancel:        cancel,
		state:         StateClassifying,
	}

	// An identifier that passes the denylist but normalizes to nothing
	// (e.g. a bare SIP prefix or pure decoration) is still unknown.
	phone := m.cfg.Normalizer.Normalize(callerID)
	if caller.IsUnknown(callerID) || phone == "" {
		s.state = StateRejecting
		m.cfg.Metrics.ObserveCall("rejected")
		m.cfg.Logger.Info("session rejected", "session_id", s.id, "caller_id", callerID)
	} else {
		s.phone = phone
		s.state = StateActive
		m.cfg.Metrics.ObserveCall("active")
		m.cfg.Logger.Info("session active", "session_id", s.id, "caller_phone", s.phone)
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s
}

// Get returns the live session for a call id.
func (m *Manager) Get(callID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[callID]
	return s, ok
}

// End terminates and forgets the session for a call id.
func (m *Manager) End(callID string) {
	m.mu.Lock()
	s, ok := m.sessions[callID]
	delete(m.sessions, callID)
	m.mu.Unlock()
	if ok {
		s.End()
		m.cfg.Logger.Info("session ended", "session_id", callID)
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
