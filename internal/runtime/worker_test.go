package runtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symrax/voice-frontdesk/internal/caller"
	"github.com/symrax/voice-frontdesk/internal/clinic"
	"github.com/symrax/voice-frontdesk/internal/scheduling"
	"github.com/symrax/voice-frontdesk/internal/session"
)

type fakeChecker struct {
	result string
}

func (f *fakeChecker) CheckSlot(_ context.Context, _ scheduling.SlotRequest) string {
	return f.result
}

// fakeRuntime accepts one worker connection and scripts an exchange.
type fakeRuntime struct {
	t        *testing.T
	upgrader websocket.Upgrader
	received chan Envelope
	conn     chan *websocket.Conn
}

func newFakeRuntime(t *testing.T) (*fakeRuntime, *httptest.Server) {
	fr := &fakeRuntime{
		t:        t,
		received: make(chan Envelope, 16),
		conn:     make(chan *websocket.Conn, 1),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := fr.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		fr.conn <- conn
		for {
			var env Envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			fr.received <- env
		}
	}))
	t.Cleanup(srv.Close)
	return fr, srv
}

func (fr *fakeRuntime) expect(msgType string) Envelope {
	fr.t.Helper()
	for {
		select {
		case env := <-fr.received:
			if env.Type == msgType {
				return env
			}
		case <-time.After(2 * time.Second):
			fr.t.Fatalf("timed out waiting for %s", msgType)
		}
	}
}

func newTestWorker(t *testing.T, url string, checker session.SlotChecker) *Worker {
	t.Helper()
	cal, err := clinic.NewCalendar("America/Toronto")
	require.NoError(t, err)
	mgr := session.NewManager(session.Config{
		Checker:       checker,
		Calendar:      cal,
		Normalizer:    caller.Normalizer{},
		RejectMessage: "We cannot accept calls from blocked numbers. Goodbye.",
	})
	w, err := NewWorker(Config{
		URL:            url,
		AgentName:      "symrax",
		Sessions:       mgr,
		ReconnectDelay: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	return w
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWorker_RegistersAndServesJob(t *testing.T) {
	fr, srv := newFakeRuntime(t)
	w := newTestWorker(t, wsURL(srv), &fakeChecker{result: "10:00 available"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	reg := fr.expect(TypeRegister)
	assert.Equal(t, "symrax", reg.AgentName)

	conn := <-fr.conn
	require.NoError(t, conn.WriteJSON(Envelope{
		Type:     TypeJob,
		CallID:   "call-1",
		CallerID: "14165551234",
	}))

	update := fr.expect(TypeJobUpdate)
	assert.Equal(t, "call-1", update.CallID)
	assert.Equal(t, string(session.StateActive), update.State)
	assert.Contains(t, update.Tools, session.ToolGetSlot)
	assert.Contains(t, update.Instructions, "Harmony Fertility")

	require.NoError(t, conn.WriteJSON(Envelope{
		Type:       TypeToolCall,
		CallID:     "call-1",
		ToolCallID: "tc-1",
		ToolName:   session.ToolGetSlot,
		Arguments:  map[string]string{"appointmentType": "Consultation"},
	}))

	result := fr.expect(TypeToolResult)
	assert.Equal(t, "tc-1", result.ToolCallID)
	assert.Equal(t, "10:00 available", result.Response)
}

func TestWorker_JobThenImmediateToolCall(t *testing.T) {
	fr, srv := newFakeRuntime(t)
	w := newTestWorker(t, wsURL(srv), &fakeChecker{result: "Tuesday 14:00 is open"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	fr.expect(TypeRegister)
	conn := <-fr.conn

	// Back-to-back writes without waiting for the job update: the session
	// must exist by the time the tool call is dispatched.
	require.NoError(t, conn.WriteJSON(Envelope{
		Type:     TypeJob,
		CallID:   "call-4",
		CallerID: "14165551234",
	}))
	require.NoError(t, conn.WriteJSON(Envelope{
		Type:       TypeToolCall,
		CallID:     "call-4",
		ToolCallID: "tc-4",
		ToolName:   session.ToolGetSlot,
		Arguments:  map[string]string{"appointmentType": "Consultation"},
	}))

	result := fr.expect(TypeToolResult)
	assert.Equal(t, "tc-4", result.ToolCallID)
	assert.Equal(t, "Tuesday 14:00 is open", result.Response)
}

func TestWorker_RejectsBlockedCaller(t *testing.T) {
	fr, srv := newFakeRuntime(t)
	w := newTestWorker(t, wsURL(srv), &fakeChecker{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	fr.expect(TypeRegister)
	conn := <-fr.conn
	require.NoError(t, conn.WriteJSON(Envelope{
		Type:     TypeJob,
		CallID:   "call-2",
		CallerID: "sip_anonymous",
	}))

	update := fr.expect(TypeJobUpdate)
	assert.Equal(t, string(session.StateRejecting), update.State)
	assert.NotEmpty(t, update.Message)
	assert.Empty(t, update.Tools)

	// tool calls against a rejected session fail
	require.NoError(t, conn.WriteJSON(Envelope{
		Type:       TypeToolCall,
		CallID:     "call-2",
		ToolCallID: "tc-2",
		ToolName:   session.ToolGetSlot,
	}))
	errEnv := fr.expect(TypeToolError)
	assert.Equal(t, "tc-2", errEnv.ToolCallID)
}

func TestWorker_ToolCallForUnknownSession(t *testing.T) {
	fr, srv := newFakeRuntime(t)
	w := newTestWorker(t, wsURL(srv), &fakeChecker{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	fr.expect(TypeRegister)
	conn := <-fr.conn
	require.NoError(t, conn.WriteJSON(Envelope{
		Type:       TypeToolCall,
		CallID:     "ghost",
		ToolCallID: "tc-3",
		ToolName:   session.ToolGetSlot,
	}))

	errEnv := fr.expect(TypeToolError)
	assert.Equal(t, "session not found", errEnv.Error)
}

func TestNewWorker_Validation(t *testing.T) {
	_, err := NewWorker(Config{})
	require.Error(t, err)

	_, err = NewWorker(Config{URL: "ws://example.com"})
	require.Error(t, err)
}
