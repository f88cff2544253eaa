// Package runtime connects the agent to its hosting runtime over a
// websocket: the worker registers under its agent name and receives call
// jobs and tool invocations for the sessions it owns.
package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/symrax/voice-frontdesk/internal/session"
	"github.com/symrax/voice-frontdesk/pkg/logging"
)

// Envelope is the framing for every message on the runtime socket.
type Envelope struct {
	Type string `json:"type"`

	// register / job fields
	AgentName string `json:"agent_name,omitempty"`
	CallID    string `json:"call_id,omitempty"`
	CallerID  string `json:"caller_id,omitempty"`

	// session state reported back to the runtime
	State        string   `json:"state,omitempty"`
	Message      string   `json:"message,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Tools        []string `json:"tools,omitempty"`

	// tool invocation fields
	ToolCallID string            `json:"tool_call_id,omitempty"`
	ToolName   string            `json:"tool_name,omitempty"`
	Arguments  map[string]string `json:"arguments,omitempty"`
	Response   string            `json:"response,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Message types on the runtime socket.
const (
	TypeRegister   = "register"
	TypeJob        = "job"
	TypeJobUpdate  = "job_update"
	TypeToolCall   = "tool_call"
	TypeToolResult = "tool_result"
	TypeToolError  = "tool_error"
	TypeCallEnded  = "call_ended"
)

// Config controls the runtime worker.
type Config struct {
	URL            string
	AgentName      string
	Sessions       *session.Manager
	Logger         *logging.Logger
	Dialer         *websocket.Dialer
	ReconnectDelay time.Duration
}

// Worker maintains the runtime connection and dispatches its events.
type Worker struct {
	url            string
	agentName      string
	sessions       *session.Manager
	logger         *logging.Logger
	dialer         *websocket.Dialer
	reconnectDelay time.Duration

	writeMu sync.Mutex
}

// NewWorker creates a runtime worker.
func NewWorker(cfg Config) (*Worker, error) {
	if cfg.URL == "" {
		return nil, errors.New("runtime: websocket URL is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("runtime: session manager is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	delay := cfg.ReconnectDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}
	return &Worker{
		url:            cfg.URL,
		agentName:      cfg.AgentName,
		sessions:       cfg.Sessions,
		logger:         logger,
		dialer:         dialer,
		reconnectDelay: delay,
	}, nil
}

// Run connects and serves until ctx is canceled, reconnecting on failure.
func (w *Worker) Run(ctx context.Context) error {
	for {
		if err := w.serveOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.Warn("runtime: connection lost", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.reconnectDelay):
		}
	}
}

// serveOnce dials, registers, and reads events until the connection drops.
func (w *Worker) serveOnce(ctx context.Context) error {
	conn, _, err := w.dialer.DialContext(ctx, w.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if err := w.send(conn, Envelope{Type: TypeRegister, AgentName: w.agentName}); err != nil {
		return err
	}
	w.logger.Info("runtime: registered", "agent_name", w.agentName, "url", w.url)

	// Lifecycle events run inline so a job is registered before any
	// tool_call that follows it on the wire. Only tool calls, which may
	// block on the scheduling webhook for up to its timeout, leave the
	// read loop.
	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return err
		}
		switch env.Type {
		case TypeJob:
			w.handleJob(ctx, conn, env)
		case TypeToolCall:
			go w.handleToolCall(ctx, conn, env)
		case TypeCallEnded:
			w.sessions.End(env.CallID)
		default:
			w.logger.Debug("runtime: ignoring message", "type", env.Type)
		}
	}
}

func (w *Worker) handleJob(ctx context.Context, conn *websocket.Conn, env Envelope) {
	s := w.sessions.Begin(ctx, env.CallID, env.CallerID)
	update := Envelope{
		Type:   TypeJobUpdate,
		CallID: s.ID(),
		State:  string(s.State()),
	}
	if s.State() == session.StateRejecting {
		update.Message = s.RejectMessage()
	} else {
		update.Instructions = s.Instructions()
		update.Tools = s.Tools()
	}
	_ = w.send(conn, update)
}

func (w *Worker) handleToolCall(ctx context.Context, conn *websocket.Conn, env Envelope) {
	s, ok := w.sessions.Get(env.CallID)
	if !ok {
		_ = w.send(conn, Envelope{
			Type:       TypeToolError,
			CallID:     env.CallID,
			ToolCallID: env.ToolCallID,
			Error:      "session not found",
		})
		return
	}
	result, err := s.HandleTool(ctx, env.ToolName, env.Arguments)
	if err != nil {
		_ = w.send(conn, Envelope{
			Type:       TypeToolError,
			CallID:     env.CallID,
			ToolCallID: env.ToolCallID,
			Error:      err.Error(),
		})
		return
	}
	_ = w.send(conn, Envelope{
		Type:       TypeToolResult,
		CallID:     env.CallID,
		ToolCallID: env.ToolCallID,
		Response:   result,
	})
}

// send serializes one envelope; gorilla permits a single concurrent writer.
func (w *Worker) send(conn *websocket.Conn, env Envelope) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
