// Package bridge is the surface the frontend calls into. Requests name a
// command and carry JSON arguments; responses carry a JSON result or a
// classified error. The envelope is provisional until concrete commands
// settle the argument and error encoding.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"zukus-desktop/internal/commands"
	"zukus-desktop/internal/logger"
)

type ErrorKind string

const (
	KindNotFound    ErrorKind = "not_found"
	KindInvalidArgs ErrorKind = "invalid_args"
	KindFailed      ErrorKind = "failed"
	KindPanicked    ErrorKind = "panicked"
	KindCancelled   ErrorKind = "cancelled"
)

var ErrClosed = errors.New("bridge is closed")

// Invoker resolves and runs a command by name.
type Invoker interface {
	Invoke(ctx context.Context, name string, args json.RawMessage) (any, error)
}

// Request asks the backend to run one command
type Request struct {
	ID      string          `json:"id"`
	Command string          `json:"cmd"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Error is a failed call as seen by the frontend
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Response is the outcome of one Request
type Response struct {
	ID     string          `json:"id"`
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// NewRequest builds a request with a fresh id. args may be nil.
func NewRequest(command string, args any) (Request, error) {
	req := Request{ID: uuid.NewString(), Command: command}
	if args == nil {
		return req, nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return Request{}, fmt.Errorf("encode args for %s: %w", command, err)
	}
	req.Args = raw
	return req, nil
}

// Scheduler runs fn on the UI loop. In the app this is fyne.Do.
type Scheduler func(fn func())

// Bridge dispatches frontend requests to the command registry
type Bridge struct {
	invoker  Invoker
	logger   logger.Logger
	schedule Scheduler

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// New creates a bridge over invoker. A nil schedule runs deliveries inline.
func New(invoker Invoker, log logger.Logger, schedule Scheduler) *Bridge {
	if schedule == nil {
		schedule = func(fn func()) { fn() }
	}
	return &Bridge{
		invoker:  invoker,
		logger:   log,
		schedule: schedule,
	}
}

// Call invokes the requested command on the calling goroutine.
func (b *Bridge) Call(ctx context.Context, req Request) Response {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	start := time.Now()

	result, err := b.invoker.Invoke(ctx, req.Command, req.Args)
	resp := Response{ID: req.ID}

	if err == nil {
		raw, encErr := json.Marshal(result)
		if encErr != nil {
			err = fmt.Errorf("encode result: %w", encErr)
		} else {
			resp.OK = true
			resp.Result = raw
		}
	}

	fields := map[string]interface{}{
		"id":       req.ID,
		"command":  req.Command,
		"duration": time.Since(start).String(),
	}
	if err != nil {
		resp.Error = classify(err)
		fields["kind"] = string(resp.Error.Kind)
		b.logger.Error("Bridge", err, fields)
		return resp
	}

	b.logger.Debug("Bridge", "command invoked", fields)
	return resp
}

// Dispatch runs the request off the UI loop and hands the response back
// through the scheduler.
func (b *Bridge) Dispatch(ctx context.Context, req Request, deliver func(Response)) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.inflight.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.inflight.Done()
		resp := b.Call(ctx, req)
		b.schedule(func() {
			deliver(resp)
		})
	}()
	return nil
}

// Shutdown refuses new dispatches and waits for in-flight ones.
func (b *Bridge) Shutdown() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	b.inflight.Wait()
}

func classify(err error) *Error {
	kind := KindFailed
	switch {
	case errors.Is(err, commands.ErrNotFound):
		kind = KindNotFound
	case errors.Is(err, commands.ErrInvalidArgs):
		kind = KindInvalidArgs
	case errors.Is(err, commands.ErrPanicked):
		kind = KindPanicked
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind = KindCancelled
	}
	return &Error{Kind: kind, Message: err.Error()}
}
