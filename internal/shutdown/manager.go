package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"zukus-desktop/internal/logger"
)

const defaultTimeout = 10 * time.Second

// Shutdownable is a component stopped during shutdown
type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable.
type Func func()

func (f Func) Shutdown() { f() }

type entry struct {
	name      string
	component Shutdownable
}

// Manager coordinates ordered shutdown of registered components
type Manager struct {
	components []entry
	logger     logger.Logger
	timeout    time.Duration
	mu         sync.Mutex
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewManager creates a new shutdown manager
func NewManager(log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		logger:  log,
		timeout: defaultTimeout,
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetTimeout bounds how long a single component may take to shut down.
func (m *Manager) SetTimeout(d time.Duration) {
	m.mu.Lock()
	m.timeout = d
	m.mu.Unlock()
}

// Register adds a component to stop on shutdown
func (m *Manager) Register(name string, component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, entry{name: name, component: component})
}

// Listen calls onSignal once SIGINT or SIGTERM arrives, or once ctx is done.
// The returned stop function detaches the signal handler.
func (m *Manager) Listen(ctx context.Context, onSignal func()) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	quit := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			select {
			case <-quit:
				return
			default:
			}
			m.logger.Info("Shutdown", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			onSignal()
		case <-ctx.Done():
			select {
			case <-quit:
				return
			default:
			}
			m.logger.Info("Shutdown", "context cancelled", nil)
			onSignal()
		case <-quit:
		case <-m.done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(quit)
		})
	}
}

// Shutdown stops registered components in reverse registration order. Only
// the first call does any work.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.logger.Info("Shutdown", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	for i := len(m.components) - 1; i >= 0; i-- {
		e := m.components[i]

		done := make(chan struct{})
		go func() {
			defer close(done)
			e.component.Shutdown()
		}()

		select {
		case <-done:
			m.logger.Debug("Shutdown", "component stopped", map[string]interface{}{
				"component": e.name,
			})
		case <-time.After(m.timeout):
			m.logger.Warning("Shutdown", "component shutdown timeout", map[string]interface{}{
				"component": e.name,
			})
		}
	}

	m.logger.Info("Shutdown", "shutdown sequence completed", nil)
}

// Context returns a context cancelled when shutdown begins
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Done returns a channel closed when shutdown begins
func (m *Manager) Done() <-chan struct{} {
	return m.done
}
