// Package app bootstraps the desktop shell: it attaches the logging
// facility, installs the command set and hands control to the Fyne run loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync/atomic"

	"zukus-desktop/internal/bridge"
	"zukus-desktop/internal/commands"
	"zukus-desktop/internal/config"
	"zukus-desktop/internal/instance"
	"zukus-desktop/internal/logger"
	"zukus-desktop/internal/shutdown"
	"zukus-desktop/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

type State int32

const (
	Uninitialized State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

var ErrAlreadyRunning = errors.New("application is already running")

// RuntimeFactory constructs the GUI runtime.
type RuntimeFactory func(id string) (fyne.App, error)

func DefaultRuntime(id string) (fyne.App, error) {
	return app.NewWithID(id), nil
}

type Options struct {
	Config  config.Config
	Version string

	// Commands defaults to commands.Default().
	Commands *commands.Registry
	// Runtime defaults to DefaultRuntime.
	Runtime RuntimeFactory
	// Schedule delivers bridge responses to the UI loop; defaults to fyne.Do.
	Schedule bridge.Scheduler
	// Stderr receives console logs and the fatal diagnostic; defaults to os.Stderr.
	Stderr io.Writer
}

type Application struct {
	fyneApp  fyne.App
	window   fyne.Window
	view     *views.MainView
	registry *commands.Registry
	bridge   *bridge.Bridge
	handlers *Handlers
	logger   logger.Logger
	logFile  io.Closer
	schedule bridge.Scheduler
	shutdown *shutdown.Manager
	lock     *instance.Lock
	version  string
	state    atomic.Int32
}

// NewApplication performs the one-time initialization. On error every
// resource acquired so far is released and the application never runs.
func NewApplication(opts Options) (application *Application, err error) {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Runtime == nil {
		opts.Runtime = DefaultRuntime
	}
	if opts.Schedule == nil {
		opts.Schedule = fyne.Do
	}
	if opts.Commands == nil {
		opts.Commands = commands.Default()
	}

	var rollback []func()
	defer func() {
		if err != nil {
			for i := len(rollback) - 1; i >= 0; i-- {
				rollback[i]()
			}
		}
	}()

	log, logCloser, err := logger.Attach(opts.Config.Logging.Plugin(), opts.Stderr)
	if err != nil {
		return nil, fmt.Errorf("attach logging: %w", err)
	}
	rollback = append(rollback, func() { logCloser.Close() })

	log.Info("Bootstrap", "starting application", map[string]interface{}{
		"version":    opts.Version,
		"go_version": runtime.Version(),
		"log_level":  opts.Config.Logging.Level,
	})

	var lock *instance.Lock
	if opts.Config.Instance.Single {
		lock, err = instance.Acquire(opts.Config.Instance.DataDir)
		if err != nil {
			return nil, fmt.Errorf("single instance: %w", err)
		}
		rollback = append(rollback, func() { lock.Release() })
		log.Debug("Bootstrap", "instance lock acquired", map[string]interface{}{
			"lock": lock.Path(),
		})
	}

	app.SetMetadata(fyne.AppMetadata{
		ID:      config.AppID,
		Name:    config.AppName,
		Version: opts.Version,
	})
	fyneApp, err := newRuntime(opts.Runtime, config.AppID)
	if err != nil {
		return nil, fmt.Errorf("create runtime: %w", err)
	}

	window := fyneApp.NewWindow(opts.Config.Window.Title)
	window.Resize(fyne.NewSize(float32(opts.Config.Window.Width), float32(opts.Config.Window.Height)))
	window.CenterOnScreen()
	window.SetMaster()

	application = &Application{
		fyneApp:  fyneApp,
		window:   window,
		registry: opts.Commands,
		logger:   log,
		logFile:  logCloser,
		schedule: opts.Schedule,
		shutdown: shutdown.NewManager(log),
		lock:     lock,
		version:  opts.Version,
	}

	application.installCommands()
	application.setupMenus()

	if lock != nil {
		application.shutdown.Register("instance lock", lock)
	}
	application.shutdown.Register("bridge", application.bridge)

	window.SetOnClosed(func() {
		log.Info("Bootstrap", "main window closed", nil)
	})

	log.Info("Bootstrap", "initialization complete", map[string]interface{}{
		"commands": application.registry.Len(),
	})
	return application, nil
}

// installCommands seals the registry and exposes its aggregate to the view
// through the bridge.
func (a *Application) installCommands() {
	a.registry.Seal()
	a.bridge = bridge.New(a.registry, a.logger, a.schedule)

	descs := a.registry.Aggregate()
	a.view = views.NewMainView(a.window)
	a.view.SetCommands(descs)
	a.view.SetVersion(a.version)

	a.handlers = NewHandlers(a.shutdown.Context(), a.bridge, a.view, a.logger)
	a.view.SetInvokeHandler(a.handlers.HandleInvoke)

	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name
	}
	a.logger.Debug("Bootstrap", "commands installed", map[string]interface{}{
		"names": names,
	})
}

func newRuntime(factory RuntimeFactory, id string) (fyneApp fyne.App, err error) {
	defer func() {
		if r := recover(); r != nil {
			fyneApp = nil
			err = fmt.Errorf("runtime panicked: %v", r)
		}
	}()

	fyneApp, err = factory(id)
	if err == nil && fyneApp == nil {
		err = errors.New("runtime factory returned no application")
	}
	return fyneApp, err
}

// Run shows the main window and blocks in the run loop until the window is
// closed, ctx is cancelled or the process receives SIGINT/SIGTERM.
func (a *Application) Run(ctx context.Context) error {
	if !a.state.CompareAndSwap(int32(Uninitialized), int32(Running)) {
		return ErrAlreadyRunning
	}

	stop := a.shutdown.Listen(ctx, func() {
		a.schedule(a.fyneApp.Quit)
	})

	a.view.Show()
	a.logger.Info("Bootstrap", "entering run loop", nil)

	a.fyneApp.Run()
	stop()

	a.logger.Info("Bootstrap", "run loop exited", nil)
	a.shutdown.Shutdown()

	// Closed last so the shutdown sequence can still log.
	if err := a.logFile.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

func (a *Application) State() State {
	return State(a.state.Load())
}

func (a *Application) Bridge() *bridge.Bridge {
	return a.bridge
}

func (a *Application) Commands() []commands.Descriptor {
	return a.registry.Aggregate()
}

func (a *Application) View() *views.MainView {
	return a.view
}

// Start initializes and runs the application and returns the process exit
// code. A failed initialization writes a diagnostic and never enters the
// run loop.
func Start(ctx context.Context, opts Options) int {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	application, err := NewApplication(opts)
	if err != nil {
		fmt.Fprintf(stderr, "zukus: fatal: application initialization failed: %v\n", err)
		return 1
	}

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "zukus: fatal: application execution failed: %v\n", err)
		return 1
	}
	return 0
}
