package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Plugin configures the logging facility attached at startup. The zero
// value is not valid; start from DefaultPlugin.
type Plugin struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

func DefaultPlugin() Plugin {
	return Plugin{
		Level:  "info",
		Format: FormatConsole,
	}
}

// Validate checks the level and format names.
func (p Plugin) Validate() error {
	if _, err := parseLevel(p.Level); err != nil {
		return err
	}
	switch p.Format {
	case FormatConsole, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown log format %q", p.Format)
	}
}

// Attach builds the logger described by p. The returned closer releases the
// log file, if any, and must be called on shutdown.
func Attach(p Plugin, stderr io.Writer) (*ZerologAdapter, io.Closer, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	level, _ := parseLevel(p.Level)

	var closer io.Closer = nopCloser{}
	out := stderr
	if p.File != "" {
		if err := os.MkdirAll(filepath.Dir(p.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(p.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}

	if p.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: out, NoColor: p.File != ""}
	}

	return NewZerolog(out, level), closer, nil
}

func parseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NoOp discards everything.
type NoOp struct{}

func (NoOp) Debug(component, message string, fields map[string]interface{})   {}
func (NoOp) Info(component, message string, fields map[string]interface{})    {}
func (NoOp) Warning(component, message string, fields map[string]interface{}) {}
func (NoOp) Error(component string, err error, fields map[string]interface{}) {}
