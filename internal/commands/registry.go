// Package commands holds the backend functions the frontend can invoke by name.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
)

var (
	ErrInvalidName = errors.New("invalid command name")
	ErrNoHandler   = errors.New("command has no handler")
	ErrDuplicate   = errors.New("duplicate command name")
	ErrSealed      = errors.New("command registry is sealed")
	ErrNotFound    = errors.New("command not found")
	ErrInvalidArgs = errors.New("invalid command arguments")
	ErrPanicked    = errors.New("command panicked")
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// HandlerFunc is the body of a command. Args carry the raw JSON payload sent
// by the frontend; nil means no arguments were supplied.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Param is one entry in a command's ordered parameter list.
type Param struct {
	Name string
	Type string
}

// Descriptor is a named, typed callable unit exposed to the frontend.
type Descriptor struct {
	Name     string
	Params   []Param
	Returns  string // empty for void
	Fallible bool
	Handler  HandlerFunc
}

// Signature renders the descriptor as name(p: T, ...) -> R.
func (d Descriptor) Signature() string {
	sig := d.Name + "("
	for i, p := range d.Params {
		if i > 0 {
			sig += ", "
		}
		sig += p.Name + ": " + p.Type
	}
	sig += ")"
	if d.Returns != "" {
		sig += " -> " + d.Returns
	}
	if d.Fallible {
		sig += " !"
	}
	return sig
}

func (d Descriptor) clone() Descriptor {
	params := make([]Param, len(d.Params))
	copy(params, d.Params)
	d.Params = params
	return d
}

// Registry maps command names to descriptors. Declarations are accepted
// until Seal is called; after that the set is fixed.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Descriptor
	sealed   bool
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Descriptor),
	}
}

// Declare adds a command to the registry.
func (r *Registry) Declare(desc Descriptor) error {
	if !namePattern.MatchString(desc.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, desc.Name)
	}
	if desc.Handler == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, desc.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot declare %s", ErrSealed, desc.Name)
	}
	if _, exists := r.commands[desc.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, desc.Name)
	}

	r.commands[desc.Name] = desc.clone()
	return nil
}

// MustDeclare is Declare for statically known handler sets; a conflict
// panics so the process refuses to start.
func (r *Registry) MustDeclare(descs ...Descriptor) *Registry {
	for _, desc := range descs {
		if err := r.Declare(desc); err != nil {
			panic(err)
		}
	}
	return r
}

// Seal freezes the registry. It is safe to call more than once.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Aggregate returns every declared command sorted by name. The slice is a
// fresh copy on each call.
func (r *Registry) Aggregate() []Descriptor {
	r.mu.RLock()
	descs := make([]Descriptor, 0, len(r.commands))
	for _, desc := range r.commands {
		descs = append(descs, desc.clone())
	}
	r.mu.RUnlock()

	sort.Slice(descs, func(i, j int) bool {
		return descs[i].Name < descs[j].Name
	})
	return descs
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.commands[name]
	if !ok {
		return Descriptor{}, false
	}
	return desc.clone(), true
}

// Invoke runs the command registered under name. Handler panics are
// returned as ErrPanicked instead of unwinding into the caller.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (result any, err error) {
	desc, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("%w: %s: %v", ErrPanicked, name, rec)
		}
	}()

	result, err = desc.Handler(ctx, args)
	if err != nil {
		if !desc.Fallible && !errors.Is(err, ErrInvalidArgs) {
			return nil, fmt.Errorf("command %s is not fallible but failed: %w", name, err)
		}
		return nil, err
	}
	if desc.Returns == "" {
		return nil, nil
	}
	return result, nil
}
