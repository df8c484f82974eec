// Package executor maps command types to the functions that perform them.
// The registry is populated once at process startup and frozen before any
// dispatch happens; after that it is read-only for the life of the process.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hearthd/hearth-intent/internal/models"
)

var (
	// ErrDuplicateRegistration is returned when a command type is registered twice.
	ErrDuplicateRegistration = errors.New("executor already registered")
	// ErrUnregistered is returned when no executor exists for a command type.
	// Dispatch fails loudly rather than falling back to a no-op.
	ErrUnregistered = errors.New("no executor registered")
	// ErrFrozen is returned for any registration after Freeze.
	ErrFrozen = errors.New("executor registry is frozen")
)

// Func performs the state mutation for one command type.
type Func func(ctx context.Context, cmd *models.Command) models.ExecResult

// Registry is the write-once command-type table.
type Registry struct {
	mu        sync.RWMutex
	executors map[models.CommandType]Func
	frozen    bool
}

func NewRegistry() *Registry {
	return &Registry{executors: make(map[models.CommandType]Func)}
}

// Register adds an executor for t. It fails on duplicates and on any attempt
// after Freeze; the freeze is enforced, not advisory.
func (r *Registry) Register(t models.CommandType, fn Func) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrFrozen, t)
	}
	if _, exists := r.executors[t]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRegistration, t)
	}
	r.executors[t] = fn
	return nil
}

// Freeze locks the registry. Call it once, after startup registration is
// complete and before the first dispatch.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether the registry has been locked.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Get looks up the executor for t.
func (r *Registry) Get(t models.CommandType) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.executors[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnregistered, t)
	}
	return fn, nil
}

// Types returns the registered command types, for startup logging.
func (r *Registry) Types() []models.CommandType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]models.CommandType, 0, len(r.executors))
	for t := range r.executors {
		types = append(types, t)
	}
	return types
}
