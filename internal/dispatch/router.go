// Package dispatch routes approved commands to per-entity handlers and
// normalizes every outcome into a uniform result. Handler failures, including
// panics, never escape this boundary: the user sees a readable message, never
// a stack trace.
package dispatch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/nlp"
)

// Handler is the per-entity persistence adapter contract. Create is the
// minimum; the gated execution path also expects Update and Delete.
type Handler interface {
	Create(ctx context.Context, payload models.Payload) error
	Update(ctx context.Context, payload models.Payload) error
	Delete(ctx context.Context, id string) error
}

// Router selects the handler matching a command's entity and invokes the
// operation the command carries.
type Router struct {
	handlers map[models.Entity]Handler
	clock    nlp.Clock
	logger   *zap.Logger
}

func NewRouter(clock nlp.Clock, logger *zap.Logger) *Router {
	return &Router{
		handlers: make(map[models.Entity]Handler),
		clock:    clock,
		logger:   logger,
	}
}

// RegisterHandler attaches a handler for entity. Later registrations replace
// earlier ones; wiring happens once at startup.
func (r *Router) RegisterHandler(entity models.Entity, h Handler) {
	r.handlers[entity] = h
}

// Dispatch executes cmd against its entity handler. The returned result is
// always well-formed; errors and panics are folded into it.
func (r *Router) Dispatch(ctx context.Context, cmd *models.Command) (result models.ExecResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("handler panicked",
				zap.String("command_id", cmd.ID),
				zap.String("type", string(cmd.Type)),
				zap.Any("panic", rec))
			result = models.ExecResult{
				Success: false,
				Error:   fmt.Sprintf("the %s handler failed unexpectedly", cmd.Entity),
			}
		}
	}()

	h, ok := r.handlers[cmd.Entity]
	if !ok {
		return models.ExecResult{
			Success: false,
			Error:   fmt.Sprintf("no handler for entity %q", cmd.Entity),
		}
	}

	var err error
	switch cmd.Operation {
	case models.OperationCreate:
		err = h.Create(ctx, cmd.Payload)
	case models.OperationUpdate:
		err = h.Update(ctx, cmd.Payload)
	case models.OperationDelete:
		err = h.Delete(ctx, models.PayloadID(cmd.Payload))
	default:
		err = fmt.Errorf("unsupported operation %q", cmd.Operation)
	}

	if err != nil {
		r.logger.Warn("handler call failed",
			zap.String("command_id", cmd.ID),
			zap.String("type", string(cmd.Type)),
			zap.Error(err))
		return models.ExecResult{
			Success: false,
			Error:   fmt.Sprintf("could not %s %s: %v", cmd.Operation, cmd.Entity, err),
		}
	}

	return models.ExecResult{
		Success: true,
		Message: r.successMessage(cmd),
		Payload: cmd.Payload,
	}
}
