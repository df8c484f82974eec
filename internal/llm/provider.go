package llm

import (
	"context"

	"github.com/hearthd/hearth-intent/internal/models"
)

// Provider is the low-confidence fallback classifier. Implementations are
// opaque I/O from the core's perspective; whatever they return is re-validated
// before the pipeline trusts it.
type Provider interface {
	ClassifyIntent(ctx context.Context, input string, history []string) (*models.Intent, error)
}
