package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthd/hearth-intent/internal/models"
)

func noopExec(ctx context.Context, cmd *models.Command) models.ExecResult {
	return models.ExecResult{Success: true}
}

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("task.create", noopExec))

	fn, err := r.Get("task.create")
	require.NoError(t, err)
	require.NotNil(t, fn)
	assert.True(t, fn(context.Background(), &models.Command{}).Success)
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("task.create", noopExec))
	err := r.Register("task.create", noopExec)
	assert.ErrorIs(t, err, ErrDuplicateRegistration)
}

func TestGetUnregistered(t *testing.T) {
	r := NewRegistry()

	fn, err := r.Get("meal.create")
	assert.ErrorIs(t, err, ErrUnregistered)
	assert.Nil(t, fn)
}

func TestFreezeRejectsLateRegistration(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("task.create", noopExec))
	require.False(t, r.Frozen())

	r.Freeze()
	require.True(t, r.Frozen())

	err := r.Register("meal.create", noopExec)
	assert.ErrorIs(t, err, ErrFrozen)

	// Registrations made before the freeze are still served.
	_, err = r.Get("task.create")
	assert.NoError(t, err)

	_, err = r.Get("meal.create")
	assert.ErrorIs(t, err, ErrUnregistered)
}

func TestTypes(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("task.create", noopExec))
	require.NoError(t, r.Register("shopping.add", noopExec))

	types := r.Types()
	assert.Len(t, types, 2)
	assert.ElementsMatch(t, []models.CommandType{"task.create", "shopping.add"}, types)
}
