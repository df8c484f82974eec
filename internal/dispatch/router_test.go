package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/nlp"
)

// testNow is a Wednesday.
var testNow = time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

type fakeHandler struct {
	created   []models.Payload
	updated   []models.Payload
	deletedID string
	err       error
	panicWith any
}

func (h *fakeHandler) Create(ctx context.Context, payload models.Payload) error {
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	h.created = append(h.created, payload)
	return h.err
}

func (h *fakeHandler) Update(ctx context.Context, payload models.Payload) error {
	h.updated = append(h.updated, payload)
	return h.err
}

func (h *fakeHandler) Delete(ctx context.Context, id string) error {
	h.deletedID = id
	return h.err
}

func newTestRouter() (*Router, *fakeHandler) {
	r := NewRouter(nlp.FixedClock(testNow), zap.NewNop())
	h := &fakeHandler{}
	r.RegisterHandler(models.EntityTask, h)
	return r, h
}

func taskCommand(op models.Operation, payload models.Payload) *models.Command {
	return &models.Command{
		ID:        "cmd-1",
		Type:      models.CommandType("task." + string(op)),
		Operation: op,
		Entity:    models.EntityTask,
		Payload:   payload,
	}
}

func TestDispatchCreate(t *testing.T) {
	r, h := newTestRouter()
	payload := models.TaskPayload{Title: "Clean the bathroom", DueDate: "2025-03-13"}

	result := r.Dispatch(context.Background(), taskCommand(models.OperationCreate, payload))

	require.True(t, result.Success)
	assert.Equal(t, `Added task "Clean the bathroom", due tomorrow.`, result.Message)
	assert.Equal(t, payload, result.Payload)
	require.Len(t, h.created, 1)
	assert.Equal(t, payload, h.created[0])
}

func TestDispatchUpdateAndDelete(t *testing.T) {
	r, h := newTestRouter()

	result := r.Dispatch(context.Background(),
		taskCommand(models.OperationUpdate, models.TaskPayload{ID: "rec-1", Title: "New title"}))
	require.True(t, result.Success)
	assert.Equal(t, "Updated the task.", result.Message)
	assert.Len(t, h.updated, 1)

	result = r.Dispatch(context.Background(),
		taskCommand(models.OperationDelete, models.TaskPayload{ID: "rec-1", Title: "New title"}))
	require.True(t, result.Success)
	assert.Equal(t, "Deleted the task.", result.Message)
	assert.Equal(t, "rec-1", h.deletedID)
}

func TestDispatchHandlerError(t *testing.T) {
	r, h := newTestRouter()
	h.err = errors.New("redis unavailable")

	result := r.Dispatch(context.Background(),
		taskCommand(models.OperationCreate, models.TaskPayload{Title: "x"}))

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "could not create task")
	assert.Contains(t, result.Error, "redis unavailable")
}

func TestDispatchHandlerPanic(t *testing.T) {
	r, h := newTestRouter()
	h.panicWith = "boom"

	result := r.Dispatch(context.Background(),
		taskCommand(models.OperationCreate, models.TaskPayload{Title: "x"}))

	assert.False(t, result.Success)
	assert.Equal(t, "the task handler failed unexpectedly", result.Error)
	assert.NotContains(t, result.Error, "boom")
}

func TestDispatchUnknownEntity(t *testing.T) {
	r, _ := newTestRouter()

	cmd := &models.Command{
		ID:        "cmd-2",
		Type:      "meal.create",
		Operation: models.OperationCreate,
		Entity:    models.EntityMeal,
		Payload:   models.MealPayload{Name: "Tacos"},
	}

	result := r.Dispatch(context.Background(), cmd)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, `no handler for entity "meal"`)
}

func TestDispatchUnsupportedOperation(t *testing.T) {
	r, _ := newTestRouter()

	result := r.Dispatch(context.Background(),
		taskCommand(models.Operation("clone"), models.TaskPayload{Title: "x"}))
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unsupported operation")
}

func TestHumanDate(t *testing.T) {
	r, _ := newTestRouter()

	tests := []struct {
		date string
		want string
	}{
		{"2025-03-12", "today"},
		{"2025-03-13", "tomorrow"},
		{"2025-03-14", "Friday"},
		{"2025-03-25", "Mar 25"},
		{"not-a-date", "not-a-date"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.humanDate(tt.date), tt.date)
	}
}

func TestHumanTime(t *testing.T) {
	assert.Equal(t, "3:00 PM", humanTime("15:00"))
	assert.Equal(t, "9:30 AM", humanTime("09:30"))
	assert.Equal(t, "junk", humanTime("junk"))
}

func TestHumanWhen(t *testing.T) {
	r, _ := newTestRouter()

	assert.Equal(t, "tomorrow at 3:00 PM", r.humanWhen("2025-03-13", "15:00"))
	assert.Equal(t, "tomorrow", r.humanWhen("2025-03-13", ""))
	assert.Equal(t, "3:00 PM", r.humanWhen("", "15:00"))
	assert.Empty(t, r.humanWhen("", ""))
}

func TestSuccessMessages(t *testing.T) {
	r, _ := newTestRouter()
	r.RegisterHandler(models.EntityShopping, &fakeHandler{})
	r.RegisterHandler(models.EntityReminder, &fakeHandler{})

	t.Run("shopping items joined", func(t *testing.T) {
		cmd := &models.Command{
			Type:      "shopping.add",
			Operation: models.OperationCreate,
			Entity:    models.EntityShopping,
			Payload:   models.ShoppingPayload{Items: []string{"milk", "eggs", "bread"}},
		}
		result := r.Dispatch(context.Background(), cmd)
		require.True(t, result.Success)
		assert.Equal(t, "Added milk, eggs and bread to the shopping list.", result.Message)
	})

	t.Run("reminder with date and time", func(t *testing.T) {
		cmd := &models.Command{
			Type:      "reminder.create",
			Operation: models.OperationCreate,
			Entity:    models.EntityReminder,
			Payload:   models.ReminderPayload{Title: "Call mom", Date: "2025-03-13", Time: "15:00"},
		}
		result := r.Dispatch(context.Background(), cmd)
		require.True(t, result.Success)
		assert.Equal(t, "Reminder set: Call mom, tomorrow at 3:00 PM.", result.Message)
	})
}
