package store

import (
	"context"
	"fmt"

	"github.com/hearthd/hearth-intent/internal/models"
)

// entityLists names the record list each entity persists into.
var entityLists = map[models.Entity]string{
	models.EntityTask:        "tasks",
	models.EntityMeal:        "meals",
	models.EntityShopping:    "shopping",
	models.EntityReminder:    "reminders",
	models.EntityAppointment: "appointments",
	models.EntityFamily:      "family",
	models.EntityPet:         "pets",
}

// EntityHandler adapts the record store to the dispatcher's per-entity
// handler contract. One instance serves one entity's list.
type EntityHandler struct {
	store  *RecordStore
	entity models.Entity
	list   string
}

// NewEntityHandler builds the handler for entity.
func NewEntityHandler(s *RecordStore, entity models.Entity) (*EntityHandler, error) {
	list, ok := entityLists[entity]
	if !ok {
		return nil, fmt.Errorf("no record list for entity %q", entity)
	}
	return &EntityHandler{store: s, entity: entity, list: list}, nil
}

func (h *EntityHandler) Create(ctx context.Context, payload models.Payload) error {
	if payload.Entity() != h.entity {
		return fmt.Errorf("payload entity %q does not belong to the %s handler", payload.Entity(), h.entity)
	}
	_, err := h.store.Append(ctx, h.list, payload)
	return err
}

func (h *EntityHandler) Update(ctx context.Context, payload models.Payload) error {
	if payload.Entity() != h.entity {
		return fmt.Errorf("payload entity %q does not belong to the %s handler", payload.Entity(), h.entity)
	}
	id := models.PayloadID(payload)
	if id == "" {
		return fmt.Errorf("update requires a record id")
	}
	return h.store.Update(ctx, h.list, id, payload)
}

func (h *EntityHandler) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete requires a record id")
	}
	return h.store.Remove(ctx, h.list, id)
}
