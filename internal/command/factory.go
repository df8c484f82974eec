// Package command turns accepted intents into immutable commands and derives
// human-readable proposals from them. Nothing here mutates state: commands
// only take effect after the approval queue and dispatcher have had their say.
package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/nlp"
)

// Factory mints commands. The clock is injected so command timestamps are
// reproducible in tests.
type Factory struct {
	clock nlp.Clock
}

func NewFactory(clock nlp.Clock) *Factory {
	return &Factory{clock: clock}
}

// TypeFor maps an entity and operation to the executor key. Shopping is the
// one irregular entity: its create is "shopping.add" and its delete
// "shopping.remove". Every other entity uses the operation verb verbatim.
func TypeFor(entity models.Entity, op models.Operation) (models.CommandType, error) {
	found := false
	for _, e := range models.Entities {
		if e == entity {
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("%w: entity %q", models.ErrUnknownIntentType, entity)
	}

	if entity == models.EntityShopping {
		switch op {
		case models.OperationCreate:
			return "shopping.add", nil
		case models.OperationDelete:
			return "shopping.remove", nil
		}
	}
	return models.CommandType(fmt.Sprintf("%s.%s", entity, op)), nil
}

// CreateCommandFromIntent builds a create command from an actionable intent.
// Clarification and unknown intents are rejected, as is any payload whose
// required primary field is empty.
func (f *Factory) CreateCommandFromIntent(intent *models.Intent, context string) (*models.Command, error) {
	if intent == nil || !intent.Actionable() {
		return nil, fmt.Errorf("%w: intent is not actionable", models.ErrValidation)
	}
	if intent.Payload == nil {
		return nil, fmt.Errorf("%w: intent has no payload", models.ErrValidation)
	}
	if err := validatePrimaryField(intent.Payload); err != nil {
		return nil, err
	}

	entity := intent.Payload.Entity()
	if models.Category(entity) != intent.Type {
		return nil, fmt.Errorf("%w: payload entity %q does not match intent type %q",
			models.ErrValidation, entity, intent.Type)
	}

	cmdType, err := TypeFor(entity, models.OperationCreate)
	if err != nil {
		return nil, err
	}

	return &models.Command{
		ID:        uuid.NewString(),
		Type:      cmdType,
		Operation: models.OperationCreate,
		Entity:    entity,
		Payload:   intent.Payload,
		Metadata: models.CommandMetadata{
			Confidence: intent.Confidence,
			UserInput:  intent.Raw,
			Timestamp:  f.clock.Now(),
			Context:    context,
		},
	}, nil
}

// CreateUpdateCommand builds an update command. The payload must carry the id
// of the record being changed.
func (f *Factory) CreateUpdateCommand(entity models.Entity, payload models.Payload) (*models.Command, error) {
	return f.commandWithID(entity, models.OperationUpdate, payload)
}

// CreateDeleteCommand builds a delete command. The payload must carry the id
// of the record being removed; that check happens here, before any queue
// interaction.
func (f *Factory) CreateDeleteCommand(entity models.Entity, payload models.Payload) (*models.Command, error) {
	return f.commandWithID(entity, models.OperationDelete, payload)
}

func (f *Factory) commandWithID(entity models.Entity, op models.Operation, payload models.Payload) (*models.Command, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: payload is required", models.ErrValidation)
	}
	if payload.Entity() != entity {
		return nil, fmt.Errorf("%w: payload entity %q does not match %q",
			models.ErrValidation, payload.Entity(), entity)
	}
	if models.PayloadID(payload) == "" {
		return nil, fmt.Errorf("%w: %s requires a record id", models.ErrValidation, op)
	}

	cmdType, err := TypeFor(entity, op)
	if err != nil {
		return nil, err
	}

	return &models.Command{
		ID:        uuid.NewString(),
		Type:      cmdType,
		Operation: op,
		Entity:    entity,
		Payload:   payload,
		Metadata: models.CommandMetadata{
			Confidence: 1,
			Timestamp:  f.clock.Now(),
		},
	}, nil
}

// validatePrimaryField rejects payloads missing their required field.
func validatePrimaryField(p models.Payload) error {
	switch v := p.(type) {
	case models.TaskPayload:
		if v.Title == "" {
			return fmt.Errorf("%w: task title is required", models.ErrValidation)
		}
	case models.MealPayload:
		if v.Name == "" {
			return fmt.Errorf("%w: meal name is required", models.ErrValidation)
		}
	case models.ShoppingPayload:
		if len(v.Items) == 0 {
			return fmt.Errorf("%w: shopping items are required", models.ErrValidation)
		}
	case models.ReminderPayload:
		if v.Title == "" {
			return fmt.Errorf("%w: reminder title is required", models.ErrValidation)
		}
	case models.AppointmentPayload:
		if v.Title == "" {
			return fmt.Errorf("%w: appointment title is required", models.ErrValidation)
		}
	case models.FamilyPayload:
		if v.Name == "" {
			return fmt.Errorf("%w: family member name is required", models.ErrValidation)
		}
	case models.PetPayload:
		if v.Name == "" {
			return fmt.Errorf("%w: pet name is required", models.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unsupported payload type", models.ErrValidation)
	}
	return nil
}
