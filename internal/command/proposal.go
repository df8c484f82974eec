package command

import (
	"fmt"
	"strings"

	"github.com/hearthd/hearth-intent/internal/models"
)

// GenerateProposal derives the review view of a command. It is a pure
// function of its inputs: two calls with the same command produce
// structurally identical proposals, and nothing here is ever persisted.
func GenerateProposal(cmd *models.Command, requiresApproval bool) models.Proposal {
	p := models.Proposal{
		Command: *cmd,
		Summary: models.ProposalSummary{
			Title:       proposalTitle(cmd),
			Description: proposalDescription(cmd),
			Impacts:     proposalImpacts(cmd),
		},
		Risks:            proposalRisks(cmd),
		RequiresApproval: requiresApproval,
	}
	if cmd.Operation == models.OperationCreate {
		// Preview mirrors the record as it would be persisted.
		p.Preview = cmd.Payload
	}
	return p
}

func proposalTitle(cmd *models.Command) string {
	subject := payloadSubject(cmd.Payload)
	switch cmd.Operation {
	case models.OperationCreate:
		switch cmd.Entity {
		case models.EntityTask:
			return fmt.Sprintf("Add task: %s", subject)
		case models.EntityMeal:
			return fmt.Sprintf("Plan meal: %s", subject)
		case models.EntityShopping:
			return fmt.Sprintf("Add to shopping list: %s", subject)
		case models.EntityReminder:
			return fmt.Sprintf("Set reminder: %s", subject)
		case models.EntityAppointment:
			return fmt.Sprintf("Schedule appointment: %s", subject)
		case models.EntityFamily:
			return fmt.Sprintf("Add family member: %s", subject)
		case models.EntityPet:
			return fmt.Sprintf("Add pet: %s", subject)
		}
	case models.OperationUpdate:
		return fmt.Sprintf("Update %s: %s", cmd.Entity, subject)
	case models.OperationDelete:
		return fmt.Sprintf("Delete %s: %s", cmd.Entity, subject)
	}
	return fmt.Sprintf("%s %s", cmd.Operation, cmd.Entity)
}

func proposalDescription(cmd *models.Command) string {
	switch cmd.Operation {
	case models.OperationCreate:
		return fmt.Sprintf("This will create a new %s record from your request %q.",
			cmd.Entity, cmd.Metadata.UserInput)
	case models.OperationUpdate:
		return fmt.Sprintf("This will update the existing %s record %s.",
			cmd.Entity, models.PayloadID(cmd.Payload))
	case models.OperationDelete:
		return fmt.Sprintf("This will permanently delete the %s record %s.",
			cmd.Entity, models.PayloadID(cmd.Payload))
	}
	return ""
}

// proposalImpacts itemizes entity-specific facts a reviewer cares about.
func proposalImpacts(cmd *models.Command) []string {
	var impacts []string
	switch p := cmd.Payload.(type) {
	case models.TaskPayload:
		impacts = append(impacts, fmt.Sprintf("Category: %s", p.Category))
		if p.DueDate != "" {
			impacts = append(impacts, fmt.Sprintf("Due: %s", p.DueDate))
		}
		if p.Priority != "" {
			impacts = append(impacts, fmt.Sprintf("Priority: %s", p.Priority))
		}
	case models.MealPayload:
		impacts = append(impacts, fmt.Sprintf("Meal type: %s", p.MealType))
		if p.Day != "" {
			impacts = append(impacts, fmt.Sprintf("Day: %s", p.Day))
		}
		if p.DietaryNotes != "" {
			impacts = append(impacts, fmt.Sprintf("Dietary notes: %s", p.DietaryNotes))
		}
	case models.ShoppingPayload:
		impacts = append(impacts, fmt.Sprintf("%d item(s)", len(p.Items)))
		if p.Category != "" {
			impacts = append(impacts, fmt.Sprintf("Category: %s", p.Category))
		}
	case models.ReminderPayload:
		if p.Date != "" {
			impacts = append(impacts, fmt.Sprintf("Date: %s", p.Date))
		}
		if p.Time != "" {
			impacts = append(impacts, fmt.Sprintf("Time: %s", p.Time))
		}
	case models.AppointmentPayload:
		if p.Date != "" {
			impacts = append(impacts, fmt.Sprintf("Date: %s", p.Date))
		}
		if p.Time != "" {
			impacts = append(impacts, fmt.Sprintf("Time: %s", p.Time))
		}
		if p.Location != "" {
			impacts = append(impacts, fmt.Sprintf("Location: %s", p.Location))
		}
	case models.FamilyPayload:
		if p.Relationship != "" {
			impacts = append(impacts, fmt.Sprintf("Relationship: %s", p.Relationship))
		}
	case models.PetPayload:
		impacts = append(impacts, fmt.Sprintf("Type: %s", p.Type))
		if p.Breed != "" {
			impacts = append(impacts, fmt.Sprintf("Breed: %s", p.Breed))
		}
	}
	return impacts
}

func proposalRisks(cmd *models.Command) []string {
	risks := []string{}
	if cmd.Operation == models.OperationDelete {
		risks = append(risks, "This deletion cannot be undone.")
	}
	if cmd.Metadata.Confidence > 0 && cmd.Metadata.Confidence < 0.6 {
		risks = append(risks, "The request was interpreted with low confidence; double-check the details.")
	}
	return risks
}

// payloadSubject names the thing a command is about, for titles.
func payloadSubject(p models.Payload) string {
	switch v := p.(type) {
	case models.TaskPayload:
		return v.Title
	case models.MealPayload:
		return v.Name
	case models.ShoppingPayload:
		return strings.Join(v.Items, ", ")
	case models.ReminderPayload:
		return v.Title
	case models.AppointmentPayload:
		return v.Title
	case models.FamilyPayload:
		return v.Name
	case models.PetPayload:
		return v.Name
	default:
		return ""
	}
}
