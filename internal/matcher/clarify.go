package matcher

import (
	"fmt"

	"github.com/hearthd/hearth-intent/internal/models"
)

// Placeholder defaults the extractors fall back to when a primary field could
// not be filled. The clarifier treats these as missing.
const (
	placeholderTask        = "New item"
	placeholderMeal        = "New meal"
	placeholderAppointment = "Appointment"
)

// Clarification thresholds: anything under needFloor always needs a follow-up
// question; a placeholder primary field needs one under placeholderFloor.
const (
	needFloor        = 0.4
	placeholderFloor = 0.6
)

// GenerateClarification produces a category-specific follow-up question when
// the intent's primary field is missing or still a placeholder, and a
// confirmation sentence when it is adequately filled. The confirmation form
// exists because this function also narrates proactive auto-execution.
func GenerateClarification(intent *models.Intent) string {
	switch intent.Type {
	case models.CategoryTask:
		p, ok := intent.Payload.(models.TaskPayload)
		if !ok || p.Title == "" || p.Title == placeholderTask {
			return "What task would you like to add?"
		}
		if p.DueDate != "" {
			return fmt.Sprintf("I'll add the task %q, due %s.", p.Title, p.DueDate)
		}
		return fmt.Sprintf("I'll add the task %q.", p.Title)

	case models.CategoryMeal:
		p, ok := intent.Payload.(models.MealPayload)
		if !ok || p.Name == "" || p.Name == placeholderMeal {
			return "What meal would you like to plan?"
		}
		return fmt.Sprintf("I'll plan %s for %s.", p.Name, p.MealType)

	case models.CategoryShopping:
		p, ok := intent.Payload.(models.ShoppingPayload)
		if !ok || len(p.Items) == 0 {
			return "What items should I add to the shopping list?"
		}
		if len(p.Items) == 1 {
			return fmt.Sprintf("I'll add %s to the shopping list.", p.Items[0])
		}
		return fmt.Sprintf("I'll add %d items to the shopping list.", len(p.Items))

	case models.CategoryReminder:
		p, ok := intent.Payload.(models.ReminderPayload)
		if !ok || p.Title == "" {
			return "What should I remind you about?"
		}
		return fmt.Sprintf("I'll set a reminder: %s.", p.Title)

	case models.CategoryAppointment:
		p, ok := intent.Payload.(models.AppointmentPayload)
		if !ok || p.Title == "" || p.Title == placeholderAppointment {
			return "What is the appointment for?"
		}
		return fmt.Sprintf("I'll schedule %s.", p.Title)

	case models.CategoryFamily:
		p, ok := intent.Payload.(models.FamilyPayload)
		if !ok || p.Name == "" {
			return "Who would you like to add to the family?"
		}
		return fmt.Sprintf("I'll add %s to the family.", p.Name)

	case models.CategoryPet:
		p, ok := intent.Payload.(models.PetPayload)
		if !ok || p.Name == "" {
			return "What is your pet's name?"
		}
		return fmt.Sprintf("I'll add your pet %s.", p.Name)

	default:
		if intent.FollowUpQuestion != "" {
			return intent.FollowUpQuestion
		}
		return GenericClarificationQuestion
	}
}

// NeedsClarification is the boolean gate, deliberately decoupled from
// GenerateClarification: a caller may accept an intent even when this returns
// true, depending on its execution policy.
func NeedsClarification(intent *models.Intent) bool {
	if !intent.Actionable() {
		return true
	}
	if intent.Confidence < needFloor {
		return true
	}

	field, placeholder := primaryField(intent)
	if field == "" {
		return true
	}
	if placeholder && intent.Confidence < placeholderFloor {
		return true
	}
	return false
}

// primaryField returns the intent's required field value and whether it is a
// placeholder default.
func primaryField(intent *models.Intent) (value string, isPlaceholder bool) {
	switch p := intent.Payload.(type) {
	case models.TaskPayload:
		return p.Title, p.Title == placeholderTask
	case models.MealPayload:
		return p.Name, p.Name == placeholderMeal
	case models.ShoppingPayload:
		if len(p.Items) == 0 {
			return "", false
		}
		return p.Items[0], false
	case models.ReminderPayload:
		return p.Title, false
	case models.AppointmentPayload:
		return p.Title, p.Title == placeholderAppointment
	case models.FamilyPayload:
		return p.Name, false
	case models.PetPayload:
		return p.Name, false
	default:
		return "", false
	}
}
