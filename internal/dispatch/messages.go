package dispatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/hearthd/hearth-intent/internal/models"
)

// successMessage builds the entity-specific confirmation shown to the user.
// Dates and times are humanized for display.
func (r *Router) successMessage(cmd *models.Command) string {
	switch cmd.Operation {
	case models.OperationUpdate:
		return fmt.Sprintf("Updated the %s.", cmd.Entity)
	case models.OperationDelete:
		return fmt.Sprintf("Deleted the %s.", cmd.Entity)
	}

	switch p := cmd.Payload.(type) {
	case models.TaskPayload:
		if p.DueDate != "" {
			return fmt.Sprintf("Added task %q, due %s.", p.Title, r.humanDate(p.DueDate))
		}
		return fmt.Sprintf("Added task %q.", p.Title)
	case models.MealPayload:
		if p.Day != "" {
			return fmt.Sprintf("Planned %s for %s on %s.", p.Name, p.MealType, r.humanDate(p.Day))
		}
		return fmt.Sprintf("Planned %s for %s.", p.Name, p.MealType)
	case models.ShoppingPayload:
		if len(p.Items) == 1 {
			return fmt.Sprintf("Added %s to the shopping list.", p.Items[0])
		}
		return fmt.Sprintf("Added %s to the shopping list.", joinItems(p.Items))
	case models.ReminderPayload:
		when := r.humanWhen(p.Date, p.Time)
		if when != "" {
			return fmt.Sprintf("Reminder set: %s, %s.", p.Title, when)
		}
		return fmt.Sprintf("Reminder set: %s.", p.Title)
	case models.AppointmentPayload:
		when := r.humanWhen(p.Date, p.Time)
		if when != "" {
			return fmt.Sprintf("Scheduled %s for %s.", p.Title, when)
		}
		return fmt.Sprintf("Scheduled %s.", p.Title)
	case models.FamilyPayload:
		return fmt.Sprintf("Added %s to the family.", p.Name)
	case models.PetPayload:
		return fmt.Sprintf("Added your %s %s.", p.Type, p.Name)
	default:
		return fmt.Sprintf("Done: %s.", cmd.Type)
	}
}

// humanDate turns a YYYY-MM-DD date into "today", "tomorrow", a weekday name
// within the coming week, or "Jan 2" beyond that. Unparseable input is
// returned as-is.
func (r *Router) humanDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}

	now := r.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(today).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days > 1 && days < 7:
		return d.Weekday().String()
	default:
		return d.Format("Jan 2")
	}
}

// humanTime turns 24-hour HH:MM into "3:05 PM".
func humanTime(t string) string {
	parsed, err := time.Parse("15:04", t)
	if err != nil {
		return t
	}
	return parsed.Format("3:04 PM")
}

func (r *Router) humanWhen(date, clock string) string {
	switch {
	case date != "" && clock != "":
		return fmt.Sprintf("%s at %s", r.humanDate(date), humanTime(clock))
	case date != "":
		return r.humanDate(date)
	case clock != "":
		return humanTime(clock)
	default:
		return ""
	}
}

func joinItems(items []string) string {
	if len(items) <= 2 {
		return strings.Join(items, " and ")
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
