// Package prompts builds the fallback system prompt and parses the model's
// answer back into an intent. Anything a model produces is untrusted input:
// it goes through the same validation as any other external intent source.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hearthd/hearth-intent/internal/models"
)

// SystemPrompt constrains the fallback model to emit exactly the Intent JSON
// shape. It is only consulted when the deterministic pipeline's confidence is
// too low to act.
const SystemPrompt = `You are the intent parser for a household assistant. A deterministic
classifier could not confidently categorize the user's request; your job is to produce a
structured intent for it.

RESPONSE FORMAT:
Respond with a single JSON object and nothing else:
{
  "type": "<category>",
  "confidence": <number between 0 and 1>,
  "raw": "<the user's request>",
  "payload": { ... } or omitted,
  "follow_up_question": "<question>" or omitted
}

"type" must be exactly one of: task, meal, shopping, reminder, appointment, family, pet,
clarification, unknown.

Payload shapes by type:
- task: {"title", "category" (cleaning|errands|kids|home-maintenance|other), "due_date"?, "priority"?}
- meal: {"name", "meal_type" (breakfast|lunch|dinner|snack), "day"?, "dietary_notes"?}
- shopping: {"items": [..] (non-empty), "category"?}
- reminder: {"title", "time"?, "date"?}
- appointment: {"title", "date"?, "time"?, "location"?}
- family: {"name", "relationship"?, "age"?, "notes"?}
- pet: {"name", "type", "breed"?, "age"?, "notes"?}

If the request is too vague, use type "clarification" with a follow_up_question.
Never invent details the user did not state.

Conversation so far:
%s

User request: %s`

// BuildFallbackPrompt renders the fallback prompt for the given request.
func BuildFallbackPrompt(input string, history []string) string {
	var builder strings.Builder
	for _, line := range history {
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	if builder.Len() == 0 {
		builder.WriteString("(none)\n")
	}
	return fmt.Sprintf(SystemPrompt, builder.String(), input)
}

// wireIntent defers payload decoding until the type is known.
type wireIntent struct {
	Type             models.Category `json:"type"`
	Confidence       float64         `json:"confidence"`
	Raw              string          `json:"raw"`
	Payload          json.RawMessage `json:"payload,omitempty"`
	FollowUpQuestion string          `json:"follow_up_question,omitempty"`
}

// ParseIntentResponse extracts and validates the intent JSON from a model
// response. Unknown types and mismatched payloads are rejected; confidence is
// clamped into [0,1].
func ParseIntentResponse(content string) (*models.Intent, error) {
	jsonContent := extractJSON(content)
	if jsonContent == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var wire wireIntent
	if err := json.Unmarshal([]byte(jsonContent), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	intent := &models.Intent{
		Type:             wire.Type,
		Confidence:       wire.Confidence,
		Raw:              wire.Raw,
		FollowUpQuestion: wire.FollowUpQuestion,
	}

	if len(wire.Payload) > 0 {
		payload, err := decodePayload(wire.Type, wire.Payload)
		if err != nil {
			return nil, err
		}
		intent.Payload = payload
	}

	if err := models.ValidateExternalIntent(intent); err != nil {
		return nil, err
	}
	return intent, nil
}

// decodePayload unmarshals the payload according to the intent type.
func decodePayload(t models.Category, raw json.RawMessage) (models.Payload, error) {
	var (
		payload models.Payload
		err     error
	)
	switch t {
	case models.CategoryTask:
		var p models.TaskPayload
		if err = json.Unmarshal(raw, &p); err == nil {
			payload = p
		}
	case models.CategoryMeal:
		var p models.MealPayload
		if err = json.Unmarshal(raw, &p); err == nil {
			payload = p
		}
	case models.CategoryShopping:
		var p models.ShoppingPayload
		if err = json.Unmarshal(raw, &p); err == nil {
			payload = p
		}
	case models.CategoryReminder:
		var p models.ReminderPayload
		if err = json.Unmarshal(raw, &p); err == nil {
			payload = p
		}
	case models.CategoryAppointment:
		var p models.AppointmentPayload
		if err = json.Unmarshal(raw, &p); err == nil {
			payload = p
		}
	case models.CategoryFamily:
		var p models.FamilyPayload
		if err = json.Unmarshal(raw, &p); err == nil {
			payload = p
		}
	case models.CategoryPet:
		var p models.PetPayload
		if err = json.Unmarshal(raw, &p); err == nil {
			payload = p
		}
	default:
		return nil, fmt.Errorf("type %q does not take a payload", t)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s payload: %w", t, err)
	}
	return payload, nil
}

// extractJSON pulls the outermost JSON object out of the response, tolerating
// markdown fences and surrounding prose.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(content, "}")
	if end == -1 || end <= start {
		return ""
	}
	return content[start : end+1]
}
