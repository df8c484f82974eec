package models

import "fmt"

// ValidateExternalIntent re-validates an intent produced outside the core
// pipeline (the LLM fallback, or any other untrusted source). Unknown types
// are rejected rather than trusted; confidence is clamped into [0,1]; a
// payload, when present, must belong to the intent's own category.
func ValidateExternalIntent(intent *Intent) error {
	if intent == nil {
		return fmt.Errorf("%w: nil intent", ErrValidation)
	}
	if !ValidCategory(intent.Type) {
		return fmt.Errorf("%w: %q", ErrUnknownIntentType, intent.Type)
	}
	if intent.Confidence < 0 {
		intent.Confidence = 0
	}
	if intent.Confidence > 1 {
		intent.Confidence = 1
	}
	if intent.Payload != nil {
		if Category(intent.Payload.Entity()) != intent.Type {
			return fmt.Errorf("%w: payload entity %q does not match intent type %q",
				ErrValidation, intent.Payload.Entity(), intent.Type)
		}
	}
	return nil
}
