package command

import "github.com/hearthd/hearth-intent/internal/models"

// Confirmation styles. "just_do_it" lets non-destructive operations skip the
// approval step.
const (
	ConfirmationAlwaysAsk = "always_ask"
	ConfirmationJustDoIt  = "just_do_it"
)

// ApprovalSettings is the household's approval preference. AlwaysConfirm
// entries force approval back on per entity even under just_do_it.
type ApprovalSettings struct {
	ConfirmationStyle string
	AlwaysConfirm     map[models.Entity]bool
}

// ShouldRequireApproval decides whether a command must pass the approval
// queue. Deletes always require approval; that is not overridable. With no
// settings at all the answer is always yes, the fail-safe default.
func ShouldRequireApproval(cmd *models.Command, settings *ApprovalSettings) bool {
	if cmd.Operation == models.OperationDelete {
		return true
	}
	if settings == nil {
		return true
	}
	if settings.ConfirmationStyle != ConfirmationJustDoIt {
		return true
	}
	if settings.AlwaysConfirm[cmd.Entity] {
		return true
	}
	return false
}
