package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthd/hearth-intent/internal/models"
)

func TestGenerateProposalCreate(t *testing.T) {
	f := newTestFactory()
	cmd, err := f.CreateCommandFromIntent(taskIntent(), "")
	require.NoError(t, err)

	p := GenerateProposal(cmd, true)

	assert.Equal(t, "Add task: Clean the bathroom", p.Summary.Title)
	assert.Contains(t, p.Summary.Description, "create a new task record")
	assert.Contains(t, p.Summary.Impacts, "Category: cleaning")
	assert.Contains(t, p.Summary.Impacts, "Due: 2025-03-13")
	assert.True(t, p.RequiresApproval)
	assert.Equal(t, cmd.Payload, p.Preview)
	assert.Empty(t, p.Risks)
}

func TestGenerateProposalIsPure(t *testing.T) {
	f := newTestFactory()
	cmd, err := f.CreateCommandFromIntent(taskIntent(), "")
	require.NoError(t, err)

	first := GenerateProposal(cmd, true)
	second := GenerateProposal(cmd, true)
	assert.Equal(t, first, second)
}

func TestGenerateProposalDeleteRisks(t *testing.T) {
	f := newTestFactory()
	cmd, err := f.CreateDeleteCommand(models.EntityTask, models.TaskPayload{ID: "rec-1", Title: "Old task"})
	require.NoError(t, err)

	p := GenerateProposal(cmd, true)

	assert.Equal(t, "Delete task: Old task", p.Summary.Title)
	assert.Contains(t, p.Summary.Description, "permanently delete")
	require.NotEmpty(t, p.Risks)
	assert.Contains(t, p.Risks[0], "cannot be undone")
	assert.Nil(t, p.Preview)
}

func TestGenerateProposalLowConfidenceRisk(t *testing.T) {
	f := newTestFactory()
	intent := taskIntent()
	intent.Confidence = 0.45
	cmd, err := f.CreateCommandFromIntent(intent, "")
	require.NoError(t, err)

	p := GenerateProposal(cmd, true)
	require.Len(t, p.Risks, 1)
	assert.Contains(t, p.Risks[0], "low confidence")
}

func TestGenerateProposalShopping(t *testing.T) {
	f := newTestFactory()
	cmd, err := f.CreateCommandFromIntent(&models.Intent{
		Type:       models.CategoryShopping,
		Confidence: 0.8,
		Raw:        "add milk, eggs, and bread to the shopping list",
		Payload: models.ShoppingPayload{
			Items:    []string{"milk", "eggs", "bread"},
			Category: "dairy",
		},
	}, "")
	require.NoError(t, err)

	p := GenerateProposal(cmd, false)
	assert.Equal(t, "Add to shopping list: milk, eggs, bread", p.Summary.Title)
	assert.Contains(t, p.Summary.Impacts, "3 item(s)")
	assert.Contains(t, p.Summary.Impacts, "Category: dairy")
	assert.False(t, p.RequiresApproval)
}

func TestShouldRequireApproval(t *testing.T) {
	createCmd := &models.Command{Operation: models.OperationCreate, Entity: models.EntityTask}
	deleteCmd := &models.Command{Operation: models.OperationDelete, Entity: models.EntityTask}

	t.Run("nil settings fail safe", func(t *testing.T) {
		assert.True(t, ShouldRequireApproval(createCmd, nil))
	})

	t.Run("always ask", func(t *testing.T) {
		s := &ApprovalSettings{ConfirmationStyle: ConfirmationAlwaysAsk}
		assert.True(t, ShouldRequireApproval(createCmd, s))
	})

	t.Run("just do it skips approval", func(t *testing.T) {
		s := &ApprovalSettings{ConfirmationStyle: ConfirmationJustDoIt}
		assert.False(t, ShouldRequireApproval(createCmd, s))
	})

	t.Run("delete is never skippable", func(t *testing.T) {
		s := &ApprovalSettings{ConfirmationStyle: ConfirmationJustDoIt}
		assert.True(t, ShouldRequireApproval(deleteCmd, s))
	})

	t.Run("per-entity override", func(t *testing.T) {
		s := &ApprovalSettings{
			ConfirmationStyle: ConfirmationJustDoIt,
			AlwaysConfirm:     map[models.Entity]bool{models.EntityShopping: true},
		}
		shopping := &models.Command{Operation: models.OperationCreate, Entity: models.EntityShopping}
		assert.True(t, ShouldRequireApproval(shopping, s))
		assert.False(t, ShouldRequireApproval(createCmd, s))
	})
}
