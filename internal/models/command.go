package models

import (
	"errors"
	"time"
)

// Sentinel errors shared across the command and approval layers.
var (
	ErrValidation        = errors.New("validation failed")
	ErrUnknownIntentType = errors.New("unknown intent type")
)

// Operation is the mutation verb a command carries.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// CommandType is the "<entity>.<operation>" key an executor is registered under,
// e.g. "task.create". Shopping is the one irregular entity: its create maps to
// "shopping.add" and its delete to "shopping.remove".
type CommandType string

// CommandMetadata carries the audit trail for a command.
type CommandMetadata struct {
	Confidence float64   `json:"confidence"`
	UserInput  string    `json:"user_input"`
	Timestamp  time.Time `json:"timestamp"`
	Context    string    `json:"context,omitempty"`
}

// Command is an immutable descriptor of a proposed state change. It is created
// once from an actionable intent and afterwards either discarded (rejected) or
// consumed (approved and executed). Never mutate a command after construction.
type Command struct {
	ID        string          `json:"id"`
	Type      CommandType     `json:"type"`
	Operation Operation       `json:"operation"`
	Entity    Entity          `json:"entity"`
	Payload   Payload         `json:"payload"`
	Metadata  CommandMetadata `json:"metadata"`
}

// ProposalSummary is the human-readable core of a proposal.
type ProposalSummary struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impacts     []string `json:"impacts"`
}

// Proposal is a derived view of a command for user review. It is never
// persisted: always recomputed from the command it wraps.
type Proposal struct {
	Command          Command         `json:"command"`
	Summary          ProposalSummary `json:"summary"`
	Preview          Payload         `json:"preview,omitempty"`
	Risks            []string        `json:"risks"`
	RequiresApproval bool            `json:"requires_approval"`
}

// ApprovalToken proves that a user approved one specific command. The
// signature is an HMAC over (command id, approval time) keyed by a server-held
// secret; treat issued tokens as capability-bearing secrets and never log the
// signature verbatim.
type ApprovalToken struct {
	CommandID  string    `json:"command_id"`
	ApprovedBy string    `json:"approved_by"`
	ApprovedAt time.Time `json:"approved_at"`
	Signature  string    `json:"signature"`
}

// ExecResult is the uniform outcome of dispatching a command. Handler failures
// are folded into Error; they never escape the dispatch boundary as panics or
// raw errors.
type ExecResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Payload Payload `json:"payload,omitempty"`
	Error   string  `json:"error,omitempty"`
}
