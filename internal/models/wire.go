package models

// Wire types for the NATS request/reply surface.

// AnalyzeRequest asks the service to interpret one user message.
type AnalyzeRequest struct {
	SessionID   string `json:"session_id"`
	UserMessage string `json:"user_message"`
}

// DecisionRequest approves or rejects a pending command.
type DecisionRequest struct {
	SessionID string `json:"session_id"`
	CommandID string `json:"command_id"`
}

// Response statuses.
const (
	StatusNeedsClarification = "NEEDS_CLARIFICATION"
	StatusPendingApproval    = "PENDING_APPROVAL"
	StatusExecuted           = "EXECUTED"
	StatusRejected           = "REJECTED"
	StatusError              = "ERROR"
)

// Error codes.
const (
	ErrorParse           = "PARSE_ERROR"
	ErrorValidation      = "VALIDATION_ERROR"
	ErrorCommandNotFound = "COMMAND_NOT_FOUND"
	ErrorExecution       = "EXECUTION_ERROR"
)

// AnalyzeResponse is the reply to an AnalyzeRequest. Exactly one of the
// clarification question, the proposal, or the execution result is the
// payload, depending on Status.
type AnalyzeResponse struct {
	SessionID    string      `json:"session_id"`
	Status       string      `json:"status"`
	Message      string      `json:"message"`
	Intent       *Intent     `json:"intent,omitempty"`
	Proposal     *Proposal   `json:"proposal,omitempty"`
	CommandID    string      `json:"command_id,omitempty"`
	Result       *ExecResult `json:"result,omitempty"`
	ErrorCode    string      `json:"error_code,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
}

// DecisionResponse is the reply to a DecisionRequest.
type DecisionResponse struct {
	SessionID    string         `json:"session_id"`
	CommandID    string         `json:"command_id"`
	Status       string         `json:"status"`
	Message      string         `json:"message"`
	Result       *ExecResult    `json:"result,omitempty"`
	Token        *ApprovalToken `json:"token,omitempty"`
	ErrorCode    string         `json:"error_code,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}
