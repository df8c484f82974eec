// Package handlers orchestrates the full request flow: interpret the message,
// optionally consult the fallback model, mint a command, gate it on approval,
// and execute it through the registry once approved.
package handlers

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hearthd/hearth-intent/internal/approval"
	"github.com/hearthd/hearth-intent/internal/command"
	"github.com/hearthd/hearth-intent/internal/executor"
	"github.com/hearthd/hearth-intent/internal/llm"
	"github.com/hearthd/hearth-intent/internal/matcher"
	"github.com/hearthd/hearth-intent/internal/memory"
	"github.com/hearthd/hearth-intent/internal/models"
)

// Service wires the pipeline to the approval gate. All collaborators are
// injected; nothing here is process-global, so tests can build isolated
// instances.
type Service struct {
	interpreter *matcher.Interpreter
	factory     *command.Factory
	queue       *approval.Queue
	registry    *executor.Registry
	sessions    *memory.Manager
	fallback    llm.Provider // nil disables the low-confidence fallback
	settings    *command.ApprovalSettings
	logger      *zap.Logger
}

func NewService(
	interpreter *matcher.Interpreter,
	factory *command.Factory,
	queue *approval.Queue,
	registry *executor.Registry,
	sessions *memory.Manager,
	fallback llm.Provider,
	settings *command.ApprovalSettings,
	logger *zap.Logger,
) *Service {
	return &Service{
		interpreter: interpreter,
		factory:     factory,
		queue:       queue,
		registry:    registry,
		sessions:    sessions,
		fallback:    fallback,
		settings:    settings,
		logger:      logger,
	}
}

// Analyze interprets one user message. Depending on what the pipeline makes
// of it, the reply is a clarification question, a pending proposal, or (for
// operations the approval policy lets through) an execution result.
func (s *Service) Analyze(ctx context.Context, req *models.AnalyzeRequest) *models.AnalyzeResponse {
	if err := validateAnalyzeRequest(req); err != nil {
		return &models.AnalyzeResponse{
			SessionID:    req.SessionID,
			Status:       models.StatusError,
			Message:      "I couldn't read that request. Please try again.",
			ErrorCode:    models.ErrorParse,
			ErrorMessage: err.Error(),
		}
	}

	input := req.UserMessage
	if pending, err := s.sessions.TakePending(ctx, req.SessionID); err != nil {
		s.logger.Warn("failed to read pending clarification", zap.Error(err))
	} else if pending != nil {
		// One clarification round: interpret the answer together with the
		// request that triggered the question.
		input = pending.Raw + " " + req.UserMessage
	}

	if err := s.sessions.SaveUserMessage(ctx, req.SessionID, req.UserMessage); err != nil {
		s.logger.Warn("failed to record user message", zap.Error(err))
	}

	intent := s.interpreter.Interpret(input)
	intent = s.maybeFallback(ctx, req.SessionID, input, intent)

	if !intent.Actionable() || matcher.NeedsClarification(intent) {
		question := matcher.GenerateClarification(intent)
		if err := s.sessions.SetPending(ctx, req.SessionID, input, question); err != nil {
			s.logger.Warn("failed to park clarification", zap.Error(err))
		}
		s.recordAssistant(ctx, req.SessionID, question)
		return &models.AnalyzeResponse{
			SessionID: req.SessionID,
			Status:    models.StatusNeedsClarification,
			Message:   question,
			Intent:    intent,
		}
	}

	cmd, err := s.factory.CreateCommandFromIntent(intent, "session:"+req.SessionID)
	if err != nil {
		s.logger.Warn("command creation failed",
			zap.String("session_id", req.SessionID),
			zap.Error(err))
		return &models.AnalyzeResponse{
			SessionID:    req.SessionID,
			Status:       models.StatusError,
			Message:      "I understood the request but couldn't act on it. Could you rephrase?",
			Intent:       intent,
			ErrorCode:    models.ErrorValidation,
			ErrorMessage: err.Error(),
		}
	}

	requiresApproval := command.ShouldRequireApproval(cmd, s.settings)
	proposal := command.GenerateProposal(cmd, requiresApproval)

	if !requiresApproval {
		result := s.execute(ctx, cmd)
		if !result.Success {
			s.recordAssistant(ctx, req.SessionID, result.Error)
			return &models.AnalyzeResponse{
				SessionID:    req.SessionID,
				Status:       models.StatusError,
				Message:      result.Error,
				Intent:       intent,
				Result:       &result,
				ErrorCode:    models.ErrorExecution,
				ErrorMessage: result.Error,
			}
		}
		// Narrate the proactive execution with the clarifier's confirmation
		// sentence when the handler gave us nothing better.
		message := result.Message
		if message == "" {
			message = matcher.GenerateClarification(intent)
		}
		s.recordAssistant(ctx, req.SessionID, message)
		return &models.AnalyzeResponse{
			SessionID: req.SessionID,
			Status:    models.StatusExecuted,
			Message:   message,
			Intent:    intent,
			Result:    &result,
		}
	}

	if err := s.queue.Enqueue(cmd); err != nil {
		return &models.AnalyzeResponse{
			SessionID:    req.SessionID,
			Status:       models.StatusError,
			Message:      "Something went wrong while queuing your request. Please try again.",
			ErrorCode:    models.ErrorExecution,
			ErrorMessage: err.Error(),
		}
	}

	message := fmt.Sprintf("%s — approve to proceed.", proposal.Summary.Title)
	s.recordAssistant(ctx, req.SessionID, message)
	return &models.AnalyzeResponse{
		SessionID: req.SessionID,
		Status:    models.StatusPendingApproval,
		Message:   message,
		Intent:    intent,
		Proposal:  &proposal,
		CommandID: cmd.ID,
	}
}

// Approve resolves a pending command and executes it. The approval token is
// returned to the caller as proof of the decision.
func (s *Service) Approve(ctx context.Context, req *models.DecisionRequest) *models.DecisionResponse {
	cmd, token, err := s.queue.Approve(req.CommandID)
	if err != nil {
		if errors.Is(err, approval.ErrCommandNotFound) {
			return &models.DecisionResponse{
				SessionID:    req.SessionID,
				CommandID:    req.CommandID,
				Status:       models.StatusError,
				Message:      "That request has expired or was already handled.",
				ErrorCode:    models.ErrorCommandNotFound,
				ErrorMessage: err.Error(),
			}
		}
		return &models.DecisionResponse{
			SessionID:    req.SessionID,
			CommandID:    req.CommandID,
			Status:       models.StatusError,
			Message:      "Something went wrong while approving. Please try again.",
			ErrorCode:    models.ErrorExecution,
			ErrorMessage: err.Error(),
		}
	}

	result := s.execute(ctx, cmd)
	s.recordAssistant(ctx, req.SessionID, result.Message)

	status := models.StatusExecuted
	if !result.Success {
		status = models.StatusError
	}
	return &models.DecisionResponse{
		SessionID: req.SessionID,
		CommandID: cmd.ID,
		Status:    status,
		Message:   resultMessage(result),
		Result:    &result,
		Token:     &token,
	}
}

// Reject discards a pending command.
func (s *Service) Reject(ctx context.Context, req *models.DecisionRequest) *models.DecisionResponse {
	if err := s.queue.Reject(req.CommandID); err != nil {
		return &models.DecisionResponse{
			SessionID:    req.SessionID,
			CommandID:    req.CommandID,
			Status:       models.StatusError,
			Message:      "That request has expired or was already handled.",
			ErrorCode:    models.ErrorCommandNotFound,
			ErrorMessage: err.Error(),
		}
	}

	message := "Okay, I won't do that."
	s.recordAssistant(ctx, req.SessionID, message)
	return &models.DecisionResponse{
		SessionID: req.SessionID,
		CommandID: req.CommandID,
		Status:    models.StatusRejected,
		Message:   message,
	}
}

// maybeFallback consults the fallback model when the heuristic pipeline could
// not produce an actionable intent. The model's answer is already validated
// by the provider; a failure leaves the heuristic result in place.
func (s *Service) maybeFallback(ctx context.Context, sessionID, input string, intent *models.Intent) *models.Intent {
	if intent.Actionable() || s.fallback == nil {
		return intent
	}

	history, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		s.logger.Warn("failed to load history for fallback", zap.Error(err))
		history = nil
	}

	fromModel, err := s.fallback.ClassifyIntent(ctx, input, history)
	if err != nil {
		s.logger.Warn("fallback classification failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return intent
	}

	s.logger.Info("fallback produced intent",
		zap.String("session_id", sessionID),
		zap.String("type", string(fromModel.Type)),
		zap.Float64("confidence", fromModel.Confidence))
	return fromModel
}

// execute looks up and runs the executor for cmd, folding registry misses
// into a failed result.
func (s *Service) execute(ctx context.Context, cmd *models.Command) models.ExecResult {
	fn, err := s.registry.Get(cmd.Type)
	if err != nil {
		s.logger.Error("no executor for command",
			zap.String("command_id", cmd.ID),
			zap.String("type", string(cmd.Type)))
		return models.ExecResult{
			Success: false,
			Error:   fmt.Sprintf("nothing is able to handle %q right now", cmd.Type),
		}
	}
	return fn(ctx, cmd)
}

func (s *Service) recordAssistant(ctx context.Context, sessionID, message string) {
	if message == "" {
		return
	}
	if err := s.sessions.SaveAssistantMessage(ctx, sessionID, message); err != nil {
		s.logger.Warn("failed to record assistant message", zap.Error(err))
	}
}

func validateAnalyzeRequest(req *models.AnalyzeRequest) error {
	if req.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if req.UserMessage == "" {
		return fmt.Errorf("user_message is required")
	}
	return nil
}

func resultMessage(result models.ExecResult) string {
	if result.Success {
		return result.Message
	}
	return result.Error
}
