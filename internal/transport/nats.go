package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/hearthd/hearth-intent/internal/config"
	"github.com/hearthd/hearth-intent/internal/handlers"
	"github.com/hearthd/hearth-intent/internal/models"
)

// NATSTransport exposes the service over three request/reply subjects:
// analyze, approve, and reject.
type NATSTransport struct {
	conn    *nats.Conn
	config  *config.Config
	service *handlers.Service
	logger  *zap.Logger
	subs    []*nats.Subscription
}

func NewNATSTransport(cfg *config.Config, service *handlers.Service, logger *zap.Logger) (*NATSTransport, error) {
	conn, err := nats.Connect(cfg.NatsURL,
		nats.Name(cfg.ServiceName),
		nats.Timeout(cfg.NatsTimeout),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("connected to NATS", zap.String("url", cfg.NatsURL))

	return &NATSTransport{
		conn:    conn,
		config:  cfg,
		service: service,
		logger:  logger,
	}, nil
}

// Start subscribes to the service subjects.
func (nt *NATSTransport) Start() error {
	subjects := []struct {
		subject string
		handler nats.MsgHandler
	}{
		{nt.config.NatsAnalyzeSubject, nt.handleAnalyze},
		{nt.config.NatsApproveSubject, nt.handleApprove},
		{nt.config.NatsRejectSubject, nt.handleReject},
	}

	for _, s := range subjects {
		sub, err := nt.conn.Subscribe(s.subject, s.handler)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", s.subject, err)
		}
		nt.subs = append(nt.subs, sub)
		nt.logger.Info("subscribed", zap.String("subject", s.subject))
	}
	return nil
}

func (nt *NATSTransport) handleAnalyze(msg *nats.Msg) {
	var req models.AnalyzeRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		nt.logger.Warn("bad analyze request", zap.Error(err))
		nt.respond(msg, &models.AnalyzeResponse{
			Status:       models.StatusError,
			Message:      "I couldn't read that request. Please try again.",
			ErrorCode:    models.ErrorParse,
			ErrorMessage: err.Error(),
		})
		return
	}

	ctx, cancel := nt.requestContext()
	defer cancel()
	nt.respond(msg, nt.service.Analyze(ctx, &req))
}

func (nt *NATSTransport) handleApprove(msg *nats.Msg) {
	req, ok := nt.decodeDecision(msg)
	if !ok {
		return
	}

	ctx, cancel := nt.requestContext()
	defer cancel()
	nt.respond(msg, nt.service.Approve(ctx, req))
}

func (nt *NATSTransport) handleReject(msg *nats.Msg) {
	req, ok := nt.decodeDecision(msg)
	if !ok {
		return
	}

	ctx, cancel := nt.requestContext()
	defer cancel()
	nt.respond(msg, nt.service.Reject(ctx, req))
}

func (nt *NATSTransport) decodeDecision(msg *nats.Msg) (*models.DecisionRequest, bool) {
	var req models.DecisionRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		nt.logger.Warn("bad decision request", zap.Error(err))
		nt.respond(msg, &models.DecisionResponse{
			Status:       models.StatusError,
			Message:      "I couldn't read that request. Please try again.",
			ErrorCode:    models.ErrorParse,
			ErrorMessage: err.Error(),
		})
		return nil, false
	}
	return &req, true
}

func (nt *NATSTransport) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), nt.config.NatsTimeout)
}

func (nt *NATSTransport) respond(msg *nats.Msg, response any) {
	data, err := json.Marshal(response)
	if err != nil {
		nt.logger.Error("failed to marshal response", zap.Error(err))
		return
	}
	if err := msg.Respond(data); err != nil {
		nt.logger.Error("failed to send response", zap.Error(err))
	}
}

// Close drains the subscriptions and closes the connection. Calling it
// more than once is a no-op.
func (nt *NATSTransport) Close() error {
	for _, sub := range nt.subs {
		if err := sub.Unsubscribe(); err != nil {
			nt.logger.Warn("failed to unsubscribe", zap.Error(err))
		}
	}
	nt.subs = nil
	if nt.conn != nil && !nt.conn.IsClosed() {
		nt.conn.Close()
		nt.logger.Info("NATS connection closed")
	}
	return nil
}
