package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/memory"
	"go.uber.org/zap"

	"github.com/hearthd/hearth-intent/internal/nlp"
)

// Manager orchestrates conversation memory: the durable session store plus an
// in-process cache of LangChainGo conversation buffers used to render history
// for the fallback prompt.
type Manager struct {
	store  Store
	clock  nlp.Clock
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*memory.ConversationBuffer
}

func NewManager(store Store, clock nlp.Clock, logger *zap.Logger) *Manager {
	return &Manager{
		store:    store,
		clock:    clock,
		logger:   logger,
		sessions: make(map[string]*memory.ConversationBuffer),
	}
}

// getOrCreateBuffer returns the cached conversation buffer for a session,
// hydrating it from the store on first use.
func (m *Manager) getOrCreateBuffer(ctx context.Context, sessionID string) (*memory.ConversationBuffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if buf, exists := m.sessions[sessionID]; exists {
		return buf, nil
	}

	buf := memory.NewConversationBuffer()
	session, err := m.store.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	for _, msg := range session.Messages {
		var chatMsg schema.ChatMessage
		switch msg.Role {
		case "user":
			chatMsg = schema.HumanChatMessage{Content: msg.Content}
		case "assistant":
			chatMsg = schema.AIChatMessage{Content: msg.Content}
		default:
			m.logger.Warn("skipping message with unknown role", zap.String("role", msg.Role))
			continue
		}
		if err := buf.ChatHistory.AddMessage(ctx, chatMsg); err != nil {
			return nil, fmt.Errorf("failed to add message to memory: %w", err)
		}
	}

	m.sessions[sessionID] = buf
	return buf, nil
}

// SaveUserMessage records a user turn in both the store and the buffer.
func (m *Manager) SaveUserMessage(ctx context.Context, sessionID, content string) error {
	return m.saveMessage(ctx, sessionID, "user", content)
}

// SaveAssistantMessage records an assistant turn in both the store and the buffer.
func (m *Manager) SaveAssistantMessage(ctx context.Context, sessionID, content string) error {
	return m.saveMessage(ctx, sessionID, "assistant", content)
}

func (m *Manager) saveMessage(ctx context.Context, sessionID, role, content string) error {
	buf, err := m.getOrCreateBuffer(ctx, sessionID)
	if err != nil {
		return err
	}

	var chatMsg schema.ChatMessage
	if role == "user" {
		chatMsg = schema.HumanChatMessage{Content: content}
	} else {
		chatMsg = schema.AIChatMessage{Content: content}
	}
	if err := buf.ChatHistory.AddMessage(ctx, chatMsg); err != nil {
		return fmt.Errorf("failed to add message to memory: %w", err)
	}

	return m.store.SaveMessage(ctx, sessionID, Message{
		Role:      role,
		Content:   content,
		Timestamp: m.clock.Now(),
	})
}

// History renders the session's conversation as "Role: text" lines for the
// fallback prompt.
func (m *Manager) History(ctx context.Context, sessionID string) ([]string, error) {
	buf, err := m.getOrCreateBuffer(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	msgs, err := buf.ChatHistory.Messages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat history: %w", err)
	}

	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.GetType() {
		case schema.ChatMessageTypeHuman:
			lines = append(lines, "User: "+msg.GetContent())
		case schema.ChatMessageTypeAI:
			lines = append(lines, "Assistant: "+msg.GetContent())
		}
	}
	return lines, nil
}

// SetPending parks a clarification round for the session.
func (m *Manager) SetPending(ctx context.Context, sessionID, raw, question string) error {
	return m.store.SetPending(ctx, sessionID, &PendingClarification{
		Raw:      raw,
		Question: question,
		AskedAt:  m.clock.Now(),
	})
}

// TakePending returns and clears the session's parked clarification, if any.
func (m *Manager) TakePending(ctx context.Context, sessionID string) (*PendingClarification, error) {
	return m.store.TakePending(ctx, sessionID)
}

// ActiveSessions reports the number of cached session buffers.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close drops the buffer cache. The store is closed by its owner.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]*memory.ConversationBuffer)
	return nil
}
