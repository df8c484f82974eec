package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hearthd/hearth-intent/internal/nlp"
)

var testNow = time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

// fakeStore is an in-memory Store for tests.
type fakeStore struct {
	sessions map[string]*SessionData
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]*SessionData)}
}

func (s *fakeStore) session(id string) *SessionData {
	if data, ok := s.sessions[id]; ok {
		return data
	}
	data := &SessionData{SessionID: id}
	s.sessions[id] = data
	return data
}

func (s *fakeStore) LoadSession(ctx context.Context, sessionID string) (*SessionData, error) {
	return s.session(sessionID), nil
}

func (s *fakeStore) SaveMessage(ctx context.Context, sessionID string, msg Message) error {
	data := s.session(sessionID)
	data.Messages = append(data.Messages, msg)
	data.Metadata.MessageCount++
	return nil
}

func (s *fakeStore) SetPending(ctx context.Context, sessionID string, pending *PendingClarification) error {
	s.session(sessionID).Pending = pending
	return nil
}

func (s *fakeStore) TakePending(ctx context.Context, sessionID string) (*PendingClarification, error) {
	data := s.session(sessionID)
	pending := data.Pending
	data.Pending = nil
	return pending, nil
}

func (s *fakeStore) ClearSession(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func newTestManager() (*Manager, *fakeStore) {
	store := newFakeStore()
	return NewManager(store, nlp.FixedClock(testNow), zap.NewNop()), store
}

func TestSaveAndHistory(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager()

	require.NoError(t, m.SaveUserMessage(ctx, "s1", "clean the bathroom tomorrow"))
	require.NoError(t, m.SaveAssistantMessage(ctx, "s1", "Added the task."))

	history, err := m.History(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"User: clean the bathroom tomorrow",
		"Assistant: Added the task.",
	}, history)

	saved := store.sessions["s1"].Messages
	require.Len(t, saved, 2)
	assert.Equal(t, "user", saved[0].Role)
	assert.Equal(t, testNow, saved[0].Timestamp)
	assert.Equal(t, "assistant", saved[1].Role)
}

func TestBufferHydratesFromStore(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager()

	// Messages persisted by an earlier process instance.
	data := store.session("s1")
	data.Messages = []Message{
		{Role: "user", Content: "book the dentist", Timestamp: testNow},
		{Role: "assistant", Content: "Which dentist?", Timestamp: testNow},
		{Role: "system", Content: "ignored", Timestamp: testNow},
	}

	history, err := m.History(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"User: book the dentist",
		"Assistant: Which dentist?",
	}, history)
}

func TestHistoryEmptySession(t *testing.T) {
	m, _ := newTestManager()

	history, err := m.History(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPendingRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	require.NoError(t, m.SetPending(ctx, "s1", "handle that thing", "What would you like me to do?"))

	pending, err := m.TakePending(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, "handle that thing", pending.Raw)
	assert.Equal(t, "What would you like me to do?", pending.Question)
	assert.Equal(t, testNow, pending.AskedAt)

	// The slot is single-shot.
	pending, err = m.TakePending(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestActiveSessionsAndClose(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	require.NoError(t, m.SaveUserMessage(ctx, "s1", "hello"))
	require.NoError(t, m.SaveUserMessage(ctx, "s2", "hi"))
	assert.Equal(t, 2, m.ActiveSessions())

	require.NoError(t, m.Close())
	assert.Zero(t, m.ActiveSessions())
}
