// Package approval holds proposed commands until a user explicitly approves
// or rejects them. An approved command is handed back exactly once, together
// with an HMAC-signed token binding the approval to that command.
package approval

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/nlp"
)

// ErrCommandNotFound is returned for approve/reject on an id that is unknown,
// already resolved, or expired.
var ErrCommandNotFound = errors.New("command not found in approval queue")

// DefaultTTL is how long a pending command survives without a decision.
const DefaultTTL = 2 * time.Minute

type entry struct {
	cmd   *models.Command
	timer *time.Timer
}

// Queue is the pending-command state machine. Per command id the states are
// absent -> pending -> resolved (approved, rejected, or expired), and a
// resolved entry is gone: approving evicts the entry before returning, so a
// concurrent or repeated approve on the same id fails on the absence check.
// That eviction-on-success is the at-most-once execution guarantee.
type Queue struct {
	mu      sync.Mutex
	pending map[string]*entry
	secret  []byte
	ttl     time.Duration
	clock   nlp.Clock
}

// NewQueue builds a queue signing tokens with secret. A non-positive ttl
// falls back to DefaultTTL.
func NewQueue(secret []byte, ttl time.Duration, clock nlp.Clock) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		pending: make(map[string]*entry),
		secret:  secret,
		ttl:     ttl,
		clock:   clock,
	}
}

// Enqueue stores cmd as pending and schedules its TTL eviction. A command id
// can be pending at most once.
func (q *Queue) Enqueue(cmd *models.Command) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.pending[cmd.ID]; exists {
		return fmt.Errorf("command %s is already pending", cmd.ID)
	}

	e := &entry{cmd: cmd}
	e.timer = time.AfterFunc(q.ttl, func() { q.expire(cmd.ID) })
	q.pending[cmd.ID] = e
	return nil
}

// expire is the TTL callback. It races against Approve and Reject; whichever
// reaches the entry first wins and the others become no-ops via the absence
// check.
func (q *Queue) expire(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, id)
}

// Approve resolves a pending command, returning it with a signed token.
// The entry is evicted before this method returns.
func (q *Queue) Approve(id string) (*models.Command, models.ApprovalToken, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.pending[id]
	if !ok {
		return nil, models.ApprovalToken{}, fmt.Errorf("%w: %s", ErrCommandNotFound, id)
	}

	e.timer.Stop()
	delete(q.pending, id)

	approvedAt := q.clock.Now().UTC()
	token := models.ApprovalToken{
		CommandID:  id,
		ApprovedBy: "user",
		ApprovedAt: approvedAt,
		Signature:  q.sign(id, approvedAt),
	}
	return e.cmd, token, nil
}

// Reject evicts a pending command without issuing a token.
func (q *Queue) Reject(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.pending[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCommandNotFound, id)
	}
	e.timer.Stop()
	delete(q.pending, id)
	return nil
}

// VerifyToken recomputes the binding over (command id, approval time) and
// compares signatures in constant time.
func (q *Queue) VerifyToken(token models.ApprovalToken) bool {
	expected := q.sign(token.CommandID, token.ApprovedAt)
	return hmac.Equal([]byte(expected), []byte(token.Signature))
}

// Pending reports whether id is currently awaiting a decision.
func (q *Queue) Pending(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.pending[id]
	return ok
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close stops every eviction timer. Pending commands are dropped.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, e := range q.pending {
		e.timer.Stop()
		delete(q.pending, id)
	}
}

// sign computes the HMAC-SHA256 binding of a command id and approval time.
// The resulting hex digest is the token signature; it is a capability and
// must never be logged verbatim.
func (q *Queue) sign(commandID string, approvedAt time.Time) string {
	mac := hmac.New(sha256.New, q.secret)
	mac.Write([]byte(commandID))
	mac.Write([]byte("|"))
	mac.Write([]byte(approvedAt.UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(mac.Sum(nil))
}
