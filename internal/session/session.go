package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kshitij-139/GEM-JD/internal/model"
)

// Session is the state owned by one user: the form they last submitted, the
// artifacts on screen, per-panel errors, and the FAQ cache.
type Session struct {
	ID string

	mu sync.Mutex

	// Guarded by mu. Use Do to read or mutate.
	State State
	FAQs  FAQCache

	// Unix nanoseconds; read without mu so eviction never waits on a model call.
	lastActive atomic.Int64
}

// State is everything a caller needs to re-render a session.
type State struct {
	LastRequest *model.JobRequest
	JD          *model.Artifact
	FAQ         *model.Artifact
	JDErr       error
	FAQErr      error
	Validation  *model.ValidationError
}

// New returns an empty session with a random ID.
func New() *Session {
	return newWithID(uuid.NewString())
}

func newWithID(id string) *Session {
	s := &Session{ID: id}
	s.touch()
	return s
}

// Do runs fn with exclusive access to the session. Actions from the same user
// (for example two browser tabs) therefore never interleave.
func (s *Session) Do(fn func(s *Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	fn(s)
}

// LastActive reports when the session last started an action.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}
