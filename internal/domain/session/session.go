package session

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// seqCounter numbers sessions in creation order for log correlation
var seqCounter uint64

// Session is the context of one query: its text, identity and timing.
// Every lifecycle event of the query carries the session ID.
type Session struct {
	ID        string    // Unique session identifier (UUID)
	Seq       uint64    // Monotonic sequence number within the process
	Query     string    // The query text being run
	Active    bool      // Whether the query is still running
	StartTime time.Time // When the session began
	EndTime   time.Time // When Close was called
}

// New creates a session with a unique ID
func New(query string) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&seqCounter, 1),
		Query:     query,
		Active:    true,
		StartTime: time.Now(),
	}
}

// Close marks the session as finished
func (s *Session) Close() {
	if !s.Active {
		return
	}
	s.Active = false
	s.EndTime = time.Now()
}

// Duration returns the elapsed time, up to now for an active session
func (s *Session) Duration() time.Duration {
	if s.Active {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}
