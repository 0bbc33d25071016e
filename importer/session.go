package importer

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is a step of the import wizard. Transitions only ever move forward:
// Uploaded -> HeaderDetected -> MappingProposed -> MappingConfirmed ->
// GlobalsApplied -> Validated -> Committed.
type State string

const (
	StateUploaded         State = "uploaded"
	StateHeaderDetected   State = "header_detected"
	StateMappingProposed  State = "mapping_proposed"
	StateMappingConfirmed State = "mapping_confirmed"
	StateGlobalsApplied   State = "globals_applied"
	StateValidated        State = "validated"
	StateCommitted        State = "committed"
)

var stateOrder = map[State]int{
	StateUploaded:         0,
	StateHeaderDetected:   1,
	StateMappingProposed:  2,
	StateMappingConfirmed: 3,
	StateGlobalsApplied:   4,
	StateValidated:        5,
	StateCommitted:        6,
}

// Session is the request-scoped context of one import flow. It replaces the
// ambient per-user globals of a UI session with an explicit object the
// handlers thread through the wizard. The embedded mutex serializes wizard
// steps; handlers hold it across read-check-mutate sequences because the
// registry only guards its own map.
type Session struct {
	sync.Mutex

	ID        string
	User      Identity
	State     State
	CreatedAt time.Time

	Preview      [][]string // raw preview window shown to the user
	DataRows     [][]string // rows after the header span
	HeaderLabels []string
	HeaderRow    int  // index of the last header row
	Detected     bool // false when the row-0 fallback was used

	Proposal []string // default mapping, per source column
	Mapping  []string // confirmed mapping, per source column

	Table        Table    // materialized canonical table
	EmptyTargets []string // mapped targets with no source values

	Valid   Table
	Invalid Table
}

// Advance moves the session to the next wizard step. Skipping or repeating
// steps is an error; the handler surfaces it as a bad request.
func (s *Session) Advance(to State) error {
	cur, ok := stateOrder[s.State]
	next, ok2 := stateOrder[to]
	if !ok || !ok2 || next != cur+1 {
		return fmt.Errorf("import session %s: cannot move from %s to %s", s.ID, s.State, to)
	}
	s.State = to
	return nil
}

// Registry holds in-flight import sessions, keyed by an opaque id handed to
// the client. Sessions live in memory only; an abandoned wizard is purged by
// the maintenance job.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create registers a fresh session in the Uploaded state.
func (r *Registry) Create(user Identity) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		User:      user,
		State:     StateUploaded,
		CreatedAt: time.Now(),
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get returns the session for id, restricted to its owning user.
func (r *Registry) Get(id, username string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("import session %s not found", id)
	}
	if s.User.Username != username {
		return nil, fmt.Errorf("import session %s does not belong to %s", id, username)
	}
	return s, nil
}

// Delete removes a finished or abandoned session.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// PurgeExpired drops sessions older than maxAge and reports how many went.
func (r *Registry) PurgeExpired(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	r.mu.Lock()
	defer r.mu.Unlock()
	purged := 0
	for id, s := range r.sessions {
		if s.CreatedAt.Before(cutoff) {
			delete(r.sessions, id)
			purged++
		}
	}
	return purged
}
