package rollhistory

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
	"github.com/KirkDiggler/age-toolbox/internal/pkg/clock"
)

// DefaultMaxSessions bounds the sessions a memory repository holds
const DefaultMaxSessions = 10000

// MemoryConfig holds the configuration for the memory repository
type MemoryConfig struct {
	// TTL expires a session this long after its last append, as the Redis
	// history does. Defaults to 24h.
	TTL time.Duration

	// MaxSessions caps the held sessions; the least recently appended one
	// is dropped to make room. Defaults to DefaultMaxSessions.
	MaxSessions int

	Clock clock.Clock
}

type memorySession struct {
	history *entities.RollHistory
	touched time.Time
}

type memoryRepository struct {
	mu          sync.Mutex
	sessions    map[string]*memorySession
	ttl         time.Duration
	maxSessions int
	clock       clock.Clock
}

// NewMemory creates a process-local roll history repository. A nil config
// uses the defaults.
func NewMemory(cfg *MemoryConfig) Repository {
	if cfg == nil {
		cfg = &MemoryConfig{}
	}

	repo := &memoryRepository{
		sessions:    make(map[string]*memorySession),
		ttl:         cfg.TTL,
		maxSessions: cfg.MaxSessions,
		clock:       cfg.Clock,
	}
	if repo.ttl <= 0 {
		repo.ttl = defaultTTL
	}
	if repo.maxSessions <= 0 {
		repo.maxSessions = DefaultMaxSessions
	}
	if repo.clock == nil {
		repo.clock = clock.New()
	}
	return repo
}

var _ Repository = (*memoryRepository)(nil)

func (r *memoryRepository) Append(_ context.Context, input AppendInput) (*AppendOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.Roll == nil {
		return nil, errors.InvalidArgument(errRollNil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	session := r.live(input.SessionID, now)
	if session == nil {
		r.makeRoom(now)
		session = &memorySession{history: entities.NewRollHistory(entities.RollHistoryCapacity)}
		r.sessions[input.SessionID] = session
	}
	session.touched = now
	session.history.Push(input.Roll)

	return &AppendOutput{Rolls: session.history.Rolls()}, nil
}

func (r *memoryRepository) List(_ context.Context, input ListInput) (*ListOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.live(input.SessionID, r.clock.Now())
	if session == nil {
		return &ListOutput{Rolls: []*entities.DiceRollResult{}}, nil
	}

	return &ListOutput{Rolls: session.history.Rolls()}, nil
}

func (r *memoryRepository) Clear(_ context.Context, input ClearInput) (*ClearOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.live(input.SessionID, r.clock.Now())
	if session == nil {
		return &ClearOutput{}, nil
	}
	delete(r.sessions, input.SessionID)

	// nolint:gosec // bounded by RollHistoryCapacity
	return &ClearOutput{RollsCleared: int32(session.history.Clear())}, nil
}

// live returns the session unless it is missing or expired. Expired
// sessions are removed. Callers hold r.mu.
func (r *memoryRepository) live(id string, now time.Time) *memorySession {
	session, ok := r.sessions[id]
	if !ok {
		return nil
	}
	if r.expired(session, now) {
		delete(r.sessions, id)
		return nil
	}
	return session
}

func (r *memoryRepository) expired(s *memorySession, now time.Time) bool {
	return now.Sub(s.touched) >= r.ttl
}

// makeRoom drops expired sessions and, when still at the cap, the least
// recently appended one. Callers hold r.mu.
func (r *memoryRepository) makeRoom(now time.Time) {
	if len(r.sessions) < r.maxSessions {
		return
	}

	var oldestID string
	var oldest time.Time
	for id, session := range r.sessions {
		if r.expired(session, now) {
			delete(r.sessions, id)
			continue
		}
		if oldestID == "" || session.touched.Before(oldest) {
			oldestID, oldest = id, session.touched
		}
	}

	if len(r.sessions) >= r.maxSessions && oldestID != "" {
		delete(r.sessions, oldestID)
	}
}
