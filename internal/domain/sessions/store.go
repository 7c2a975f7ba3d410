package sessions

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
)

const DefaultSize = 1024

// State is the view state of one viewer. It is replaced, never modified in place.
type State struct {
	Filter    cards.FilterState
	Sort      cards.SortSpec
	UpdatedAt time.Time
}

// Store keeps the most recently used viewer states
type Store struct {
	mu    sync.Mutex
	cache *lru.Cache
	now   func() time.Time
}

// NewStore creates a store bounded to size sessions. Zero or less uses DefaultSize.
func NewStore(size int) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	return &Store{cache: cache, now: time.Now}, nil
}

// Get returns the state for key. Unknown keys get the empty state.
func (s *Store) Get(key string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(key)
}

// Update replaces the state for key with fn applied to the current one.
func (s *Store) Update(key string, fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.get(key))
	next.UpdatedAt = s.now()
	s.cache.Add(key, next)
	return next
}

// Reset forgets the state for key.
func (s *Store) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(key)
}

func (s *Store) Len() int {
	return s.cache.Len()
}

func (s *Store) get(key string) State {
	v, ok := s.cache.Get(key)
	if !ok {
		return State{}
	}
	return v.(State)
}
