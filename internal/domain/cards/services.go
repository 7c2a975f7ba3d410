package cards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sahilm/fuzzy"
)

var (
	ErrNotFound   = errors.New("card not found")
	ErrNotLoaded  = errors.New("catalog has not been loaded")
	ErrNoDefaults = errors.New("no default cards configured")
)

// LoadError reports that the record set could not be read. The catalog stays empty.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load cards: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a failed full-overwrite save. The in-memory change is kept.
type SaveError struct {
	Op  string
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s: saved in memory only: %v", e.Op, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Service owns the in-memory record set and writes it back after every mutation.
type Service struct {
	repo     Repository
	defaults []Card
	ids      *IDGenerator

	// saveMu orders writers so the store always ends with the latest snapshot.
	saveMu   sync.Mutex
	mu       sync.RWMutex
	entries  []Entry
	loaded   bool
	revision uint64
}

func NewService(repository Repository, defaults []Card) *Service {
	return &Service{
		repo:     repository,
		defaults: slices.Clone(defaults),
		ids:      NewIDGenerator(),
	}
}

// Load reads the record set from the store. An empty store is seeded with the
// default cards when there are any.
func (s *Service) Load(ctx context.Context) error {
	start := time.Now()
	entries, err := s.repo.Load(ctx)
	if err != nil {
		slog.Error("Failed to load cards",
			slog.String("type", "store"),
			slog.Any("error", err),
			slog.Duration("took", time.Since(start)))
		return &LoadError{Err: err}
	}

	if len(entries) == 0 && len(s.defaults) > 0 {
		slog.Info("No cards found, initializing with default data",
			slog.String("type", "store"),
			slog.Int("defaults", len(s.defaults)))
		s.mu.Lock()
		s.loaded = true
		s.mu.Unlock()
		return s.Import(ctx, s.defaults)
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.assignIDs(entries)
	s.loaded = true
	s.revision++

	slog.Info("Cards loaded",
		slog.String("type", "store"),
		slog.Int("count", len(s.entries)),
		slog.Duration("took", time.Since(start)))
	return nil
}

// assignIDs gives fresh ids to entries stored without one or with a duplicate.
func (s *Service) assignIDs(entries []Entry) []Entry {
	out := slices.Clone(entries)
	seen := make(map[snowflake.ID]struct{}, len(out))
	for _, e := range out {
		s.ids.Observe(e.ID)
	}
	for i := range out {
		if _, dup := seen[out[i].ID]; out[i].ID == 0 || dup {
			out[i].ID = s.ids.Next()
		}
		seen[out[i].ID] = struct{}{}
	}
	return out
}

func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Revision increases on every change to the record set.
func (s *Service) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Entries returns a copy of the record set in display order.
func (s *Service) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

func (s *Service) Get(id snowflake.ID) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return Entry{}, ErrNotFound
	}
	return s.entries[i], nil
}

// View builds the current view for the given filter and sort.
func (s *Service) View(f FilterState, sort SortSpec) View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildView(s.entries, f, sort)
}

func (s *Service) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildOptions(s.entries)
}

// Export returns the cards without their ids, in display order.
func (s *Service) Export() []Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Card, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Card
	}
	return out
}

// Suggest ranks distinct card names against query with fuzzy matching.
func (s *Service) Suggest(query string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	s.mu.RLock()
	names := make([]string, 0, len(s.entries))
	seen := make(map[string]struct{}, len(s.entries))
	for _, e := range s.entries {
		if _, ok := seen[e.Name]; ok || e.Name == "" {
			continue
		}
		seen[e.Name] = struct{}{}
		names = append(names, e.Name)
	}
	s.mu.RUnlock()

	if query == "" {
		slices.Sort(names)
		return names[:min(limit, len(names))]
	}
	matches := fuzzy.Find(query, names)
	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

func (s *Service) Add(ctx context.Context, card Card) (Entry, error) {
	var entry Entry
	err := s.mutate(ctx, "add card", func(entries []Entry) ([]Entry, error) {
		entry = Entry{ID: s.ids.Next(), Card: card.Normalize()}
		return append(entries, entry), nil
	})
	return entry, err
}

// Update replaces the card with the given id, keeping its position.
func (s *Service) Update(ctx context.Context, id snowflake.ID, card Card) (Entry, error) {
	entry := Entry{ID: id, Card: card.Normalize()}
	err := s.mutate(ctx, "update card", func(entries []Entry) ([]Entry, error) {
		i := indexOf(entries, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		entries[i] = entry
		return entries, nil
	})
	return entry, err
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	return s.mutate(ctx, "delete card", func(entries []Entry) ([]Entry, error) {
		i := indexOf(entries, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		return slices.Delete(entries, i, i+1), nil
	})
}

// Import replaces the whole record set. Every imported card gets a new id.
func (s *Service) Import(ctx context.Context, cards []Card) error {
	return s.mutate(ctx, "import cards", func([]Entry) ([]Entry, error) {
		entries := make([]Entry, len(cards))
		for i, c := range cards {
			entries[i] = Entry{ID: s.ids.Next(), Card: c}
		}
		return entries, nil
	})
}

// ResetToDefaults replaces the record set with the configured default cards.
func (s *Service) ResetToDefaults(ctx context.Context) error {
	if len(s.defaults) == 0 {
		return ErrNoDefaults
	}
	return s.Import(ctx, s.defaults)
}

// mutate applies fn to a copy of the record set, installs the result and saves it.
// A failed save leaves the new record set in memory.
func (s *Service) mutate(ctx context.Context, op string, fn func([]Entry) ([]Entry, error)) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	next, err := fn(slices.Clone(s.entries))
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.entries = next
	s.revision++
	snapshot := slices.Clone(next)
	s.mu.Unlock()

	start := time.Now()
	if err := s.repo.SaveAll(ctx, snapshot); err != nil {
		slog.Error("Failed to save cards",
			slog.String("type", "store"),
			slog.String("operation", op),
			slog.Any("error", err),
			slog.Duration("took", time.Since(start)))
		return &SaveError{Op: op, Err: err}
	}

	slog.Info("Cards saved",
		slog.String("type", "store"),
		slog.String("operation", op),
		slog.Int("count", len(snapshot)),
		slog.Duration("took", time.Since(start)))
	return nil
}

func (s *Service) indexOf(id snowflake.ID) int {
	return indexOf(s.entries, id)
}

func indexOf(entries []Entry, id snowflake.ID) int {
	return slices.IndexFunc(entries, func(e Entry) bool { return e.ID == id })
}
