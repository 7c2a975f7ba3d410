package cards

import "context"

//go:generate mockgen -destination=mock/repository.go -package=mock . Repository

// Repository persists the whole record set. There are no partial writes: SaveAll
// overwrites everything the store holds.
type Repository interface {
	// Load returns the stored entries, or nil when the store holds nothing yet.
	Load(ctx context.Context) ([]Entry, error)
	SaveAll(ctx context.Context, entries []Entry) error
}
