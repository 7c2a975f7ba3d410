package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryEmpty(t *testing.T) {
	entries, err := NewRepository(nil).Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRepositorySaveCopies(t *testing.T) {
	repo := NewRepository(nil)
	entries := []cards.Entry{{ID: 1, Card: cards.Card{Name: "Akari"}}}

	require.NoError(t, repo.SaveAll(context.Background(), entries))
	entries[0].Name = "changed"

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Akari", got[0].Name)
	assert.Equal(t, 1, repo.Saves())
}

func TestRepositoryFailWith(t *testing.T) {
	repo := NewRepository([]cards.Entry{{ID: 1}})
	boom := errors.New("boom")
	repo.FailWith(boom)

	assert.ErrorIs(t, repo.SaveAll(context.Background(), nil), boom)
	got, _ := repo.Load(context.Background())
	assert.Len(t, got, 1)
}
