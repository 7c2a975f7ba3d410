package cards_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func storedEntries() []cards.Entry {
	entries := make([]cards.Entry, len(mock.Cards))
	for i, c := range mock.Cards {
		entries[i] = cards.Entry{ID: 0, Card: c}
	}
	entries[0].ID = 1000
	return entries
}

func loadedService(t *testing.T) (*cards.Service, *mock.MockRepository) {
	t.Helper()
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().Load(gomock.Any()).Return(storedEntries(), nil)

	svc := cards.NewService(repo, nil)
	require.NoError(t, svc.Load(context.Background()))
	return svc, repo
}

func TestService_LoadAssignsMissingIDs(t *testing.T) {
	svc, _ := loadedService(t)

	entries := svc.Entries()
	require.Len(t, entries, 3)
	assert.EqualValues(t, 1000, entries[0].ID)
	assert.Greater(t, entries[1].ID, entries[0].ID)
	assert.Greater(t, entries[2].ID, entries[1].ID)
	assert.Equal(t, mock.Cards[1], entries[1].Card)
}

func TestService_LoadEmptySeedsDefaults(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().Load(gomock.Any()).Return(nil, nil)
	repo.EXPECT().SaveAll(gomock.Any(), gomock.Len(len(mock.Cards))).Return(nil)

	svc := cards.NewService(repo, mock.Cards)
	require.NoError(t, svc.Load(context.Background()))

	assert.Equal(t, mock.Cards, svc.Export())
}

func TestService_LoadFailureLeavesCatalogEmpty(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().Load(gomock.Any()).Return(nil, errors.New("connection refused"))

	svc := cards.NewService(repo, nil)
	err := svc.Load(context.Background())

	var loadErr *cards.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.False(t, svc.Loaded())
	assert.Empty(t, svc.Entries())

	_, err = svc.Add(context.Background(), cards.Card{Name: "x"})
	assert.ErrorIs(t, err, cards.ErrNotLoaded)
}

func TestService_AddNormalizesAndSaves(t *testing.T) {
	svc, repo := loadedService(t)
	repo.EXPECT().SaveAll(gomock.Any(), gomock.Len(4)).Return(nil)

	entry, err := svc.Add(context.Background(), cards.Card{Name: "  Dorn ", Element: "Light", HP: "", ATK: "70"})
	require.NoError(t, err)

	assert.Equal(t, "Dorn", entry.Name)
	assert.Equal(t, cards.Stat("0"), entry.HP)
	assert.Equal(t, cards.Stat("0"), entry.SPD)
	assert.NotZero(t, entry.ID)

	got, err := svc.Get(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestService_UpdateTargetsID(t *testing.T) {
	svc, repo := loadedService(t)
	repo.EXPECT().SaveAll(gomock.Any(), gomock.Len(3)).Return(nil)

	target := svc.Entries()[1]
	view := svc.View(cards.FilterState{}, cards.SortSpec{Column: cards.ColumnName, Direction: cards.Descending})
	require.Equal(t, target.ID, view.Rows[1].ID)

	updated, err := svc.Update(context.Background(), target.ID, cards.Card{Name: "Boreas II", HP: "70", ATK: "70", DEF: "70", SPD: "70"})
	require.NoError(t, err)

	entries := svc.Entries()
	assert.Equal(t, updated, entries[1])
	assert.Equal(t, "Akari", entries[0].Name)
}

func TestService_DeleteUnknownID(t *testing.T) {
	svc, _ := loadedService(t)

	err := svc.Delete(context.Background(), 42)

	assert.ErrorIs(t, err, cards.ErrNotFound)
	assert.Len(t, svc.Entries(), 3)
}

func TestService_Delete(t *testing.T) {
	svc, repo := loadedService(t)
	repo.EXPECT().SaveAll(gomock.Any(), gomock.Len(2)).Return(nil)

	target := svc.Entries()[0]
	require.NoError(t, svc.Delete(context.Background(), target.ID))

	_, err := svc.Get(target.ID)
	assert.ErrorIs(t, err, cards.ErrNotFound)
	assert.Equal(t, "Boreas", svc.Entries()[0].Name)
}

func TestService_SaveFailureKeepsEdit(t *testing.T) {
	svc, repo := loadedService(t)
	repo.EXPECT().SaveAll(gomock.Any(), gomock.Any()).Return(errors.New("timeout"))

	before := svc.Revision()
	_, err := svc.Add(context.Background(), cards.Card{Name: "Unsaved"})

	var saveErr *cards.SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, "add card", saveErr.Op)
	assert.Len(t, svc.Entries(), 4)
	assert.Greater(t, svc.Revision(), before)
}

func TestService_ImportReplacesEverything(t *testing.T) {
	svc, repo := loadedService(t)
	repo.EXPECT().SaveAll(gomock.Any(), gomock.Len(1)).Return(nil)

	imported := []cards.Card{{Name: "Only", HP: "n/a"}}
	require.NoError(t, svc.Import(context.Background(), imported))

	assert.Equal(t, imported, svc.Export())
}

func TestService_ResetWithoutDefaults(t *testing.T) {
	svc, _ := loadedService(t)

	assert.ErrorIs(t, svc.ResetToDefaults(context.Background()), cards.ErrNoDefaults)
}

func TestService_Suggest(t *testing.T) {
	svc, _ := loadedService(t)

	assert.Equal(t, []string{"Celes"}, svc.Suggest("cls", 5))
	assert.Equal(t, []string{"Akari", "Boreas"}, svc.Suggest("", 2))
	assert.Nil(t, svc.Suggest("a", 0))
}

func TestService_Options(t *testing.T) {
	svc, _ := loadedService(t)

	opts := svc.Options()
	assert.Equal(t, []string{"Dark", "Fire", "Neutral"}, opts.Elements)
	assert.Equal(t, []string{cards.TypeHuman, cards.TypeNonHuman}, opts.Types)
}
