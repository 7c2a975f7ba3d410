package sessions

import (
	"testing"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreUnknownKey(t *testing.T) {
	s, err := NewStore(4)
	require.NoError(t, err)

	st := s.Get("nobody")
	assert.True(t, st.Filter.IsZero())
	assert.False(t, st.Sort.Active())
}

func TestStoreUpdateIsolatesSessions(t *testing.T) {
	s, err := NewStore(4)
	require.NoError(t, err)

	s.Update("a", func(st State) State {
		st.Filter = st.Filter.WithSearch("Ak")
		return st
	})
	s.Update("b", func(st State) State {
		st.Sort = st.Sort.Click(cards.ColumnHP)
		return st
	})

	a, b := s.Get("a"), s.Get("b")
	assert.Equal(t, "ak", a.Filter.Search)
	assert.False(t, a.Sort.Active())
	assert.Empty(t, b.Filter.Search)
	assert.Equal(t, cards.ColumnHP, b.Sort.Column)
	assert.False(t, a.UpdatedAt.IsZero())
}

func TestStoreReturnedStateIsSnapshot(t *testing.T) {
	s, err := NewStore(4)
	require.NoError(t, err)

	first := s.Update("a", func(st State) State {
		st.Filter = st.Filter.BanTalent("heal")
		return st
	})
	s.Update("a", func(st State) State {
		st.Filter = st.Filter.BanTalent("guard")
		return st
	})

	assert.Equal(t, []string{"heal"}, first.Filter.BannedTalents)
	assert.Equal(t, []string{"heal", "guard"}, s.Get("a").Filter.BannedTalents)
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	s, err := NewStore(2)
	require.NoError(t, err)

	set := func(key string) {
		s.Update(key, func(st State) State {
			st.Filter = st.Filter.WithSearch(key)
			return st
		})
	}
	set("a")
	set("b")
	s.Get("a")
	set("c")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "a", s.Get("a").Filter.Search)
	assert.Empty(t, s.Get("b").Filter.Search)
}

func TestStoreReset(t *testing.T) {
	s, err := NewStore(0)
	require.NoError(t, err)

	s.Update("a", func(st State) State {
		st.Filter = st.Filter.WithSearch("x")
		return st
	})
	s.Reset("a")

	assert.True(t, s.Get("a").Filter.IsZero())
}
