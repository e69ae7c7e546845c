package accounts

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticGet(t *testing.T) {
	s, err := NewStatic([]Account{
		{ID: " main ", Name: "Main", Token: "tok-1"},
		{ID: "spare", Token: "tok-2"},
	})
	require.NoError(t, err)

	a, err := s.Get(t.Context(), "main")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", a.Token)

	_, err = s.Get(t.Context(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNewStaticRejectsIncompleteAccounts(t *testing.T) {
	_, err := NewStatic([]Account{{ID: "", Token: "x"}})
	require.ErrorContains(t, err, "id is required")

	_, err = NewStatic([]Account{{ID: "a"}})
	require.ErrorContains(t, err, "token is required")
}

func TestAccountLogValueOmitsToken(t *testing.T) {
	v := Account{ID: "main", Name: "Main", Token: "secret"}.LogValue()
	for _, attr := range v.Group() {
		assert.NotEqual(t, "token", attr.Key)
		assert.NotEqual(t, "secret", attr.Value.String())
	}
	assert.Equal(t, slog.KindGroup, v.Kind())
}

func TestValidID(t *testing.T) {
	assert.Equal(t, 20, MaxIDLen)
	assert.True(t, ValidID("ops-main_2"))
	assert.True(t, ValidID(strings.Repeat("a", MaxIDLen)))
	assert.False(t, ValidID(strings.Repeat("a", MaxIDLen+1)))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("ops team"))
	assert.False(t, ValidID("ops&x=1"))
}
