package rename

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  error
	}{
		{"web-01", "web-01", nil},
		{"  web_02  ", "web_02", nil},
		{"abc", "abc", nil},
		{strings.Repeat("a", 63), strings.Repeat("a", 63), nil},
		{"A-b_9", "A-b_9", nil},
		{"ab", "", ErrNameLength},
		{"   ab   ", "", ErrNameLength},
		{"", "", ErrNameLength},
		{strings.Repeat("a", 64), "", ErrNameLength},
		{"bad name!", "", ErrNameCharset},
		{"web.01", "", ErrNameCharset},
		{"---", "", ErrNameCharset},
		{"_-_", "", ErrNameCharset},
		{"café", "", ErrNameCharset},
		{"ééé", "", ErrNameCharset},
	}
	for _, tt := range tests {
		got, err := ValidateName(tt.in)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, "%q", tt.in)
			continue
		}
		assert.NoError(t, err, "%q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestValidateNameCountsRunes(t *testing.T) {
	// 62 ASCII letters plus one multibyte rune is 63 runes but more than 63 bytes
	_, err := ValidateName(strings.Repeat("a", 62) + "é")
	assert.ErrorIs(t, err, ErrNameCharset)

	_, err = ValidateName(strings.Repeat("a", 63) + "é")
	assert.ErrorIs(t, err, ErrNameLength)
}

func TestErrorMatchesKind(t *testing.T) {
	err := &Error{Kind: KindCommit, Op: "rename", Err: ErrNameLength}
	assert.ErrorIs(t, err, ErrCommit)
	assert.NotErrorIs(t, err, ErrLookup)
	assert.ErrorIs(t, err, ErrNameLength)
	assert.Equal(t, "rename_commit", err.Code())
	assert.Equal(t, "rename commit: rename: name must be 3-63 characters", err.Error())
}
