package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Season 1", "season-1"},
		{"Music League: 2024!!", "music-league-2024"},
		{"  spaced out  ", "spaced-out"},
		{"already-slugged", "already-slugged"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			require.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		mode PrivacyMode
		want string
	}{
		{"Alice Smith", PrivacyFull, "Alice Smith"},
		{"Alice Smith", PrivacyInitials, "A. S."},
		{"Alice", PrivacyInitials, "A."},
		{"", PrivacyInitials, ""},
		{"Alice Smith", PrivacyHidden, "Anonymous"},
		{"Alice Smith", PrivacyMode("bogus"), "Alice Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+string(tt.mode), func(t *testing.T) {
			require.Equal(t, tt.want, DisplayName(tt.name, tt.mode))
		})
	}
}

func TestValidPrivacyMode(t *testing.T) {
	require.True(t, ValidPrivacyMode(PrivacyFull))
	require.True(t, ValidPrivacyMode(PrivacyInitials))
	require.True(t, ValidPrivacyMode(PrivacyHidden))
	require.False(t, ValidPrivacyMode(PrivacyMode("bogus")))
}
