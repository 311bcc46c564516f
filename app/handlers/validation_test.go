package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUsernameLength(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{"empty", "", false},
		{"four characters", "jdoe", false},
		{"five characters", "jdoe1", true},
		{"twenty characters", strings.Repeat("a", 20), true},
		{"twenty-one characters", strings.Repeat("a", 21), false},
		// rune count, not byte count
		{"five accented runes", "héllo", true},
		{"four cjk runes", "日本語字", false},
		{"twenty accented runes", strings.Repeat("é", 20), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validUsernameLength(tt.username))
		})
	}
}
