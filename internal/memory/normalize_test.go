package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkillName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Dynamic Programming", "dynamic programming"},
		{"trims", "  graphs  ", "graphs"},
		{"collapses inner whitespace", "system   design", "system design"},
		{"tabs and newlines", "sql\tjoins\n", "sql joins"},
		{"already normalized", "recursion", "recursion"},
		{"empty", "", ""},
		{"whitespace only", "   \t  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSkillName(tt.input))
		})
	}
}

func TestDedupeTopics(t *testing.T) {
	t.Run("collapses surface variants onto one entry", func(t *testing.T) {
		got := DedupeTopics([]string{
			"Dynamic Programming",
			"dynamic  programming",
			" DYNAMIC PROGRAMMING ",
			"graphs",
		})
		assert.Equal(t, []string{"dynamic programming", "graphs"}, got)
	})

	t.Run("preserves first-occurrence order", func(t *testing.T) {
		got := DedupeTopics([]string{"b-trees", "hashing", "b-trees", "recursion"})
		assert.Equal(t, []string{"b-trees", "hashing", "recursion"}, got)
	})

	t.Run("drops blank entries", func(t *testing.T) {
		got := DedupeTopics([]string{"", "  ", "sql"})
		assert.Equal(t, []string{"sql"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, DedupeTopics(nil))
	})
}
