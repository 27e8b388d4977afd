package evaluation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func promptInput() PromptInput {
	return PromptInput{
		Role:       "backend engineer",
		Category:   "databases",
		Difficulty: DifficultyMedium,
		Mode:       ModeNormal,
		Question:   "Explain how a B-tree index speeds up range queries.",
		Answer:     "A B-tree keeps keys sorted so the engine can walk leaves in order.",
	}
}

func TestBuildEvaluationPromptDeterministic(t *testing.T) {
	input := promptInput()
	assert.Equal(t, BuildEvaluationPrompt(input), BuildEvaluationPrompt(input))
}

func TestBuildEvaluationPromptIncludesQuestionAndAnswer(t *testing.T) {
	prompt := BuildEvaluationPrompt(promptInput())

	assert.Contains(t, prompt, "Explain how a B-tree index speeds up range queries.")
	assert.Contains(t, prompt, "A B-tree keeps keys sorted so the engine can walk leaves in order.")
	assert.Contains(t, prompt, "databases")
	assert.Contains(t, prompt, "backend engineer")
	// Output contract always included
	assert.Contains(t, prompt, "technical_score")
	assert.Contains(t, prompt, "eleven fields")
}

func TestBuildEvaluationPromptPersonaSelection(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		preset   string
		contains string
	}{
		{"normal mode", ModeNormal, "", "professional mock interview"},
		{"unknown mode falls back to normal", "chaotic", "", "professional mock interview"},
		{"stress mode", ModeStress, "", "stress interview"},
		{"company google", ModeCompany, "google", "Google"},
		{"company amazon", ModeCompany, "amazon", "Bar Raiser"},
		{"company preset case-insensitive", ModeCompany, "Meta", "Meta"},
		{"unknown preset falls back to generic", ModeCompany, "initech", "well-regarded technology company"},
		{"empty preset falls back to generic", ModeCompany, "", "well-regarded technology company"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := promptInput()
			input.Mode = tt.mode
			input.CompanyPreset = tt.preset
			assert.Contains(t, BuildEvaluationPrompt(input), tt.contains)
		})
	}
}

func TestBuildEvaluationPromptDifficultyDirective(t *testing.T) {
	for difficulty, marker := range map[string]string{
		DifficultyEasy:   "EASY",
		DifficultyMedium: "MEDIUM",
		DifficultyHard:   "HARD",
		"unknown":        "MEDIUM",
	} {
		input := promptInput()
		input.Difficulty = difficulty
		assert.Containsf(t, BuildEvaluationPrompt(input), marker, "difficulty %q", difficulty)
	}
}

func TestBuildEvaluationPromptDefaults(t *testing.T) {
	input := promptInput()
	input.Role = "  "
	input.Category = ""

	prompt := BuildEvaluationPrompt(input)
	assert.Contains(t, prompt, "software engineer")
	assert.Contains(t, prompt, "general")
}

func TestBuildEvaluationPromptNoUnresolvedPlaceholders(t *testing.T) {
	prompt := BuildEvaluationPrompt(promptInput())
	assert.False(t, strings.Contains(prompt, "{{."), "template placeholders must all be substituted")
}
