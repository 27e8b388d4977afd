package evaluation

import (
	"strings"

	"github.com/jonathan/interview-prep/internal/prompts"
)

// PromptInput carries everything the evaluation prompt depends on.
// Identical inputs always produce an identical prompt.
type PromptInput struct {
	Role          string
	Category      string
	Difficulty    string
	Mode          string
	CompanyPreset string
	Question      string
	Answer        string
}

// companyPersonaKeys maps a company preset to its persona template key.
// Presets outside this table fall back to the generic company persona.
var companyPersonaKeys = map[string]string{
	"google":     "persona-company-google",
	"amazon":     "persona-company-amazon",
	"meta":       "persona-company-meta",
	"startup":    "persona-company-startup",
	"consulting": "persona-company-consulting",
	"generic":    "persona-company-generic",
}

// BuildEvaluationPrompt assembles the full scoring prompt: persona,
// difficulty calibration, the literal question/answer, the scoring criteria,
// and the strict output-schema instruction. Pure and deterministic.
func BuildEvaluationPrompt(input PromptInput) string {
	sections := []string{
		personaDirective(input.Mode, input.CompanyPreset, input.Role),
		difficultyDirective(input.Difficulty),
		prompts.Format(prompts.MustGet("evaluation.json", "question-answer"), map[string]string{
			"Category": defaultIfEmpty(input.Category, "general"),
			"Question": input.Question,
			"Answer":   input.Answer,
		}),
		prompts.MustGet("evaluation.json", "scoring-criteria"),
		prompts.MustGet("evaluation.json", "output-schema"),
	}

	return strings.Join(sections, "\n\n")
}

// personaDirective selects the evaluator persona from the static
// (mode, companyPreset) lookup table.
func personaDirective(mode, preset, role string) string {
	var key string
	switch mode {
	case ModeStress:
		key = "persona-stress"
	case ModeCompany:
		key = companyPersonaKeys[strings.ToLower(preset)]
		if key == "" {
			key = "persona-company-generic"
		}
	default:
		key = "persona-normal"
	}

	return prompts.Format(prompts.MustGet("evaluation.json", key), map[string]string{
		"Role": defaultIfEmpty(role, "software engineer"),
	})
}

// difficultyDirective selects the fixed calibration directive for a level
func difficultyDirective(difficulty string) string {
	switch difficulty {
	case DifficultyEasy:
		return prompts.MustGet("evaluation.json", "difficulty-easy")
	case DifficultyHard:
		return prompts.MustGet("evaluation.json", "difficulty-hard")
	default:
		return prompts.MustGet("evaluation.json", "difficulty-medium")
	}
}

func defaultIfEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
