package evaluation

import (
	"encoding/json"
	"math"
	"strings"

	_ "embed"

	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/schemas"
)

//go:embed score_record.schema.json
var scoreRecordSchema string

// rawScoreRecord tolerates fractional scores from the model; they are
// rounded into the typed ScoreRecord during normalization.
type rawScoreRecord struct {
	TechnicalScore           float64  `json:"technical_score"`
	CommunicationScore       float64  `json:"communication_score"`
	ConfidenceScore          float64  `json:"confidence_score"`
	LogicScore               float64  `json:"logic_score"`
	DepthScore               float64  `json:"depth_score"`
	DifficultyRecommendation string   `json:"difficulty_recommendation"`
	WeakTopics               []string `json:"weak_topics"`
	Strengths                []string `json:"strengths"`
	Feedback                 string   `json:"feedback"`
	IdealAnswer              string   `json:"ideal_answer"`
	ImprovementTip           string   `json:"improvement_tip"`
}

// ParseScoreRecord validates raw model output against the eleven-field
// scoring schema. It never returns an error: structurally invalid output
// yields (DefaultScoreRecord(), false, defects) so the pipeline can always
// complete with safe defaults: untrusted model output never blocks an
// interview.
func ParseScoreRecord(raw string) (ScoreRecord, bool, []string) {
	cleaned := llm.CleanJSONBlock(raw)
	if cleaned == "" {
		return DefaultScoreRecord(), false, []string{"(root): empty model output"}
	}

	if err := schemas.ValidateJSONString(scoreRecordSchema, cleaned); err != nil {
		if validationErr, ok := err.(*schemas.ValidationError); ok {
			return DefaultScoreRecord(), false, validationErr.Defects()
		}
		// Document didn't parse as JSON at all
		return DefaultScoreRecord(), false, []string{"(root): model output is not valid JSON"}
	}

	var parsed rawScoreRecord
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return DefaultScoreRecord(), false, []string{"(root): model output is not valid JSON"}
	}

	// The schema already enforced ranges and the enum; re-check the string
	// fields for whitespace-only values the minLength rule cannot catch.
	var defects []string
	for field, value := range map[string]string{
		"feedback":        parsed.Feedback,
		"ideal_answer":    parsed.IdealAnswer,
		"improvement_tip": parsed.ImprovementTip,
	} {
		if strings.TrimSpace(value) == "" {
			defects = append(defects, field+": must not be blank")
		}
	}
	if len(defects) > 0 {
		return DefaultScoreRecord(), false, defects
	}

	record := ScoreRecord{
		TechnicalScore:           roundScore(parsed.TechnicalScore),
		CommunicationScore:       roundScore(parsed.CommunicationScore),
		ConfidenceScore:          roundScore(parsed.ConfidenceScore),
		LogicScore:               roundScore(parsed.LogicScore),
		DepthScore:               roundScore(parsed.DepthScore),
		DifficultyRecommendation: parsed.DifficultyRecommendation,
		WeakTopics:               cleanTopicList(parsed.WeakTopics),
		Strengths:                cleanTopicList(parsed.Strengths),
		Feedback:                 strings.TrimSpace(parsed.Feedback),
		IdealAnswer:              strings.TrimSpace(parsed.IdealAnswer),
		ImprovementTip:           strings.TrimSpace(parsed.ImprovementTip),
	}

	return record, true, nil
}

// DefaultScoreRecord is the safe fallback persisted when model output is
// unusable: zero scores, no difficulty change, placeholder text.
func DefaultScoreRecord() ScoreRecord {
	return ScoreRecord{
		DifficultyRecommendation: RecommendMaintain,
		WeakTopics:               []string{},
		Strengths:                []string{},
		Feedback:                 "Evaluation unavailable for this answer.",
		IdealAnswer:              "Not available.",
		ImprovementTip:           "Try answering again to receive feedback.",
	}
}

// roundScore clamps into [0,100] after rounding. The schema already bounds
// the value; the clamp guards the int conversion at the edges.
func roundScore(v float64) int {
	score := int(math.Round(v))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// cleanTopicList drops blank entries and trims the rest
func cleanTopicList(topics []string) []string {
	cleaned := make([]string, 0, len(topics))
	for _, topic := range topics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
