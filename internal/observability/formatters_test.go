package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/interview-prep/internal/evaluation"
	"github.com/jonathan/interview-prep/internal/roadmap"
	"github.com/stretchr/testify/assert"
)

func TestPrintScoreRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &evaluation.ScoreRecord{
		TechnicalScore:           82,
		CommunicationScore:       74,
		ConfidenceScore:          68,
		LogicScore:               79,
		DepthScore:               71,
		DifficultyRecommendation: "increase",
		WeakTopics:               []string{"sharding", "replication"},
		Strengths:                []string{"clear structure"},
		ImprovementTip:           "Practice whiteboard diagrams",
	}

	p.PrintScoreRecord(record)
	output := buf.String()

	assert.Contains(t, output, "ANSWER EVALUATION")
	assert.Contains(t, output, "82")
	assert.Contains(t, output, "increase")
	assert.Contains(t, output, "sharding")
	assert.Contains(t, output, "clear structure")
	assert.Contains(t, output, "Practice whiteboard diagrams")
}

func TestPrintScoreRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreRecord(nil)

	assert.Empty(t, buf.String())
}

func TestPrintSessionAverages(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	averages := &evaluation.SessionAverages{
		ResponseCount:    3,
		TechnicalAvg:     75.33,
		CommunicationAvg: 68.67,
		ConfidenceAvg:    70.00,
		LogicAvg:         72.33,
		DepthAvg:         64.00,
		OverallAvg:       70.07,
	}

	p.PrintSessionAverages(averages)
	output := buf.String()

	assert.Contains(t, output, "SESSION AVERAGES")
	assert.Contains(t, output, "75.33")
	assert.Contains(t, output, "70.07")
	assert.Contains(t, output, "Responses scored: 3")
}

func TestPrintSessionAverages_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSessionAverages(&evaluation.SessionAverages{})

	assert.Empty(t, buf.String())
}

func TestPrintValidationDefects_WithDefects(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidationDefects([]string{
		"feedback: must not be blank",
		"technical_score: Must be less than or equal to 100",
	})
	output := buf.String()

	assert.Contains(t, output, "MODEL OUTPUT DEFECTS")
	assert.Contains(t, output, "feedback")
	assert.Contains(t, output, "technical_score")
}

func TestPrintValidationDefects_Clean(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidationDefects(nil)
	output := buf.String()

	assert.Contains(t, output, "MODEL OUTPUT VALID")
}

func TestPrintReadiness(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReadiness(46.0)
	output := buf.String()

	assert.Contains(t, output, "READINESS INDEX")
	assert.Contains(t, output, "46.00")
}

func TestPrintRoadmap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	plan := roadmap.Generate(roadmap.Input{
		WeakSkills: []string{"graphs", "dynamic programming"},
		Difficulty: "hard",
	})

	p.PrintRoadmap(&plan)
	output := buf.String()

	assert.Contains(t, output, "IMPROVEMENT ROADMAP")
	assert.Contains(t, output, "Week 1")
	assert.Contains(t, output, "Week 4")
	assert.Contains(t, output, "graphs")
}

func TestPrintRoadmap_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRoadmap(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &evaluation.ScoreRecord{
		DifficultyRecommendation: "maintain",
		ImprovementTip:           "An extremely long improvement tip that should be truncated to fit inside the box",
	}

	p.PrintScoreRecord(record)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
