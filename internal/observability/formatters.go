// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interview-prep/internal/evaluation"
	"github.com/jonathan/interview-prep/internal/roadmap"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoreRecord outputs a human-readable summary of one evaluation.
func (p *Printer) PrintScoreRecord(record *evaluation.ScoreRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Technical:      %3d\n", record.TechnicalScore))
	sb.WriteString(fmt.Sprintf("Communication:  %3d\n", record.CommunicationScore))
	sb.WriteString(fmt.Sprintf("Confidence:     %3d\n", record.ConfidenceScore))
	sb.WriteString(fmt.Sprintf("Logic:          %3d\n", record.LogicScore))
	sb.WriteString(fmt.Sprintf("Depth:          %3d\n", record.DepthScore))
	sb.WriteString(fmt.Sprintf("\nRecommendation: %s\n", record.DifficultyRecommendation))

	if len(record.WeakTopics) > 0 {
		sb.WriteString("\nWeak topics:\n")
		count := min(len(record.WeakTopics), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", record.WeakTopics[i]))
		}
		if len(record.WeakTopics) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.WeakTopics)-maxItemsToShow))
		}
	}

	if len(record.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		count := min(len(record.Strengths), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", record.Strengths[i]))
		}
		if len(record.Strengths) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Strengths)-3))
		}
	}

	if record.ImprovementTip != "" {
		tip := record.ImprovementTip
		if len(tip) > 50 {
			tip = tip[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nTip: %s\n", tip))
	}

	p.printBox("ANSWER EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSessionAverages outputs the running per-session score breakdown.
func (p *Printer) PrintSessionAverages(averages *evaluation.SessionAverages) {
	if averages == nil || averages.ResponseCount == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Responses scored: %d\n\n", averages.ResponseCount))
	sb.WriteString(fmt.Sprintf("Technical:      %6.2f\n", averages.TechnicalAvg))
	sb.WriteString(fmt.Sprintf("Communication:  %6.2f\n", averages.CommunicationAvg))
	sb.WriteString(fmt.Sprintf("Confidence:     %6.2f\n", averages.ConfidenceAvg))
	sb.WriteString(fmt.Sprintf("Logic:          %6.2f\n", averages.LogicAvg))
	sb.WriteString(fmt.Sprintf("Depth:          %6.2f\n", averages.DepthAvg))
	sb.WriteString(fmt.Sprintf("\nOverall:        %6.2f", averages.OverallAvg))

	p.printBox("SESSION AVERAGES", sb.String())
}

// PrintValidationDefects outputs the defects found in model output, or a
// clean confirmation when there are none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidationDefects(defects []string) {
	if len(defects) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ MODEL OUTPUT VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d defects; default scores applied:\n\n", len(defects)))

	for i, defect := range defects {
		if len(defect) > 50 {
			defect = defect[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", defect))
		if i < len(defects)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("MODEL OUTPUT DEFECTS", sb.String())
}

// PrintReadiness outputs the stored readiness score.
func (p *Printer) PrintReadiness(score float64) {
	p.printBox("READINESS INDEX", fmt.Sprintf("Score: %.2f / 100", score))
}

// PrintRoadmap outputs the four-week improvement plan.
func (p *Printer) PrintRoadmap(plan *roadmap.Plan) {
	if plan == nil || len(plan.Weeks) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Difficulty: %s   Daily problems: %d\n", plan.Difficulty, plan.DailyTargets))

	if len(plan.FocusSkills) > 0 {
		skills := strings.Join(plan.FocusSkills, ", ")
		if len(skills) > 45 {
			skills = skills[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Focus: %s\n", skills))
	}

	for _, week := range plan.Weeks {
		sb.WriteString(fmt.Sprintf("\nWeek %d: %s\n", week.Week, week.Theme))
		count := min(len(week.Tasks), 3)
		for i := 0; i < count; i++ {
			description := week.Tasks[i].Description
			if len(description) > 48 {
				description = description[:45] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", description))
		}
		if len(week.Tasks) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(week.Tasks)-3))
		}
	}

	p.printBox("IMPROVEMENT ROADMAP", strings.TrimSuffix(sb.String(), "\n"))
}
