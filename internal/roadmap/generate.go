// Package roadmap turns a user's weak-skill history and session aggregates
// into a deterministic four-week improvement plan.
package roadmap

import "fmt"

// LowDimensionThreshold marks a session average as needing dedicated work
const LowDimensionThreshold = 65.0

// PlanWeeks is the fixed length of every generated plan
const PlanWeeks = 4

// Input carries everything plan generation depends on. Identical inputs
// always produce identical plans.
type Input struct {
	WeakSkills       []string
	TechnicalAvg     float64
	CommunicationAvg float64
	LogicAvg         float64
	Difficulty       string
}

// Task is one actionable item inside a week
type Task struct {
	Description string `json:"description"`
	Focus       string `json:"focus"`
}

// Week is one week of the plan, numbered 1 through 4
type Week struct {
	Week  int    `json:"week"`
	Theme string `json:"theme"`
	Tasks []Task `json:"tasks"`
}

// Plan is a complete four-week improvement roadmap
type Plan struct {
	Version      int      `json:"version"`
	Difficulty   string   `json:"difficulty"`
	FocusSkills  []string `json:"focus_skills"`
	DailyTargets int      `json:"daily_problem_target"`
	Weeks        []Week   `json:"weeks"`
}

// intensity scales problem volume and mock frequency with difficulty
type intensity struct {
	dailyProblems int
	weeklyMocks   int
}

func intensityFor(difficulty string) intensity {
	switch difficulty {
	case "hard":
		return intensity{dailyProblems: 4, weeklyMocks: 3}
	case "easy":
		return intensity{dailyProblems: 2, weeklyMocks: 1}
	default:
		return intensity{dailyProblems: 3, weeklyMocks: 2}
	}
}

// Generate builds the four-week plan. Week 1 targets the most recurrent weak
// skills and the lowest-scoring dimension, week 2 broadens to timed practice
// and the remaining gaps, week 3 runs full mock simulations, and week 4
// finishes with stress-mode work across every weak area. The plan always has
// four non-empty weeks; a user with no recorded weak skills receives generic
// fundamentals tasks instead.
func Generate(input Input) Plan {
	skills := input.WeakSkills
	if len(skills) == 0 {
		skills = []string{"core data structures", "problem decomposition"}
	}
	pace := intensityFor(input.Difficulty)
	low := lowDimensions(input)

	plan := Plan{
		Version:      1,
		Difficulty:   normalizeDifficulty(input.Difficulty),
		FocusSkills:  skills,
		DailyTargets: pace.dailyProblems,
	}

	plan.Weeks = append(plan.Weeks, weekOne(skills, low, pace))
	plan.Weeks = append(plan.Weeks, weekTwo(skills, low, pace))
	plan.Weeks = append(plan.Weeks, weekThree(pace))
	plan.Weeks = append(plan.Weeks, weekFour(skills, pace))
	return plan
}

func weekOne(skills []string, low []string, pace intensity) Week {
	week := Week{Week: 1, Theme: "Targeted weak-skill drills"}
	for _, skill := range firstN(skills, 2) {
		week.Tasks = append(week.Tasks, Task{
			Description: fmt.Sprintf("Solve %d problems per day on %s, reviewing every miss", pace.dailyProblems, skill),
			Focus:       skill,
		})
	}
	if len(low) > 0 {
		week.Tasks = append(week.Tasks, Task{
			Description: fmt.Sprintf("Daily 20-minute exercises to raise your %s dimension", low[0]),
			Focus:       low[0],
		})
	}
	week.Tasks = append(week.Tasks, Task{
		Description: "Write a one-paragraph explanation of each solved problem to cement understanding",
		Focus:       "retention",
	})
	return week
}

func weekTwo(skills []string, low []string, pace intensity) Week {
	week := Week{Week: 2, Theme: "Timed practice and remaining gaps"}
	week.Tasks = append(week.Tasks, Task{
		Description: fmt.Sprintf("Solve %d problems per day under a 30-minute timer", pace.dailyProblems),
		Focus:       "speed",
	})
	for _, dim := range rest(low, 1) {
		week.Tasks = append(week.Tasks, Task{
			Description: fmt.Sprintf("Three sessions this week dedicated to the %s dimension", dim),
			Focus:       dim,
		})
	}
	for _, skill := range rest(skills, 2) {
		week.Tasks = append(week.Tasks, Task{
			Description: fmt.Sprintf("Alternate-day practice sets on %s", skill),
			Focus:       skill,
		})
	}
	return week
}

func weekThree(pace intensity) Week {
	return Week{
		Week:  3,
		Theme: "Full mock interviews",
		Tasks: []Task{
			{
				Description: fmt.Sprintf("Run %d full-length mock interviews this week, reviewing recordings afterwards", pace.weeklyMocks),
				Focus:       "simulation",
			},
			{
				Description: "Daily behavioral-question drills using the STAR structure",
				Focus:       "communication",
			},
			{
				Description: "Practice narrating your reasoning aloud while solving one problem per day",
				Focus:       "communication",
			},
		},
	}
}

func weekFour(skills []string, pace intensity) Week {
	week := Week{Week: 4, Theme: "Stress simulation and final assessment"}
	week.Tasks = append(week.Tasks, Task{
		Description: fmt.Sprintf("Run %d stress-mode mock interviews with interruptions and follow-up pressure", pace.weeklyMocks),
		Focus:       "stress",
	})
	for _, skill := range firstN(skills, 3) {
		week.Tasks = append(week.Tasks, Task{
			Description: fmt.Sprintf("Hard-level problems on %s until you solve two in a row cleanly", skill),
			Focus:       skill,
		})
	}
	week.Tasks = append(week.Tasks, Task{
		Description: "Final self-assessment: redo week 1 problems and compare scores against your first attempt",
		Focus:       "assessment",
	})
	return week
}

// lowDimensions lists session dimensions scoring under the threshold,
// weakest first.
func lowDimensions(input Input) []string {
	type dim struct {
		name  string
		score float64
	}
	dims := []dim{
		{"technical", input.TechnicalAvg},
		{"communication", input.CommunicationAvg},
		{"logic", input.LogicAvg},
	}

	var low []dim
	for _, d := range dims {
		if d.score < LowDimensionThreshold {
			low = append(low, d)
		}
	}
	// Stable selection sort keeps ties in declaration order
	for i := 0; i < len(low); i++ {
		min := i
		for j := i + 1; j < len(low); j++ {
			if low[j].score < low[min].score {
				min = j
			}
		}
		low[i], low[min] = low[min], low[i]
	}

	names := make([]string, len(low))
	for i, d := range low {
		names[i] = d.name
	}
	return names
}

func normalizeDifficulty(difficulty string) string {
	switch difficulty {
	case "easy", "hard":
		return difficulty
	default:
		return "medium"
	}
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}

func rest(items []string, skip int) []string {
	if len(items) <= skip {
		return nil
	}
	return items[skip:]
}
