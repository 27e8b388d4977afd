// Package adaptive moves a session's difficulty between easy, medium and
// hard in response to validated scoring recommendations.
package adaptive

// Difficulty levels, ordered easy < medium < hard
const (
	Easy   = "easy"
	Medium = "medium"
	Hard   = "hard"
)

// Recommendations accepted by the state machine
const (
	Increase = "increase"
	Decrease = "decrease"
	Maintain = "maintain"
)

// difficultySteps orders the levels for single-step transitions
var difficultySteps = map[string]int{
	Easy:   0,
	Medium: 1,
	Hard:   2,
}

var difficultyByStep = []string{Easy, Medium, Hard}

// NextDifficulty applies one recommendation to the current difficulty and
// returns the new level. Transitions move at most one step and clamp at the
// boundaries: hard+increase stays hard, easy+decrease stays easy. An
// unrecognized current difficulty is treated as medium before the step, and
// an unrecognized recommendation as maintain, so the result is always one
// of the three valid levels.
func NextDifficulty(current, recommendation string) string {
	step, ok := difficultySteps[current]
	if !ok {
		step = difficultySteps[Medium]
	}

	switch recommendation {
	case Increase:
		if step < len(difficultyByStep)-1 {
			step++
		}
	case Decrease:
		if step > 0 {
			step--
		}
	}

	return difficultyByStep[step]
}
