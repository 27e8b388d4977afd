// Package readiness condenses a user's history into one 0-100
// interview-preparedness score.
package readiness

import "math"

// Weights and bonuses of the readiness formula
const (
	overallWeight     = 0.6
	weakSkillPenalty  = 1.5
	maxWeakPenalty    = 20.0
	mediumBonus       = 5.0
	hardBonus         = 10.0
	veteranSessions   = 10
	veteranBonus      = 8.0
	practicedSessions = 5
	practicedBonus    = 5.0
)

// Params are the inputs to one readiness computation
type Params struct {
	OverallScore   float64
	WeakSkillCount int
	Difficulty     string
	TotalSessions  int
}

// Calculate produces the readiness score: 60% of the latest overall average,
// minus a capped weak-skill penalty, plus difficulty and experience bonuses,
// clamped to [0,100] and rounded to two decimals. Inputs are coerced before
// use, so NaN scores, negative counts and unknown difficulties still yield a
// sane score; the function is total and pure.
func Calculate(params Params) float64 {
	overall := params.OverallScore
	if math.IsNaN(overall) || math.IsInf(overall, 0) {
		overall = 0
	}
	overall = clamp(overall, 0, 100)

	weakCount := params.WeakSkillCount
	if weakCount < 0 {
		weakCount = 0
	}
	penalty := math.Min(float64(weakCount)*weakSkillPenalty, maxWeakPenalty)

	score := overall*overallWeight - penalty + difficultyBonus(params.Difficulty) + experienceBonus(params.TotalSessions)

	return round2(clamp(score, 0, 100))
}

func difficultyBonus(difficulty string) float64 {
	switch difficulty {
	case "hard":
		return hardBonus
	case "medium":
		return mediumBonus
	default:
		// easy and unknown difficulties earn no bonus
		return 0
	}
}

func experienceBonus(totalSessions int) float64 {
	switch {
	case totalSessions >= veteranSessions:
		return veteranBonus
	case totalSessions >= practicedSessions:
		return practicedBonus
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
