// Package scoring turns a period's done/target counters into a composite
// score, a percentile bracket and a badge. Everything here is pure: the result
// depends only on the Input, so callers may re-evaluate whenever a newer
// snapshot of the counters arrives.
package scoring

import "math"

const (
	workoutWeight = 50
	mealWeight    = 30
	prBonus       = 20
)

type Badge string

const (
	BadgePRCrusher        Badge = "PR Crusher"
	BadgeConsistencyChamp Badge = "Consistency Champ"
	BadgeProteinHero      Badge = "Protein Hero"
	BadgeWeeklyWarrior    Badge = "Weekly Warrior"
)

// Input is one period's counters. A target of zero or less counts as already
// met, negative done counts are treated as zero.
type Input struct {
	WorkoutsDone   int  `json:"workouts_done"`
	WorkoutsTarget int  `json:"workouts_target"`
	MealsDone      int  `json:"meals_done"`
	MealsTarget    int  `json:"meals_target"`
	HasPR          bool `json:"has_pr"`
}

type Result struct {
	Score          float64 `json:"score"`
	Percentile     int     `json:"percentile"`
	Badge          Badge   `json:"badge"`
	Achievement    string  `json:"achievement"`
	Motivational   string  `json:"motivational"`
	WorkoutsDone   int     `json:"workouts_done"`
	WorkoutsTarget int     `json:"workouts_target"`
	MealsDone      int     `json:"meals_done"`
	MealsTarget    int     `json:"meals_target"`
	HasPR          bool    `json:"has_pr"`
}

func (in Input) workoutsMet() bool {
	return in.WorkoutsTarget <= 0 || in.WorkoutsDone >= in.WorkoutsTarget
}

func (in Input) mealsMet() bool {
	return in.MealsTarget <= 0 || in.MealsDone >= in.MealsTarget
}

// Score is the composite 0..100 score. Each component is capped on its own.
func Score(in Input) float64 {
	score := ratio(in.WorkoutsDone, in.WorkoutsTarget)*workoutWeight +
		ratio(in.MealsDone, in.MealsTarget)*mealWeight
	if in.HasPR {
		score += prBonus
	}
	return score
}

func ratio(done, target int) float64 {
	if target <= 0 {
		return 1
	}
	if done <= 0 {
		return 0
	}
	return math.Min(float64(done)/float64(target), 1)
}

type bracket struct {
	minScore   float64
	percentile int
}

// Evaluated top-down, first match wins.
var brackets = []bracket{
	{minScore: 95, percentile: 5},
	{minScore: 85, percentile: 10},
	{minScore: 70, percentile: 25},
	{minScore: 50, percentile: 50},
}

const fallbackPercentile = 75

// PercentileFor maps a score to its bracket. Lower is better.
func PercentileFor(score float64) int {
	for _, b := range brackets {
		if score >= b.minScore {
			return b.percentile
		}
	}
	return fallbackPercentile
}

type rule struct {
	matches     func(Input) bool
	badge       Badge
	achievement string
}

// badgeRules is a priority list, not a set of exclusive conditions: a PR wins
// even when every target is also met.
var badgeRules = []rule{
	{
		matches:     func(in Input) bool { return in.HasPR },
		badge:       BadgePRCrusher,
		achievement: "PR achieved!",
	},
	{
		matches:     func(in Input) bool { return in.workoutsMet() && in.mealsMet() },
		badge:       BadgeConsistencyChamp,
		achievement: "Perfect consistency!",
	},
	{
		matches:     Input.workoutsMet,
		badge:       BadgeConsistencyChamp,
		achievement: "All workouts done!",
	},
	{
		matches:     Input.mealsMet,
		badge:       BadgeProteinHero,
		achievement: "Nutrition goals met!",
	},
	{
		matches:     func(Input) bool { return true },
		badge:       BadgeWeeklyWarrior,
		achievement: "Keep pushing!",
	},
}

var motivational = map[Badge]string{
	BadgePRCrusher:        "New personal best logged! Small wins, huge gains.",
	BadgeConsistencyChamp: "Consistency compounds faster than motivation!",
	BadgeProteinHero:      "Nutrition goals hit — muscle growth is tracked!",
	BadgeWeeklyWarrior:    "Keep going! Progress is built one session at a time.",
}

// Motivational returns the fixed message for a badge.
func Motivational(badge Badge) string {
	return motivational[badge]
}

func Evaluate(in Input) Result {
	score := Score(in)

	var selected rule
	for _, r := range badgeRules {
		if r.matches(in) {
			selected = r
			break
		}
	}

	return Result{
		Score:          score,
		Percentile:     PercentileFor(score),
		Badge:          selected.badge,
		Achievement:    selected.achievement,
		Motivational:   Motivational(selected.badge),
		WorkoutsDone:   in.WorkoutsDone,
		WorkoutsTarget: in.WorkoutsTarget,
		MealsDone:      in.MealsDone,
		MealsTarget:    in.MealsTarget,
		HasPR:          in.HasPR,
	}
}
