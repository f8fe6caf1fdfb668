package scoring

import "strings"

const defaultAthleteType = "Lifter"

var labelSuffix = map[Badge]string{
	BadgePRCrusher:        " PR Crushers",
	BadgeConsistencyChamp: " Champions",
	BadgeProteinHero:      " Nutrition Heroes",
	BadgeWeeklyWarrior:    " Warriors",
}

// AthleteLabel names the group a user is ranked against, e.g. "Lifter Champions".
func AthleteLabel(athleteType string, badge Badge) string {
	athleteType = strings.TrimSpace(athleteType)
	if athleteType == "" {
		athleteType = defaultAthleteType
	}
	suffix, ok := labelSuffix[badge]
	if !ok {
		suffix = labelSuffix[BadgeWeeklyWarrior]
	}
	return athleteType + suffix
}
