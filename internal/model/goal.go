package model

import "slices"

const (
	GoalTypeApp      = "app"
	GoalTypeCategory = "category"
	GoalTypeTotal    = "total"
)

var GoalTypes = []string{
	GoalTypeTotal,
	GoalTypeCategory,
	GoalTypeApp,
}

// Goal is a daily usage limit in minutes. Target names an app or a category
// and is empty for total goals.
type Goal struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
	Limit  int    `json:"limit"`
}

func IsGoalType(v string) bool {
	return slices.Contains(GoalTypes, v)
}

// GoalTypeRank orders goal types for listings: total first, then category, then app.
func GoalTypeRank(t string) int {
	i := slices.Index(GoalTypes, t)
	if i < 0 {
		return len(GoalTypes)
	}
	return i
}
