package validation

import (
	"strings"

	"github.com/templui/screentime/internal/model"
)

// HasConflict reports whether a goal of the given type and target would
// duplicate an existing one. The goal identified by excludeID (the goal being
// edited) is skipped. Total goals ignore target, so only one may exist.
// limit never affects the result.
func HasConflict(goals []model.Goal, goalType, target string, limit int, excludeID string) bool {
	for _, g := range goals {
		if excludeID != "" && g.ID == excludeID {
			continue
		}
		if g.Type != goalType {
			continue
		}
		if goalType == model.GoalTypeTotal || g.Target == target {
			return true
		}
	}
	return false
}

// ValidateGoal checks type, target and limit of a goal.
func ValidateGoal(g model.Goal) FieldErrors {
	fe := FieldErrors{}

	switch g.Type {
	case model.GoalTypeTotal:
		if g.Target != "" {
			fe["target"] = "total goals have no target"
		}
	case model.GoalTypeApp:
		if err := ValidateAppName(g.Target); err != nil {
			fe["target"] = err.Error()
		}
	case model.GoalTypeCategory:
		if !model.IsCategory(g.Target) {
			fe["target"] = "unknown category"
		}
	default:
		fe["type"] = "type must be app, category or total"
	}

	if g.Limit < 1 {
		fe["limit"] = "limit must be at least 1 minute"
	} else if g.Limit > MinutesPerDay {
		fe["limit"] = "limit cannot exceed 1440 minutes"
	}

	return fe
}

// NormalizeGoal trims the target and clears it for total goals.
func NormalizeGoal(g *model.Goal) {
	g.Target = strings.TrimSpace(g.Target)
	if g.Type == model.GoalTypeTotal {
		g.Target = ""
	}
}
