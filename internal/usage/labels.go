package usage

import (
	"github.com/templui/screentime/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCase = cases.Title(language.English)

// Label turns an enum value like "communication" into "Communication".
func Label(v string) string {
	return titleCase.String(v)
}

// GoalLabel describes a goal for humans, e.g. "Total", "Social" or "YouTube".
func GoalLabel(g model.Goal) string {
	switch g.Type {
	case model.GoalTypeTotal:
		return "Total"
	case model.GoalTypeCategory:
		return Label(g.Target)
	default:
		return g.Target
	}
}
