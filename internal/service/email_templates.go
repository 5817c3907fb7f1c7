package service

import (
	"fmt"
	"strings"

	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/usage"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func digestEmailTemplate(s model.Summary, appName, dashboardURL string) (string, string) {
	subject := fmt.Sprintf("%s: %s of screen time on %s", appName, usage.FormatMinutes(s.Total), s.Date)

	var b strings.Builder
	printer.Fprintf(&b, "You logged %d minutes (%s) across %d entries on %s.\n", s.Total, usage.FormatMinutes(s.Total), len(s.Entries), s.Date)

	if len(s.ByCategory) > 0 {
		b.WriteString("\nTop categories:\n")
		for i, slice := range s.ByCategory {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "  - %s: %s (%.1f%%)\n", usage.Label(slice.Key), usage.FormatMinutes(slice.Minutes), slice.Percent)
		}
	}

	var exceeded []model.GoalProgress
	for _, p := range s.Goals {
		if p.Exceeded {
			exceeded = append(exceeded, p)
		}
	}
	if len(exceeded) > 0 {
		b.WriteString("\nGoals exceeded:\n")
		for _, p := range exceeded {
			fmt.Fprintf(&b, "  - %s: %s over a %s limit\n", usage.GoalLabel(p.Goal), usage.FormatMinutes(p.Used), usage.FormatMinutes(p.Goal.Limit))
		}
	} else if len(s.Goals) > 0 {
		b.WriteString("\nAll goals met. Nice work.\n")
	}

	fmt.Fprintf(&b, "\nDashboard: %s\n\nBest,\nThe %s Team", dashboardURL, appName)
	return subject, b.String()
}
