package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/validation"
)

func existingGoals() []model.Goal {
	return []model.Goal{
		{ID: "total", Type: model.GoalTypeTotal, Limit: 240},
		{ID: "insta", Type: model.GoalTypeApp, Target: "Instagram", Limit: 30},
		{ID: "social", Type: model.GoalTypeCategory, Target: model.CategorySocial, Limit: 90},
	}
}

func TestHasConflict(t *testing.T) {
	tests := []struct {
		name      string
		goalType  string
		target    string
		excludeID string
		want      bool
	}{
		{"second total", model.GoalTypeTotal, "", "", true},
		{"second total with target", model.GoalTypeTotal, "anything", "", true},
		{"editing the total", model.GoalTypeTotal, "", "total", false},
		{"same app", model.GoalTypeApp, "Instagram", "", true},
		{"other app", model.GoalTypeApp, "TikTok", "", false},
		{"editing same app", model.GoalTypeApp, "Instagram", "insta", false},
		{"same category", model.GoalTypeCategory, model.CategorySocial, "", true},
		{"other category", model.GoalTypeCategory, model.CategoryGaming, "", false},
		{"app named like a category", model.GoalTypeApp, model.CategorySocial, "", false},
		{"editing another goal into a duplicate", model.GoalTypeApp, "Instagram", "social", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validation.HasConflict(existingGoals(), tt.goalType, tt.target, 10, tt.excludeID)
			if got != tt.want {
				t.Errorf("HasConflict(%q, %q, exclude %q) = %v, want %v", tt.goalType, tt.target, tt.excludeID, got, tt.want)
			}
		})
	}
}

func TestHasConflictEmpty(t *testing.T) {
	if validation.HasConflict(nil, model.GoalTypeTotal, "", 60, "") {
		t.Error("no goals should never conflict")
	}
}

func TestValidateGoal(t *testing.T) {
	tests := []struct {
		name  string
		goal  model.Goal
		field string
	}{
		{"valid total", model.Goal{Type: model.GoalTypeTotal, Limit: 120}, ""},
		{"valid app", model.Goal{Type: model.GoalTypeApp, Target: "YouTube", Limit: 30}, ""},
		{"valid category", model.Goal{Type: model.GoalTypeCategory, Target: model.CategoryGaming, Limit: 60}, ""},
		{"bad type", model.Goal{Type: "weekly", Limit: 10}, "type"},
		{"total with target", model.Goal{Type: model.GoalTypeTotal, Target: "x", Limit: 10}, "target"},
		{"app missing target", model.Goal{Type: model.GoalTypeApp, Limit: 10}, "target"},
		{"unknown category", model.Goal{Type: model.GoalTypeCategory, Target: "sleep", Limit: 10}, "target"},
		{"zero limit", model.Goal{Type: model.GoalTypeTotal, Limit: 0}, "limit"},
		{"limit above a day", model.Goal{Type: model.GoalTypeTotal, Limit: 1441}, "limit"},
		{"multibyte app target", model.Goal{Type: model.GoalTypeApp, Target: strings.Repeat("ü", 40), Limit: 30}, ""},
		{"multibyte app target too long", model.Goal{Type: model.GoalTypeApp, Target: strings.Repeat("ü", 101), Limit: 30}, "target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := validation.ValidateGoal(tt.goal)
			if tt.field == "" {
				if err := fe.Err(); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if _, ok := fe[tt.field]; !ok {
				t.Errorf("expected error on %q, got %v", tt.field, fe)
			}
		})
	}
}

func TestNormalizeGoalClearsTotalTarget(t *testing.T) {
	g := model.Goal{Type: model.GoalTypeTotal, Target: " leftover ", Limit: 60}
	validation.NormalizeGoal(&g)
	if g.Target != "" {
		t.Errorf("target = %q, want empty", g.Target)
	}
}

func TestFieldErrorsAsError(t *testing.T) {
	err := validation.ValidateGoal(model.Goal{Type: "bogus"}).Err()

	var fe validation.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("errors.As failed for %v", err)
	}
	want := "validation failed: limit: limit must be at least 1 minute; type: type must be app, category or total"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
