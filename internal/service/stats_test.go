package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/service"
	"github.com/templui/screentime/internal/usage"
	"github.com/templui/screentime/internal/validation"
)

func TestStatsServiceUsesConfiguredTimezone(t *testing.T) {
	// 20:30 UTC on the 17th is already the 18th in UTC+5.
	zone := time.FixedZone("UTC+5", 5*60*60)
	s := service.NewStatsService(newTestStore(t), fixedClock, zone)

	if got := s.Today(); got != "2026-10-18" {
		t.Errorf("Today = %s, want 2026-10-18", got)
	}

	utc := service.NewStatsService(newTestStore(t), fixedClock, time.UTC)
	if got := utc.Today(); got != "2026-10-17" {
		t.Errorf("Today (UTC) = %s, want 2026-10-17", got)
	}
}

func TestStatsServiceAggregates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	entries := service.NewEntryService(st)
	goals := service.NewGoalService(st)
	stats := service.NewStatsService(st, fixedClock, time.UTC)

	for _, e := range []model.TimeEntry{
		newEntry("2026-10-17", "Instagram", 40),
		{Date: "2026-10-17", Device: model.DeviceLaptop, App: "Docs", Category: model.CategoryProductivity, Duration: 60},
		newEntry("2026-10-13", "Instagram", 15),
	} {
		if _, err := entries.Create(ctx, e); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := goals.Create(ctx, model.Goal{Type: model.GoalTypeApp, Target: "Instagram", Limit: 30}); err != nil {
		t.Fatal(err)
	}

	if got := stats.TodayUsage(usage.Filter{}); got != 100 {
		t.Errorf("TodayUsage = %d, want 100", got)
	}
	if got := stats.TodayUsage(usage.Filter{Type: model.GoalTypeApp, Target: "Instagram"}); got != 40 {
		t.Errorf("TodayUsage(Instagram) = %d, want 40", got)
	}

	breakdown := stats.Breakdown("2026-10-17", usage.GroupByDevice)
	if len(breakdown) != 2 || breakdown[0].Key != model.DeviceLaptop {
		t.Errorf("Breakdown = %+v", breakdown)
	}

	day, err := stats.ParseDay("2026-10-14")
	if err != nil {
		t.Fatal(err)
	}
	week := stats.Weekly(day)
	if week[1].Date != "2026-10-13" || week[1].Minutes != 15 {
		t.Errorf("Weekly Tuesday = %+v", week[1])
	}

	progress := stats.GoalProgress()
	if len(progress) != 1 || !progress[0].Exceeded || progress[0].Used != 40 {
		t.Errorf("GoalProgress = %+v", progress)
	}

	summary := stats.Summary()
	if summary.Total != 100 || len(summary.Week) != 7 || len(summary.Goals) != 1 {
		t.Errorf("Summary = %+v", summary)
	}
}

func TestStatsServiceParseDay(t *testing.T) {
	s := service.NewStatsService(newTestStore(t), fixedClock, time.UTC)

	day, err := s.ParseDay("")
	if err != nil || !day.Equal(fixedNow) {
		t.Errorf("ParseDay(\"\") = %v, %v; want now", day, err)
	}
	if _, err := s.ParseDay("17/10/2026"); err == nil {
		t.Error("ParseDay accepted a non ISO date")
	}
}

func TestStatsServiceDailyTotals(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	entries := service.NewEntryService(st)
	stats := service.NewStatsService(st, fixedClock, time.UTC)

	for _, e := range []model.TimeEntry{
		newEntry("2026-10-17", "Instagram", 40),
		newEntry("2026-10-11", "Instagram", 20),
		newEntry("2026-10-10", "Instagram", 99),
	} {
		if _, err := entries.Create(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	days, err := stats.DailyTotals("", "")
	if err != nil {
		t.Fatalf("DailyTotals default: %v", err)
	}
	if len(days) != 7 || days[0].Date != "2026-10-11" || days[6].Date != "2026-10-17" {
		t.Fatalf("default range = %+v", days)
	}
	if days[0].Minutes != 20 || days[6].Minutes != 40 {
		t.Errorf("default minutes = %d, %d; want 20, 40", days[0].Minutes, days[6].Minutes)
	}

	days, err = stats.DailyTotals("2026-10-10", "2026-10-10")
	if err != nil || len(days) != 1 || days[0].Minutes != 99 {
		t.Errorf("single day = %+v, %v", days, err)
	}

	tests := []struct {
		name, from, to, field string
	}{
		{"bad from", "10/10/2026", "", "from"},
		{"bad to", "", "tomorrow", "to"},
		{"reversed", "2026-10-17", "2026-10-01", "from"},
		{"too long", "2025-01-01", "2026-10-17", "to"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stats.DailyTotals(tt.from, tt.to)
			var fe validation.FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want FieldErrors", err)
			}
			if _, ok := fe[tt.field]; !ok {
				t.Errorf("errors = %v, want one on %q", fe, tt.field)
			}
		})
	}

	if _, err := stats.DailyTotals("2025-10-17", "2026-10-17"); err != nil {
		t.Errorf("full year rejected: %v", err)
	}
}
