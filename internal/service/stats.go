package service

import (
	"fmt"
	"time"

	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/store"
	"github.com/templui/screentime/internal/usage"
	"github.com/templui/screentime/internal/validation"
)

// Clock returns the current time. Tests substitute a fixed one.
type Clock func() time.Time

type StatsService struct {
	store *store.Store
	clock Clock
	loc   *time.Location
}

func NewStatsService(store *store.Store, clock Clock, loc *time.Location) *StatsService {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{store: store, clock: clock, loc: loc}
}

// Now is the current time in the configured timezone.
func (s *StatsService) Now() time.Time {
	return s.clock().In(s.loc)
}

// Today is the current calendar date as YYYY-MM-DD.
func (s *StatsService) Today() string {
	return s.Now().Format(model.DateLayout)
}

// ParseDay parses a YYYY-MM-DD date in the configured timezone. An empty
// string means today.
func (s *StatsService) ParseDay(date string) (time.Time, error) {
	if date == "" {
		return s.Now(), nil
	}
	day, err := time.ParseInLocation(model.DateLayout, date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day, nil
}

func (s *StatsService) TodayUsage(filter usage.Filter) int {
	return usage.TodayUsage(s.store.Entries(), s.Today(), filter)
}

func (s *StatsService) ByDate(date string) []model.TimeEntry {
	return usage.UsageByDate(s.store.Entries(), date)
}

func (s *StatsService) Breakdown(date, key string) []model.Slice {
	return usage.GroupBy(s.ByDate(date), key)
}

func (s *StatsService) Weekly(day time.Time) []model.DayTotal {
	return usage.WeeklyUsage(s.store.Entries(), day)
}

// MaxDailyRange bounds the number of days DailyTotals returns.
const MaxDailyRange = 366

// DailyTotals buckets usage per day from from to to inclusive. Empty bounds
// default to the seven days ending today.
func (s *StatsService) DailyTotals(from, to string) ([]model.DayTotal, error) {
	end, err := s.ParseDay(to)
	if err != nil {
		return nil, validation.FieldErrors{"to": err.Error()}
	}
	start := end.AddDate(0, 0, -6)
	if from != "" {
		start, err = s.ParseDay(from)
		if err != nil {
			return nil, validation.FieldErrors{"from": err.Error()}
		}
	}

	start, end = usage.StartOfDay(start), usage.StartOfDay(end)
	if start.After(end) {
		return nil, validation.FieldErrors{"from": "from must not be after to"}
	}
	if end.Sub(start) >= MaxDailyRange*24*time.Hour {
		return nil, validation.FieldErrors{"to": fmt.Sprintf("range is limited to %d days", MaxDailyRange)}
	}
	return usage.DailyTotals(s.store.Entries(), start, end), nil
}

func (s *StatsService) GoalProgress() []model.GoalProgress {
	return usage.GoalProgress(sortGoals(s.store.Goals()), s.store.Entries(), s.Today())
}

func (s *StatsService) Summary() model.Summary {
	return usage.Summarize(s.store.Entries(), sortGoals(s.store.Goals()), s.Now())
}
