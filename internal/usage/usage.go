// Package usage computes sums and groupings over time entries for the
// dashboard and the stats API. All functions are pure and return zero values
// when nothing matches.
package usage

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/templui/screentime/internal/model"
)

const (
	GroupByCategory = "category"
	GroupByApp      = "app"
	GroupByDevice   = "device"
)

// Filter narrows a usage sum to one app or one category. An empty Type or
// model.GoalTypeTotal sums everything.
type Filter struct {
	Type   string
	Target string
}

// GoalFilter returns the filter a goal is measured against.
func GoalFilter(g model.Goal) Filter {
	return Filter{Type: g.Type, Target: g.Target}
}

func (f Filter) match(e model.TimeEntry) bool {
	switch f.Type {
	case model.GoalTypeApp:
		return e.App == f.Target
	case model.GoalTypeCategory:
		return e.Category == f.Target
	default:
		return true
	}
}

// TodayUsage sums the durations of entries dated today that pass filter.
func TodayUsage(entries []model.TimeEntry, today string, filter Filter) int {
	total := 0
	for _, e := range entries {
		if e.Date == today && filter.match(e) {
			total += e.Duration
		}
	}
	return total
}

// UsageByDate returns the entries dated date, in input order.
func UsageByDate(entries []model.TimeEntry, date string) []model.TimeEntry {
	out := []model.TimeEntry{}
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// IsGroupKey reports whether key is accepted by GroupBy.
func IsGroupKey(key string) bool {
	return key == GroupByCategory || key == GroupByApp || key == GroupByDevice
}

func groupValue(e model.TimeEntry, key string) string {
	switch key {
	case GroupByApp:
		return e.App
	case GroupByDevice:
		return e.Device
	default:
		return e.Category
	}
}

// GroupBy totals entries per category, app or device. Slices are sorted by
// minutes descending, ties by key ascending. Percent is the share of the
// overall total rounded to one decimal place.
func GroupBy(entries []model.TimeEntry, key string) []model.Slice {
	totals := map[string]int{}
	sum := 0
	for _, e := range entries {
		totals[groupValue(e, key)] += e.Duration
		sum += e.Duration
	}

	out := make([]model.Slice, 0, len(totals))
	for k, minutes := range totals {
		out = append(out, model.Slice{
			Key:     k,
			Minutes: minutes,
			Percent: percent(minutes, sum),
		})
	}

	slices.SortFunc(out, func(a, b model.Slice) int {
		if c := cmp.Compare(b.Minutes, a.Minutes); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

// DailyTotals returns one bucket per day from from to to inclusive. Only the
// calendar date of from and to is used.
func DailyTotals(entries []model.TimeEntry, from, to time.Time) []model.DayTotal {
	byDate := map[string]int{}
	for _, e := range entries {
		byDate[e.Date] += e.Duration
	}

	from = StartOfDay(from)
	to = StartOfDay(to)

	var out []model.DayTotal
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(model.DateLayout)
		out = append(out, model.DayTotal{
			Date:    date,
			Weekday: d.Weekday(),
			Minutes: byDate[date],
		})
	}
	return out
}

// WeeklyUsage buckets usage for Monday through Sunday of the ISO week
// containing day.
func WeeklyUsage(entries []model.TimeEntry, day time.Time) []model.DayTotal {
	monday, sunday := WeekRange(day)
	return DailyTotals(entries, monday, sunday)
}

// GoalProgress measures today's usage against every goal, in goal order.
func GoalProgress(goals []model.Goal, entries []model.TimeEntry, today string) []model.GoalProgress {
	out := make([]model.GoalProgress, 0, len(goals))
	for _, g := range goals {
		used := TodayUsage(entries, today, GoalFilter(g))
		out = append(out, model.GoalProgress{
			Goal:      g,
			Used:      used,
			Remaining: max(g.Limit-used, 0),
			Percent:   percent(used, g.Limit),
			Exceeded:  used > g.Limit,
		})
	}
	return out
}

// Summarize builds the dashboard view for today.
func Summarize(entries []model.TimeEntry, goals []model.Goal, today time.Time) model.Summary {
	date := today.Format(model.DateLayout)
	todays := UsageByDate(entries, date)

	return model.Summary{
		Date:       date,
		Total:      TodayUsage(entries, date, Filter{}),
		ByCategory: GroupBy(todays, GroupByCategory),
		ByApp:      GroupBy(todays, GroupByApp),
		ByDevice:   GroupBy(todays, GroupByDevice),
		Week:       WeeklyUsage(entries, today),
		Goals:      GoalProgress(goals, entries, date),
		Entries:    todays,
	}
}

func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(whole)) / 10
}
