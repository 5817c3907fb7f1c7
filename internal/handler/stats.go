package handler

import (
	"net/http"

	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/service"
	"github.com/templui/screentime/internal/usage"
	"github.com/templui/screentime/internal/validation"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

type todayResponse struct {
	Date      string `json:"date"`
	Type      string `json:"type,omitempty"`
	Target    string `json:"target,omitempty"`
	Minutes   int    `json:"minutes"`
	Formatted string `json:"formatted"`
}

// Today sums today's usage, optionally narrowed with ?type=app|category&target=.
func (h *StatsHandler) Today(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := usage.Filter{Type: q.Get("type"), Target: q.Get("target")}

	if filter.Type != "" && !model.IsGoalType(filter.Type) {
		writeError(w, r, validation.FieldErrors{"type": "type must be total, category or app"})
		return
	}
	if filter.Type != "" && filter.Type != model.GoalTypeTotal && filter.Target == "" {
		writeError(w, r, validation.FieldErrors{"target": "target is required for this type"})
		return
	}

	minutes := h.statsService.TodayUsage(filter)
	writeJSON(w, http.StatusOK, todayResponse{
		Date:      h.statsService.Today(),
		Type:      filter.Type,
		Target:    filter.Target,
		Minutes:   minutes,
		Formatted: usage.FormatMinutes(minutes),
	})
}

type breakdownResponse struct {
	Date   string        `json:"date"`
	By     string        `json:"by"`
	Slices []model.Slice `json:"slices"`
}

func (h *StatsHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	by := q.Get("by")
	if by == "" {
		by = usage.GroupByCategory
	}
	if !usage.IsGroupKey(by) {
		writeError(w, r, validation.FieldErrors{"by": "by must be category, app or device"})
		return
	}

	date := q.Get("date")
	if date == "" {
		date = h.statsService.Today()
	} else if err := validation.ValidateDate(date); err != nil {
		writeError(w, r, validation.FieldErrors{"date": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, breakdownResponse{
		Date:   date,
		By:     by,
		Slices: h.statsService.Breakdown(date, by),
	})
}

type weeklyResponse struct {
	Week  string           `json:"week"`
	Start string           `json:"start"`
	End   string           `json:"end"`
	Total int              `json:"total"`
	Days  []model.DayTotal `json:"days"`
}

// Weekly returns Monday to Sunday totals for the week containing ?date=.
func (h *StatsHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	day, err := h.statsService.ParseDay(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, validation.FieldErrors{"date": err.Error()})
		return
	}

	days := h.statsService.Weekly(day)
	total := 0
	for _, d := range days {
		total += d.Minutes
	}

	start, end := usage.WeekRange(day)
	writeJSON(w, http.StatusOK, weeklyResponse{
		Week:  usage.ISOWeekLabel(day),
		Start: start.Format(model.DateLayout),
		End:   end.Format(model.DateLayout),
		Total: total,
		Days:  days,
	})
}

type dailyResponse struct {
	From  string           `json:"from"`
	To    string           `json:"to"`
	Total int              `json:"total"`
	Days  []model.DayTotal `json:"days"`
}

// Daily returns per-day totals for ?from=&to= (default the last seven days).
func (h *StatsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days, err := h.statsService.DailyTotals(q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	total := 0
	for _, d := range days {
		total += d.Minutes
	}
	writeJSON(w, http.StatusOK, dailyResponse{
		From:  days[0].Date,
		To:    days[len(days)-1].Date,
		Total: total,
		Days:  days,
	})
}

func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.statsService.Summary())
}
