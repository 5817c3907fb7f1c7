package ui

import (
	"context"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/usage"
)

// NotesRenderer turns entry notes into HTML.
type NotesRenderer func(notes string) ([]byte, error)

type DashboardProps struct {
	Summary model.Summary
	Notes   NotesRenderer
}

func Dashboard(p DashboardProps) templ.Component {
	return Layout("Dashboard", component(func(ctx context.Context, w *writer) {
		s := p.Summary
		w.raw(`<main>`)
		w.component(ctx, Card("Today", todayCard(s)))
		w.component(ctx, Card("Goals", goalsCard(s.Goals)))
		w.component(ctx, Card("By category", sliceTable(s.ByCategory, true)))
		w.component(ctx, Card("By device", sliceTable(s.ByDevice, true)))
		w.component(ctx, Card("Top apps", sliceTable(s.ByApp, false)))
		w.component(ctx, Card("This week", weekCard(s.Week)))
		w.component(ctx, Card("Entries", entriesTable(s.Entries, p.Notes), "col-span-full"))
		w.component(ctx, Card("Log time", entryForm(s.Date), "col-span-full"))
		w.raw(`</main>`)
		w.rawf(`<script nonce="%s">`, templ.EscapeString(templ.GetNonce(ctx)))
		w.raw(dashboardScript)
		w.raw(`</script>`)
	}))
}

func todayCard(s model.Summary) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<p class="total">`)
		w.component(ctx, Minutes(s.Total))
		w.raw(`</p><p class="muted">`)
		w.text(s.Date)
		w.rawf(` · %d entries</p>`, len(s.Entries))
	})
}

func goalsCard(goals []model.GoalProgress) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		if len(goals) == 0 {
			w.component(ctx, Empty("No goals yet."))
			return
		}
		w.raw(`<table><tbody>`)
		for _, g := range goals {
			label := usage.GoalLabel(g.Goal)
			w.raw(`<tr><td>`)
			w.text(label)
			w.raw(`</td><td>`)
			w.component(ctx, ProgressBar(label, g.Percent, g.Exceeded))
			w.raw(`</td><td>`)
			w.component(ctx, Minutes(g.Used))
			w.raw(` / `)
			w.component(ctx, Minutes(g.Goal.Limit))
			w.raw(`</td></tr>`)
		}
		w.raw(`</tbody></table>`)
	})
}

// sliceTable lists grouped usage. Enum keys are title-cased, app names are
// shown as entered.
func sliceTable(slices []model.Slice, enum bool) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		if len(slices) == 0 {
			w.component(ctx, Empty("Nothing logged today."))
			return
		}
		w.raw(`<table><tbody>`)
		for _, s := range slices {
			key := s.Key
			if enum {
				key = usage.Label(key)
			}
			w.raw(`<tr><td>`)
			w.text(key)
			w.raw(`</td><td>`)
			w.component(ctx, Minutes(s.Minutes))
			w.raw(`</td><td class="muted">`)
			w.text(percentLabel(s.Percent))
			w.raw(`</td></tr>`)
		}
		w.raw(`</tbody></table>`)
	})
}

func weekCard(week []model.DayTotal) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		peak := 0
		total := 0
		for _, d := range week {
			peak = max(peak, d.Minutes)
			total += d.Minutes
		}

		w.raw(`<div class="week">`)
		for _, d := range week {
			pct := 0.0
			if peak > 0 {
				pct = float64(d.Minutes) / float64(peak) * 100
			}
			w.raw(`<div>`)
			w.component(ctx, ProgressBar(d.Date, pct, false))
			w.text(d.Weekday.String()[:3])
			w.raw(`<br>`)
			w.component(ctx, Minutes(d.Minutes))
			w.raw(`</div>`)
		}
		w.raw(`</div><p class="muted">Week total: `)
		w.component(ctx, Minutes(total))
		w.raw(`</p>`)
	})
}

func entriesTable(entries []model.TimeEntry, notes NotesRenderer) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		if len(entries) == 0 {
			w.component(ctx, Empty("No entries for today."))
			return
		}
		w.raw(`<table><thead><tr><th>App</th><th>Category</th><th>Device</th><th>Time</th><th>Notes</th><th></th></tr></thead><tbody>`)
		for _, e := range entries {
			w.raw(`<tr><td>`)
			w.text(e.App)
			w.raw(`</td><td>`)
			w.text(usage.Label(e.Category))
			w.raw(`</td><td>`)
			w.text(usage.Label(e.Device))
			w.raw(`</td><td>`)
			w.component(ctx, Minutes(e.Duration))
			w.raw(`</td><td class="notes">`)
			if notes != nil && e.Notes != "" {
				html, err := notes(e.Notes)
				if err != nil {
					slog.Warn("failed to render notes", "error", err, "entry_id", e.ID)
					w.text(e.Notes)
				} else {
					w.raw(string(html))
				}
			}
			w.raw(`</td><td><button type="button" data-delete="`)
			w.text(e.ID)
			w.raw(`">Delete</button></td></tr>`)
		}
		w.raw(`</tbody></table>`)
	})
}

func entryForm(date string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<form id="entry-form"><input type="hidden" name="date" value="`)
		w.text(date)
		w.raw(`"><input name="app" placeholder="App" maxlength="100" required> `)
		selectField(w, "category", model.Categories)
		w.raw(` `)
		selectField(w, "device", model.Devices)
		w.raw(` <input name="duration" type="number" min="0" max="1440" placeholder="Minutes" required> `)
		w.raw(`<textarea name="notes" maxlength="1000" placeholder="Notes (markdown)"></textarea> `)
		w.raw(`<button type="submit">Add</button></form>`)
	})
}

func selectField(w *writer, name string, options []string) {
	w.rawf(`<select name="%s">`, name)
	for _, o := range options {
		w.raw(`<option value="`)
		w.text(o)
		w.raw(`">`)
		w.text(usage.Label(o))
		w.raw(`</option>`)
	}
	w.raw(`</select>`)
}

const dashboardScript = `
const toast = (html) => { document.getElementById("toast").innerHTML = html; };
document.getElementById("entry-form").addEventListener("submit", async (ev) => {
  ev.preventDefault();
  const data = Object.fromEntries(new FormData(ev.target));
  data.duration = Number(data.duration);
  const res = await fetch("/api/entries", {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(data)});
  if (res.ok) { location.reload(); return; }
  const body = await res.json();
  toast(Object.values(body.fields || {error: body.error}).join("<br>"));
});
document.querySelectorAll("[data-delete]").forEach((btn) => btn.addEventListener("click", async () => {
  const res = await fetch("/api/entries/" + btn.dataset.delete, {method: "DELETE"});
  if (!res.ok) return;
  const deleted = await res.json();
  btn.closest("tr").remove();
  toast('Entry deleted. <button type="button" id="undo">Undo</button>');
  document.getElementById("undo").addEventListener("click", async () => {
    await fetch("/api/entries/restore", {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(deleted)});
    location.reload();
  });
}));
`
