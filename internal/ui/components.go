package ui

import (
	"context"
	"fmt"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"github.com/templui/screentime/internal/usage"
)

// Class merges utility classes so later ones override earlier conflicting ones.
func Class(classes ...string) string {
	return twmerge.Merge(classes...)
}

func Card(title string, body templ.Component, class ...string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.rawf(`<section class="%s">`, templ.EscapeString(Class(append([]string{"card p-4 rounded-lg"}, class...)...)))
		w.raw(`<h2>`)
		w.text(title)
		w.raw(`</h2>`)
		w.component(ctx, body)
		w.raw(`</section>`)
	})
}

// ProgressBar draws percent (clamped to 0..100) and turns red when exceeded.
func ProgressBar(label string, percent float64, exceeded bool) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		class := "w-full h-2 accent-emerald-500"
		if exceeded {
			class = Class(class, "accent-red-500")
		}
		w.rawf(`<progress class="%s" max="100" value="%.1f" aria-label="`, class, min(max(percent, 0), 100))
		w.text(label)
		w.raw(`">`)
		w.text(percentLabel(percent))
		w.raw(`</progress>`)
	})
}

// Minutes renders a duration like "1h 40m".
func Minutes(m int) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.rawf(`<span class="minutes" title="%d min">`, m)
		w.text(usage.FormatMinutes(m))
		w.raw(`</span>`)
	})
}

func Empty(message string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<p class="muted">`)
		w.text(message)
		w.raw(`</p>`)
	})
}

func percentLabel(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
