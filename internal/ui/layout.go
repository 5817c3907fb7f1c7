package ui

import (
	"context"

	"github.com/a-h/templ"
	"github.com/templui/screentime/internal/ctxkeys"
)

const styles = `
body{font-family:system-ui,sans-serif;margin:0;background:#f6f7f9;color:#1f2430}
header{display:flex;justify-content:space-between;align-items:center;padding:1rem 1.5rem;background:#fff;border-bottom:1px solid #e3e6ea}
header nav a{margin-left:1rem;color:#3b5bdb;text-decoration:none}
header nav a.active{font-weight:600}
main{display:grid;grid-template-columns:repeat(auto-fit,minmax(320px,1fr));gap:1rem;padding:1.5rem}
.card{background:#fff;border:1px solid #e3e6ea}
.p-4{padding:1rem}.p-6{padding:1.5rem}.rounded-lg{border-radius:.5rem}
.col-span-full{grid-column:1/-1}
.w-full{width:100%}.h-2{height:.5rem}
.accent-emerald-500{accent-color:#10b981}.accent-red-500{accent-color:#ef4444}
.muted{color:#6b7280}
.total{font-size:2.5rem;font-weight:700;margin:.25rem 0}
table{width:100%;border-collapse:collapse}td,th{padding:.35rem .5rem;text-align:left;border-bottom:1px solid #f0f1f3}
.notes p{margin:.25rem 0}
.week{display:flex;gap:.5rem;align-items:flex-end}
.week div{flex:1;text-align:center;font-size:.8rem}
#toast{position:fixed;bottom:1rem;right:1rem}
`

// Layout wraps page content in the HTML shell. Inline styles and scripts
// carry the request nonce so they pass the CSP.
func Layout(title string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		appName := "Screen Time"
		if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
			appName = cfg.AppName
		}
		nonce := templ.GetNonce(ctx)

		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		w.text(title + " | " + appName)
		w.raw(`</title><style nonce="`)
		w.text(nonce)
		w.raw(`">`)
		w.raw(styles)
		w.raw(`</style></head><body><header><strong>`)
		w.text(appName)
		w.raw(`</strong><nav>`)
		navLink(w, ctxkeys.URLPath(ctx), "/", "Dashboard")
		navLink(w, "", "/api/export", "Export")
		w.raw(`</nav></header>`)
		w.component(ctx, body)
		w.raw(`<div id="toast" role="status"></div></body></html>`)
	})
}

func navLink(w *writer, current, href, label string) {
	class := ""
	if current == href {
		class = ` class="active"`
	}
	w.rawf(`<a href="%s"%s>`, templ.EscapeString(href), class)
	w.text(label)
	w.raw(`</a>`)
}

func NotFound() templ.Component {
	return Layout("Not found", component(func(ctx context.Context, w *writer) {
		w.raw(`<main><section class="card p-6 rounded-lg col-span-full"><h1>Page not found</h1><p class="muted">The page `)
		w.text(ctxkeys.URLPath(ctx))
		w.raw(` does not exist.</p><a href="/">Back to the dashboard</a></section></main>`)
	}))
}
