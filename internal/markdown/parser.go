package markdown

import (
	"bytes"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Parser renders entry notes. Raw HTML in the source is dropped, so the
// output is safe to embed in pages.
type Parser struct {
	md goldmark.Markdown

	mu    sync.Mutex
	cache map[string][]byte
}

const maxCached = 512

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md:    md,
		cache: make(map[string][]byte),
	}
}

func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Notes renders a note, memoizing results since the dashboard re-renders the
// same notes on every load.
func (p *Parser) Notes(notes string) ([]byte, error) {
	if notes == "" {
		return nil, nil
	}

	p.mu.Lock()
	html, ok := p.cache[notes]
	p.mu.Unlock()
	if ok {
		return html, nil
	}

	html, err := p.Parse([]byte(notes))
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if len(p.cache) >= maxCached {
		clear(p.cache)
	}
	p.cache[notes] = html
	p.mu.Unlock()
	return html, nil
}
