package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/muesli/termenv"
)

const previewCacheSize = 128

// previewer renders note bodies to styled terminal markdown, caching
// rendered frames keyed by path, wrap width and mod time. The mod
// time in the key means an edited note re-renders without explicit
// invalidation; the whole cache is dropped when a new search runs.
type previewer struct {
	cache *lru.Cache[string, string]
}

func newPreviewer() (*previewer, error) {
	c, err := lru.New[string, string](previewCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview cache: %w", err)
	}
	return &previewer{cache: c}, nil
}

func (p *previewer) render(path string, width int) string {
	key := p.key(path, width)
	if cached, ok := p.cache.Get(key); ok {
		return cached
	}

	rendered := renderMarkdown(path, width)
	p.cache.Add(key, rendered)
	return rendered
}

func (p *previewer) reset() {
	p.cache.Purge()
}

func (p *previewer) key(path string, width int) string {
	modTime := int64(0)
	if info, err := os.Stat(path); err == nil {
		modTime = info.ModTime().UnixNano()
	}
	return fmt.Sprintf("%s|%d|%d", path, width, modTime)
}

func renderMarkdown(path string, width int) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return "Error reading file"
	}

	if width <= 0 {
		width = 80
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}

	return markdown
}

// viewportSlice cuts one screen of lines out of rendered content.
// offset is assumed clamped already; a short tail pads to nothing.
func viewportSlice(content string, offset, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if offset >= len(lines) {
		return ""
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n")
}

func lineCount(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}
