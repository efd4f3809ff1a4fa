// Package manual embeds the user manual and renders it for the terminal.
package manual

import (
	_ "embed"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/soundpad/internal/log"
)

//go:embed MANUAL.md
var manualText string

const defaultWidth = 80

// Text returns the raw markdown manual.
func Text() string {
	return manualText
}

// Render renders the manual for a terminal of the given width. When the
// styled renderer is unavailable the raw markdown is word-wrapped instead,
// so the manual always prints.
func Render(width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Warn(log.CatUI, "styled manual renderer unavailable", "error", err)
		return wordwrap.String(manualText, width)
	}

	out, err := r.Render(manualText)
	if err != nil {
		log.Warn(log.CatUI, "manual render failed", "error", err)
		return wordwrap.String(manualText, width)
	}
	return out
}
