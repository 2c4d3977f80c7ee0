package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// scrollbar returns one glyph per row of a track of the given height.
func scrollbar(vp *viewport.Model, height int, st Styles) []string {
	bar := make([]string, height)
	if height <= 0 {
		return bar
	}

	total := vp.TotalLineCount()
	if total <= vp.Height {
		for i := range bar {
			bar[i] = st.Scrollbar.Render(" ")
		}
		return bar
	}

	thumb := max(1, height*vp.Height/total)
	pct := min(max(vp.ScrollPercent(), 0), 1)
	start := int(float64(height-thumb)*pct + 0.5)

	for i := range bar {
		if i >= start && i < start+thumb {
			bar[i] = st.Scrollbar.Render("█")
		} else {
			bar[i] = st.Scrollbar.Render("░")
		}
	}
	return bar
}

// overlayScrollbar appends the scrollbar to each visible viewport line.
func overlayScrollbar(vp *viewport.Model, st Styles) string {
	lines := strings.Split(vp.View(), "\n")
	bar := scrollbar(vp, len(lines), st)
	for i := range lines {
		lines[i] += bar[i]
	}
	return strings.Join(lines, "\n")
}
