package refresh

import "fmt"

// TextRenderer is the plain renderer used when none is configured.
func TextRenderer(state State, percent int) string {
	switch state {
	case Primed:
		return "↑ release to refresh"
	case Loading:
		return "⟳ refreshing…"
	default:
		if percent <= 0 {
			return ""
		}
		return fmt.Sprintf("↓ pull to refresh %d%%", percent)
	}
}
