package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/five82/pullview/internal/config"
	"github.com/five82/pullview/internal/refresh"
)

const barWidth = 24

// newProgressRenderer returns the renderer for the configured indicator. The
// spinner glyph itself animates outside the renderer; see Model.renderIndicator.
func newProgressRenderer(kind string, th Theme, st Styles) refresh.ProgressRenderer {
	switch kind {
	case config.IndicatorBar:
		bar := progress.New(
			progress.WithSolidFill(th.Accent),
			progress.WithoutPercentage(),
			progress.WithWidth(barWidth),
		)
		return func(s refresh.State, percent int) string {
			switch s {
			case refresh.Loading:
				return st.AccentText.Render("Refreshing…")
			case refresh.Primed:
				return bar.ViewAs(1) + st.SuccessText.Render(" release")
			default:
				return bar.ViewAs(float64(percent)/100) + st.MutedText.Render(fmt.Sprintf(" %3d%%", percent))
			}
		}

	case config.IndicatorArrow:
		return func(s refresh.State, percent int) string {
			switch s {
			case refresh.Loading:
				return st.AccentText.Render("⟳")
			case refresh.Primed:
				return st.SuccessText.Render("↑")
			default:
				if percent == 0 {
					return ""
				}
				return st.MutedText.Render(arrowFor(percent))
			}
		}

	default:
		return func(s refresh.State, percent int) string {
			switch s {
			case refresh.Loading:
				return st.AccentText.Render("Refreshing…")
			case refresh.Primed:
				return st.SuccessText.Render("↑ Release to refresh")
			default:
				if percent == 0 {
					return ""
				}
				return st.MutedText.Render(fmt.Sprintf("↓ Pull to refresh  %d%%", percent))
			}
		}
	}
}

// arrowFor turns the arrow as the pull approaches the threshold.
func arrowFor(percent int) string {
	switch {
	case percent < 34:
		return "↓"
	case percent < 67:
		return "↘"
	default:
		return "→"
	}
}
