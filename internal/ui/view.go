package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pullview/internal/refresh"
	"github.com/five82/pullview/internal/state"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	snap := m.mnt.ctrl.Snapshot()
	sections := []string{m.renderHeader(snap)}
	if rows := m.surf.rows(); rows > 0 {
		sections = append(sections, m.renderIndicator(snap, rows))
	}
	sections = append(sections, m.renderContent(snap), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the source and when it was last refreshed.
func (m Model) renderHeader(rs refresh.Snapshot) string {
	st := m.styles
	data := m.store.Snapshot()

	parts := []string{st.Title.Render("pullview"), st.Header.UnsetPadding().Render(data.Source)}
	parts = append(parts, m.statusLabel(data, rs))

	return st.Header.Width(m.width).MaxHeight(headerRows).Render(strings.Join(parts, "  "))
}

func (m Model) statusLabel(data state.Snapshot, rs refresh.Snapshot) string {
	st := m.styles
	switch {
	case rs.State == refresh.Loading:
		return st.Header.UnsetPadding().Foreground(lipgloss.Color(m.theme.Accent)).Render("refreshing")
	case data.LastError != nil && data.IsStale():
		return st.Header.UnsetPadding().Foreground(lipgloss.Color(m.theme.Danger)).
			Render(fmt.Sprintf("stale: %v", data.LastError))
	case data.LastError != nil:
		return st.Header.UnsetPadding().Foreground(lipgloss.Color(m.theme.Warning)).
			Render(fmt.Sprintf("error: %v", data.LastError))
	case data.LastUpdated.IsZero():
		return st.Header.UnsetPadding().Foreground(lipgloss.Color(m.theme.Muted)).Render("pull to load")
	default:
		ago := humanizeDuration(m.now().Sub(data.LastUpdated))
		label := "updated " + ago
		if ago != "now" {
			label += " ago"
		}
		return st.Header.UnsetPadding().Foreground(lipgloss.Color(m.theme.Muted)).Render(label)
	}
}

// renderIndicator fills the rows the pull opened above the content. The
// indicator sits on the row nearest the content.
func (m Model) renderIndicator(rs refresh.Snapshot, rows int) string {
	fill := m.styles.Surface.Width(m.width)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = fill.Render("")
	}
	if m.cfg.ShowsIndicators {
		label := m.mnt.ctrl.Render()
		if rs.State == refresh.Loading {
			label = m.spinner.View() + m.styles.Surface.Render(" ") + label
		}
		lines[rows-1] = fill.Align(lipgloss.Center).Render(label)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderContent(rs refresh.Snapshot) string {
	fill := m.styles.Surface.Width(m.width).Height(m.vp.Height)
	if rs.State == refresh.Loading && !m.cfg.ShowsContentUnderProgressWhenLoading {
		return fill.Render("")
	}
	if !m.store.Snapshot().HasData {
		msg := m.styles.FaintText.Render("Nothing here yet. Pull down to refresh.")
		return fill.Align(lipgloss.Center, lipgloss.Center).Render(msg)
	}
	vp := m.vp
	if m.cfg.ShowsIndicators {
		return fill.Render(overlayScrollbar(&vp, m.styles))
	}
	return fill.Render(vp.View())
}

func (m Model) renderFooter() string {
	return m.styles.Footer.Width(m.width).MaxHeight(footerRows).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m Model) renderHelp() string {
	title := m.styles.Title.Render("Keys")
	body := m.help.FullHelpView(m.keys.FullHelp())
	hint := m.styles.FaintText.Render("press any key to close")
	box := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Surface)))
}

// renderLines styles feed lines for the viewport.
func renderLines(lines []string, st Styles) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = st.Text.Render(line)
	}
	return strings.Join(out, "\n")
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}
