package autocomplete

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// maxVisible rows before the dropdown scrolls with the highlight.
const maxVisible = 8

var (
	dropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#30363d")).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9")).
			Padding(0, 1)

	activeItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#58a6ff")).
			Background(lipgloss.Color("#21262d")).
			Bold(true).
			Padding(0, 1)

	errorRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f85149")).
			Italic(true).
			Padding(0, 1)

	moreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e"))
)

// View renders the dropdown at width columns. It is empty while closed.
func (c Controller) View(width int) string {
	if !c.open {
		return ""
	}
	inner := max(width-6, 10)

	var b strings.Builder
	if c.errMsg != "" && len(c.suggestions) == 0 {
		b.WriteString(errorRowStyle.Render(ansi.Truncate(c.errMsg, inner, "…")))
		return dropdownStyle.Width(inner + 2).Render(b.String())
	}

	start := 0
	if c.active >= maxVisible {
		start = c.active - maxVisible + 1
	}
	end := min(start+maxVisible, len(c.suggestions))

	if start > 0 {
		b.WriteString(moreStyle.Render("  ↑ more above"))
		b.WriteString("\n")
	}

	for i := start; i < end; i++ {
		text := ansi.Truncate(c.suggestions[i], inner-4, "…")
		if i == c.active {
			b.WriteString(activeItemStyle.Width(inner).Render("› " + text))
		} else {
			b.WriteString(itemStyle.Render("  " + text))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end < len(c.suggestions) {
		b.WriteString("\n")
		b.WriteString(moreStyle.Render("  ↓ more below"))
	}

	return dropdownStyle.Width(inner + 2).Render(b.String())
}
