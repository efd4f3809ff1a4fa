package board

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/soundpad/internal/catalog"
	"github.com/zjrosen/soundpad/internal/ui/styles"
)

const (
	padWidth   = 24
	feedHeight = 6
)

// View renders the pad grid (or the bindings table), the activity feed,
// and the help footer. The final frame passes through the zone scanner so
// pads stay clickable.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var main string
	if m.showBindings {
		main = m.bindingsView(width)
	} else {
		main = m.padsView(width)
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		main,
		m.feedView(width),
		m.help.View(m.keys),
	)
	return m.zones.Scan(view)
}

func (m Model) padsView(width int) string {
	if m.cat.Empty() {
		hint := styles.MutedStyle.Render(
			"No sounds found. Run `soundpad demo` to generate a starter pack.")
		return styles.RenderTitledBox(hint, "soundpad", m.statusLine(), width, 3, false)
	}

	perRow := max((width-2)/padWidth, 1)
	var rows []string
	var row []string
	for _, g := range m.cat.Groups() {
		row = append(row, m.renderPad(g))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	grid := strings.Join(rows, "\n")
	return styles.RenderTitledBox(grid, "soundpad", m.statusLine(), width, len(rows)+2, false)
}

// renderPad draws one cell: keycap, name, loop/stack markers, and the
// sequence position. Mid-sequence pads light up in the color of the mode
// they were triggered with.
func (m Model) renderPad(g *catalog.Group) string {
	pos := fmt.Sprintf("%d/%d", g.LastPlayedIndex+1, len(g.Sounds))
	if g.Idle() {
		pos = fmt.Sprintf("-/%d", len(g.Sounds))
	}

	markers := ""
	if !g.Idle() {
		if g.LoopEnabled {
			markers += "↻"
		}
		if g.StackEnabled {
			markers += "≡"
		}
	}
	right := pos
	if markers != "" {
		right = markers + " " + pos
	}

	nameBudget := padWidth - 4 - uniseg.StringWidth(right) - 2
	name := runewidth.Truncate(g.Name, nameBudget, "…")

	left := fmt.Sprintf("[%c] %s", g.Key, name)
	gap := padWidth - uniseg.StringWidth(left) - uniseg.StringWidth(right) - 1
	cell := left + strings.Repeat(" ", max(gap, 1)) + right + " "

	return m.zones.Mark(padZoneID(g.Name), m.padStyle(g).Render(cell))
}

func (m Model) padStyle(g *catalog.Group) lipgloss.Style {
	if g.Idle() {
		return lipgloss.NewStyle().Foreground(styles.PadIdleColor)
	}
	switch {
	case g.StackEnabled:
		return lipgloss.NewStyle().Bold(true).Foreground(styles.PadStackColor)
	case g.LoopEnabled:
		return lipgloss.NewStyle().Bold(true).Foreground(styles.PadLoopColor)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(styles.PadActiveColor)
	}
}

// statusLine is the top-edge annotation: global toggles and volume.
func (m Model) statusLine() string {
	g := m.machine.Global()
	parts := []string{
		"loop " + styles.FormatToggleDot(g.Loop),
		"stack " + styles.FormatToggleDot(g.Stack),
	}
	if m.volume != nil {
		parts = append(parts, fmt.Sprintf("vol %d%%", m.volume.Volume()))
	}
	return strings.Join(parts, "  ")
}

func (m Model) bindingsView(width int) string {
	groups := m.cat.Groups()
	annotation := fmt.Sprintf("%d/%d keys", m.table.Len(), m.table.Capacity())

	if len(groups) == 0 {
		return styles.RenderTitledBox(
			styles.MutedStyle.Render("no bindings"), "bindings", annotation, width, 3, true)
	}

	nameWidth := len("group")
	for _, g := range groups {
		if w := uniseg.StringWidth(g.Name); w > nameWidth {
			nameWidth = w
		}
	}

	var b strings.Builder
	b.WriteString(styles.MutedStyle.Render(
		fmt.Sprintf("%-3s  %-*s  %6s  %8s  %s", "key", nameWidth, "group", "sounds", "position", "mode")))
	for _, g := range groups {
		pos := "-"
		if !g.Idle() {
			pos = fmt.Sprintf("%d/%d", g.LastPlayedIndex+1, len(g.Sounds))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-3s  %-*s  %6d  %8s  %s",
			string(g.Key), nameWidth, g.Name, len(g.Sounds), pos, g.Mode))
	}

	height := len(groups) + 1
	if dropped := m.cat.Dropped(); len(dropped) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.StatusWarningStyle.Render(
			"dropped (no keys left): " + strings.Join(dropped, ", ")))
		height++
	}

	return styles.RenderTitledBox(b.String(), "bindings", annotation, width, height+2, true)
}

func (m Model) feedView(width int) string {
	lines := m.feed
	if len(lines) > feedHeight {
		lines = lines[len(lines)-feedHeight:]
	}
	shown := make([]string, len(lines))
	for i, l := range lines {
		shown[i] = truncate.String(l, uint(max(width-4, 1))) //nolint:gosec // G115: width is a small positive terminal dimension
	}
	return styles.RenderTitledBox(
		strings.Join(shown, "\n"), "activity", "", width, feedHeight+2, false)
}

// BindingsText renders the bindings as plain text, one per line. The
// ctrl+y copy and the keys subcommand print exactly this.
func BindingsText(cat *catalog.Catalog) string {
	groups := cat.Groups()
	if len(groups) == 0 {
		return "no bindings\n"
	}

	nameWidth := len("group")
	for _, g := range groups {
		if len(g.Name) > nameWidth {
			nameWidth = len(g.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-3s  %-*s  %6s  %5s\n", "key", nameWidth, "group", "sounds", "order")
	for _, g := range groups {
		fmt.Fprintf(&b, "%-3s  %-*s  %6d  %5s\n",
			string(g.Key), nameWidth, g.Name, len(g.Sounds), fmt.Sprintf("%03d", g.OrderIndex))
	}
	return b.String()
}

func shortPath(path string) string {
	return filepath.Base(path)
}
