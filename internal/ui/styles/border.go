package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderTitledBox renders content inside a rounded border with the title
// embedded in the top edge and an optional annotation on the right:
//
//	╭─ Title ──────── annotation ─╮
//
// Colors come from the active theme; focused boxes use the focus border
// color. Pass "" to omit either label.
func RenderTitledBox(content, title, annotation string, width, height int, focused bool) string {
	borderColor := BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	innerWidth := max(width-2, 1)
	topBorder := buildTopEdge(title, annotation, innerWidth, borderStyle)
	bottomBorder := borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)

	contentHeight := max(height-2, 1)
	constrained := lipgloss.NewStyle().Width(innerWidth).Height(contentHeight).Render(content)

	contentLines := strings.Split(constrained, "\n")
	body := make([]string, contentHeight)
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		if pad := innerWidth - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		body[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var b strings.Builder
	b.WriteString(topBorder)
	b.WriteString("\n")
	b.WriteString(strings.Join(body, "\n"))
	b.WriteString("\n")
	b.WriteString(bottomBorder)
	return b.String()
}

// buildTopEdge assembles the top border line. The title sits left, the
// annotation right; whichever doesn't fit is dropped, annotation first.
func buildTopEdge(title, annotation string, innerWidth int, borderStyle lipgloss.Style) string {
	plain := borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, max(innerWidth, 0)) + borderTopRight)
	if innerWidth < 1 || (title == "" && annotation == "") {
		return plain
	}

	// "─ Title ─" costs the title width plus 4 dashes/spaces; the annotation
	// costs its width plus 3 more. Labels that cannot fit are dropped,
	// annotation first.
	titleWidth := lipgloss.Width(title)
	if title != "" && titleWidth+4 > innerWidth {
		title = TruncateString(title, innerWidth-4)
		titleWidth = lipgloss.Width(title)
		if title == "" {
			return plain
		}
	}
	annotationWidth := lipgloss.Width(annotation)
	if annotation != "" && titleWidth+4+annotationWidth+3 > innerWidth {
		annotation = ""
		annotationWidth = 0
	}
	if title == "" && annotation == "" {
		return plain
	}

	var b strings.Builder
	b.WriteString(borderStyle.Render(borderTopLeft))

	used := 0
	if title != "" {
		b.WriteString(borderStyle.Render(borderHorizontal + " "))
		b.WriteString(TitleStyle.Render(title))
		b.WriteString(borderStyle.Render(" "))
		used = 3 + titleWidth
	}

	if annotation != "" {
		middle := innerWidth - used - annotationWidth - 3
		b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, max(middle, 1))))
		b.WriteString(borderStyle.Render(" "))
		b.WriteString(MutedStyle.Render(annotation))
		b.WriteString(borderStyle.Render(" " + borderHorizontal))
	} else {
		b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, max(innerWidth-used, 0))))
	}

	b.WriteString(borderStyle.Render(borderTopRight))
	return b.String()
}

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	result := ""
	for _, r := range s {
		test := result + string(r)
		if lipgloss.Width(test) > maxWidth-3 {
			break
		}
		result = test
	}

	return result + "..."
}
