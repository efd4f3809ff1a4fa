package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTitledBox_Basic(t *testing.T) {
	result := RenderTitledBox("content", "Pads", "", 20, 5, false)

	// Should contain border characters
	require.Contains(t, result, "╭", "missing top-left corner")
	require.Contains(t, result, "╮", "missing top-right corner")
	require.Contains(t, result, "╰", "missing bottom-left corner")
	require.Contains(t, result, "╯", "missing bottom-right corner")

	// Should contain title in first line
	lines := strings.Split(result, "\n")
	require.NotEmpty(t, lines, "no lines in result")
	require.Contains(t, lines[0], "Pads", "title not found in first line")
}

func TestRenderTitledBox_Focused(t *testing.T) {
	unfocused := RenderTitledBox("content", "Pads", "", 20, 5, false)
	focused := RenderTitledBox("content", "Pads", "", 20, 5, true)

	unfocusedLines := strings.Split(unfocused, "\n")
	focusedLines := strings.Split(focused, "\n")

	require.Equal(t, len(unfocusedLines), len(focusedLines), "different line counts")
	require.Contains(t, unfocused, "Pads", "unfocused missing title")
	require.Contains(t, focused, "Pads", "focused missing title")
}

func TestRenderTitledBox_LongTitle(t *testing.T) {
	longTitle := "This Is A Very Long Title That Should Be Truncated"
	result := RenderTitledBox("content", longTitle, "", 20, 5, false)

	require.Contains(t, result, "╭", "missing top-left corner")

	lines := strings.Split(result, "\n")
	require.NotEmpty(t, lines, "no lines in result")

	firstLineWidth := lipgloss.Width(lines[0])
	require.LessOrEqual(t, firstLineWidth, 20, "first line too wide: %d > 20", firstLineWidth)
	require.Contains(t, lines[0], "...", "long title should be truncated with ellipsis")
}

func TestRenderTitledBox_EmptyContent(t *testing.T) {
	result := RenderTitledBox("", "Pads", "", 20, 5, false)

	require.Contains(t, result, "╭", "missing top-left corner")
	require.Contains(t, result, "Pads", "missing title")

	// 1 top border + 3 content lines (height 5 - 2 borders) + 1 bottom border = 5
	lines := strings.Split(result, "\n")
	require.Len(t, lines, 5, "expected 5 lines")
}

func TestRenderTitledBox_NarrowWidth(t *testing.T) {
	result := RenderTitledBox("x", "T", "", 6, 3, false)

	require.Contains(t, result, "╭", "missing top-left corner")
	require.Contains(t, result, "╯", "missing bottom-right corner")

	lines := strings.Split(result, "\n")
	for i, line := range lines {
		w := lipgloss.Width(line)
		require.LessOrEqual(t, w, 6, "line %d too wide: %d > 6, content: %q", i, w, line)
	}
}

func TestRenderTitledBox_NoLabels(t *testing.T) {
	result := RenderTitledBox("content", "", "", 20, 5, false)

	lines := strings.Split(result, "\n")
	require.NotEmpty(t, lines, "no lines in result")
	require.True(t, strings.HasPrefix(lines[0], "╭"), "should start with top-left corner")
	require.True(t, strings.HasSuffix(lines[0], "╮"), "should end with top-right corner")
}

func TestRenderTitledBox_Annotation(t *testing.T) {
	result := RenderTitledBox("content", "Pads", "loop ●", 40, 5, false)

	lines := strings.Split(result, "\n")
	require.NotEmpty(t, lines, "no lines in result")
	require.Contains(t, lines[0], "Pads", "title not found")
	require.Contains(t, lines[0], "loop ●", "annotation not found")

	firstLineWidth := lipgloss.Width(lines[0])
	require.Equal(t, 40, firstLineWidth, "top border should span the full width")
}

func TestRenderTitledBox_AnnotationDroppedWhenNarrow(t *testing.T) {
	result := RenderTitledBox("content", "Pads", "a very long annotation", 16, 5, false)

	lines := strings.Split(result, "\n")
	require.NotEmpty(t, lines, "no lines in result")
	require.Contains(t, lines[0], "Pads", "title should survive")
	require.NotContains(t, lines[0], "annotation", "annotation should be dropped when it cannot fit")

	firstLineWidth := lipgloss.Width(lines[0])
	require.LessOrEqual(t, firstLineWidth, 16, "first line too wide")
}

func TestRenderTitledBox_MultilineContent(t *testing.T) {
	content := "Line 1\nLine 2\nLine 3"
	result := RenderTitledBox(content, "Pads", "", 20, 7, false)

	require.Contains(t, result, "Line 1", "missing Line 1")
	require.Contains(t, result, "Line 2", "missing Line 2")
	require.Contains(t, result, "Line 3", "missing Line 3")
}

func TestRenderTitledBox_ContentPadding(t *testing.T) {
	result := RenderTitledBox("Hi", "Pads", "", 20, 5, false)

	lines := strings.Split(result, "\n")

	// Content lines (middle ones) should all be padded to the same width
	for i := 1; i < len(lines)-1; i++ {
		w := lipgloss.Width(lines[i])
		require.Equal(t, 20, w, "line %d width %d, expected 20: %q", i, w, lines[i])
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "Hello", 10, "Hello"},
		{"exact", "Hello", 5, "Hello"},
		{"truncate", "Hello World", 8, "Hello..."},
		{"very short", "Hello", 3, "..."},
		{"minimal", "Hello", 1, "."},
		{"zero", "Hello", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxWidth)
			require.Equal(t, tt.want, got, "TruncateString(%q, %d)", tt.input, tt.maxWidth)
		})
	}
}
