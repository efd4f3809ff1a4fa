// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// ColorToken names a themable color. Tokens use dot notation so config
// overrides read naturally (colors: {"pad.active": "#50FA7B"}).
type ColorToken string

const (
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"
	TokenPadIdle       ColorToken = "pad.idle"
	TokenPadActive     ColorToken = "pad.active"
	TokenPadLoop       ColorToken = "pad.loop"
	TokenPadStack      ColorToken = "pad.stack"
	TokenAccent        ColorToken = "accent"
)

// Theme colors. ApplyTheme rewrites these; rebuildStyles derives the style
// values below from them.
var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#2E8B57", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#F5D573"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF8787"}
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#444444"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#2B6CB0", Dark: "#54A0FF"}
	PadIdleColor       = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#666666"}
	PadActiveColor     = lipgloss.AdaptiveColor{Light: "#2E8B57", Dark: "#73F59F"}
	PadLoopColor       = lipgloss.AdaptiveColor{Light: "#6B46C1", Dark: "#C792EA"}
	PadStackColor      = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#F5D573"}
	AccentColor        = lipgloss.AdaptiveColor{Light: "#2B6CB0", Dark: "#54A0FF"}
)

// Derived styles, rebuilt whenever the theme changes.
var (
	TitleStyle         lipgloss.Style
	TextStyle          lipgloss.Style
	MutedStyle         lipgloss.Style
	KeycapStyle        lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarningStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	HelpKeyStyle       lipgloss.Style
	HelpDescStyle      lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles re-derives style values from the current theme colors.
func rebuildStyles() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	TextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	KeycapStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	StatusSuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	StatusWarningStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	HelpDescStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
}
