package styles

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors the config file's theme section.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// tokenTargets maps each token to the color variable it controls.
func tokenTargets() map[ColorToken]*lipgloss.AdaptiveColor {
	return map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:   &TextPrimaryColor,
		TokenTextSecondary: &TextSecondaryColor,
		TokenTextMuted:     &TextMutedColor,
		TokenStatusSuccess: &StatusSuccessColor,
		TokenStatusWarning: &StatusWarningColor,
		TokenStatusError:   &StatusErrorColor,
		TokenBorderDefault: &BorderDefaultColor,
		TokenBorderFocus:   &BorderFocusColor,
		TokenPadIdle:       &PadIdleColor,
		TokenPadActive:     &PadActiveColor,
		TokenPadLoop:       &PadLoopColor,
		TokenPadStack:      &PadStackColor,
		TokenAccent:        &AccentColor,
	}
}

// initialPalette snapshots the compiled-in adaptive defaults so repeated
// ApplyTheme calls always start from the same base.
var initialPalette = func() map[ColorToken]lipgloss.AdaptiveColor {
	snap := make(map[ColorToken]lipgloss.AdaptiveColor)
	for tok, c := range tokenTargets() {
		snap[tok] = *c
	}
	return snap
}()

// ApplyTheme resets the palette to defaults, overlays the named preset and
// per-token overrides, then rebuilds the derived styles. Named presets and
// overrides force their hex on both light and dark variants.
func ApplyTheme(cfg ThemeConfig) error {
	targets := tokenTargets()

	for tok, c := range initialPalette {
		*targets[tok] = c
	}

	// "default" and "" both mean the compiled-in palette
	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset %q", cfg.Preset)
		}
		for tok, hex := range preset.Colors {
			if target, ok := targets[tok]; ok {
				target.Light = hex
				target.Dark = hex
			}
		}
	}

	for name, hex := range cfg.Colors {
		tok := ColorToken(name)
		if !isValidToken(tok) {
			return fmt.Errorf("unknown color token %q", name)
		}
		if !isValidHexColor(hex) {
			return fmt.Errorf("invalid hex color %q for token %q", hex, name)
		}
		target := targets[tok]
		target.Light = hex
		target.Dark = hex
	}

	switch cfg.Mode {
	case "":
		// terminal detection
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	default:
		return fmt.Errorf("invalid theme mode %q (must be light, dark, or empty)", cfg.Mode)
	}

	rebuildStyles()
	return nil
}

func isValidToken(tok ColorToken) bool {
	_, ok := tokenTargets()[tok]
	return ok
}

func isValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}
