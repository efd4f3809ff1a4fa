package styles

// Preset is a named, complete color palette.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// DefaultPreset is the palette applied when no preset is configured.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default soundpad theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextSecondary: "#999999",
		TokenTextMuted:     "#666666",
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#F5D573",
		TokenStatusError:   "#FF8787",
		TokenBorderDefault: "#444444",
		TokenBorderFocus:   "#54A0FF",
		TokenPadIdle:       "#666666",
		TokenPadActive:     "#73F59F",
		TokenPadLoop:       "#C792EA",
		TokenPadStack:      "#F5D573",
		TokenAccent:        "#54A0FF",
	},
}

// Presets holds the built-in themes, keyed by preset name.
var Presets = map[string]Preset{
	"default": DefaultPreset,
	"dracula": {
		Name:        "dracula",
		Description: "Dark theme with vibrant colors",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#F8F8F2",
			TokenTextSecondary: "#BFBFBF",
			TokenTextMuted:     "#6272A4",
			TokenStatusSuccess: "#50FA7B",
			TokenStatusWarning: "#F1FA8C",
			TokenStatusError:   "#FF5555",
			TokenBorderDefault: "#44475A",
			TokenBorderFocus:   "#BD93F9",
			TokenPadIdle:       "#6272A4",
			TokenPadActive:     "#50FA7B",
			TokenPadLoop:       "#BD93F9",
			TokenPadStack:      "#FFB86C",
			TokenAccent:        "#BD93F9",
		},
	},
	"nord": {
		Name:        "nord",
		Description: "Arctic, north-bluish palette",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#ECEFF4",
			TokenTextSecondary: "#D8DEE9",
			TokenTextMuted:     "#4C566A",
			TokenStatusSuccess: "#A3BE8C",
			TokenStatusWarning: "#EBCB8B",
			TokenStatusError:   "#BF616A",
			TokenBorderDefault: "#3B4252",
			TokenBorderFocus:   "#88C0D0",
			TokenPadIdle:       "#4C566A",
			TokenPadActive:     "#A3BE8C",
			TokenPadLoop:       "#B48EAD",
			TokenPadStack:      "#EBCB8B",
			TokenAccent:        "#88C0D0",
		},
	},
	"high-contrast": {
		Name:        "high-contrast",
		Description: "High contrast for accessibility",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#FFFFFF",
			TokenTextSecondary: "#FFFFFF",
			TokenTextMuted:     "#AAAAAA",
			TokenStatusSuccess: "#00FF00",
			TokenStatusWarning: "#FFFF00",
			TokenStatusError:   "#FF0000",
			TokenBorderDefault: "#FFFFFF",
			TokenBorderFocus:   "#00FFFF",
			TokenPadIdle:       "#FFFFFF",
			TokenPadActive:     "#00FF00",
			TokenPadLoop:       "#FF00FF",
			TokenPadStack:      "#FFFF00",
			TokenAccent:        "#00FFFF",
		},
	},
}
