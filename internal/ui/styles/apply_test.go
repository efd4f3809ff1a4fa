package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyTheme_Default(t *testing.T) {
	err := ApplyTheme(ThemeConfig{})
	assert.NoError(t, err)
	// Should apply default preset colors
	assert.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
	assert.Equal(t, DefaultPreset.Colors[TokenPadActive], PadActiveColor.Dark)
}

func TestApplyTheme_Preset(t *testing.T) {
	// First add a test preset
	testPreset := Preset{
		Name:        "test",
		Description: "Test preset",
		Colors: map[ColorToken]string{
			TokenTextPrimary: "#FF0000",
		},
	}
	Presets["test"] = testPreset
	defer delete(Presets, "test")

	err := ApplyTheme(ThemeConfig{Preset: "test"})
	assert.NoError(t, err)
	assert.Equal(t, "#FF0000", TextPrimaryColor.Dark)
}

func TestApplyTheme_ColorOverride(t *testing.T) {
	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"pad.active": "#00FF00",
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "#00FF00", PadActiveColor.Dark)
}

func TestApplyTheme_PresetWithOverride(t *testing.T) {
	// Color override should take precedence over preset
	testPreset := Preset{
		Name:        "test2",
		Description: "Test preset 2",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#FF0000",
			TokenTextSecondary: "#0000FF",
		},
	}
	Presets["test2"] = testPreset
	defer delete(Presets, "test2")

	err := ApplyTheme(ThemeConfig{
		Preset: "test2",
		Colors: map[string]string{
			"text.primary": "#00FF00", // Override preset
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "#00FF00", TextPrimaryColor.Dark)   // Overridden
	assert.Equal(t, "#0000FF", TextSecondaryColor.Dark) // From preset
}

func TestApplyTheme_ResetsBetweenCalls(t *testing.T) {
	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"text.primary": "#123456",
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "#123456", TextPrimaryColor.Dark)

	// A later call without the override must not leak it
	err = ApplyTheme(ThemeConfig{})
	assert.NoError(t, err)
	assert.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
}

func TestApplyTheme_InvalidPreset(t *testing.T) {
	err := ApplyTheme(ThemeConfig{Preset: "nonexistent"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme preset")
}

func TestApplyTheme_InvalidToken(t *testing.T) {
	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"invalid.token": "#FF0000",
		},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown color token")
}

func TestApplyTheme_InvalidHexColor(t *testing.T) {
	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"text.primary": "not-a-color",
		},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid hex color")
}

func TestApplyTheme_InvalidMode(t *testing.T) {
	err := ApplyTheme(ThemeConfig{Mode: "sepia"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid theme mode")
}

func TestApplyTheme_AllPresets(t *testing.T) {
	for name := range Presets {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, ApplyTheme(ThemeConfig{Preset: name}))
		})
	}
	// Restore defaults for other tests
	assert.NoError(t, ApplyTheme(ThemeConfig{}))
}

func TestIsValidToken(t *testing.T) {
	tests := []struct {
		token ColorToken
		valid bool
	}{
		{TokenTextPrimary, true},
		{TokenStatusError, true},
		{TokenPadLoop, true},
		{ColorToken("invalid.token"), false},
		{ColorToken(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.token), func(t *testing.T) {
			assert.Equal(t, tt.valid, isValidToken(tt.token))
		})
	}
}

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		color string
		valid bool
	}{
		{"#FFF", true},
		{"#FFFFFF", true},
		{"#abc", true},
		{"#AbCdEf", true},
		{"#123456", true},
		{"FFFFFF", false},   // Missing #
		{"#FF", false},      // Too short
		{"#FFFFFFF", false}, // Too long
		{"#GGGGGG", false},  // Invalid chars
		{"not-color", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			assert.Equal(t, tt.valid, isValidHexColor(tt.color))
		})
	}
}
