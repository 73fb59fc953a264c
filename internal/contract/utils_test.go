package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/agrilens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "rating", input: string(schema.Excellent), expected: "Excellent"},
		{name: "hyphenated rating", input: string(schema.AtRisk), expected: "At Risk"},
		{name: "level", input: string(schema.HighLevel), expected: "High"},
		{name: "trend", input: string(schema.Declining), expected: "Declining"},
		{name: "empty", input: "", expected: schema.NotAvailable},
		{name: "multi-byte first rune", input: "ésta", expected: "Ésta"},
		{name: "single rune", input: "ñ", expected: "Ñ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	tests := []struct {
		input string
		color *color.Color
	}{
		{string(schema.Critical), CriticalColor},
		{string(schema.CriticalLevel), CriticalColor},
		{string(schema.Declining), CriticalColor},
		{string(schema.HighLevel), HighColor},
		{string(schema.Average), ModerateColor},
		{string(schema.Healthy), GoodColor},
		{string(schema.Stable), LowColor},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.color.Sprint(GetPlainLabel(tt.input)), GetColorLabel(tt.input))
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Good", Label(&Config{}, string(schema.Good)))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "Harvest Gold", TruncateText("Harvest Gold", 20))
	assert.Equal(t, "Harve...", TruncateText("Harvest Gold", 8))
	assert.Equal(t, "Harvest Gold", TruncateText("Harvest Gold", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1", " true "} {
		b, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, b, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		b, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, b, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.csv")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestSetVerbose(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(true)
	assert.True(t, Logger().Core().Enabled(-1)) // debug
	SetVerbose(false)
	assert.False(t, Logger().Core().Enabled(-1))
	assert.True(t, Logger().Core().Enabled(1)) // warn
}
