package contract

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/huangsam/agrilens/schema"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // CriticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // HighColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // ModerateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // LowColor represents informational / low-priority signal.
	GoodColor     = color.New(color.FgGreen)               // GoodColor represents a healthy or improving signal.
)

// GetPlainLabel returns the display text for a rating, level or trend value.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(value string) string {
	switch value {
	case string(schema.AtRisk):
		return "At Risk"
	case "":
		return schema.NotAvailable
	default:
		r, size := utf8.DecodeRuneInString(value)
		return string(unicode.ToUpper(r)) + value[size:]
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(value string) string {
	text := GetPlainLabel(value)

	switch value {
	case string(schema.Critical), string(schema.Poor), string(schema.Declining): // critical covers both rating and level
		return CriticalColor.Sprint(text)
	case string(schema.HighLevel), string(schema.AtRisk):
		return HighColor.Sprint(text)
	case string(schema.MediumLevel), string(schema.Average):
		return ModerateColor.Sprint(text)
	case string(schema.Excellent), string(schema.Good), string(schema.Healthy), string(schema.Improving):
		return GoodColor.Sprint(text)
	default: // low, stable
		return LowColor.Sprint(text)
	}
}

// Label picks the colored or plain label depending on the config.
func Label(cfg *Config, value string) string {
	if cfg.UseColors {
		return GetColorLabel(value)
	}
	return GetPlainLabel(value)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
