package outwriter

import (
	"os"

	"github.com/huangsam/agrilens/internal/contract"
	"golang.org/x/term"
)

// getMaxTableTextWidth calculates the maximum width for the name column of a
// table based on terminal width and which optional columns are shown.
func getMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Score + Rating with borders/padding
	baseWidth := 30
	if cfg.Detail {
		baseWidth += 45
	}
	if cfg.Explain {
		baseWidth += 40
	}
	baseWidth += 20

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 50 {
		return 50
	}
	return available
}
