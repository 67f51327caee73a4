package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderMeter renders a classifier score as a bar like [███░░░░░░░] 30%.
// Scores are clamped to [0, 1] and colored the same way as Confidence.
func RenderMeter(score float64, width int) string {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(score*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleDim
	switch {
	case score >= 0.7:
		style = StyleGreen
	case score >= 0.3:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), score*100)
}
