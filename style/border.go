package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aicat/aicat-tui/geometry"
)

// BubbleBorder returns a border whose corners in set are drawn rounded and
// the rest square. It is the terminal counterpart of geometry.RoundedPath.
func BubbleBorder(corners geometry.CornerSet) lipgloss.Border {
	b := lipgloss.RoundedBorder()
	b.TopLeft = pick(corners.Has(geometry.TopLeft), RoundTopLeft, SharpTopLeft)
	b.TopRight = pick(corners.Has(geometry.TopRight), RoundTopRight, SharpTopRight)
	b.BottomRight = pick(corners.Has(geometry.BottomRight), RoundBottomRight, SharpBottomRight)
	b.BottomLeft = pick(corners.Has(geometry.BottomLeft), RoundBottomLeft, SharpBottomLeft)
	return b
}

func pick(rounded bool, round, sharp string) string {
	if rounded {
		return round
	}
	return sharp
}
