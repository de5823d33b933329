package tui

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// fit truncates s to width terminal cells and pads it to exactly width
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}

// plural formats "1 day" / "3 days"
func plural(n int, unit string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
