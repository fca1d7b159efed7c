package ui

import (
	"github.com/mthorley/starcat/internal/config"
)

// truncate shortens s to max runes, ending with an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// nextPageSize returns the offered page size after current, wrapping around.
// An unknown current size starts the cycle over.
func nextPageSize(current int) int {
	for i, size := range config.PageSizes {
		if size == current {
			return config.PageSizes[(i+1)%len(config.PageSizes)]
		}
	}
	return config.PageSizes[0]
}
