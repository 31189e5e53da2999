package helpers

import (
	"fmt"
	"math"
	"strings"
)

// FormatUSD formats an amount as US dollars with thousands separators and cents
func FormatUSD(amount float64) string {
	negative := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))

	out := "$" + groupThousands(cents/100) + fmt.Sprintf(".%02d", cents%100)
	if negative && cents != 0 {
		return "-" + out
	}
	return out
}

// FormatVolume formats a share count compactly: 950, 41.2K, 3.5M
func FormatVolume(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// FormatPercent formats a signed percentage: +12.34%, -0.50%
func FormatPercent(p float64) string {
	return fmt.Sprintf("%+.2f%%", p)
}

func groupThousands(value int64) string {
	str := fmt.Sprintf("%d", value)
	if len(str) <= 3 {
		return str
	}

	var b strings.Builder
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return b.String()
}
