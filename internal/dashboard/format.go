package dashboard

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatUptime renders whole seconds as "42s", "3m 7s" or "2h 2m".
func FormatUptime(secs float64) string {
	s := int64(math.Floor(secs))
	if s < 0 {
		s = 0
	}

	switch {
	case s < 60:
		return fmt.Sprintf("%ds", s)
	case s < 3600:
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	default:
		return fmt.Sprintf("%dh %dm", s/3600, (s%3600)/60)
	}
}

// FormatCount renders n with thousands grouping.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// BarPercent is the bar fill for requests relative to max, rounded to the
// nearest integer. A max below 1 is treated as 1.
func BarPercent(requests, max int64) int {
	if max < 1 {
		max = 1
	}
	if requests < 0 {
		requests = 0
	}
	return int(math.Round(float64(requests) / float64(max) * 100))
}
