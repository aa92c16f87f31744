package crawl

import (
	"fmt"
	"strings"
	"time"
)

// DisplayURL drops the scheme from raw and, when the rest is longer than
// width, keeps only its tail. Profile slugs sit at the end of the path.
func DisplayURL(raw string, width int) string {
	if i := strings.Index(raw, "://"); i >= 0 {
		raw = raw[i+3:]
	}
	switch {
	case width <= 0:
		return ""
	case len(raw) <= width:
		return raw
	case width <= 3:
		return raw[len(raw)-width:]
	}
	return "..." + raw[len(raw)-width+3:]
}

// PerMinute reports n items over elapsed as a rate, e.g. "42.0/min".
func PerMinute(n int, elapsed time.Duration) string {
	if n <= 0 || elapsed <= 0 {
		return "0/min"
	}
	return fmt.Sprintf("%.1f/min", float64(n)/elapsed.Minutes())
}
