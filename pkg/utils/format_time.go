package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatNanoSeconds renders a nanosecond count as its non-zero time units,
// e.g. 1m3s12ms. Zero renders as 0ns.
func FormatNanoSeconds(ns int64) string {
	units := []struct {
		suffix string
		size   int64
	}{
		{"h", int64(time.Hour)},
		{"m", int64(time.Minute)},
		{"s", int64(time.Second)},
		{"ms", int64(time.Millisecond)},
		{"µs", int64(time.Microsecond)},
	}

	var parts []string
	for _, unit := range units {
		if n := ns / unit.size; n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, unit.suffix))
			ns %= unit.size
		}
	}
	if ns > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dns", ns))
	}
	return strings.Join(parts, "")
}
