// Package duration converts between integer seconds and the HH:MM:SS
// notation used on rundown sheets.
// This is part of the Functional Core - no I/O, only pure functions.
package duration

import (
	"fmt"
	"strconv"
	"strings"
)

// Zero is the rendering of an empty, negative, or unknown duration.
const Zero = "00:00:00"

// FormatHMS renders seconds as HH:MM:SS.
// Negative values render as Zero. Hours are not capped at 99.
func FormatHMS(seconds int) string {
	if seconds <= 0 {
		return Zero
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatOptional renders a nullable duration; nil renders as Zero.
func FormatOptional(seconds *int) string {
	if seconds == nil {
		return Zero
	}
	return FormatHMS(*seconds)
}

// FormatSigned renders a difference with an explicit sign (+00:00:50, -00:01:10).
func FormatSigned(seconds int) string {
	if seconds < 0 {
		return "-" + FormatHMS(-seconds)
	}
	return "+" + FormatHMS(seconds)
}

// ParseHMS parses HH:MM:SS into seconds.
// Minutes and seconds must be in [0, 59]; hours may have any number of digits.
func ParseHMS(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid duration %q: expected HH:MM:SS", value)
	}

	var fields [3]int
	for i, p := range parts {
		if p == "" || strings.ContainsAny(p, "+-") {
			return 0, fmt.Errorf("invalid duration %q: bad field %q", value, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", value, err)
		}
		fields[i] = n
	}

	if fields[1] > 59 || fields[2] > 59 {
		return 0, fmt.Errorf("invalid duration %q: minutes and seconds must be below 60", value)
	}

	return fields[0]*3600 + fields[1]*60 + fields[2], nil
}

// HMSToSeconds is the lenient form of ParseHMS: malformed input yields 0.
func HMSToSeconds(value string) int {
	n, err := ParseHMS(value)
	if err != nil {
		return 0
	}
	return n
}
