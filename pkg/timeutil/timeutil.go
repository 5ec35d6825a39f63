// Package timeutil formats and parses video timestamps.
package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func split(seconds float64) (hours, mins, secs int) {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(seconds)
	return total / 3600, (total % 3600) / 60, total % 60
}

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	h, m, s := split(seconds)
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FormatPrecise formats seconds as M:SS.cc, or H:MM:SS.cc past an hour.
// Used for trim handles where sub-second precision matters.
func FormatPrecise(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	centis := int(math.Round(seconds * 100))
	h := centis / 360000
	m := (centis % 360000) / 6000
	s := (centis % 6000) / 100
	c := centis % 100
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, c)
	}
	return fmt.Sprintf("%d:%02d.%02d", m, s, c)
}

// CompactTimestamp formats seconds as HHMMSS for use in filenames.
func CompactTimestamp(seconds float64) string {
	h, m, s := split(seconds)
	return fmt.Sprintf("%02d%02d%02d", h, m, s)
}

// ParseTimeToSeconds parses H:MM:SS, MM:SS, or raw seconds. The seconds
// field may be fractional in every form.
func ParseTimeToSeconds(timeStr string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(timeStr), ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
	}

	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || secs < 0 || (len(parts) > 1 && secs >= 60) {
		return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
	}

	total := secs
	multiplier := 60.0
	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
		}
		total += float64(n) * multiplier
		multiplier *= 60
	}
	return total, nil
}
