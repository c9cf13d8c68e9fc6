// Package timecode converts between the HH:MM:SS display format used by the
// authoring forms and the integer seconds offsets stored on questions.
package timecode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/guidedtopic/guidedtopic-backend/internal/pkg/apperr"
)

// ParseClock parses a strict HH:MM:SS string into total seconds. Minutes and
// seconds must be exactly two digits in 00-59; hours must be at least two
// digits and are unbounded (no wrap at 24, so "100:00:00" is valid).
func ParseClock(s string) (int, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("%w: %q must have three colon-separated fields", apperr.ErrInvalidTimeFormat, s)
	}

	hours, err := parseField(fields[0], 2, -1)
	if err != nil {
		return 0, fmt.Errorf("%w: bad hours in %q", apperr.ErrInvalidTimeFormat, s)
	}
	minutes, err := parseField(fields[1], 2, 59)
	if err != nil {
		return 0, fmt.Errorf("%w: bad minutes in %q", apperr.ErrInvalidTimeFormat, s)
	}
	seconds, err := parseField(fields[2], 2, 59)
	if err != nil {
		return 0, fmt.Errorf("%w: bad seconds in %q", apperr.ErrInvalidTimeFormat, s)
	}

	return hours*3600 + minutes*60 + seconds, nil
}

// parseField parses one all-digit field. minWidth is the minimum digit
// count; the hours field passes max=-1 for "unbounded".
func parseField(field string, minWidth, max int) (int, error) {
	if len(field) < minWidth {
		return 0, fmt.Errorf("field %q too short", field)
	}
	if minWidth == 2 && max >= 0 && len(field) != 2 {
		return 0, fmt.Errorf("field %q must be exactly two digits", field)
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("field %q contains a non-digit", field)
		}
	}
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	if max >= 0 && v > max {
		return 0, fmt.Errorf("field %q out of range", field)
	}
	return v, nil
}

// FormatClock renders total seconds as HH:MM:SS with each field zero-padded
// to at least two digits. Hours grow past two digits when needed. Negative
// input clamps to "00:00:00"; FormatClock never emits a malformed string.
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
