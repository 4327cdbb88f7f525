package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format renders a duration in seconds as an SRT-style timestamp,
// [-]HH:MM:SS,mmm. Hours widen past two digits instead of wrapping, and the
// sign is emitted only for negative input.
func Format(seconds float64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	hours := int64(seconds / 3600)
	remainder := math.Mod(seconds, 3600)
	minutes := int64(remainder / 60)
	secf := math.Mod(remainder, 60)

	whole := math.Floor(secf)
	millis := int64(math.Round((secf - whole) * 1000))
	secs := int64(whole)

	// Rounding can push the millisecond field to 1000; carry it up the
	// seconds/minutes/hours chain instead of rendering ",1000".
	if millis == 1000 {
		millis = 0
		secs++
	}
	if secs == 60 {
		secs = 0
		minutes++
	}
	if minutes == 60 {
		minutes = 0
		hours++
	}

	return fmt.Sprintf("%s%02d:%02d:%02d,%03d", sign, hours, minutes, secs, millis)
}

// Parse converts a timestamp produced by Format back into seconds. A period
// is accepted in place of the millisecond comma.
func Parse(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("empty timecode")
	}

	negative := strings.HasPrefix(trimmed, "-")
	if negative {
		trimmed = trimmed[1:]
	}

	normalized := strings.ReplaceAll(trimmed, ".", ",")
	parts := strings.Split(normalized, ",")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	hms := strings.Split(parts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}

	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	secs, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || secs < 0 || secs > 59 || millis < 0 || millis > 999 {
		return 0, fmt.Errorf("timecode %q out of range", value)
	}

	seconds := float64(hours*3600+minutes*60+secs) + float64(millis)/1000
	if negative {
		seconds = -seconds
	}
	return seconds, nil
}
