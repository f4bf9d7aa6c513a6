package timemath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidClock = errors.New("invalid clock value")

// ToMinutes parses an "HH:MM" string into minutes since midnight.
// Non-numeric input is rejected, but numeric components outside their
// range are wrapped rather than rejected: "25:70" behaves like "01:10".
// Legacy records carry such values and the booking flow tolerates them.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, ErrInvalidClock
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidClock
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrInvalidClock
	}

	hour = ((hour % 24) + 24) % 24
	minute = ((minute % 60) + 60) % 60

	return hour*60 + minute, nil
}

// MinutesToClock renders minutes since midnight as zero-padded "HH:MM".
func MinutesToClock(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// To12Hour renders a 24-hour clock value in 12-hour display form,
// e.g. 0 -> "12:05 AM", 12 -> "12:05 PM", 17 -> "5:05 PM".
func To12Hour(hour24, minute int) string {
	switch {
	case hour24 == 0:
		return fmt.Sprintf("12:%02d AM", minute)
	case hour24 == 12:
		return fmt.Sprintf("12:%02d PM", minute)
	case hour24 > 12:
		return fmt.Sprintf("%d:%02d PM", hour24-12, minute)
	default:
		return fmt.Sprintf("%d:%02d AM", hour24, minute)
	}
}

// Clock12 renders minutes since midnight in 12-hour display form.
func Clock12(minutes int) string {
	return To12Hour(minutes/60, minutes%60)
}

// DecimalHourToMinutes converts a decimal-hour value (9.5 = 9:30) to
// minutes since midnight. The fractional part is rounded to the nearest
// minute so values like 9.33 land on 9:20.
func DecimalHourToMinutes(d float64) int {
	whole := math.Floor(d)
	frac := d - whole
	return int(whole)*60 + int(math.Round(frac*60))
}
