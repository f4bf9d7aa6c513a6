package schedule

import (
	"errors"
	"time"

	"hairdo-backend/internal/models"
	"hairdo-backend/internal/timemath"
)

// SlotStepMinutes is the booking grid granularity: candidate start
// times are always aligned to 15-minute marks.
const SlotStepMinutes = 15

var (
	ErrInvalidDate     = errors.New("invalid date format")
	ErrInvalidTime     = errors.New("invalid time format")
	ErrInvalidDuration = errors.New("invalid duration")
)

// Interval is a half-open [Start, End) time-of-day range in minutes
// since midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
// Back-to-back intervals (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Booked is an existing appointment's interval plus the status that
// decides whether it still occupies the slot.
type Booked struct {
	Interval
	Status string
}

// HasConflict reports whether the candidate interval overlaps any
// existing booking that still blocks its slot. Cancelled and no-show
// bookings never conflict.
func HasConflict(candidate Interval, existing []Booked) bool {
	for _, b := range existing {
		if !models.StatusBlocksSlot(b.Status) {
			continue
		}
		if Overlaps(candidate, b.Interval) {
			return true
		}
	}
	return false
}

// NextSlotOrigin returns the first candidate start time for a scan:
// the current time rounded strictly up to the next 15-minute mark when
// the request is for today and now falls inside the opening window,
// otherwise the opening time. "Strictly up" means a now already on a
// mark advances a full step; the current instant is never offered as
// the next slot.
func NextSlotOrigin(openMin, closeMin, nowMin int, today bool) int {
	if !today || nowMin < openMin || nowMin >= closeMin {
		return openMin
	}
	origin := roundUpToStep(nowMin)
	if origin >= closeMin {
		return openMin
	}
	return origin
}

// FindNextSlot scans forward from the origin in 15-minute steps and
// returns the first start time whose duration-long interval fits before
// closing and does not conflict with the supplied bookings. The second
// result is false when no such start exists; the opening time is still
// returned so callers keep the historical "defaulted to opening time"
// value, but they can now tell it apart from a real opening-time slot.
func FindNextSlot(existing []Booked, openMin, closeMin, durationMin, nowMin int, today bool) (int, bool) {
	if durationMin <= 0 || closeMin <= openMin {
		return openMin, false
	}

	origin := NextSlotOrigin(openMin, closeMin, nowMin, today)
	for start := origin; start < closeMin; start += SlotStepMinutes {
		end := start + durationMin
		if end > closeMin {
			break
		}
		if !HasConflict(Interval{Start: start, End: end}, existing) {
			return start, true
		}
	}
	return openMin, false
}

// AvailableStarts returns every 15-minute-aligned start time in the
// opening window where a duration-long booking would fit without
// conflicting. Used by the availability listing; FindNextSlot is its
// first element modulo the today/now origin rule.
func AvailableStarts(existing []Booked, openMin, closeMin, durationMin, nowMin int, today bool) []int {
	starts := make([]int, 0)
	if durationMin <= 0 || closeMin <= openMin {
		return starts
	}

	origin := openMin
	if today {
		origin = NextSlotOrigin(openMin, closeMin, nowMin, today)
	}
	for start := origin; start < closeMin; start += SlotStepMinutes {
		end := start + durationMin
		if end > closeMin {
			break
		}
		if !HasConflict(Interval{Start: start, End: end}, existing) {
			starts = append(starts, start)
		}
	}
	return starts
}

// EndOfBooking computes the end time for a booking and reports whether
// it stays within the same calendar day. Bookings whose end would roll
// past midnight are rejected by the caller: store hours model a single
// day, so a rolled-over end time has no meaningful date.
func EndOfBooking(startMin, durationMin int) (endMin int, sameDay bool) {
	end := startMin + durationMin
	return end, end <= 24*60
}

// ParseDate parses a "YYYY-MM-DD" date in the salon's location.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// ParseDateTime combines a date and an "HH:MM" clock into a concrete
// instant in the salon's location.
func ParseDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	minutes, err := timemath.ToMinutes(timeStr)
	if err != nil {
		return time.Time{}, ErrInvalidTime
	}
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return time.Time{}, err
	}
	return date.Add(time.Duration(minutes) * time.Minute), nil
}

// IsDatePast reports whether the date is before today in the salon's
// location.
func IsDatePast(dateStr string, loc *time.Location, now time.Time) (bool, error) {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return false, err
	}
	local := now.In(loc)
	startToday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return date.Before(startToday), nil
}

// IsSameDay reports whether the date string names today in the salon's
// location.
func IsSameDay(dateStr string, loc *time.Location, now time.Time) bool {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return false
	}
	local := now.In(loc)
	return date.Year() == local.Year() && date.YearDay() == local.YearDay()
}

// MinutesOfDay converts an instant to minutes since midnight in the
// salon's location.
func MinutesOfDay(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}

func roundUpToStep(minutes int) int {
	if minutes%SlotStepMinutes == 0 {
		return minutes + SlotStepMinutes
	}
	return ((minutes / SlotStepMinutes) + 1) * SlotStepMinutes
}
