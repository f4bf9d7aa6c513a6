package policy

import (
	"math"
	"time"

	"hairdo-backend/internal/models"
)

// Defaults applied when the settings document is missing or unreadable.
// The snapshot fields are advisory financial data, so a policy fetch
// failure must never fail a booking.
const (
	DefaultMaxAdvanceDays        = 30
	DefaultCancellationHours     = 24
	DefaultDepositPercentage     = 20
	DefaultReminderMinutesBefore = 60
	DefaultWaitlistMax           = 10
)

// Default returns the documented fallback booking policy.
func Default() models.BookingPolicy {
	return models.BookingPolicy{
		MaxAdvanceDays:        DefaultMaxAdvanceDays,
		CancellationHours:     DefaultCancellationHours,
		DepositPercentage:     DefaultDepositPercentage,
		ReminderMinutesBefore: DefaultReminderMinutesBefore,
		WaitlistMax:           DefaultWaitlistMax,
	}
}

// Snapshot is the policy state frozen onto an appointment at creation
// time. Later policy changes never alter these values for existing
// bookings.
type Snapshot struct {
	DpUsedPercent int
	CnwUsedHours  int
	DepositAmount float64
	CancelBy      time.Time
	BookedAt      time.Time
}

// Compute derives the snapshot for a booking that starts at start and
// costs totalPrice, under the policy in force right now. CancelBy is
// plain wall-clock subtraction of the notice window; the deposit is the
// configured percentage of the price rounded to cents, never negative.
func Compute(start time.Time, p models.BookingPolicy, totalPrice float64, now time.Time) Snapshot {
	deposit := round2(totalPrice * float64(p.DepositPercentage) / 100)
	if deposit < 0 {
		deposit = 0
	}
	return Snapshot{
		DpUsedPercent: p.DepositPercentage,
		CnwUsedHours:  p.CancellationHours,
		DepositAmount: deposit,
		CancelBy:      start.Add(-time.Duration(p.CancellationHours) * time.Hour),
		BookedAt:      now,
	}
}

// Apply writes the snapshot onto an appointment. This happens exactly
// once, before the record is persisted.
func Apply(appt *models.Appointment, snap Snapshot) {
	appt.DpUsedPercent = snap.DpUsedPercent
	appt.CnwUsedHours = snap.CnwUsedHours
	appt.DepositAmount = snap.DepositAmount
	appt.CancelBy = snap.CancelBy
	appt.BookedAt = snap.BookedAt
}

// IsLateCancellation compares the current time to the cancel-by
// deadline stored on the appointment. Past the deadline the deposit is
// retained; before it the cancellation is free.
func IsLateCancellation(now, cancelBy time.Time) bool {
	return now.After(cancelBy)
}

// WithinAdvanceWindow reports whether a booking date falls inside the
// maximum-advance-booking window. maxAdvanceDays <= 0 means unlimited.
func WithinAdvanceWindow(date, now time.Time, maxAdvanceDays int) bool {
	if maxAdvanceDays <= 0 {
		return true
	}
	limit := startOfDay(now).AddDate(0, 0, maxAdvanceDays)
	return !startOfDay(date).After(limit)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
