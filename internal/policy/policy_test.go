package policy

import (
	"testing"
	"time"

	"hairdo-backend/internal/models"
)

func TestComputeCancelBy(t *testing.T) {
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	start := time.Date(2024, 6, 3, 10, 0, 0, 0, loc)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, loc)

	p := Default()
	snap := Compute(start, p, 100, now)

	want := time.Date(2024, 6, 2, 10, 0, 0, 0, loc)
	if !snap.CancelBy.Equal(want) {
		t.Fatalf("expected cancel-by %v, got %v", want, snap.CancelBy)
	}
	if !snap.BookedAt.Equal(now) {
		t.Fatalf("expected booked-at %v, got %v", now, snap.BookedAt)
	}
	if snap.CnwUsedHours != 24 || snap.DpUsedPercent != 20 {
		t.Fatalf("unexpected snapshot policy fields: %+v", snap)
	}
}

func TestComputeDepositRounding(t *testing.T) {
	p := models.BookingPolicy{CancellationHours: 24, DepositPercentage: 33}
	snap := Compute(time.Now(), p, 50, time.Now())
	if snap.DepositAmount != 16.50 {
		t.Fatalf("expected 16.50, got %v", snap.DepositAmount)
	}

	p.DepositPercentage = 25
	snap = Compute(time.Now(), p, 80, time.Now())
	if snap.DepositAmount != 20.00 {
		t.Fatalf("expected 20.00, got %v", snap.DepositAmount)
	}

	p.DepositPercentage = 0
	snap = Compute(time.Now(), p, 80, time.Now())
	if snap.DepositAmount != 0 {
		t.Fatalf("expected 0, got %v", snap.DepositAmount)
	}
}

// Changing the policy after the snapshot is taken must not change the
// appointment's stored financial fields.
func TestSnapshotImmutability(t *testing.T) {
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	start := time.Date(2024, 6, 3, 10, 0, 0, 0, loc)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, loc)

	p := models.BookingPolicy{CancellationHours: 24, DepositPercentage: 20}
	var appt models.Appointment
	Apply(&appt, Compute(start, p, 50, now))

	cancelBy := appt.CancelBy
	deposit := appt.DepositAmount

	p.CancellationHours = 48
	p.DepositPercentage = 50

	if !appt.CancelBy.Equal(cancelBy) || appt.DepositAmount != deposit {
		t.Fatalf("snapshot changed after policy mutation: %+v", appt)
	}
	later := Compute(start, p, 50, now)
	if later.DepositAmount == deposit {
		t.Fatalf("expected the new policy to produce a different deposit")
	}
}

func TestIsLateCancellation(t *testing.T) {
	deadline := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	if IsLateCancellation(deadline.Add(-time.Hour), deadline) {
		t.Fatalf("before the deadline must be a free cancellation")
	}
	if IsLateCancellation(deadline, deadline) {
		t.Fatalf("exactly at the deadline must still be free")
	}
	if !IsLateCancellation(deadline.Add(time.Minute), deadline) {
		t.Fatalf("after the deadline must be a late cancellation")
	}
}

func TestWithinAdvanceWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

	if !WithinAdvanceWindow(now.AddDate(0, 0, 30), now, 30) {
		t.Fatalf("day 30 must be inside the window")
	}
	if WithinAdvanceWindow(now.AddDate(0, 0, 31), now, 30) {
		t.Fatalf("day 31 must be outside the window")
	}
	if !WithinAdvanceWindow(now.AddDate(0, 0, 365), now, 0) {
		t.Fatalf("zero max-advance-days means unlimited")
	}
}
