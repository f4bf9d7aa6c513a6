package schedule

import (
	"testing"
	"time"

	"hairdo-backend/internal/models"
)

func booked(start, end int, status string) Booked {
	return Booked{Interval: Interval{Start: start, End: end}, Status: status}
}

func TestOverlapsStrictHalfOpen(t *testing.T) {
	a := Interval{Start: 540, End: 570}
	b := Interval{Start: 570, End: 600}
	if Overlaps(a, b) {
		t.Fatalf("back-to-back intervals must not overlap")
	}
	c := Interval{Start: 560, End: 580}
	if !Overlaps(a, c) {
		t.Fatalf("expected overlap")
	}
}

func TestHasConflictSymmetry(t *testing.T) {
	a := Interval{Start: 600, End: 645}
	b := Interval{Start: 630, End: 660}
	ab := HasConflict(a, []Booked{booked(b.Start, b.End, models.AppointmentStatusConfirmed)})
	ba := HasConflict(b, []Booked{booked(a.Start, a.End, models.AppointmentStatusConfirmed)})
	if ab != ba {
		t.Fatalf("conflict detection is not symmetric: %v vs %v", ab, ba)
	}
	if !ab {
		t.Fatalf("expected conflict")
	}
}

func TestHasConflictEmptyList(t *testing.T) {
	if HasConflict(Interval{Start: 540, End: 570}, nil) {
		t.Fatalf("empty existing list must not conflict")
	}
}

func TestHasConflictIgnoresCancelledAndNoShow(t *testing.T) {
	candidate := Interval{Start: 600, End: 660}
	existing := []Booked{
		booked(600, 660, models.AppointmentStatusCancelled),
		booked(600, 660, models.AppointmentStatusNoShow),
	}
	if HasConflict(candidate, existing) {
		t.Fatalf("cancelled/no-show bookings must not block the slot")
	}
	existing = append(existing, booked(600, 660, models.AppointmentStatusPending))
	if !HasConflict(candidate, existing) {
		t.Fatalf("pending booking must block the slot")
	}
}

// Scenario: confirmed 10:00-10:45, candidate 10:30-11:00 conflicts;
// candidate 10:45-11:15 is back-to-back and does not.
func TestHasConflictScenario(t *testing.T) {
	existing := []Booked{booked(600, 645, models.AppointmentStatusConfirmed)}
	if !HasConflict(Interval{Start: 630, End: 660}, existing) {
		t.Fatalf("expected 10:30-11:00 to conflict with 10:00-10:45")
	}
	if HasConflict(Interval{Start: 645, End: 675}, existing) {
		t.Fatalf("expected 10:45-11:15 to be free")
	}
}

func TestNextSlotOrigin(t *testing.T) {
	open, close := 540, 1080

	// 09:07 today rounds up to 09:15.
	if got := NextSlotOrigin(open, close, 547, true); got != 555 {
		t.Fatalf("expected 555, got %d", got)
	}
	// Exactly on a mark advances a full step.
	if got := NextSlotOrigin(open, close, 600, true); got != 615 {
		t.Fatalf("expected 615, got %d", got)
	}
	// Before opening, origin is the opening time.
	if got := NextSlotOrigin(open, close, 480, true); got != open {
		t.Fatalf("expected %d, got %d", open, got)
	}
	// Not today, origin is the opening time regardless of now.
	if got := NextSlotOrigin(open, close, 700, false); got != open {
		t.Fatalf("expected %d, got %d", open, got)
	}
	// Rounded origin at or past closing wraps to opening.
	if got := NextSlotOrigin(open, close, 1075, true); got != open {
		t.Fatalf("expected wrap to %d, got %d", open, got)
	}
}

func TestFindNextSlotEmptyDay(t *testing.T) {
	start, found := FindNextSlot(nil, 540, 1080, 30, 547, true)
	if !found {
		t.Fatalf("expected a slot")
	}
	if start != 555 {
		t.Fatalf("expected 09:15 (555), got %d", start)
	}
}

func TestFindNextSlotSkipsConflicts(t *testing.T) {
	existing := []Booked{
		booked(540, 600, models.AppointmentStatusConfirmed),
		booked(600, 630, models.AppointmentStatusPending),
	}
	start, found := FindNextSlot(existing, 540, 1080, 30, 0, false)
	if !found {
		t.Fatalf("expected a slot")
	}
	if start != 630 {
		t.Fatalf("expected 10:30 (630), got %d", start)
	}
}

// A 15-minute gap must not be offered for a 45-minute service; the scan
// checks the whole duration, not just the first step.
func TestFindNextSlotDurationAware(t *testing.T) {
	existing := []Booked{
		booked(555, 600, models.AppointmentStatusConfirmed), // gap 540-555 is too short
	}
	start, found := FindNextSlot(existing, 540, 1080, 45, 0, false)
	if !found {
		t.Fatalf("expected a slot")
	}
	if start != 600 {
		t.Fatalf("expected 10:00 (600), got %d", start)
	}
}

func TestFindNextSlotFullDay(t *testing.T) {
	existing := []Booked{booked(540, 1080, models.AppointmentStatusConfirmed)}
	start, found := FindNextSlot(existing, 540, 1080, 30, 0, false)
	if found {
		t.Fatalf("expected no slot on a fully booked day")
	}
	if start != 540 {
		t.Fatalf("expected the opening-time default, got %d", start)
	}
}

func TestFindNextSlotRespectsBusinessHours(t *testing.T) {
	open, close := 540, 1080
	for now := open; now < close; now += 7 {
		start, found := FindNextSlot(nil, open, close, 30, now, true)
		if !found {
			continue
		}
		if start < open || start >= close {
			t.Fatalf("slot %d outside [%d,%d)", start, open, close)
		}
	}
}

func TestFindNextSlotMonotonicInNow(t *testing.T) {
	existing := []Booked{booked(600, 660, models.AppointmentStatusConfirmed)}
	open, close := 540, 1080
	prev := -1
	for now := open; now < close-30; now += 5 {
		start, found := FindNextSlot(existing, open, close, 30, now, true)
		if !found {
			break
		}
		if start < prev {
			t.Fatalf("now=%d returned %d, earlier than previous %d", now, start, prev)
		}
		prev = start
	}
}

func TestAvailableStarts(t *testing.T) {
	existing := []Booked{booked(570, 630, models.AppointmentStatusConfirmed)}
	starts := AvailableStarts(existing, 540, 660, 30, 0, false)
	want := []int{540, 630}
	if len(starts) != len(want) {
		t.Fatalf("expected %v, got %v", want, starts)
	}
	for i := range want {
		if starts[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, starts)
		}
	}
}

func TestEndOfBooking(t *testing.T) {
	end, sameDay := EndOfBooking(1380, 45)
	if !sameDay || end != 1425 {
		t.Fatalf("expected 1425 same-day, got %d/%v", end, sameDay)
	}
	_, sameDay = EndOfBooking(1410, 45)
	if sameDay {
		t.Fatalf("expected midnight rollover to be flagged")
	}
}

func TestParseDateTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	got, err := ParseDateTime("2024-06-03", "10:00", loc)
	if err != nil {
		t.Fatalf("ParseDateTime error: %v", err)
	}
	want := time.Date(2024, 6, 3, 10, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := ParseDateTime("2024-06-03", "ten", loc); err == nil {
		t.Fatalf("expected error for malformed time")
	}
}

func TestIsDatePast(t *testing.T) {
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2024, 6, 4, 10, 0, 0, 0, loc)

	past, err := IsDatePast("2024-06-03", loc, now)
	if err != nil {
		t.Fatalf("IsDatePast error: %v", err)
	}
	if !past {
		t.Fatalf("expected date to be past")
	}

	past, err = IsDatePast("2024-06-04", loc, now)
	if err != nil {
		t.Fatalf("IsDatePast error: %v", err)
	}
	if past {
		t.Fatalf("expected today to not be past")
	}
}

func TestIsSameDayAndMinutesOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2024, 6, 4, 9, 7, 0, 0, loc)
	if !IsSameDay("2024-06-04", loc, now) {
		t.Fatalf("expected same day")
	}
	if IsSameDay("2024-06-05", loc, now) {
		t.Fatalf("expected different day")
	}
	if got := MinutesOfDay(now, loc); got != 547 {
		t.Fatalf("expected 547, got %d", got)
	}
}
