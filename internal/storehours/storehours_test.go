package storehours

import "testing"

func testWeek() Week {
	return NewWeek(map[int]DayHours{
		1: {Open: 9, Close: 18},     // Monday
		2: {Open: 9.5, Close: 18.25}, // Tuesday
		6: {Open: 10, Close: 16},    // Saturday
	})
}

func TestExactMinutes(t *testing.T) {
	w := testWeek()

	open, close, ok := w.ExactMinutes(2)
	if !ok {
		t.Fatalf("expected Tuesday to be configured")
	}
	if open != 570 || close != 1095 {
		t.Fatalf("expected 570/1095, got %d/%d", open, close)
	}
}

func TestHourBoundsWidenToWholeHours(t *testing.T) {
	w := testWeek()

	open, close, ok := w.HourBounds(2)
	if !ok {
		t.Fatalf("expected Tuesday to be configured")
	}
	if open != 540 || close != 1140 {
		t.Fatalf("expected 540/1140, got %d/%d", open, close)
	}

	// Whole-hour days are unchanged by the widening.
	open, close, ok = w.HourBounds(1)
	if !ok {
		t.Fatalf("expected Monday to be configured")
	}
	if open != 540 || close != 1080 {
		t.Fatalf("expected 540/1080, got %d/%d", open, close)
	}
}

func TestClosedDay(t *testing.T) {
	w := testWeek()

	if _, _, ok := w.ExactMinutes(0); ok {
		t.Fatalf("expected Sunday to be closed")
	}
	if _, _, ok := w.HourBounds(0); ok {
		t.Fatalf("expected Sunday to be closed")
	}
	if _, _, ok := w.HourBounds(9); ok {
		t.Fatalf("expected out-of-range weekday to be closed")
	}
}

func TestNewWeekRejectsInvertedHours(t *testing.T) {
	w := NewWeek(map[int]DayHours{3: {Open: 18, Close: 9}})
	if _, _, ok := w.ExactMinutes(3); ok {
		t.Fatalf("expected inverted hours to be dropped")
	}
}

func TestTimelineRange(t *testing.T) {
	w := testWeek()
	earliest, latest := w.TimelineRange()
	if earliest != 540 {
		t.Fatalf("expected earliest 540, got %d", earliest)
	}
	if latest != 1140 {
		t.Fatalf("expected latest 1140, got %d", latest)
	}
}

func TestTimelineRangeFallback(t *testing.T) {
	var w Week
	earliest, latest := w.TimelineRange()
	if earliest != FallbackOpenMinutes || latest != FallbackCloseMinutes {
		t.Fatalf("expected fallback 360/1320, got %d/%d", earliest, latest)
	}
}
