package timemath

import "testing"

func TestToMinutes(t *testing.T) {
	min, err := ToMinutes("09:30")
	if err != nil {
		t.Fatalf("ToMinutes error: %v", err)
	}
	if min != 570 {
		t.Fatalf("expected 570, got %d", min)
	}

	min, err = ToMinutes("00:00")
	if err != nil {
		t.Fatalf("ToMinutes error: %v", err)
	}
	if min != 0 {
		t.Fatalf("expected 0, got %d", min)
	}
}

func TestToMinutesWrapsOutOfRange(t *testing.T) {
	min, err := ToMinutes("25:70")
	if err != nil {
		t.Fatalf("ToMinutes error: %v", err)
	}
	if min != 70 {
		t.Fatalf("expected 70 (01:10), got %d", min)
	}
}

func TestToMinutesMalformed(t *testing.T) {
	for _, input := range []string{"", "nine", "09", "09:", ":30", "09:3a", "9.30"} {
		if _, err := ToMinutes(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestMinutesToClock(t *testing.T) {
	if got := MinutesToClock(570); got != "09:30" {
		t.Fatalf("expected 09:30, got %s", got)
	}
	if got := MinutesToClock(0); got != "00:00" {
		t.Fatalf("expected 00:00, got %s", got)
	}
	if got := MinutesToClock(1439); got != "23:59" {
		t.Fatalf("expected 23:59, got %s", got)
	}
}

func TestTo12Hour(t *testing.T) {
	cases := []struct {
		hour, minute int
		want         string
	}{
		{0, 5, "12:05 AM"},
		{9, 0, "9:00 AM"},
		{11, 59, "11:59 AM"},
		{12, 0, "12:00 PM"},
		{13, 30, "1:30 PM"},
		{23, 15, "11:15 PM"},
	}
	for _, c := range cases {
		if got := To12Hour(c.hour, c.minute); got != c.want {
			t.Fatalf("To12Hour(%d,%d): expected %s, got %s", c.hour, c.minute, c.want, got)
		}
	}
}

func TestClock12(t *testing.T) {
	if got := Clock12(810); got != "1:30 PM" {
		t.Fatalf("expected 1:30 PM, got %s", got)
	}
}

func TestDecimalHourToMinutes(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{9.0, 540},
		{9.5, 570},
		{17.75, 1065},
		{9.33, 560},
		{0, 0},
	}
	for _, c := range cases {
		if got := DecimalHourToMinutes(c.in); got != c.want {
			t.Fatalf("DecimalHourToMinutes(%v): expected %d, got %d", c.in, c.want, got)
		}
	}
}
