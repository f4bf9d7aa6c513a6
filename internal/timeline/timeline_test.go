package timeline

import "testing"

func boxByID(t *testing.T, boxes []Box, id string) Box {
	t.Helper()
	for _, b := range boxes {
		if b.ID == id {
			return b
		}
	}
	t.Fatalf("no box with id %s", id)
	return Box{}
}

func TestLayoutVerticalMapping(t *testing.T) {
	entries := []Entry{
		{ID: "a", StartMin: 540, DurationMin: 30},  // exactly at open
		{ID: "b", StartMin: 660, DurationMin: 15},  // short, gets the floor
		{ID: "c", StartMin: 500, DurationMin: 30},  // before open, clamped
	}
	boxes := Layout(entries, 540, 300, 2)

	a := boxByID(t, boxes, "a")
	if a.Top != 0 {
		t.Fatalf("expected top=0 at opening time, got %v", a.Top)
	}
	if a.Height < 60 {
		t.Fatalf("expected height >= 60 for 30 minutes at 2px/min, got %v", a.Height)
	}

	b := boxByID(t, boxes, "b")
	if b.Height != 60 {
		t.Fatalf("expected the 30-minute render floor (60px), got %v", b.Height)
	}

	c := boxByID(t, boxes, "c")
	if c.Top != 0 {
		t.Fatalf("expected negative top to clamp to 0, got %v", c.Top)
	}
}

func TestLayoutLanesForOverlaps(t *testing.T) {
	entries := []Entry{
		{ID: "a", StartMin: 600, DurationMin: 60},
		{ID: "b", StartMin: 630, DurationMin: 60}, // overlaps a
		{ID: "c", StartMin: 720, DurationMin: 30}, // overlaps nothing
	}
	boxes := Layout(entries, 540, 300, 2)

	if boxByID(t, boxes, "a").Lane != 0 {
		t.Fatalf("expected first entry in lane 0")
	}
	if boxByID(t, boxes, "b").Lane != 1 {
		t.Fatalf("expected overlapping entry in lane 1")
	}
	if boxByID(t, boxes, "c").Lane != 0 {
		t.Fatalf("expected non-overlapping entry back in lane 0")
	}
}

func TestLayoutWidthSplit(t *testing.T) {
	entries := []Entry{
		{ID: "a", StartMin: 600, DurationMin: 60},
		{ID: "b", StartMin: 630, DurationMin: 60},
	}
	boxes := Layout(entries, 540, 300, 2)

	b := boxByID(t, boxes, "b")
	if b.Left != 150 {
		t.Fatalf("expected lane 1 left=150 with two columns over 300px, got %v", b.Left)
	}
	if b.Width != 135 {
		t.Fatalf("expected width 135 (150 * 0.9), got %v", b.Width)
	}
}

// The documented approximation: c overlaps only a, but because a and b
// were placed before it, it still counts just its own overlaps, so it
// lands in lane 1 even though lane 1 is taken by b in a disjoint time
// range elsewhere.
func TestLayoutApproximatePacking(t *testing.T) {
	entries := []Entry{
		{ID: "a", StartMin: 600, DurationMin: 120},
		{ID: "b", StartMin: 630, DurationMin: 30},
		{ID: "c", StartMin: 690, DurationMin: 30},
	}
	boxes := Layout(entries, 540, 300, 2)
	if boxByID(t, boxes, "c").Lane != 1 {
		t.Fatalf("expected c in lane 1 (overlaps a only), got %d", boxByID(t, boxes, "c").Lane)
	}
}

func TestLayoutDeterministicTieBreak(t *testing.T) {
	entries := []Entry{
		{ID: "b", StartMin: 600, DurationMin: 30},
		{ID: "a", StartMin: 600, DurationMin: 30},
	}
	first := Layout(entries, 540, 300, 2)
	second := Layout([]Entry{entries[1], entries[0]}, 540, 300, 2)

	if boxByID(t, first, "a").Lane != boxByID(t, second, "a").Lane {
		t.Fatalf("lane assignment depends on input order")
	}
	if boxByID(t, first, "a").Lane != 0 || boxByID(t, first, "b").Lane != 1 {
		t.Fatalf("expected id order to break start-time ties")
	}
}

func TestHourSlots(t *testing.T) {
	slots := HourSlots(540, 1080)
	if len(slots) != 10 {
		t.Fatalf("expected 10 hour rows from 9:00 through 18:00, got %d", len(slots))
	}
	if slots[0].Hour != 9 || slots[0].Label != "9:00 AM" {
		t.Fatalf("unexpected first slot: %+v", slots[0])
	}
	last := slots[len(slots)-1]
	if last.Hour != 18 || last.Label != "6:00 PM" {
		t.Fatalf("unexpected last slot: %+v", last)
	}
}
