package notifications

import (
	"strings"
	"testing"
	"time"

	"hairdo-backend/internal/models"
)

func TestBuildConfirmationHTML(t *testing.T) {
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	appt := models.Appointment{
		ID:            "appt1",
		CustomerName:  "Dana",
		CustomerEmail: "dana@example.com",
		Date:          "2026-06-03",
		StartTime:     "10:00",
		Duration:      45,
		Price:         60,
		DepositAmount: 12,
		CancelBy:      time.Date(2026, 6, 2, 10, 0, 0, 0, loc),
	}
	svc := models.Service{Name: "Haircut & Beard Trim"}

	html, err := buildConfirmationHTML(appt, svc)
	if err != nil {
		t.Fatalf("build confirmation: %v", err)
	}

	for _, want := range []string{
		"Dana",
		"Haircut &amp; Beard Trim",
		"2026-06-03",
		"10:00 AM",
		"45 minutes",
		"$60.00",
		"$12.00",
		"appt1",
		"Tuesday, June 2 at 10:00 AM",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("confirmation missing %q:\n%s", want, html)
		}
	}
}

func TestBuildReminderHTML(t *testing.T) {
	appt := models.Appointment{
		ID:           "appt2",
		CustomerName: "Lee",
		Date:         "2026-06-03",
		StartTime:    "14:30",
	}
	html, err := buildReminderHTML(appt, models.Service{Name: "Color"})
	if err != nil {
		t.Fatalf("build reminder: %v", err)
	}
	for _, want := range []string{"Lee", "Color", "2026-06-03", "2:30 PM", "appt2"} {
		if !strings.Contains(html, want) {
			t.Fatalf("reminder missing %q:\n%s", want, html)
		}
	}
}

func TestStartLabelFallsBackToRaw(t *testing.T) {
	appt := models.Appointment{StartTime: "not-a-clock"}
	if got := startLabel(appt); got != "not-a-clock" {
		t.Fatalf("expected raw fallback, got %q", got)
	}
}

func TestNewBrevoClientRequiresConfig(t *testing.T) {
	if c := NewBrevoClient("", "sender@example.com", "Salon", false); c != nil {
		t.Fatal("expected nil client without api key")
	}
	if c := NewBrevoClient("key", "", "Salon", false); c != nil {
		t.Fatal("expected nil client without sender")
	}
	if c := NewBrevoClient("key", "sender@example.com", "", false); c == nil {
		t.Fatal("expected client with key and sender")
	}
}
