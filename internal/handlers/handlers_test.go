package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hairdo-backend/internal/config"
	"hairdo-backend/internal/models"
	"hairdo-backend/internal/validation"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return &Server{
		Cfg: &config.Config{
			Timezone:   loc,
			BusinessID: "hairdo-main",
		},
		Val: validation.New(),
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestParseDurationParam(t *testing.T) {
	if got, err := parseDurationParam("", 15); err != nil || got != 15 {
		t.Fatalf("empty param: got %d, %v", got, err)
	}
	if got, err := parseDurationParam("45", 15); err != nil || got != 45 {
		t.Fatalf("valid param: got %d, %v", got, err)
	}
	for _, raw := range []string{"0", "-15", "20", "255", "abc"} {
		if _, err := parseDurationParam(raw, 15); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestBookedIntervalsSkipsUnparseable(t *testing.T) {
	booked := bookedIntervals([]models.Appointment{
		{StartTime: "09:00", Duration: 30, Status: models.AppointmentStatusConfirmed},
		{StartTime: "garbage", Duration: 30, Status: models.AppointmentStatusConfirmed},
		{StartTime: "10:15", Duration: 45, Status: models.AppointmentStatusCancelled},
	})
	if len(booked) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(booked))
	}
	if booked[0].Start != 540 || booked[0].End != 570 {
		t.Fatalf("first interval: got [%d,%d)", booked[0].Start, booked[0].End)
	}
	if booked[1].Status != models.AppointmentStatusCancelled {
		t.Fatalf("status not carried: %s", booked[1].Status)
	}
}

func TestCreateAppointmentRejectsInvalidJSON(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	s.CreateAppointment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateAppointmentRejectsMissingFields(t *testing.T) {
	s := testServer(t)
	body := `{"serviceId":"svc1","date":"2026-09-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.CreateAppointment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "validation error") {
		t.Fatalf("expected validation details, got %s", rec.Body.String())
	}
}

func TestCreateAppointmentRejectsPastDate(t *testing.T) {
	s := testServer(t)
	body := `{"employeeId":"emp1","serviceId":"svc1","customerId":"cust1","customerName":"Dana","date":"2020-01-01","startTime":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.CreateAppointment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "past") {
		t.Fatalf("expected past-date error, got %s", rec.Body.String())
	}
}

func TestGetAvailabilityRejectsBadQuery(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?employeeId=emp1&date=not-a-date", nil)
	rec := httptest.NewRecorder()
	s.GetAvailability(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: expected 400, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/availability?employeeId=emp1&date=2026-09-01&duration=22", nil)
	rec = httptest.NewRecorder()
	s.GetAvailability(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("off-grid duration: expected 400, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2026-09-01", nil)
	rec = httptest.NewRecorder()
	s.GetAvailability(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing employee: expected 400, got %d", rec.Code)
	}
}

func TestAdminStoreHoursRejectsInvertedWindow(t *testing.T) {
	s := testServer(t)
	body := `{"entries":[{"weekday":2,"open":18,"close":9}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/store-hours", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.AdminUpdateStoreHours(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
