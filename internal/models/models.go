package models

import "time"

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCheckedIn = "checked-in"
	AppointmentStatusInService = "in-service"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusNoShow    = "no-show"

	UserRoleAdmin = "admin"
)

// AppointmentStatuses lists every status the update endpoints accept.
var AppointmentStatuses = []string{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCheckedIn,
	AppointmentStatusInService,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusNoShow,
}

// StatusBlocksSlot reports whether an appointment in the given status
// still occupies its time slot. Cancelled and no-show appointments
// free the slot; everything else keeps it.
func StatusBlocksSlot(status string) bool {
	return status != AppointmentStatusCancelled && status != AppointmentStatusNoShow
}

// StatusIsTerminal reports whether an appointment's time fields may no
// longer change. Reschedules are rejected for terminal appointments.
func StatusIsTerminal(status string) bool {
	return status == AppointmentStatusCompleted ||
		status == AppointmentStatusCancelled ||
		status == AppointmentStatusNoShow
}

// Appointment is the central booking record. StartTime/EndTime are
// wall-clock "HH:MM" in the salon's timezone; Date is "YYYY-MM-DD".
// The Dp/Cnw/Deposit/CancelBy/BookedAt fields are the policy snapshot
// frozen at creation time and are never recomputed afterwards.
type Appointment struct {
	ID         string `bson:"_id,omitempty" json:"id"`
	BusinessID string `bson:"businessId" json:"businessId"`
	EmployeeID string `bson:"employeeId" json:"employeeId"`
	CustomerID string `bson:"customerId" json:"customerId"`
	ServiceID  string `bson:"serviceId" json:"serviceId"`

	CustomerName  string `bson:"customerName,omitempty" json:"customerName,omitempty"`
	CustomerEmail string `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`

	Date      string `bson:"date" json:"date"`
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	Duration  int    `bson:"duration" json:"duration"`

	Status string  `bson:"status" json:"status"`
	Price  float64 `bson:"price" json:"price"`

	DpUsedPercent int     `bson:"dpUsedPercent" json:"dpUsedPercent"`
	CnwUsedHours  int     `bson:"cnwUsedHours" json:"cnwUsedHours"`
	DepositAmount float64 `bson:"depositAmount" json:"depositAmount"`

	CancelBy time.Time `bson:"cancelBy" json:"cancelBy"`
	BookedAt time.Time `bson:"bookedAt" json:"bookedAt"`

	ReminderSentAt *time.Time `bson:"reminderSentAt,omitempty" json:"reminderSentAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// StoreHoursEntry is one weekday's opening window in decimal hours
// (9.5 = 9:30). Weekday is 0..6 with Sunday = 0. A missing weekday
// means the salon is closed that day.
type StoreHoursEntry struct {
	Weekday int     `bson:"weekday" json:"weekday"`
	Open    float64 `bson:"open" json:"open"`
	Close   float64 `bson:"close" json:"close"`
}

// BookingPolicy is the salon-wide booking configuration. It is read
// once per operation and passed into the engine by value; appointments
// keep their own snapshot of the fields that matter financially.
type BookingPolicy struct {
	MaxAdvanceDays        int `bson:"maxAdvanceDays" json:"maxAdvanceDays"`
	CancellationHours     int `bson:"cancellationHours" json:"cancellationHours"`
	DepositPercentage     int `bson:"depositPercentage" json:"depositPercentage"`
	ReminderMinutesBefore int `bson:"reminderMinutesBefore" json:"reminderMinutesBefore"`
	WaitlistMax           int `bson:"waitlistMax" json:"waitlistMax"`

	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Service is the catalog entry the engine consumes: a duration to book
// and a price to snapshot the deposit from.
type Service struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Slug      string    `bson:"slug" json:"slug"`
	Category  string    `bson:"category" json:"category"`
	Duration  int       `bson:"duration" json:"duration"`
	Price     float64   `bson:"price" json:"price"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Employee struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Role       string    `bson:"role" json:"role"`
	ServiceIDs []string  `bson:"serviceIds" json:"serviceIds"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
