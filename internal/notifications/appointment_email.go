package notifications

import (
	"bytes"
	"fmt"
	"html/template"

	"hairdo-backend/internal/models"
	"hairdo-backend/internal/timemath"
)

const confirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Hi {{.Name}},</p>
  <p>Your appointment is booked. Here are the details:</p>
  <ul>
    <li>Service: {{.ServiceName}}</li>
    <li>Stylist appointment on: {{.Date}}</li>
    <li>Time: {{.Time}}</li>
    <li>Duration: {{.DurationMinutes}} minutes</li>
    <li>Price: {{.Price}}</li>
    <li>Deposit due: {{.Deposit}}</li>
    <li>Booking reference: {{.AppointmentID}}</li>
  </ul>
  <p>Free cancellation until {{.CancelBy}}. Cancellations after that time
  forfeit the deposit.</p>
  <p>See you soon.</p>
</body>
</html>`

const reminderTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Hi {{.Name}},</p>
  <p>A quick reminder about your upcoming appointment:</p>
  <ul>
    <li>Service: {{.ServiceName}}</li>
    <li>Date: {{.Date}}</li>
    <li>Time: {{.Time}}</li>
    <li>Booking reference: {{.AppointmentID}}</li>
  </ul>
  <p>If you can no longer make it, please cancel as early as possible so the
  slot can be offered to someone else.</p>
</body>
</html>`

var (
	confirmationTmpl = template.Must(template.New("appointment_confirmation").Parse(confirmationTemplate))
	reminderTmpl     = template.Must(template.New("appointment_reminder").Parse(reminderTemplate))
)

type appointmentEmailData struct {
	Name            string
	ServiceName     string
	Date            string
	Time            string
	DurationMinutes int
	Price           string
	Deposit         string
	CancelBy        string
	AppointmentID   string
}

func buildConfirmationHTML(appt models.Appointment, service models.Service) (string, error) {
	data := appointmentEmailData{
		Name:            appt.CustomerName,
		ServiceName:     service.Name,
		Date:            appt.Date,
		Time:            startLabel(appt),
		DurationMinutes: appt.Duration,
		Price:           fmt.Sprintf("$%.2f", appt.Price),
		Deposit:         fmt.Sprintf("$%.2f", appt.DepositAmount),
		CancelBy:        appt.CancelBy.Format("Monday, January 2 at 3:04 PM"),
		AppointmentID:   appt.ID,
	}
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildReminderHTML(appt models.Appointment, service models.Service) (string, error) {
	data := appointmentEmailData{
		Name:          appt.CustomerName,
		ServiceName:   service.Name,
		Date:          appt.Date,
		Time:          startLabel(appt),
		AppointmentID: appt.ID,
	}
	var buf bytes.Buffer
	if err := reminderTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// startLabel renders the stored "HH:MM" start in 12-hour form, falling
// back to the raw string when it fails to parse.
func startLabel(appt models.Appointment) string {
	if min, err := timemath.ToMinutes(appt.StartTime); err == nil {
		return timemath.Clock12(min)
	}
	return appt.StartTime
}
