package notifications

import (
	"bytes"
	"fmt"
	"html/template"
)

// Email bodies are rendered with html/template so names and titles sent by
// clients are escaped before they reach an inbox.
var (
	bookingConfirmationTmpl = template.Must(template.New("booking_confirmation").Parse(
		`<p>Hi {{.StudentName}},</p><p>You are booked on <strong>{{.Title}}</strong> with {{.TutorName}}.</p><p>Class starts: {{.ClassStartTime}}</p>`))

	sessionStatusTmpl = template.Must(template.New("session_status").Parse(
		`<p>Hi {{.TutorName}},</p><p>Your study session <strong>{{.Title}}</strong> is now <strong>{{.Status}}</strong>.</p>`))

	classReminderTmpl = template.Must(template.New("class_reminder").Parse(
		`<h1>Class Reminder</h1><p>Hi {{.StudentName}},</p><p>Your session <b>{{.Title}}</b> with {{.TutorName}} starts at {{.StartsAt}}.</p>`))
)

type BookingConfirmation struct {
	StudentName    string
	Title          string
	TutorName      string
	ClassStartTime string
}

type SessionStatus struct {
	TutorName string
	Title     string
	Status    string
}

type ClassReminder struct {
	StudentName string
	Title       string
	TutorName   string
	StartsAt    string
}

func RenderBookingConfirmation(data BookingConfirmation) (string, error) {
	return render(bookingConfirmationTmpl, data)
}

func RenderSessionStatus(data SessionStatus) (string, error) {
	return render(sessionStatusTmpl, data)
}

func RenderClassReminder(data ClassReminder) (string, error) {
	return render(classReminderTmpl, data)
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", tmpl.Name(), err)
	}
	return out.String(), nil
}
