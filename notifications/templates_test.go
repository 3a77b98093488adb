package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkTitle = `<a href="https://evil.example/login">Reset your password</a>`

func TestRenderedEmailsEscapeClientText(t *testing.T) {
	booking, err := RenderBookingConfirmation(BookingConfirmation{StudentName: "<b>Sam</b>", Title: linkTitle, TutorName: "Tom"})
	require.NoError(t, err)

	status, err := RenderSessionStatus(SessionStatus{TutorName: "Tom", Title: linkTitle, Status: "Approved"})
	require.NoError(t, err)

	reminder, err := RenderClassReminder(ClassReminder{StudentName: "Sam", Title: linkTitle, TutorName: "<i>Tom</i>", StartsAt: "9:00AM"})
	require.NoError(t, err)

	for name, body := range map[string]string{"booking": booking, "status": status, "reminder": reminder} {
		assert.NotContains(t, body, "<a href", name)
		assert.Contains(t, body, "&lt;a href=&#34;https://evil.example/login&#34;&gt;", name)
	}
	assert.Contains(t, booking, "&lt;b&gt;Sam&lt;/b&gt;")
	assert.Contains(t, reminder, "&lt;i&gt;Tom&lt;/i&gt;")
}

func TestRenderBookingConfirmation(t *testing.T) {
	body, err := RenderBookingConfirmation(BookingConfirmation{
		StudentName: "Sam", Title: "Calculus", TutorName: "Tom", ClassStartTime: "2026-11-01T10:00",
	})
	require.NoError(t, err)
	assert.Equal(t,
		`<p>Hi Sam,</p><p>You are booked on <strong>Calculus</strong> with Tom.</p><p>Class starts: 2026-11-01T10:00</p>`,
		body)
}
