package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"hrbridge/config"
	"hrbridge/models"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var meetingEmailTmpl = template.Must(template.New("meeting").Parse(`<html>
<body>
<p>Hi {{.RecipientUsername}},</p>
{{if eq .Event "booked"}}
<p>Your meeting with <b>{{.HRReviewer}}</b> is confirmed.</p>
{{else}}
<p>Your meeting with <b>{{.HRReviewer}}</b> has been cancelled and the slot released.</p>
{{end}}
<p>Date: {{.Date}}<br>Time: {{.StartTime}} &ndash; {{.EndTime}}</p>
<p><a href="{{.BaseURL}}">Open HR portal</a></p>
</body>
</html>`))

// Mailer renders and sends meeting notification emails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailer constructs a Mailer from the SMTP configuration.
func NewMailer(logger *zap.Logger) *Mailer {
	cfg := config.AppConfig
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
		logger: logger,
	}
}

// Subject builds the notification subject line for the given payload.
func Subject(p models.MeetingEmailPayload) string {
	if p.Event == models.MeetingEventBooked {
		return fmt.Sprintf("Meeting Confirmation: Your slot with %s is booked!", p.HRReviewer)
	}
	return fmt.Sprintf("Meeting Cancellation: Your slot with %s has been unbooked.", p.HRReviewer)
}

// RenderBody renders the HTML body for the given payload.
func RenderBody(p models.MeetingEmailPayload) (string, error) {
	var buf bytes.Buffer
	data := struct {
		models.MeetingEmailPayload
		BaseURL string
	}{p, config.AppConfig.BaseURL}
	if err := meetingEmailTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render meeting email: %w", err)
	}
	return buf.String(), nil
}

// Send delivers the meeting email. Errors are returned so the task queue can
// retry, but they never reach the booking caller.
func (m *Mailer) Send(p models.MeetingEmailPayload) error {
	if p.RecipientEmail == "" {
		m.logger.Warn("meeting email payload has no recipient address, skipping",
			zap.String("slotId", p.SlotID))
		return nil
	}

	body, err := RenderBody(p)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", p.RecipientEmail)
	msg.SetHeader("Subject", Subject(p))
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("failed to send meeting email",
			zap.String("slotId", p.SlotID),
			zap.String("event", p.Event),
			zap.String("recipient", p.RecipientEmail),
			zap.Error(err))
		return fmt.Errorf("failed to send meeting email for slot %s: %w", p.SlotID, err)
	}

	m.logger.Info("meeting email sent",
		zap.String("slotId", p.SlotID),
		zap.String("event", p.Event),
		zap.String("recipient", p.RecipientEmail))
	return nil
}
