package services

import (
	"fmt"
	"html"
	"log"

	"paper-submission-api/config"
	"paper-submission-api/utils"

	mail "github.com/go-mail/mail/v2"
)

// Notification kinds sent by the workflow layer.
const (
	NotifySubmissionSubmitted = "submission_submitted"
	NotifyReviewerAssigned    = "reviewer_assigned"
	NotifyReviewCompleted     = "review_completed"
	NotifyDecisionAccepted    = "decision_accepted"
	NotifyDecisionRejected    = "decision_rejected"
	NotifyRevisionRequested   = "revision_requested"
)

// Notifier delivers best-effort email. Implementations are constructed once
// at process start and injected into the workflow service; failures are
// logged by the caller and never abort a workflow transition.
type Notifier interface {
	Notify(kind, recipient string, payload map[string]string) error
}

// SMTPNotifier sends templated HTML mail through a go-mail dialer.
type SMTPNotifier struct {
	cfg    config.SMTPConfig
	dialer *mail.Dialer
}

// NewSMTPNotifier builds the notifier from SMTP settings.
func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, dialer: cfg.NewDialer()}
}

func (n *SMTPNotifier) Notify(kind, recipient string, payload map[string]string) error {
	if recipient == "" {
		return nil
	}
	if !utils.ValidateEmail(recipient) {
		return fmt.Errorf("invalid recipient address %q", recipient)
	}
	if !n.cfg.IsConfigured() {
		return fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}

	subject, message := renderNotification(kind, payload)

	m := mail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", buildFormalEmailHTML(subject, payload["recipient_name"], message))

	return n.dialer.DialAndSend(m)
}

// LogNotifier is the fallback when SMTP is not configured: it records the
// notification in the application log and succeeds.
type LogNotifier struct{}

func (LogNotifier) Notify(kind, recipient string, payload map[string]string) error {
	log.Printf("notification (log only): kind=%s to=%s title=%q", kind, recipient, payload["title"])
	return nil
}

func renderNotification(kind string, payload map[string]string) (subject, message string) {
	title := payload["title"]
	event := payload["event_name"]

	switch kind {
	case NotifySubmissionSubmitted:
		subject = fmt.Sprintf("Submission received: %s", title)
		message = fmt.Sprintf("Your paper \"%s\" has been submitted to %s and is awaiting review.", title, event)
	case NotifyReviewerAssigned:
		subject = fmt.Sprintf("Review assignment: %s", title)
		message = fmt.Sprintf("You have been assigned to review the paper \"%s\" for %s.", title, event)
		if due := payload["due_date"]; due != "" {
			message += fmt.Sprintf(" The review is due by %s.", due)
		}
	case NotifyReviewCompleted:
		subject = fmt.Sprintf("All reviews completed: %s", title)
		message = fmt.Sprintf("All assigned reviews for \"%s\" are complete. The submission is ready for a decision.", title)
	case NotifyDecisionAccepted:
		subject = fmt.Sprintf("Paper accepted: %s", title)
		message = fmt.Sprintf("Congratulations! Your paper \"%s\" has been accepted for %s.", title, event)
	case NotifyDecisionRejected:
		subject = fmt.Sprintf("Paper decision: %s", title)
		message = fmt.Sprintf("We regret to inform you that your paper \"%s\" was not accepted for %s.", title, event)
	case NotifyRevisionRequested:
		subject = fmt.Sprintf("Revision requested: %s", title)
		message = fmt.Sprintf("The committee has requested a revision of your paper \"%s\" for %s.", title, event)
	default:
		subject = "Paper submission system notification"
		message = fmt.Sprintf("There is an update on \"%s\".", title)
	}
	return subject, message
}

func buildFormalEmailHTML(subject, recipientName, message string) string {
	if recipientName == "" {
		recipientName = "Author"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 24px;">
    <h2 style="color: #1a4d8f;">%s</h2>
    <p>Dear %s,</p>
    <p>%s</p>
    <p style="margin-top: 24px;">Best regards,<br>Paper Submission System</p>
    <hr style="border: none; border-top: 1px solid #ddd; margin-top: 24px;">
    <p style="font-size: 12px; color: #888;">This is an automated message. Please do not reply.</p>
  </div>
</body>
</html>`, html.EscapeString(subject), html.EscapeString(recipientName), html.EscapeString(message))
}
