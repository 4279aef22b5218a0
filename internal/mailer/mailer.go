// Package mailer sends transactional mail for the public submission
// flow. Sends are fire-and-forget from the caller's perspective.
package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"filmfest/config"
)

type Mailer struct {
	dialer     *gomail.Dialer
	from       string
	fromName   string
	adminEmail string
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:       cfg.MailFrom,
		fromName:   cfg.MailFromName,
		adminEmail: cfg.AdminEmail,
	}
}

// SendSubmissionReceipt mails a receipt to the submitter and a
// notification to the festival admin inbox.
func (m *Mailer) SendSubmissionReceipt(to, title, submissionID string, submittedAt time.Time) error {
	date := submittedAt.Format("02/01/2006")

	receipt := gomail.NewMessage()
	receipt.SetAddressHeader("From", m.from, m.fromName)
	receipt.SetHeader("To", to)
	receipt.SetHeader("Subject", fmt.Sprintf("We received your submission: %s", title))
	receipt.SetBody("text/plain", fmt.Sprintf(
		"Thank you for your submission.\n\nTitle: %s\nSubmission ID: %s\nSubmission Date: %s\n",
		title, submissionID, date,
	))
	if err := m.dialer.DialAndSend(receipt); err != nil {
		return fmt.Errorf("send receipt: %w", err)
	}

	if m.adminEmail == "" {
		return nil
	}
	notify := gomail.NewMessage()
	notify.SetAddressHeader("From", m.from, m.fromName)
	notify.SetHeader("To", m.adminEmail)
	notify.SetHeader("Subject", fmt.Sprintf("New submission received: %s", title))
	notify.SetBody("text/plain", fmt.Sprintf(
		"A new film submission has been received.\n\nTitle: %s\nSubmission ID: %s\nSubmission Date: %s\nSubmitter Email: %s\n",
		title, submissionID, date, to,
	))
	if err := m.dialer.DialAndSend(notify); err != nil {
		return fmt.Errorf("send admin notification: %w", err)
	}
	return nil
}
