package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	portssvc "github.com/testbanken/backoffice/internal/core/ports/services"
)

// SMTPNotifier dispatches audit reports over SMTP. It implements the core's
// Notifier port; the scanner treats dispatch as fire-and-forget, so this
// adapter does not retry.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	sender string
}

// NewSMTPNotifier creates a notifier for the given SMTP endpoint.
func NewSMTPNotifier(host string, port int, username, password, sender string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

var _ portssvc.Notifier = (*SMTPNotifier)(nil)

// Send delivers one plain-text message.
// Implements portssvc.Notifier
func (n *SMTPNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", recipient, err)
	}
	return nil
}
