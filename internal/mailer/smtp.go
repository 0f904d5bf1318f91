package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSender delivers mail over plain SMTP. Pointed at a relay such as
// Mailpit in development and the transactional provider's SMTP bridge in
// production.
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPSender constructs a sender. Auth is skipped when user is empty.
func NewSMTPSender(host string, port int, from, user, pass string) *SMTPSender {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

// Send delivers a single message.
func (s *SMTPSender) Send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", email.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", email.Subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(email.Body)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{email.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", email.To, err)
	}
	return nil
}
