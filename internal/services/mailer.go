package services

import (
	"log"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends transactional and broadcast email over SMTP. Delivery is
// best-effort: there is no queue and no retry, and a failed send never fails
// the user action that triggered it.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewMailer(host string, port int, username, password, from, fromName string) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		fromName: fromName,
	}
}

// Send delivers one HTML email and blocks until the SMTP exchange finishes.
func (m *Mailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	return m.dialer.DialAndSend(msg)
}

// SendAsync delivers in the background. Failures are logged and swallowed;
// the caller should not wait on this.
func (m *Mailer) SendAsync(to, subject, html string) {
	go func() {
		if err := m.Send(to, subject, html); err != nil {
			log.Printf("⚠️  Failed to send email to %s: %v", to, err)
		}
	}()
}
