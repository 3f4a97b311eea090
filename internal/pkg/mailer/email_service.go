package mailer

import (
	"errors"
	"fmt"
	"html"
	"time"

	"gopkg.in/gomail.v2"
)

var ErrMailerDisabled = errors.New("mailer: smtp not configured")

type IEmailService interface {
	SendSubscriptionConfirmation(toEmail, fullName, planName string, endDate time.Time) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderName, clientURL string) IEmailService {
	var d *gomail.Dialer
	if host != "" {
		d = gomail.NewDialer(host, port, username, password)
	}

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
		clientURL:   clientURL,
	}
}

func (s *emailService) SendSubscriptionConfirmation(toEmail, fullName, planName string, endDate time.Time) error {
	if s.dialer == nil {
		return ErrMailerDisabled
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your EmotiCore subscription is active")
	m.SetBody("text/html", renderSubscriptionConfirmation(fullName, planName, endDate, s.clientURL))

	return s.dialer.DialAndSend(m)
}

func renderSubscriptionConfirmation(fullName, planName string, endDate time.Time, clientURL string) string {
	greeting := "Hi there"
	if fullName != "" {
		greeting = "Hi " + html.EscapeString(fullName)
	}

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s,</h2>
			<p>Thank you for subscribing to <strong>%s</strong>.</p>
			<p>Your access is active until <strong>%s</strong>.</p>
			<a href="%s/chat" style="background-color: #7C3AED; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Continue your conversation</a>
			<p>Take care of yourself.</p>
		</div>
	`, greeting, html.EscapeString(planName), endDate.Format("January 2, 2006"), clientURL)
}
