package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendQuotaExceededNotice(toEmail, propertyName, guestAddress string) error
	SendRelayNotice(toEmail, propertyName, guestAddress, question string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

// SendQuotaExceededNotice tells the host that a guest message arrived while
// the account was over its limit and was answered with the fixed notice.
func (s *emailService) SendQuotaExceededNotice(toEmail, propertyName, guestAddress string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Message limit reached for %s", propertyName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your message limit has been reached</h2>
			<p>A guest (%s) messaged <strong>%s</strong>, but your plan's monthly message
			limit is used up, so the assistant could not reply on your behalf.</p>
			<p>The guest received a notice that you will follow up directly.</p>
			<p>Upgrade your plan to restore automated replies.</p>
		</div>
	`, guestAddress, propertyName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send quota notice to %s: %w", toEmail, err)
	}
	return nil
}

// SendRelayNotice forwards a guest question the assistant could not answer.
func (s *emailService) SendRelayNotice(toEmail, propertyName, guestAddress, question string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Guest question for %s", propertyName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>A guest question needs your attention</h2>
			<p>Guest %s asked about <strong>%s</strong>:</p>
			<blockquote style="border-left: 3px solid #ccc; padding-left: 10px;">%s</blockquote>
			<p>The assistant offered to pass it along to you.</p>
		</div>
	`, guestAddress, propertyName, question)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send relay notice to %s: %w", toEmail, err)
	}
	return nil
}
