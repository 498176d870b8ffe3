package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

const (
	otpSubject = "Your RentEase verification code"

	otpBodyTemplate = "Hello %s,\n\n" +
		"Your verification code is: %s\n\n" +
		"The code expires in %d minutes. If you did not request it, ignore this email.\n\n" +
		"RentEase team"
)

// Client SMTP клиент для отправки писем пользователям
type Client struct {
	dialer *gomail.Dialer
	from   string
	log    Logger
}

// NewClient создает новый экземпляр SMTP клиента
func NewClient(host string, port int, username, password, from string, log Logger) *Client {
	return &Client{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		log:    log,
	}
}

// SendOTP отправляет одноразовый код подтверждения на почту пользователя
func (c *Client) SendOTP(to, name, code string, ttlMinutes int) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", otpSubject)
	msg.SetBody("text/plain", fmt.Sprintf(otpBodyTemplate, name, code, ttlMinutes))

	if err := c.dialer.DialAndSend(msg); err != nil {
		c.log.Error("SendOTP - failed to send email to %s: %v", to, err)
		return fmt.Errorf("%w: SendOTP - dial and send: %v", ErrSendFailed, err)
	}

	c.log.Info("SendOTP - verification code sent to %s", to)

	return nil
}
