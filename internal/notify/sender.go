package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/alphaclinic/clinic-manager/internal/config"
)

// Message is a fully-rendered outbound notification.
type Message struct {
	Channel   string // models.ChannelSMS or models.ChannelEmail
	Recipient string // phone number or email address
	Subject   string // email only
	Body      string
}

// Sender delivers one rendered message through one channel and returns
// the provider's message id when it has one.
type Sender interface {
	Send(ctx context.Context, msg Message) (externalID string, err error)
}

// --------------------------------------------------
// Twilio SMS
// --------------------------------------------------

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(cfg *config.Config) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from: cfg.TwilioFromNumber,
	}
}

func (s *TwilioSender) Send(ctx context.Context, msg Message) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(msg.Recipient)
	params.SetFrom(s.from)
	params.SetBody(msg.Body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "", nil
}

// --------------------------------------------------
// SMTP email
// --------------------------------------------------

type SMTPSender struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	if s.host == "" {
		return "", fmt.Errorf("smtp not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.Recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.Body)

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.password, s.host)
	}

	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, s.from, []string{msg.Recipient}, []byte(b.String())); err != nil {
		return "", err
	}
	return "", nil
}
