package mail

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Message is one outgoing email.
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	BodyText  string
	BodyHTML  string
}

// Sender delivers a single message. Retries are the caller's concern.
type Sender interface {
	Send(msg Message) error
}

// SendGrid sends mail through the SendGrid v3 API.
type SendGrid struct {
	key  string
	from *sgmail.Email
}

// NewSendGrid creates a SendGrid sender.
func NewSendGrid(apiKey, fromName, fromAddress string) *SendGrid {
	return &SendGrid{
		key:  apiKey,
		from: sgmail.NewEmail(fromName, fromAddress),
	}
}

// Send delivers the message via SendGrid.
func (s *SendGrid) Send(msg Message) error {
	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)

	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToAddress))
	m.AddPersonalizations(p)

	if msg.BodyText != "" {
		m.AddContent(sgmail.NewContent("text/plain", msg.BodyText))
	}
	if msg.BodyHTML != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.BodyHTML))
	}

	req := sendgrid.GetRequest(s.key, "/v3/mail/send", "https://api.sendgrid.com")
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// Console logs messages instead of sending them. Used in development when no
// SendGrid key is configured.
type Console struct {
	logger *zap.Logger
}

// NewConsole creates a console sender.
func NewConsole(logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{logger: logger}
}

// Send logs the message.
func (c *Console) Send(msg Message) error {
	c.logger.Info("email (console)",
		zap.String("to", msg.ToAddress),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.BodyText),
	)
	return nil
}
