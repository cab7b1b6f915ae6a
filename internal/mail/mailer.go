package mail

import (
	"context"

	gomail "github.com/wneessen/go-mail"
)

// Sender is the outbound mail capability. The auth flow only ever needs
// fire-and-forget HTML delivery.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type SMTPSender struct {
	client *gomail.Client
	from   string
}

func NewSMTPSender(host string, port int, user, pass, from string) (*SMTPSender, error) {
	client, err := gomail.NewClient(host,
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(user),
		gomail.WithPassword(pass),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, err
	}
	return &SMTPSender{client: client, from: from}, nil
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, html string) error {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return err
	}
	if err := m.To(to); err != nil {
		return err
	}
	m.Subject(subject)
	m.SetBodyString(gomail.TypeTextHTML, html)
	return s.client.DialAndSendWithContext(ctx, m)
}
