package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// SMTPDispatcher sends account emails through an SMTP relay.
type SMTPDispatcher struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPDispatcher constructs a dispatcher for the given relay. Credentials
// may be empty for relays that accept unauthenticated local delivery.
func NewSMTPDispatcher(host string, port int, username string, password string, from string) *SMTPDispatcher {
	return &SMTPDispatcher{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (d *SMTPDispatcher) newClient() (*gomail.Client, error) {
	opts := []gomail.Option{gomail.WithPort(d.port)}
	if d.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(d.username),
			gomail.WithPassword(d.password),
		)
	}
	return gomail.NewClient(d.host, opts...)
}

func (d *SMTPDispatcher) send(ctx context.Context, to string, subject string, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(d.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := d.newClient()
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func (d *SMTPDispatcher) SendWelcome(ctx context.Context, email string, name string) error {
	body := fmt.Sprintf("Welcome to the app, %s. Let me know how you get along with the app!", name)
	return d.send(ctx, email, "Welcome to Task Manager", body)
}

func (d *SMTPDispatcher) SendFarewell(ctx context.Context, email string, name string) error {
	body := fmt.Sprintf("Goodbye, %s. Is there something we could've done to keep you onboard?", name)
	return d.send(ctx, email, "Leaving Task Manager", body)
}
