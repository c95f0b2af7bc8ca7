// Package mail sends the transactional account emails.
package mail

import "context"

// Dispatcher delivers lifecycle emails to account holders.
type Dispatcher interface {
	SendWelcome(ctx context.Context, email string, name string) error
	SendFarewell(ctx context.Context, email string, name string) error
}

// NoopDispatcher discards all mail. Used when no SMTP host is configured.
type NoopDispatcher struct{}

func (NoopDispatcher) SendWelcome(ctx context.Context, email string, name string) error {
	return nil
}

func (NoopDispatcher) SendFarewell(ctx context.Context, email string, name string) error {
	return nil
}
