package mailer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrClosed is returned by Outbox.SendHTML after Close has been called.
var ErrClosed = errors.New("outbox is closed")

type htmlSender interface {
	Enabled() bool
	SendHTML(to []string, subject, htmlBody string) error
}

// Outbox delivers HTML mail in the background and tracks in-flight sends so
// they can be drained on shutdown.
type Outbox struct {
	sender htmlSender
	logger *zerolog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewOutbox wraps sender. Failed deliveries are logged at warn level.
func NewOutbox(sender htmlSender, logger *zerolog.Logger) *Outbox {
	return &Outbox{sender: sender, logger: logger}
}

// Enabled reports whether the underlying sender can deliver messages.
func (o *Outbox) Enabled() bool {
	return o.sender.Enabled()
}

// SendHTML queues the message and returns immediately.
func (o *Outbox) SendHTML(to []string, subject, htmlBody string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		if err := o.sender.SendHTML(to, subject, htmlBody); err != nil {
			o.logger.Warn().Err(err).Strs("to", to).Str("subject", subject).Msg("failed to deliver email")
		}
	}()

	return nil
}

// Close stops accepting mail and waits for in-flight sends until ctx is done.
func (o *Outbox) Close(ctx context.Context) error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain outbox: %w", ctx.Err())
	}
}
