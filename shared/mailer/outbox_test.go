package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingSender struct {
	release chan struct{}
	started chan struct{}
	sent    chan string
	err     error
}

func newBlockingSender() *blockingSender {
	return &blockingSender{
		release: make(chan struct{}),
		started: make(chan struct{}, 4),
		sent:    make(chan string, 4),
	}
}

func (s *blockingSender) Enabled() bool { return true }

func (s *blockingSender) SendHTML(to []string, _, _ string) error {
	s.started <- struct{}{}
	<-s.release
	s.sent <- to[0]
	return s.err
}

func newTestOutbox(sender htmlSender) *Outbox {
	logger := zerolog.Nop()
	return NewOutbox(sender, &logger)
}

func TestOutbox_CloseWaitsForInFlightSends(t *testing.T) {
	sender := newBlockingSender()
	outbox := newTestOutbox(sender)

	require.NoError(t, outbox.SendHTML([]string{"a@x.com"}, "Welcome", "<p>hi</p>"))
	<-sender.started

	closed := make(chan error, 1)
	go func() { closed <- outbox.Close(context.Background()) }()

	select {
	case <-closed:
		t.Fatal("Close returned before the send finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(sender.release)

	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return after the send finished")
	}
	assert.Equal(t, "a@x.com", <-sender.sent)
}

func TestOutbox_RejectsAfterClose(t *testing.T) {
	outbox := newTestOutbox(newBlockingSender())

	require.NoError(t, outbox.Close(context.Background()))
	assert.ErrorIs(t, outbox.SendHTML([]string{"a@x.com"}, "Welcome", "<p>hi</p>"), ErrClosed)
}

func TestOutbox_CloseHonoursDeadline(t *testing.T) {
	sender := newBlockingSender()
	defer close(sender.release)
	outbox := newTestOutbox(sender)

	require.NoError(t, outbox.SendHTML([]string{"a@x.com"}, "Welcome", "<p>hi</p>"))
	<-sender.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, outbox.Close(ctx), context.DeadlineExceeded)
}

func TestOutbox_SendFailureDoesNotBlockClose(t *testing.T) {
	sender := newBlockingSender()
	sender.err = errors.New("smtp down")
	close(sender.release)
	outbox := newTestOutbox(sender)

	require.NoError(t, outbox.SendHTML([]string{"a@x.com"}, "Welcome", "<p>hi</p>"))
	require.NoError(t, outbox.Close(context.Background()))
	assert.Equal(t, "a@x.com", <-sender.sent)
}

func TestOutbox_Enabled(t *testing.T) {
	assert.True(t, newTestOutbox(newBlockingSender()).Enabled())
	assert.False(t, newTestOutbox(NewMailer(Config{})).Enabled())
}
