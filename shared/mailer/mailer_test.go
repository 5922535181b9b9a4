package mailer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestMailer_Disabled(t *testing.T) {
	m := NewMailer(Config{})

	assert.False(t, m.Enabled())
	assert.ErrorIs(t, m.SendHTML([]string{"a@x.com"}, "hi", "<p>hi</p>"), ErrDisabled)
}

func TestMailer_SendHTML(t *testing.T) {
	d := &fakeDialer{}
	m := &Mailer{config: Config{Host: "smtp.local", Port: 25, From: "noreply@devconnector.dev"}, dialer: d}

	require.NoError(t, m.SendHTML([]string{"a@x.com"}, "Welcome", "<p>hello</p>"))
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"noreply@devconnector.dev"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"a@x.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Welcome"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
	assert.Contains(t, buf.String(), "<p>hello</p>")
}

func TestMailer_NoRecipients(t *testing.T) {
	m := &Mailer{dialer: &fakeDialer{}}

	assert.Error(t, m.Send(Email{Subject: "x"}))
}

func TestMailer_DialError(t *testing.T) {
	m := &Mailer{dialer: &fakeDialer{err: errors.New("connection refused")}}

	assert.EqualError(t, m.SendHTML([]string{"a@x.com"}, "s", "b"), "connection refused")
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{}.Validate())
	assert.Error(t, Config{Host: "smtp.local", Port: 25}.Validate())
	assert.NoError(t, Config{Host: "smtp.local", Port: 25, From: "a@x.com"}.Validate())
}
