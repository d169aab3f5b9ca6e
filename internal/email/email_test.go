package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg *Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func sampleContact() ContactData {
	return ContactData{
		ID:          "12",
		Name:        "Jane <script>",
		Email:       "jane@example.com",
		Subject:     "Logo",
		Message:     "Need a logo",
		SubmittedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderContact_EscapesHTML(t *testing.T) {
	html, text, err := RenderContact(sampleContact())
	require.NoError(t, err)

	assert.Contains(t, html, "Jane &lt;script&gt;")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, text, "Jane <script>")
	assert.Contains(t, text, "Subject: Logo")
	assert.NotContains(t, text, "Phone:")
}

func TestNotifyContact(t *testing.T) {
	sender := &recordingSender{}
	n := NewContactNotifier(sender, []string{"owner@rastaka.com"}, "https://admin.rastaka.com")

	require.NoError(t, n.NotifyContact(context.Background(), sampleContact()))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"owner@rastaka.com"}, msg.To)
	assert.Equal(t, "jane@example.com", msg.ReplyTo)
	assert.Equal(t, "New contact submission: Logo", msg.Subject)
	assert.True(t, strings.Contains(msg.HTMLBody, "https://admin.rastaka.com"))
}

func TestNotifyContact_DisabledIsNoop(t *testing.T) {
	assert.False(t, NewContactNotifier(NoopSender{}, []string{"a@b.c"}, "").Enabled())

	sender := &recordingSender{}
	n := NewContactNotifier(sender, nil, "")
	require.NoError(t, n.NotifyContact(context.Background(), sampleContact()))
	assert.Empty(t, sender.sent)
}

func TestNotifyContact_PropagatesSendError(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	n := NewContactNotifier(sender, []string{"a@b.c"}, "")
	assert.EqualError(t, n.NotifyContact(context.Background(), sampleContact()), "smtp down")
}

func TestNewSMTPSender_Validates(t *testing.T) {
	_, err := NewSMTPSender(Config{Port: 587})
	assert.Error(t, err)
	_, err = NewSMTPSender(Config{Host: "smtp.example.com", Port: 0})
	assert.Error(t, err)

	s, err := NewSMTPSender(Config{Host: "smtp.example.com", Port: 587, Username: "bot@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "bot@example.com", s.config.FromEmail)
}
