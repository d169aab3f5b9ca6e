package email

import (
	"context"
	"fmt"
)

// ContactNotifier шлет администратору письмо о новой заявке
type ContactNotifier struct {
	sender   Sender
	notifyTo []string
	adminURL string
}

func NewContactNotifier(sender Sender, notifyTo []string, adminURL string) *ContactNotifier {
	return &ContactNotifier{sender: sender, notifyTo: notifyTo, adminURL: adminURL}
}

func (n *ContactNotifier) Enabled() bool {
	if n == nil || n.sender == nil || len(n.notifyTo) == 0 {
		return false
	}
	_, noop := n.sender.(NoopSender)
	return !noop
}

func (n *ContactNotifier) NotifyContact(ctx context.Context, data ContactData) error {
	if !n.Enabled() {
		return nil
	}
	if data.AdminURL == "" {
		data.AdminURL = n.adminURL
	}

	html, text, err := RenderContact(data)
	if err != nil {
		return err
	}

	subject := "New contact submission"
	if data.Subject != "" {
		subject = fmt.Sprintf("%s: %s", subject, data.Subject)
	}

	return n.sender.Send(ctx, &Message{
		To:       n.notifyTo,
		ReplyTo:  data.Email,
		Subject:  subject,
		Body:     text,
		HTMLBody: html,
	})
}
