package email

import (
	"context"
	"sync"
)

// Service sends account mail to nutritionists
type Service interface {
	SendPasswordReset(ctx context.Context, to, name, link string) error
	SendWelcome(ctx context.Context, to, name string) error
}

// Message is a rendered mail
type Message struct {
	To      string
	Subject string
	Body    string
}

// NopService drops every mail. It is used when SMTP is not configured.
type NopService struct{}

func (NopService) SendPasswordReset(context.Context, string, string, string) error { return nil }
func (NopService) SendWelcome(context.Context, string, string) error                 { return nil }

// Outbox keeps rendered mail in memory
type Outbox struct {
	mu       sync.Mutex
	messages []Message
}

func (o *Outbox) SendPasswordReset(_ context.Context, to, name, link string) error {
	o.add(passwordReset(to, name, link))
	return nil
}

func (o *Outbox) SendWelcome(_ context.Context, to, name string) error {
	o.add(welcome(to, name))
	return nil
}

func (o *Outbox) add(m Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, m)
}

// Messages returns a copy of everything sent so far
func (o *Outbox) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Message, len(o.messages))
	copy(out, o.messages)
	return out
}

func passwordReset(to, name, link string) Message {
	return Message{
		To:      to,
		Subject: "Reset your password",
		Body: "Hello " + name + ",\n\n" +
			"We received a request to reset your password. Open the link below to choose a new one:\n\n" +
			link + "\n\n" +
			"If you did not ask for this, you can ignore this message. The link expires in one hour.\n",
	}
}

func welcome(to, name string) Message {
	return Message{
		To:      to,
		Subject: "Welcome to Nutri",
		Body:    "Hello " + name + ",\n\nYour account is ready.\n",
	}
}
