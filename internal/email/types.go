package email

import "context"

// Message - письмо. HTMLBody приоритетнее Body, Body идет как text/plain альтернатива.
type Message struct {
	To       []string
	ReplyTo  string
	Subject  string
	Body     string
	HTMLBody string
}

// Sender отправляет письма
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Config - параметры SMTP
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}
