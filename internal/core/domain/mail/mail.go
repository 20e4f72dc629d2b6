package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/jordan-wright/email"
)

var ErrTemplateDoesNotExist = errors.New("template does not exist")

type Message struct {
	ID      string
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
}

func (m *Message) IsMultipart() bool {
	return m.HTML != ""
}

// Bytes renders m as a MIME message: multipart/alternative when an HTML body is set,
// a single text/plain part otherwise.
func (m *Message) Bytes() ([]byte, error) {
	e := email.NewEmail()
	e.From = m.From
	e.To = m.To
	e.Subject = m.Subject
	e.Text = []byte(m.Text)
	if m.IsMultipart() {
		e.HTML = []byte(m.HTML)
	}
	if m.ID != "" {
		e.Headers.Set("X-Message-Id", m.ID)
	}
	return e.Bytes()
}

func (m Message) String() string {
	return fmt.Sprintf("message %s to %v: %q", m.ID, m.To, m.Subject)
}

// Outbox accepts rendered messages for delivery.
type Outbox interface {
	Enqueue(ctx context.Context, m Message) error
}

// Transport delivers a message to the recipients right away.
type Transport interface {
	Deliver(ctx context.Context, m Message) error
}

type Renderer interface {
	Render(name string, data map[string]interface{}) (string, error)
	Exists(name string) bool
}

type Site struct {
	Domain string
	Name   string
}

func Protocol(useHTTPS bool) string {
	if useHTTPS {
		return "https"
	}
	return "http"
}
