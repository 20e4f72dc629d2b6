package schema

import (
	"encoding/json"
	"registrar/internal/core/domain/mail"
)

type OutgoingMail struct {
	ID      string   `json:"id"`
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html,omitempty"`
}

func NewOutgoingMail(m mail.Message) *OutgoingMail {
	return &OutgoingMail{
		ID:      m.ID,
		From:    m.From,
		To:      m.To,
		Subject: m.Subject,
		Text:    m.Text,
		HTML:    m.HTML,
	}
}

func (o *OutgoingMail) Message() mail.Message {
	return mail.Message{
		ID:      o.ID,
		From:    o.From,
		To:      o.To,
		Subject: o.Subject,
		Text:    o.Text,
		HTML:    o.HTML,
	}
}

func (o *OutgoingMail) Marshal() ([]byte, error) {
	return json.Marshal(o)
}

func (o *OutgoingMail) Unmarshal(data []byte) error {
	return json.Unmarshal(data, o)
}
