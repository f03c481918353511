// Package notification defines the mail payload that travels through the
// notification pipeline, from stage transitions and audit jobs to the mailer.
package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tailoring/internal/pkg/errs"
)

// Message is the wire contract consumed by the mail sender:
//
//	{"subject": "...", "messageBody": "...", "to": "..."}
//
// Field order and JSON names are fixed.
type Message struct {
	Subject     string `json:"subject"`
	MessageBody string `json:"messageBody"`
	To          string `json:"to"`
}

// NewMessage builds a message addressed to to. All fields are required.
func NewMessage(to, subject, body string) (Message, error) {
	m := Message{Subject: subject, MessageBody: body, To: strings.TrimSpace(to)}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}

func (m Message) Validate() error {
	var err error
	if m.To == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("to"))
	}
	if strings.TrimSpace(m.Subject) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("subject"))
	}
	if strings.TrimSpace(m.MessageBody) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("messageBody"))
	}
	return err
}

// Encode serialises the message into its wire format.
func (m Message) Encode() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}
	return body, nil
}

// Decode parses a wire payload and rejects messages missing a field.
func Decode(payload []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(payload, &m); err != nil {
		return Message{}, fmt.Errorf("decode notification: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Message{}, fmt.Errorf("decode notification: %w", err)
	}
	return m, nil
}
