// Package sender implements the delivery channels registered with the
// contact dispatcher.
package sender

import (
	"context"
	"fmt"
	"io"

	"solid-principles/internal/contact"
	"solid-principles/internal/customer"
)

var (
	_ contact.Sender = (*PhoneSender)(nil)
	_ contact.Sender = (*SMSSender)(nil)
	_ contact.Sender = (*EmailSender)(nil)
	_ contact.Sender = (*TelegramSender)(nil)
)

// PhoneSender places a call to the customer's phone number.
type PhoneSender struct {
	out io.Writer
}

func NewPhoneSender(out io.Writer) *PhoneSender {
	return &PhoneSender{out: out}
}

func (p *PhoneSender) Send(_ context.Context, c customer.Customer, message string) error {
	_, err := fmt.Fprintf(p.out, "phone call made to %s with message: '%s'\n", c.PhoneNumber, message)
	return err
}

// SMSSender texts the customer's phone number.
type SMSSender struct {
	out io.Writer
}

func NewSMSSender(out io.Writer) *SMSSender {
	return &SMSSender{out: out}
}

func (s *SMSSender) Send(_ context.Context, c customer.Customer, message string) error {
	_, err := fmt.Fprintf(s.out, "sms sent to %s with message: '%s'\n", c.PhoneNumber, message)
	return err
}

// EmailSender mails the customer, using the message as the subject.
type EmailSender struct {
	out io.Writer
}

func NewEmailSender(out io.Writer) *EmailSender {
	return &EmailSender{out: out}
}

func (e *EmailSender) Send(_ context.Context, c customer.Customer, message string) error {
	_, err := fmt.Fprintf(e.out, "email sent to %s with subject: '%s'\n", c.EmailAddress, message)
	return err
}

// Console registers the three console channels on reg.
func Console(reg *contact.Registry, out io.Writer) error {
	for method, s := range map[customer.ContactMethod]contact.Sender{
		customer.Phone: NewPhoneSender(out),
		customer.SMS:   NewSMSSender(out),
		customer.Email: NewEmailSender(out),
	} {
		if err := reg.Register(method, s); err != nil {
			return err
		}
	}
	return nil
}
