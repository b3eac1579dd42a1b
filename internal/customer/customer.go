// Package customer holds the customer model and the roster a run contacts.
package customer

import (
	"errors"
	"fmt"
	"strings"
)

// ContactMethod names a delivery channel. It is the key the dispatcher
// resolves to a sender, so adding a channel only needs a new value here
// and a registration at startup.
type ContactMethod string

const (
	Phone    ContactMethod = "phone"
	SMS      ContactMethod = "sms"
	Email    ContactMethod = "email"
	Telegram ContactMethod = "telegram"
)

var ErrNoContactMethod = errors.New("preferred contact method is required")

func (m ContactMethod) String() string {
	return string(m)
}

// ParseContactMethod normalizes user input such as "SMS" or " email ".
func ParseContactMethod(s string) (ContactMethod, error) {
	m := ContactMethod(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return "", ErrNoContactMethod
	}
	return m, nil
}

type Customer struct {
	Name                   string        `yaml:"name"`
	PhoneNumber            string        `yaml:"phone_number"`
	EmailAddress           string        `yaml:"email_address"`
	TelegramChatID         int64         `yaml:"telegram_chat_id"`
	PreferredContactMethod ContactMethod `yaml:"preferred_contact_method"`
}

// New builds a customer and fails fast when no contact method is given.
// Whether the method is actually deliverable is up to the dispatcher.
func New(phone, email string, method ContactMethod) (Customer, error) {
	c := Customer{
		PhoneNumber:            phone,
		EmailAddress:           email,
		PreferredContactMethod: method,
	}
	if err := c.Validate(); err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (c Customer) Validate() error {
	if c.PreferredContactMethod == "" {
		return fmt.Errorf("customer %s: %w", c.label(), ErrNoContactMethod)
	}
	return nil
}

func (c Customer) label() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.EmailAddress != "":
		return c.EmailAddress
	default:
		return c.PhoneNumber
	}
}
