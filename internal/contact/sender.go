// Package contact resolves a customer's preferred contact method to a
// sender and delivers a message through it.
package contact

import (
	"context"

	"solid-principles/internal/customer"
)

// Sender delivers one message to one customer through a single channel.
type Sender interface {
	Send(ctx context.Context, c customer.Customer, message string) error
}

// SenderFunc lets a plain function act as a Sender.
type SenderFunc func(ctx context.Context, c customer.Customer, message string) error

func (f SenderFunc) Send(ctx context.Context, c customer.Customer, message string) error {
	return f(ctx, c, message)
}
