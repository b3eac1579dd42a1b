package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"solid-principles/internal/customer"
)

var (
	ErrUnregisteredChannel = errors.New("unregistered contact channel")
	ErrEmptyMessage        = errors.New("message is empty")
)

// Dispatcher delivers messages via each customer's preferred channel.
// It is safe for concurrent use: its lookup table never changes after
// construction.
type Dispatcher struct {
	senders map[customer.ContactMethod]Sender
	logger  *slog.Logger
}

func NewDispatcher(reg *Registry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		senders: reg.snapshot(),
		logger:  logger,
	}
}

// Contact sends message to c through exactly one sender. It never falls
// back to another channel and never retries.
func (d *Dispatcher) Contact(ctx context.Context, c customer.Customer, message string) error {
	if message == "" {
		return ErrEmptyMessage
	}

	s, err := d.lookup(c.PreferredContactMethod)
	if err != nil {
		return err
	}

	if err := s.Send(ctx, c, message); err != nil {
		return fmt.Errorf("contact via %s: %w", c.PreferredContactMethod, err)
	}

	d.logger.Debug("customer contacted",
		"method", c.PreferredContactMethod,
		"customer", c.Name,
	)
	return nil
}

// Validate reports whether c could be contacted, without sending anything.
func (d *Dispatcher) Validate(c customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := d.lookup(c.PreferredContactMethod)
	return err
}

func (d *Dispatcher) Methods() []customer.ContactMethod {
	return slices.Sorted(maps.Keys(d.senders))
}

func (d *Dispatcher) lookup(method customer.ContactMethod) (Sender, error) {
	s, ok := d.senders[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnregisteredChannel, method)
	}
	return s, nil
}
