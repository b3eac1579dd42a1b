package contact

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"solid-principles/internal/customer"
)

var (
	ErrNilSender        = errors.New("sender is nil")
	ErrDuplicateChannel = errors.New("channel already registered")
	ErrNoChannelName    = errors.New("channel method is empty")
)

// Registry collects senders at startup. A Dispatcher takes a snapshot of
// it, so later registrations never affect a running dispatcher.
type Registry struct {
	senders map[customer.ContactMethod]Sender
}

func NewRegistry() *Registry {
	return &Registry{
		senders: make(map[customer.ContactMethod]Sender),
	}
}

func (r *Registry) Register(method customer.ContactMethod, s Sender) error {
	if method == "" {
		return ErrNoChannelName
	}
	if s == nil {
		return fmt.Errorf("register %s: %w", method, ErrNilSender)
	}
	if _, ok := r.senders[method]; ok {
		return fmt.Errorf("register %s: %w", method, ErrDuplicateChannel)
	}
	r.senders[method] = s
	return nil
}

// MustRegister panics on error. Meant for static wiring in main and tests.
func (r *Registry) MustRegister(method customer.ContactMethod, s Sender) *Registry {
	if err := r.Register(method, s); err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Methods() []customer.ContactMethod {
	return slices.Sorted(maps.Keys(r.senders))
}

func (r *Registry) snapshot() map[customer.ContactMethod]Sender {
	return maps.Clone(r.senders)
}
