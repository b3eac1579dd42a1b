package customer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Roster is the ordered, read-only list of customers contacted by a run.
type Roster struct {
	items []Customer
}

type rosterFile struct {
	Customers []Customer `yaml:"customers"`
}

func NewRoster(customers ...Customer) *Roster {
	items := make([]Customer, len(customers))
	copy(items, customers)
	return &Roster{items: items}
}

// DefaultRoster returns the three demo customers, one per built-in channel.
func DefaultRoster() *Roster {
	return NewRoster(
		Customer{Name: "bob", PhoneNumber: "555-7302", EmailAddress: "bob@solid.com", PreferredContactMethod: Email},
		Customer{Name: "raj", PhoneNumber: "555-7303", EmailAddress: "raj@solid.com", PreferredContactMethod: SMS},
		Customer{Name: "sofia", PhoneNumber: "555-7304", EmailAddress: "sofia@solid.com", PreferredContactMethod: Phone},
	)
}

// LoadRoster reads a YAML roster file. Every customer is validated and
// contact methods are normalized.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return ParseRoster(data)
}

func ParseRoster(data []byte) (*Roster, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}

	items := make([]Customer, 0, len(f.Customers))
	for i, c := range f.Customers {
		m, err := ParseContactMethod(string(c.PreferredContactMethod))
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
		c.PreferredContactMethod = m
		items = append(items, c)
	}
	return &Roster{items: items}, nil
}

// All returns a copy so callers cannot mutate the roster.
func (r *Roster) All() []Customer {
	list := make([]Customer, len(r.items))
	copy(list, r.items)
	return list
}

func (r *Roster) Len() int {
	return len(r.items)
}
