// Package menu shows that a Go type satisfies an interface by its method
// set alone. Declaring the relationship is optional.
package menu

type Menu interface {
	SpamAdder
	ChefSpecial() string
}

type SpamAdder interface {
	AddSpam() string
}

// LunchMenu states its intent with a compile-time assertion.
type LunchMenu struct{}

var _ Menu = LunchMenu{}

func (LunchMenu) AddSpam() string     { return "spam added to lunch" }
func (LunchMenu) ChefSpecial() string { return "lunch special: spam, spam, eggs and spam" }

// TakeoutMenu never mentions Menu but has the right methods.
type TakeoutMenu struct{}

func (TakeoutMenu) AddSpam() string     { return "spam added to takeout" }
func (TakeoutMenu) ChefSpecial() string { return "takeout special: spam to go" }

// DinnerMenu has no chef special, so it is a SpamAdder but not a Menu.
type DinnerMenu struct{}

func (DinnerMenu) AddSpam() string { return "spam added to dinner" }

type Kind string

const (
	KindMenu     Kind = "menu"
	KindSpamOnly Kind = "spam-only"
	KindNone     Kind = "none"
)

func Classify(v any) Kind {
	switch v.(type) {
	case Menu:
		return KindMenu
	case SpamAdder:
		return KindSpamOnly
	default:
		return KindNone
	}
}
