package model

// All lists the tables owned by the API, in migration order.
func All() []any {
	return []any{&User{}, &Video{}, &Comment{}, &Tweet{}, &Like{}, &Subscription{}}
}

// ToggleState is the outcome of an engagement toggle.
type ToggleState string

const (
	ToggleAdded   ToggleState = "added"
	ToggleRemoved ToggleState = "removed"
)
