// Package media defines playable items and the catalog supplied to a session.
package media

// Item is one playable entry. Items are immutable once built.
type Item struct {
	ID          string
	Title       string
	Subtitle    string
	Description string
	// Source is the opaque locator handed to the media surface.
	Source string
	Thumb  string
}

// String implements fmt.Stringer.
func (i Item) String() string {
	return i.Title
}
