package media

// Catalog is the full, ordered, unfiltered list of items for a session.
type Catalog struct {
	items []Item
}

// NewCatalog copies items into a catalog so later changes to the slice are not observed.
func NewCatalog(items []Item) Catalog {
	return Catalog{items: append([]Item(nil), items...)}
}

// Len returns the number of items.
func (c Catalog) Len() int {
	return len(c.items)
}

// At returns the item at index i.
func (c Catalog) At(i int) (Item, bool) {
	if i < 0 || i >= len(c.items) {
		return Item{}, false
	}
	return c.items[i], true
}

// Valid reports whether i is an index into the catalog.
func (c Catalog) Valid(i int) bool {
	return i >= 0 && i < len(c.items)
}

// Items returns a copy of all items in order.
func (c Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}
