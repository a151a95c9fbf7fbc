// Package selection owns the catalog view: a text filter with its visible
// subset, the selected item, and the delayed activation that loads an item.
package selection

import (
	"sort"
	"strings"
	"time"

	"github.com/castdeck/castdeck/log"
	"github.com/castdeck/castdeck/media"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// DefaultDelay is how long an activation takes before the item is selected.
const DefaultDelay = 1000 * time.Millisecond

// Entry is a visible item paired with its index in the full catalog.
type Entry struct {
	Index int
	Item  media.Item
}

// State is a read-only snapshot of the selection.
type State struct {
	Catalog     media.Catalog
	FilterQuery string
	Visible     []Entry
	// SelectedIndex always refers to the full catalog, never to Visible.
	SelectedIndex mo.Option[int]
	Activating    bool
	// Pending counts activations scheduled but not yet completed.
	Pending int
}

// Controller is not safe for concurrent use. Scheduled callbacks must be
// delivered on the same goroutine that calls the controller.
type Controller struct {
	catalog     media.Catalog
	scheduler   Scheduler
	delay       time.Duration
	onActivated func(index int, item media.Item)

	query      string
	visible    []Entry
	selected   mo.Option[int]
	activating bool
	pending    int
}

// New builds a controller and, when the catalog has items, activates the first one.
func New(catalog media.Catalog, scheduler Scheduler, delay time.Duration, onActivated func(index int, item media.Item)) *Controller {
	if delay < 0 {
		delay = 0
	}

	c := &Controller{
		catalog:     catalog,
		scheduler:   scheduler,
		delay:       delay,
		onActivated: onActivated,
	}
	c.visible = c.filter()

	if catalog.Len() > 0 {
		c.Activate(0)
	}
	return c
}

// State returns a snapshot. Visible is a fresh slice.
func (c *Controller) State() State {
	return State{
		Catalog:       c.catalog,
		FilterQuery:   c.query,
		Visible:       append([]Entry(nil), c.visible...),
		SelectedIndex: c.selected,
		Activating:    c.activating,
		Pending:       c.pending,
	}
}

// SetFilter stores the query and recomputes the visible items.
// The selection is left alone.
func (c *Controller) SetFilter(query string) {
	c.query = strings.ToLower(query)
	c.visible = c.filter()
}

func (c *Controller) filter() []Entry {
	entries := make([]Entry, 0, c.catalog.Len())
	for i, item := range c.catalog.Items() {
		if strings.Contains(strings.ToLower(item.Title), c.query) {
			entries = append(entries, Entry{Index: i, Item: item})
		}
	}
	return entries
}

// VisibleIndex maps a position in the visible list to a catalog index.
func (c *Controller) VisibleIndex(position int) (int, bool) {
	if position < 0 || position >= len(c.visible) {
		return 0, false
	}
	return c.visible[position].Index, true
}

// Selected returns the selected item, if any.
func (c *Controller) Selected() (media.Item, bool) {
	i, ok := c.selected.Get()
	if !ok {
		return media.Item{}, false
	}
	return c.catalog.At(i)
}

// Activate schedules the item at catalog index i to become the selection after
// the delay. Earlier activations still in flight are not cancelled, so whichever
// fires last decides the selection. Indices outside the catalog are ignored.
func (c *Controller) Activate(i int) bool {
	if !c.catalog.Valid(i) {
		log.Debugf("activation of %d ignored: catalog has %d items", i, c.catalog.Len())
		return false
	}

	c.activating = true
	c.pending++
	c.scheduler.After(c.delay, func() {
		c.complete(i)
	})
	return true
}

func (c *Controller) complete(i int) {
	c.pending = max(c.pending-1, 0)
	c.selected = mo.Some(i)

	if c.onActivated != nil {
		item, _ := c.catalog.At(i)
		c.onActivated(i, item)
	}

	c.activating = false
}

// Suggest returns up to limit catalog titles that fuzzily match query, best first.
func (c *Controller) Suggest(query string, limit int) []string {
	return Suggest(c.catalog, query, limit)
}

// Suggest ranks the titles of catalog against query.
func Suggest(catalog media.Catalog, query string, limit int) []string {
	if query == "" || limit <= 0 {
		return nil
	}

	titles := lo.Map(catalog.Items(), func(item media.Item, _ int) string {
		return item.Title
	})

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	return lo.Map(lo.Slice(ranks, 0, limit), func(r fuzzy.Rank, _ int) string {
		return r.Target
	})
}
