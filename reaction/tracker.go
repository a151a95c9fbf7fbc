// Package reaction keeps the like and dislike counters and the user's single opinion.
package reaction

// Opinion is what the user currently thinks of the active item.
type Opinion int

const (
	None Opinion = iota
	Liked
	Disliked
)

func (o Opinion) String() string {
	switch o {
	case Liked:
		return "liked"
	case Disliked:
		return "disliked"
	default:
		return "none"
	}
}

// State is a snapshot of the counters.
type State struct {
	Likes    int
	Dislikes int
	Opinion  Opinion
}

// Tracker holds one opinion for the whole session; it is not reset when the
// active item changes.
type Tracker struct {
	state State
}

// New returns a tracker with zero counts and no opinion.
func New() *Tracker {
	return &Tracker{}
}

// NewWithCounts starts from existing counts, for example ones shown by a catalog.
func NewWithCounts(likes, dislikes int) *Tracker {
	return &Tracker{state: State{Likes: max(likes, 0), Dislikes: max(dislikes, 0)}}
}

func (t *Tracker) State() State {
	return t.state
}

// Like toggles a like. Replacing a dislike removes it.
func (t *Tracker) Like() {
	if t.state.Opinion == Liked {
		t.state.Opinion = None
		t.state.Likes = decrement(t.state.Likes)
		return
	}

	if t.state.Opinion == Disliked {
		t.state.Dislikes = decrement(t.state.Dislikes)
	}
	t.state.Opinion = Liked
	t.state.Likes++
}

// Dislike toggles a dislike. Replacing a like removes it.
func (t *Tracker) Dislike() {
	if t.state.Opinion == Disliked {
		t.state.Opinion = None
		t.state.Dislikes = decrement(t.state.Dislikes)
		return
	}

	if t.state.Opinion == Liked {
		t.state.Likes = decrement(t.state.Likes)
	}
	t.state.Opinion = Disliked
	t.state.Dislikes++
}

func decrement(n int) int {
	return max(n-1, 0)
}
