// Package session models one lookup screen: its state, the transitions
// applied to it and the view derived from it.
package session

import (
	"golang.org/x/text/language"

	"github.com/i474232898/weather-lookup/internal/favorites"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// Phase is the position of a session in its fetch cycle.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePending Phase = "pending"
	PhaseSuccess Phase = "success"
	PhaseFailure Phase = "failure"
)

// State is the immutable state of one session. Transitions go through Apply.
//
// Once a fetch has settled exactly one of Snapshot and Error is set. Both are
// empty only before the first fetch.
type State struct {
	Lang      language.Tag
	Input     string
	Snapshot  *weather.Snapshot
	Error     string
	Favorites favorites.Set

	// Issued is the sequence number of the newest fetch started, Applied the
	// newest one whose outcome is in Snapshot/Error.
	Issued  uint64
	Applied uint64
}

// NewState returns the initial state for lang.
func NewState(lang language.Tag) State {
	return State{Lang: lang}
}

// Phase derives the fetch phase from the sequence numbers and result cells.
func (s State) Phase() Phase {
	switch {
	case s.Applied < s.Issued:
		return PhasePending
	case s.Snapshot != nil:
		return PhaseSuccess
	case s.Error != "":
		return PhaseFailure
	default:
		return PhaseIdle
	}
}

// Event is a transition applied to a State.
type Event interface {
	isEvent()
}

// InputChanged records what the user typed.
type InputChanged struct {
	Text string
}

// FetchStarted marks a lookup as issued.
type FetchStarted struct {
	Seq uint64
}

// FetchSucceeded carries the snapshot of a lookup.
type FetchSucceeded struct {
	Seq      uint64
	Snapshot weather.Snapshot
}

// FetchFailed carries the user-facing message of a failed lookup.
type FetchFailed struct {
	Seq     uint64
	Message string
}

// FavoriteToggled adds or removes a city from the favorites.
type FavoriteToggled struct {
	City string
}

func (InputChanged) isEvent()    {}
func (FetchStarted) isEvent()    {}
func (FetchSucceeded) isEvent()  {}
func (FetchFailed) isEvent()     {}
func (FavoriteToggled) isEvent() {}

// Apply returns the state that follows s after ev. A fetch outcome older than
// the one already applied is dropped, so the newest request always wins
// regardless of the order responses arrive in.
func Apply(s State, ev Event) State {
	switch e := ev.(type) {
	case InputChanged:
		s.Input = e.Text

	case FetchStarted:
		if e.Seq > s.Issued {
			s.Issued = e.Seq
		}

	case FetchSucceeded:
		if e.Seq <= s.Applied {
			return s
		}
		snap := e.Snapshot
		s.Snapshot = &snap
		s.Error = ""
		s.Applied = e.Seq

	case FetchFailed:
		if e.Seq <= s.Applied {
			return s
		}
		s.Snapshot = nil
		s.Error = e.Message
		s.Applied = e.Seq

	case FavoriteToggled:
		s.Favorites = s.Favorites.Toggle(e.City)
	}

	return s
}
