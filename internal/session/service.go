package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/i474232898/weather-lookup/internal/i18n"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// ErrFavoriteNotFound is returned when a favorite index is out of range.
var ErrFavoriteNotFound = errors.New("favorite not found")

// Store is the contract the in-memory session store must satisfy.
type Store interface {
	Create(s State) (string, error)
	Get(id string) (State, error)
	// Update atomically replaces the state of id with fn's result.
	Update(id string, fn func(State) State) (State, error)
	Sweep(now time.Time) int
}

// Service runs the lookup screen for every session.
type Service struct {
	store    Store
	provider weather.Provider
	messages *i18n.Messages
}

// NewService creates a new Service.
func NewService(store Store, provider weather.Provider, messages *i18n.Messages) *Service {
	return &Service{
		store:    store,
		provider: provider,
		messages: messages,
	}
}

// Create starts a session in the language closest to lang.
func (s *Service) Create(ctx context.Context, lang string) (View, error) {
	st := NewState(s.messages.Resolve(lang))
	id, err := s.store.Create(st)
	if err != nil {
		return View{}, err
	}
	log.Printf("DEBUG: session %s created (lang=%s)", id, st.Lang)
	return Render(id, st, s.messages), nil
}

func (s *Service) View(ctx context.Context, id string) (View, error) {
	st, err := s.store.Get(id)
	if err != nil {
		return View{}, err
	}
	return Render(id, st, s.messages), nil
}

// SetInput records the text currently typed in the city field.
func (s *Service) SetInput(ctx context.Context, id, text string) (View, error) {
	return s.apply(id, InputChanged{Text: text})
}

// ToggleFavorite adds city to the favorites or removes it.
func (s *Service) ToggleFavorite(ctx context.Context, id, city string) (View, error) {
	return s.apply(id, FavoriteToggled{City: city})
}

// Search looks up the weather for city, or for the typed input when city is
// nil. Lookup failures end up in the session's error state, not in the
// returned error.
func (s *Service) Search(ctx context.Context, id string, city *string) (View, error) {
	var (
		query string
		seq   uint64
	)

	st, err := s.store.Update(id, func(st State) State {
		query = st.Input
		if city != nil {
			query = *city
		}
		seq = st.Issued + 1
		return Apply(st, FetchStarted{Seq: seq})
	})
	if err != nil {
		return View{}, err
	}

	// A lookup, once issued, always settles.
	snapshot, err := s.provider.Fetch(context.WithoutCancel(ctx), query)

	var ev Event
	if err != nil {
		log.Printf("ERROR: session %s: lookup #%d for %q via %s failed: %v", id, seq, query, s.provider.Name(), err)
		ev = FetchFailed{Seq: seq, Message: s.messages.FetchFailed(st.Lang)}
	} else {
		log.Printf("DEBUG: session %s: lookup #%d for %q resolved to %s", id, seq, query, snapshot.LocationName)
		ev = FetchSucceeded{Seq: seq, Snapshot: snapshot}
	}

	return s.apply(id, ev)
}

// SelectFavorite looks up the favorite at position index.
func (s *Service) SelectFavorite(ctx context.Context, id string, index int) (View, error) {
	st, err := s.store.Get(id)
	if err != nil {
		return View{}, err
	}
	city, ok := st.Favorites.At(index)
	if !ok {
		return View{}, fmt.Errorf("%w: index %d", ErrFavoriteNotFound, index)
	}
	return s.Search(ctx, id, &city)
}

// Sweep drops sessions idle since before now minus the store's max age.
func (s *Service) Sweep(now time.Time) int {
	n := s.store.Sweep(now)
	if n > 0 {
		log.Printf("INFO: swept %d idle sessions", n)
	}
	return n
}

func (s *Service) apply(id string, ev Event) (View, error) {
	st, err := s.store.Update(id, func(st State) State {
		return Apply(st, ev)
	})
	if err != nil {
		return View{}, err
	}
	return Render(id, st, s.messages), nil
}
