package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-lookup/internal/session"
)

func TestCreateAndGet(t *testing.T) {
	s := NewMemoryStore(0, 0)

	id, err := s.Create(session.NewState(language.English))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid id, got %q", id)
	}

	st, err := s.Get(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Lang != language.English {
		t.Fatalf("expected English state, got %v", st.Lang)
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	s := NewMemoryStore(0, 0)
	id, _ := s.Create(session.State{})

	st, err := s.Update(id, func(st session.State) session.State {
		return session.Apply(st, session.InputChanged{Text: "Paris"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Input != "Paris" {
		t.Fatalf("expected input Paris, got %q", st.Input)
	}

	if got, _ := s.Get(id); got.Input != "Paris" {
		t.Fatalf("update not persisted, got %q", got.Input)
	}

	if _, err := s.Update("missing", func(st session.State) session.State { return st }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateIsAtomic(t *testing.T) {
	s := NewMemoryStore(0, 0)
	id, _ := s.Create(session.State{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(id, func(st session.State) session.State {
				return session.Apply(st, session.FetchStarted{Seq: st.Issued + 1})
			})
		}()
	}
	wg.Wait()

	st, _ := s.Get(id)
	if st.Issued != 50 {
		t.Fatalf("expected 50 issued fetches, got %d", st.Issued)
	}
}

func TestMaxSessions(t *testing.T) {
	s := NewMemoryStore(2, 0)
	for i := 0; i < 2; i++ {
		if _, err := s.Create(session.State{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := s.Create(session.State{}); !errors.Is(err, ErrTooManySessions) {
		t.Fatalf("expected ErrTooManySessions, got %v", err)
	}
}

func TestSweep(t *testing.T) {
	base := time.Date(2024, 11, 30, 12, 0, 0, 0, time.UTC)
	clock := base

	s := NewMemoryStore(0, time.Hour)
	s.now = func() time.Time { return clock }

	stale, _ := s.Create(session.State{})
	clock = base.Add(50 * time.Minute)
	fresh, _ := s.Create(session.State{})

	if n := s.Sweep(base.Add(90 * time.Minute)); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}
	if _, err := s.Get(stale); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected stale session to be gone, got %v", err)
	}
	if _, err := s.Get(fresh); err != nil {
		t.Fatalf("expected fresh session to survive, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", s.Len())
	}
}

func TestSweepDisabled(t *testing.T) {
	s := NewMemoryStore(0, 0)
	s.Create(session.State{})
	if n := s.Sweep(time.Now().Add(1000 * time.Hour)); n != 0 {
		t.Fatalf("expected no sweep, got %d", n)
	}
}
