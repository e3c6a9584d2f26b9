package session_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-lookup/internal/i18n"
	"github.com/i474232898/weather-lookup/internal/session"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// fakeProvider answers from a fixed table keyed by lower-cased city, the way
// the real provider normalizes names.
type fakeProvider struct {
	mu      sync.Mutex
	known   map[string]weather.Snapshot
	queries []string
	gates   map[string]chan struct{}
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		known: map[string]weather.Snapshot{
			"paris":  {LocationName: "Paris", TemperatureC: 14, ConditionText: "Patchy rain possible", HumidityPct: 77},
			"london": {LocationName: "London", TemperatureC: 11, ConditionText: "Overcast", HumidityPct: 82},
			"tokyo":  {LocationName: "Tokyo", TemperatureC: 18, ConditionText: "Sunny", HumidityPct: 60},
		},
		gates: make(map[string]chan struct{}),
	}
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Fetch(ctx context.Context, city string) (weather.Snapshot, error) {
	p.mu.Lock()
	p.queries = append(p.queries, city)
	gate := p.gates[city]
	p.mu.Unlock()

	if gate != nil {
		<-gate
	}

	snap, ok := p.known[strings.ToLower(city)]
	if !ok {
		return weather.Snapshot{}, fmt.Errorf("%w: no matching location", weather.ErrFetchFailed)
	}
	return snap, nil
}

func (p *fakeProvider) hold(city string) chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch := make(chan struct{})
	p.gates[city] = ch
	return ch
}

func newService(t *testing.T) (*session.Service, *fakeProvider) {
	t.Helper()
	p := newFakeProvider()
	return session.NewService(store.NewMemoryStore(0, time.Hour), p, i18n.New("tr")), p
}

func strPtr(s string) *string { return &s }

func TestSearchSuccessScenario(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	v, err := svc.Create(ctx, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err = svc.Search(ctx, v.SessionID, strPtr("Paris"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Background.Condition != weather.ConditionRain {
		t.Fatalf("expected rain background, got %+v", v.Background)
	}
	if v.ShowError || v.Error != "" {
		t.Fatalf("expected no error, got %q", v.Error)
	}
	if v.Phase != session.PhaseSuccess {
		t.Fatalf("expected success, got %s", v.Phase)
	}
}

func TestSearchFailureScenario(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "")
	v, err := svc.Search(ctx, v.SessionID, strPtr("Paris"))
	if err != nil || v.Weather == nil {
		t.Fatalf("expected successful first lookup, got %v %+v", err, v)
	}

	v, err = svc.Search(ctx, v.SessionID, strPtr("Qwxyz123"))
	if err != nil {
		t.Fatalf("lookup failures must not surface as errors, got %v", err)
	}
	if v.Error != "Hava durumu bilgisi alınırken bir hata oluştu." || !v.ShowError {
		t.Fatalf("unexpected error state %q", v.Error)
	}
	if v.Weather != nil {
		t.Fatalf("expected previous weather to be cleared, got %+v", v.Weather)
	}
	if v.Phase != session.PhaseFailure {
		t.Fatalf("expected failure, got %s", v.Phase)
	}
}

func TestSearchUsesProviderName(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "")
	v, _ = svc.Search(ctx, v.SessionID, strPtr("london"))
	if v.Weather == nil || v.Weather.City != "London" {
		t.Fatalf("expected provider-normalized name London, got %+v", v.Weather)
	}
}

func TestSearchUsesTypedInput(t *testing.T) {
	svc, p := newService(t)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "")
	id := v.SessionID

	if _, err := svc.SetInput(ctx, id, "tokyo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ = svc.Search(ctx, id, nil)
	if v.Weather == nil || v.Weather.City != "Tokyo" {
		t.Fatalf("expected Tokyo, got %+v", v.Weather)
	}

	// Explicit cities (favorite buttons) leave the input alone.
	v, _ = svc.Search(ctx, id, strPtr("Paris"))
	if v.Input != "tokyo" {
		t.Fatalf("expected input to stay tokyo, got %q", v.Input)
	}

	if want := []string{"tokyo", "Paris"}; !reflect.DeepEqual(p.queries, want) {
		t.Fatalf("expected queries %v, got %v", want, p.queries)
	}
}

func TestSearchEmptyInputIsForwarded(t *testing.T) {
	svc, p := newService(t)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "")
	v, _ = svc.Search(ctx, v.SessionID, nil)

	if len(p.queries) != 1 || p.queries[0] != "" {
		t.Fatalf("expected one empty query, got %q", p.queries)
	}
	if !v.ShowError {
		t.Fatal("expected empty lookup to fail")
	}
}

func TestToggleFavoriteScenario(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "")
	id := v.SessionID

	v, _ = svc.ToggleFavorite(ctx, id, "Tokyo")
	if !reflect.DeepEqual(v.Favorites, []string{"Tokyo"}) {
		t.Fatalf("expected [Tokyo], got %v", v.Favorites)
	}
	v, _ = svc.ToggleFavorite(ctx, id, "Tokyo")
	if len(v.Favorites) != 0 || v.NoFavorites == "" {
		t.Fatalf("expected empty favorites, got %+v", v)
	}
}

func TestFavoriteIconFollowsLocationName(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "")
	id := v.SessionID

	v, _ = svc.Search(ctx, id, strPtr("paris"))
	if v.Weather.Favorite {
		t.Fatal("expected Paris not to be favorited yet")
	}
	v, _ = svc.ToggleFavorite(ctx, id, v.Weather.City)
	if !v.Weather.Favorite || v.Weather.FavoriteIcon != session.IconFavorited {
		t.Fatalf("expected favorited card, got %+v", v.Weather)
	}
}

func TestSelectFavorite(t *testing.T) {
	svc, p := newService(t)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "")
	id := v.SessionID
	svc.ToggleFavorite(ctx, id, "Rome")
	svc.ToggleFavorite(ctx, id, "Tokyo")

	v, err := svc.SelectFavorite(ctx, id, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Weather == nil || v.Weather.City != "Tokyo" {
		t.Fatalf("expected Tokyo, got %+v", v.Weather)
	}
	if p.queries[len(p.queries)-1] != "Tokyo" {
		t.Fatalf("expected lookup for Tokyo, got %v", p.queries)
	}

	if _, err := svc.SelectFavorite(ctx, id, 5); !errors.Is(err, session.ErrFavoriteNotFound) {
		t.Fatalf("expected ErrFavoriteNotFound, got %v", err)
	}
}

func TestUnknownSession(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.View(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Search(ctx, "nope", nil); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ToggleFavorite(ctx, "nope", "x"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewestLookupWins(t *testing.T) {
	svc, p := newService(t)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "")
	id := v.SessionID

	gate := p.hold("Paris")

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Search(ctx, id, strPtr("Paris"))
	}()

	// Wait until the Paris lookup is in flight.
	for {
		p.mu.Lock()
		n := len(p.queries)
		p.mu.Unlock()
		if n == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	v, _ = svc.Search(ctx, id, strPtr("Tokyo"))
	if v.Weather == nil || v.Weather.City != "Tokyo" {
		t.Fatalf("expected Tokyo, got %+v", v.Weather)
	}

	close(gate)
	<-done

	v, _ = svc.View(ctx, id)
	if v.Weather == nil || v.Weather.City != "Tokyo" {
		t.Fatalf("expected late Paris answer to be discarded, got %+v", v.Weather)
	}
	if v.Phase != session.PhaseSuccess {
		t.Fatalf("expected success, got %s", v.Phase)
	}
}

func TestSweep(t *testing.T) {
	p := newFakeProvider()
	svc := session.NewService(store.NewMemoryStore(0, time.Minute), p, i18n.New("tr"))
	ctx := context.Background()

	v, _ := svc.Create(ctx, "")
	if n := svc.Sweep(time.Now().Add(time.Hour)); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}
	if _, err := svc.View(ctx, v.SessionID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected swept session to be gone, got %v", err)
	}
}
