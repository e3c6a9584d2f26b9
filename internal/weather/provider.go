package weather

import (
	"context"
	"errors"
)

// ErrFetchFailed is the single failure kind of a weather lookup. Network
// errors, non-success statuses and malformed payloads all wrap it.
var ErrFetchFailed = errors.New("weather fetch failed")

// Provider abstracts a current-conditions data source (e.g. WeatherAPI).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, city string) (Snapshot, error)
}
