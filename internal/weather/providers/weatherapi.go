package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultWeatherAPIURL is the WeatherAPI.com current-conditions endpoint.
const DefaultWeatherAPIURL = "http://api.weatherapi.com/v1/current.json"

// Options tunes a provider. Zero values select the provider defaults.
type Options struct {
	BaseURL    string
	MaxRetries int

	// BreakerThreshold is the number of consecutive failures that opens the
	// circuit; zero disables it. BreakerTimeout defaults to two minutes.
	BreakerThreshold uint32
	BreakerTimeout   time.Duration
}

func (o Options) backoff() BackoffConfig {
	return BackoffConfig{
		MaxRetries:      o.MaxRetries,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func (o Options) circuitBreaker(name string) *gobreaker.CircuitBreaker {
	timeout := o.BreakerTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return newCircuitBreaker(name, o.BreakerThreshold, timeout)
}

func NewWeatherAPIProvider(client *http.Client, apiKey string, opts Options) *WeatherAPIProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultWeatherAPIURL
	}

	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: opts.backoff(),
		},
		circuit: opts.circuitBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// weatherAPIPayload lists the fields a usable response must carry. Pointers
// tell a missing field apart from a legitimate zero.
type weatherAPIPayload struct {
	Location *struct {
		Name *string `json:"name" validate:"required"`
	} `json:"location" validate:"required"`
	Current *struct {
		TempC     *float64 `json:"temp_c" validate:"required"`
		Humidity  *float64 `json:"humidity" validate:"required"`
		Condition *struct {
			Text *string `json:"text" validate:"required"`
		} `json:"condition" validate:"required"`
	} `json:"current" validate:"required"`
}

// Fetch looks up current conditions for city. The city is sent as-is in the
// "q" parameter; WeatherAPI normalizes it and returns the canonical name.
func (p *WeatherAPIProvider) Fetch(ctx context.Context, city string) (weather.Snapshot, error) {
	if p.apiKey == "" {
		return weather.Snapshot{}, failed(p.name, errMissingAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", city)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Snapshot{}, failed(p.name, err)
	}
	defer resp.Body.Close()

	var payload weatherAPIPayload
	if err := decodePayload(resp.Body, &payload); err != nil {
		return weather.Snapshot{}, failed(p.name, err)
	}

	return weather.Snapshot{
		LocationName:  *payload.Location.Name,
		TemperatureC:  *payload.Current.TempC,
		ConditionText: *payload.Current.Condition.Text,
		HumidityPct:   *payload.Current.Humidity,
	}, nil
}
