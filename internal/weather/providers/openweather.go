package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultOpenWeatherURL is the OpenWeatherMap current-weather endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts Options) *OpenWeatherProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: opts.backoff(),
		},
		circuit: opts.circuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type openWeatherPayload struct {
	Name *string `json:"name" validate:"required"`
	Main *struct {
		Temp     *float64 `json:"temp" validate:"required"`
		Humidity *float64 `json:"humidity" validate:"required"`
	} `json:"main" validate:"required"`
	Weather []struct {
		Description *string `json:"description" validate:"required"`
	} `json:"weather" validate:"required,min=1,dive"`
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, city string) (weather.Snapshot, error) {
	if p.apiKey == "" {
		return weather.Snapshot{}, failed(p.name, errMissingAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("q", city)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Snapshot{}, failed(p.name, err)
	}
	defer resp.Body.Close()

	var payload openWeatherPayload
	if err := decodePayload(resp.Body, &payload); err != nil {
		return weather.Snapshot{}, failed(p.name, err)
	}

	return weather.Snapshot{
		LocationName:  *payload.Name,
		TemperatureC:  *payload.Main.Temp,
		ConditionText: *payload.Weather[0].Description,
		HumidityPct:   *payload.Main.Humidity,
	}, nil
}
