package session

import (
	"github.com/i474232898/weather-lookup/internal/favorites"
	"github.com/i474232898/weather-lookup/internal/i18n"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// Background identifies the screen background image.
type Background struct {
	Condition weather.Condition `json:"condition"`
	Image     string            `json:"image"`
}

const defaultImage = "default.jpg"

var backgroundImages = map[weather.Condition]string{
	weather.ConditionRain:   "rain.jpg",
	weather.ConditionCloudy: "cloudy.jpg",
	weather.ConditionClear:  "sunny.jpg",
	weather.ConditionSnow:   "snow.jpg",
	weather.ConditionMist:   "fog.jpg",
	weather.ConditionStorm:  "storm.jpg",
}

// Favorite icon variants.
const (
	IconFavorited    = "heart"
	IconNotFavorited = "heart-o"
)

// SelectBackground picks the background for snap. No snapshot or an
// unrecognized condition selects the default image.
func SelectBackground(snap *weather.Snapshot) Background {
	if snap == nil {
		return Background{Condition: weather.ConditionUnknown, Image: defaultImage}
	}
	cond := snap.Condition()
	img, ok := backgroundImages[cond]
	if !ok {
		return Background{Condition: weather.ConditionUnknown, Image: defaultImage}
	}
	return Background{Condition: cond, Image: img}
}

func ShouldShowError(s State) bool {
	return s.Error != ""
}

func IsCityFavorited(city string, set favorites.Set) bool {
	return set.Contains(city)
}

// WeatherView is the detail card of a successful lookup.
type WeatherView struct {
	City         string  `json:"city"`
	TemperatureC float64 `json:"temperatureC"`
	Condition    string  `json:"condition"`
	HumidityPct  float64 `json:"humidityPercent"`
	Favorite     bool    `json:"favorite"`
	FavoriteIcon string  `json:"favoriteIcon"`
}

// View is everything a client needs to draw the screen.
type View struct {
	SessionID   string       `json:"sessionId"`
	Language    string       `json:"language"`
	Input       string       `json:"input"`
	Placeholder string       `json:"placeholder"`
	Phase       Phase        `json:"phase"`
	Background  Background   `json:"background"`
	ShowError   bool         `json:"showError"`
	Error       string       `json:"error,omitempty"`
	Weather     *WeatherView `json:"weather,omitempty"`
	Favorites   []string     `json:"favorites"`
	NoFavorites string       `json:"noFavorites,omitempty"`
}

// Render derives the view of s.
func Render(id string, s State, msgs *i18n.Messages) View {
	v := View{
		SessionID:   id,
		Language:    s.Lang.String(),
		Input:       s.Input,
		Placeholder: msgs.Text(s.Lang, i18n.KeyCityPlaceholder),
		Phase:       s.Phase(),
		Background:  SelectBackground(s.Snapshot),
		ShowError:   ShouldShowError(s),
		Error:       s.Error,
		Favorites:   s.Favorites.Cities(),
	}

	if s.Snapshot != nil {
		fav := IsCityFavorited(s.Snapshot.LocationName, s.Favorites)
		icon := IconNotFavorited
		if fav {
			icon = IconFavorited
		}
		v.Weather = &WeatherView{
			City:         s.Snapshot.LocationName,
			TemperatureC: s.Snapshot.TemperatureC,
			Condition:    s.Snapshot.ConditionText,
			HumidityPct:  s.Snapshot.HumidityPct,
			Favorite:     fav,
			FavoriteIcon: icon,
		}
	}

	if s.Favorites.Len() == 0 {
		v.NoFavorites = msgs.Text(s.Lang, i18n.KeyNoFavorites)
	}

	return v
}
