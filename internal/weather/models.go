package weather

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Snapshot is the set of weather fields captured from one successful fetch.
// A newer snapshot always replaces the previous one as a whole.
type Snapshot struct {
	LocationName  string  `json:"location"`
	TemperatureC  float64 `json:"temperatureC"`
	ConditionText string  `json:"condition"`
	HumidityPct   float64 `json:"humidityPercent"`
}

// Condition returns the category of the snapshot's condition text.
func (s Snapshot) Condition() Condition {
	return Classify(s.ConditionText)
}
