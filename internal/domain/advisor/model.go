package advisor

// Reading is a normalized weather observation consumed by the engine. Values
// are carried as delivered by the provider; the engine performs no clamping.
type Reading struct {
	TemperatureC    float64 `json:"temperatureC"`
	HumidityPct     int     `json:"humidityPct"`
	Description     string  `json:"description"`
	WindSpeedMS     float64 `json:"windSpeedMs"`
	AirQualityIndex int     `json:"airQualityIndex"`
}

// Profile holds a user's self-reported health attributes. Labels are matched
// case-insensitively and unrecognized labels are skipped, never rejected.
type Profile struct {
	UserID               string   `json:"userId"`
	HealthConditions     []string `json:"healthConditions"`
	WeatherSensitivities []string `json:"weatherSensitivities"`
	Allergies            []string `json:"allergies"`
}

// Advisory groups generated advice into the four fixed categories. Each
// category preserves rule-evaluation order; duplicates across independently
// triggered rules are kept as-is.
type Advisory struct {
	HealthAdvice    []string `json:"healthAdvice"`
	Activities      []string `json:"activities"`
	FoodSuggestions []string `json:"foodSuggestions"`
	GeneralAdvice   []string `json:"generalAdvice"`
}

// Request captures the payload accepted by the advisor service.
type Request struct {
	City   string `json:"city"`
	UserID string `json:"userId,omitempty"`
}

// Response is serialized back to API consumers and to the chat tool.
type Response struct {
	City     string   `json:"city"`
	Reading  Reading  `json:"reading"`
	Advisory Advisory `json:"advisory"`
	Text     string   `json:"text"`
}
