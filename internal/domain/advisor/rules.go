package advisor

// airQualityThreshold is the index above which the global mask advisory and
// the outdoor-activity filter kick in.
const airQualityThreshold = 100

const maskAdvice = "Consider wearing a mask due to poor air quality"

// activityEntry tags each suggestion with an outdoor marker at creation time
// so the air quality filter never has to re-parse advice text.
type activityEntry struct {
	text    string
	outdoor bool
}

// tempBand is one row of the temperature table. Rows are evaluated in order
// and the first match wins, which keeps the bands exhaustive and
// non-overlapping: hot, then warm, then the mild fallback.
type tempBand struct {
	name       string
	matches    func(tempC float64) bool
	activities []activityEntry
	food       []string
	general    []string
}

var tempBands = []tempBand{
	{
		name:    "hot",
		matches: func(tempC float64) bool { return tempC > 35 },
		activities: []activityEntry{
			{text: "Avoid strenuous outdoor activities", outdoor: true},
			{text: "Indoor swimming"},
			{text: "Indoor gym workouts"},
			{text: "Mall walking"},
			{text: "Indoor sports"},
		},
		food: []string{
			"Drink plenty of water (at least 3-4 liters)",
			"Light meals with high water content",
			"Fresh fruits and vegetables",
			"Electrolyte-rich drinks",
			"Avoid heavy, spicy foods",
		},
		general: []string{
			"Plan activities early morning or late evening",
			"Wear light, breathable clothing",
			"Use sunscreen (SPF 50+)",
			"Wear sunglasses and a hat",
		},
	},
	{
		name:    "warm",
		matches: func(tempC float64) bool { return tempC >= 25 && tempC <= 35 },
		activities: []activityEntry{
			{text: "Swimming"},
			{text: "Early morning/late evening walks"},
			{text: "Beach activities (with proper protection)", outdoor: true},
			{text: "Moderate outdoor activities", outdoor: true},
		},
		food: []string{
			"Stay well hydrated",
			"Fresh salads",
			"Seasonal fruits",
			"Sports drinks for outdoor activities",
		},
	},
	{
		name:    "mild",
		matches: func(float64) bool { return true },
		activities: []activityEntry{
			{text: "Most outdoor activities are comfortable", outdoor: true},
			{text: "Walking, jogging, cycling"},
			{text: "Outdoor sports", outdoor: true},
			{text: "Sightseeing"},
		},
		food: []string{
			"Regular water intake",
			"Regular balanced meals",
			"Pack snacks for outdoor activities",
		},
	},
}

// conditionRule appends general advice when the lowercased description
// contains one of the keywords. First matching rule wins.
type conditionRule struct {
	keywords []string
	general  []string
}

var conditionRules = []conditionRule{
	{
		keywords: []string{"rain"},
		general: []string{
			"Carry an umbrella",
			"Wear waterproof clothing",
			"Wear appropriate footwear",
		},
	},
	{
		keywords: []string{"clear"},
		general: []string{
			"Wear sunglasses",
			"Apply sunscreen",
			"Wear a hat for sun protection",
		},
	},
}

// healthConditionRule evaluates one recognized health condition against the
// reading. A rule may emit zero, one, or several advisories.
type healthConditionRule struct {
	label  string
	advise func(r Reading, desc string) []string
}

var healthConditionRules = []healthConditionRule{
	{
		label: "asthma",
		advise: func(r Reading, desc string) []string {
			var out []string
			if r.HumidityPct > 70 {
				out = append(out, "High humidity may affect your asthma. Consider staying indoors.")
			}
			if containsAny(desc, "rain", "mist") {
				out = append(out, "Damp conditions may trigger asthma. Keep your inhaler handy.")
			}
			return out
		},
	},
	{
		label: "heart condition",
		advise: func(r Reading, _ string) []string {
			// Hot check precedes cold check; the two are mutually exclusive.
			switch {
			case r.TemperatureC > 30:
				return []string{"High temperature may strain your heart. Stay in air-conditioned spaces."}
			case r.TemperatureC < 5:
				return []string{"Cold weather can affect blood pressure. Stay warm and avoid overexertion."}
			default:
				return nil
			}
		},
	},
	{
		label: "diabetes",
		advise: func(r Reading, _ string) []string {
			var out []string
			if r.TemperatureC > 30 {
				out = append(out, "Heat can affect blood sugar levels. Check levels more frequently.")
			}
			if r.HumidityPct > 80 {
				out = append(out, "High humidity can affect insulin absorption. Monitor closely.")
			}
			return out
		},
	},
}

// sensitivityRule fires independently of the other sensitivity rules.
type sensitivityRule struct {
	label   string
	applies func(r Reading) bool
	advice  string
}

var sensitivityRules = []sensitivityRule{
	{
		label:   "cold",
		applies: func(r Reading) bool { return r.TemperatureC < 10 },
		advice:  "Temperature is low and you're sensitive to cold. Bundle up well.",
	},
	{
		label:   "heat",
		applies: func(r Reading) bool { return r.TemperatureC > 28 },
		advice:  "Temperature is high and you're heat-sensitive. Stay hydrated and in shade.",
	},
	{
		label:   "humidity",
		applies: func(r Reading) bool { return r.HumidityPct > 70 },
		advice:  "High humidity detected. Use a dehumidifier indoors if possible.",
	},
	{
		label:   "air quality",
		applies: func(r Reading) bool { return r.AirQualityIndex > airQualityThreshold },
		advice:  "Poor air quality. Consider wearing a mask outdoors.",
	},
}

// allergyRule matches the weather description rather than numeric thresholds.
type allergyRule struct {
	label    string
	keywords []string
	advice   string
}

var allergyRules = []allergyRule{
	{
		label:    "pollen",
		keywords: []string{"clear", "sunny"},
		advice:   "High pollen risk today. Take antihistamines if needed.",
	},
	{
		label:    "dust",
		keywords: []string{"windy"},
		advice:   "Windy conditions may stir up dust. Wear a mask if needed.",
	},
}
