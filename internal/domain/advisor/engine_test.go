package advisor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateHotBandWithAsthmaProfile(t *testing.T) {
	reading := Reading{TemperatureC: 38, HumidityPct: 75, Description: "clear sky", AirQualityIndex: 40}
	profile := &Profile{UserID: "u1", HealthConditions: []string{"asthma"}}

	advisory := Generate(reading, profile)

	require.Equal(t, []string{"High humidity may affect your asthma. Consider staying indoors."}, advisory.HealthAdvice)

	require.Contains(t, advisory.Activities, "Avoid strenuous outdoor activities")
	require.NotContains(t, advisory.Activities, "Sightseeing")
	require.Len(t, advisory.Activities, 5, "hot band list stays unfiltered below the air quality threshold")

	require.Contains(t, advisory.FoodSuggestions, "Drink plenty of water (at least 3-4 liters)")
	require.Contains(t, advisory.FoodSuggestions, "Electrolyte-rich drinks")
	require.Contains(t, advisory.FoodSuggestions, "Avoid heavy, spicy foods")

	require.Contains(t, advisory.GeneralAdvice, "Wear sunglasses")
	require.Contains(t, advisory.GeneralAdvice, "Apply sunscreen")
	require.NotContains(t, advisory.GeneralAdvice, "Carry an umbrella")
}

func TestGenerateMildBandWithoutProfile(t *testing.T) {
	reading := Reading{TemperatureC: 20, HumidityPct: 50, Description: "light rain"}

	advisory := Generate(reading, nil)

	require.Empty(t, advisory.HealthAdvice)
	require.Equal(t, []string{
		"Most outdoor activities are comfortable",
		"Walking, jogging, cycling",
		"Outdoor sports",
		"Sightseeing",
	}, advisory.Activities)
	require.Equal(t, []string{
		"Regular water intake",
		"Regular balanced meals",
		"Pack snacks for outdoor activities",
	}, advisory.FoodSuggestions)
	require.Equal(t, []string{
		"Carry an umbrella",
		"Wear waterproof clothing",
		"Wear appropriate footwear",
	}, advisory.GeneralAdvice)
}

func TestGenerateBandsAreExclusive(t *testing.T) {
	// The first food entry identifies the band that fired.
	cases := map[float64]string{
		40:    "Drink plenty of water (at least 3-4 liters)",
		35.1:  "Drink plenty of water (at least 3-4 liters)",
		35:    "Stay well hydrated",
		25:    "Stay well hydrated",
		24.9:  "Regular water intake",
		0:     "Regular water intake",
		-12.5: "Regular water intake",
	}
	for temp, first := range cases {
		advisory := Generate(Reading{TemperatureC: temp, Description: "cloudy"}, nil)
		require.NotEmpty(t, advisory.FoodSuggestions, "temp %v", temp)
		require.Equal(t, first, advisory.FoodSuggestions[0], "temp %v", temp)
	}
}

func TestGenerateHeartConditionColdBranch(t *testing.T) {
	reading := Reading{TemperatureC: 2, HumidityPct: 40, Description: "clear"}
	profile := &Profile{HealthConditions: []string{"heart condition"}}

	advisory := Generate(reading, profile)

	require.Equal(t, []string{"Cold weather can affect blood pressure. Stay warm and avoid overexertion."}, advisory.HealthAdvice)
}

func TestGenerateHeartConditionHotPrecedesCold(t *testing.T) {
	reading := Reading{TemperatureC: 32, HumidityPct: 40, Description: "clear"}
	profile := &Profile{HealthConditions: []string{"heart condition"}}

	advisory := Generate(reading, profile)

	require.Equal(t, []string{"High temperature may strain your heart. Stay in air-conditioned spaces."}, advisory.HealthAdvice)
}

func TestGenerateAsthmaRulesFireTogether(t *testing.T) {
	reading := Reading{TemperatureC: 18, HumidityPct: 80, Description: "mist"}
	profile := &Profile{HealthConditions: []string{"Asthma"}}

	advisory := Generate(reading, profile)

	require.Equal(t, []string{
		"High humidity may affect your asthma. Consider staying indoors.",
		"Damp conditions may trigger asthma. Keep your inhaler handy.",
	}, advisory.HealthAdvice)
}

func TestGenerateDiabetesRulesFireTogether(t *testing.T) {
	reading := Reading{TemperatureC: 32, HumidityPct: 85, Description: "haze"}
	profile := &Profile{HealthConditions: []string{"diabetes"}}

	advisory := Generate(reading, profile)

	require.Equal(t, []string{
		"Heat can affect blood sugar levels. Check levels more frequently.",
		"High humidity can affect insulin absorption. Monitor closely.",
	}, advisory.HealthAdvice)
}

func TestGenerateSensitivitiesAndAllergies(t *testing.T) {
	reading := Reading{TemperatureC: 6, HumidityPct: 75, Description: "windy and sunny"}
	profile := &Profile{
		WeatherSensitivities: []string{"cold", "heat", "humidity"},
		Allergies:            []string{"pollen", "dust"},
	}

	advisory := Generate(reading, profile)

	require.Equal(t, []string{
		"Temperature is low and you're sensitive to cold. Bundle up well.",
		"High humidity detected. Use a dehumidifier indoors if possible.",
		"High pollen risk today. Take antihistamines if needed.",
		"Windy conditions may stir up dust. Wear a mask if needed.",
	}, advisory.HealthAdvice)
}

func TestGenerateUnrecognizedLabelsIgnored(t *testing.T) {
	reading := Reading{TemperatureC: 30, HumidityPct: 90, Description: "rain"}
	profile := &Profile{
		HealthConditions:     []string{"migraine"},
		WeatherSensitivities: []string{"noise"},
		Allergies:            []string{"shellfish"},
	}

	advisory := Generate(reading, profile)

	require.Empty(t, advisory.HealthAdvice)
}

func TestGenerateAirQualityOverrideFiltersOutdoor(t *testing.T) {
	reading := Reading{TemperatureC: 30, HumidityPct: 50, Description: "haze", AirQualityIndex: 150}

	advisory := Generate(reading, nil)

	// Only the override entry: no profile was supplied.
	require.Equal(t, []string{maskAdvice}, advisory.HealthAdvice)

	// Beach and generic outdoor entries are dropped, survivors keep order.
	require.Equal(t, []string{
		"Swimming",
		"Early morning/late evening walks",
	}, advisory.Activities)
}

func TestGenerateAirQualityMaskDuplicationAccepted(t *testing.T) {
	reading := Reading{TemperatureC: 20, HumidityPct: 50, Description: "haze", AirQualityIndex: 150}
	profile := &Profile{WeatherSensitivities: []string{"air quality"}}

	advisory := Generate(reading, profile)

	// The sensitivity advisory and the global override both fire.
	require.Equal(t, []string{
		"Poor air quality. Consider wearing a mask outdoors.",
		maskAdvice,
	}, advisory.HealthAdvice)
}

func TestGenerateAtThresholdDoesNotFilter(t *testing.T) {
	reading := Reading{TemperatureC: 30, HumidityPct: 50, Description: "haze", AirQualityIndex: 100}

	advisory := Generate(reading, nil)

	require.Empty(t, advisory.HealthAdvice)
	require.Contains(t, advisory.Activities, "Beach activities (with proper protection)")
}

func TestGenerateIsIdempotent(t *testing.T) {
	reading := Reading{TemperatureC: 27, HumidityPct: 72, Description: "light rain", AirQualityIndex: 120}
	profile := &Profile{
		HealthConditions:     []string{"asthma", "diabetes"},
		WeatherSensitivities: []string{"humidity"},
		Allergies:            []string{"pollen"},
	}

	first := Generate(reading, profile)
	second := Generate(reading, profile)

	require.Equal(t, first, second)
}
