package advisor

import "strings"

// Generate maps a weather reading and an optional profile into categorized
// advice. It is pure and deterministic: no I/O, no hidden state, identical
// inputs always yield identical output. A nil profile means no
// personalization and leaves the health category empty unless the global air
// quality override fires.
//
// The pipeline is order-significant: temperature band first, then condition
// keywords, then profile rules, and finally the air quality override, which
// may remove activity entries added earlier.
func Generate(reading Reading, profile *Profile) Advisory {
	desc := strings.ToLower(reading.Description)

	health := make([]string, 0, 4)
	activities := make([]activityEntry, 0, 8)
	food := make([]string, 0, 5)
	general := make([]string, 0, 7)

	for _, band := range tempBands {
		if band.matches(reading.TemperatureC) {
			activities = append(activities, band.activities...)
			food = append(food, band.food...)
			general = append(general, band.general...)
			break
		}
	}

	for _, rule := range conditionRules {
		if containsAny(desc, rule.keywords...) {
			general = append(general, rule.general...)
			break
		}
	}

	if profile != nil {
		health = append(health, profileAdvice(reading, desc, profile)...)
	}

	if reading.AirQualityIndex > airQualityThreshold {
		health = append(health, maskAdvice)
		activities = dropOutdoor(activities)
	}

	return Advisory{
		HealthAdvice:    health,
		Activities:      activityTexts(activities),
		FoodSuggestions: food,
		GeneralAdvice:   general,
	}
}

// profileAdvice walks the three profile sets in their stored order and
// collects every advisory produced by the recognized labels. Unrecognized
// labels are skipped silently.
func profileAdvice(reading Reading, desc string, profile *Profile) []string {
	var out []string

	for _, label := range profile.HealthConditions {
		label = strings.ToLower(label)
		for _, rule := range healthConditionRules {
			if rule.label == label {
				out = append(out, rule.advise(reading, desc)...)
				break
			}
		}
	}

	for _, label := range profile.WeatherSensitivities {
		label = strings.ToLower(label)
		for _, rule := range sensitivityRules {
			if rule.label == label && rule.applies(reading) {
				out = append(out, rule.advice)
				break
			}
		}
	}

	for _, label := range profile.Allergies {
		label = strings.ToLower(label)
		for _, rule := range allergyRules {
			if rule.label == label && containsAny(desc, rule.keywords...) {
				out = append(out, rule.advice)
				break
			}
		}
	}

	return out
}

// dropOutdoor removes outdoor-tagged entries while preserving the relative
// order of the survivors.
func dropOutdoor(entries []activityEntry) []activityEntry {
	kept := entries[:0]
	for _, entry := range entries {
		if !entry.outdoor {
			kept = append(kept, entry)
		}
	}
	return kept
}

func activityTexts(entries []activityEntry) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.text)
	}
	return out
}

func containsAny(haystack string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}
