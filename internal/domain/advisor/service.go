package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	apperrors "github.com/yanqian/weather-companion/pkg/errors"
)

// Service exposes weather-appropriate behavior recommendations.
type Service interface {
	Advise(ctx context.Context, req Request) (Response, error)
}

// WeatherClient fetches a current reading for a city. Provider failures stay
// on this side of the boundary; the engine is never handed a partial reading.
type WeatherClient interface {
	Current(ctx context.Context, city string) (Reading, error)
}

// ProfileRepository looks up a stored health profile. Not-found is reported
// via the boolean, not as an error.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
}

type service struct {
	weather  WeatherClient
	profiles ProfileRepository
	logger   *slog.Logger
}

// NewService wires up the advisor domain.
func NewService(weather WeatherClient, profiles ProfileRepository, logger *slog.Logger) Service {
	return &service{
		weather:  weather,
		profiles: profiles,
		logger:   logger.With("component", "advisor.service"),
	}
}

func (s *service) Advise(ctx context.Context, req Request) (Response, error) {
	city := strings.TrimSpace(req.City)
	if city == "" {
		return Response{}, apperrors.Wrap("invalid_input", "city cannot be empty", nil)
	}

	reading, err := s.weather.Current(ctx, city)
	if err != nil {
		return Response{}, apperrors.Wrap("weather_error", "failed to fetch weather data", err)
	}

	profile := s.lookupProfile(ctx, req.UserID)
	advisory := Generate(reading, profile)
	s.logger.Info("advisory generated",
		"city", city,
		"personalized", profile != nil,
		"health", len(advisory.HealthAdvice),
		"activities", len(advisory.Activities))

	return Response{
		City:     city,
		Reading:  reading,
		Advisory: advisory,
		Text:     renderText(city, reading, advisory),
	}, nil
}

// lookupProfile translates every absence flavor (no user id, not found,
// lookup failure) into nil so the engine runs unpersonalized instead of
// failing the request.
func (s *service) lookupProfile(ctx context.Context, userID string) *Profile {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil
	}
	profile, found, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Warn("profile lookup failed, continuing without personalization", "userId", userID, "error", err)
		return nil
	}
	if !found {
		return nil
	}
	return &profile
}

// renderText builds the conversational block returned to the chat tool: the
// current conditions followed by the formatted advisory.
func renderText(city string, reading Reading, advisory Advisory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current weather in %s:\n", city)
	fmt.Fprintf(&b, "Temperature: %s°C\n", strconv.FormatFloat(reading.TemperatureC, 'f', -1, 64))
	fmt.Fprintf(&b, "Conditions: %s\n", reading.Description)
	fmt.Fprintf(&b, "Humidity: %d%%\n", reading.HumidityPct)
	fmt.Fprintf(&b, "Wind Speed: %s m/s\n", strconv.FormatFloat(reading.WindSpeedMS, 'f', -1, 64))

	if formatted := Format(advisory); formatted != "" {
		b.WriteString("\n")
		b.WriteString(formatted)
	}
	return b.String()
}
