package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/weather-companion/internal/domain/advisor"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client fetches current conditions from OpenWeatherMap.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openweather api key cannot be empty")
	}
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Current retrieves the current reading for a city, enriched with a
// best-effort air quality index. Air pollution failures degrade to the zero
// index instead of failing the reading.
func (c *Client) Current(ctx context.Context, city string) (advisor.Reading, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	var raw weatherResponse
	if err := c.getJSON(ctx, c.baseURL+"/weather?"+query.Encode(), &raw); err != nil {
		return advisor.Reading{}, fmt.Errorf("fetch current weather: %w", err)
	}

	reading := mapReading(raw)
	reading.AirQualityIndex = c.airQualityIndex(ctx, raw.Coord.Lat, raw.Coord.Lon)
	return reading, nil
}

func (c *Client) airQualityIndex(ctx context.Context, lat, lon float64) int {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%g", lat))
	query.Set("lon", fmt.Sprintf("%g", lon))
	query.Set("appid", c.apiKey)

	var raw airPollutionResponse
	if err := c.getJSON(ctx, c.baseURL+"/air_pollution?"+query.Encode(), &raw); err != nil {
		return 0
	}
	if len(raw.List) == 0 {
		return 0
	}
	return scaleAirQuality(raw.List[0].Main.AQI)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type weatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
}

type airPollutionResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
	} `json:"list"`
}

func mapReading(raw weatherResponse) advisor.Reading {
	description := ""
	if len(raw.Weather) > 0 {
		description = raw.Weather[0].Description
	}
	return advisor.Reading{
		TemperatureC: raw.Main.Temp,
		HumidityPct:  raw.Main.Humidity,
		Description:  description,
		WindSpeedMS:  raw.Wind.Speed,
	}
}

// scaleAirQuality maps OpenWeatherMap's 1-5 air quality index onto the
// 0-500 style scale the advisory thresholds are written against.
func scaleAirQuality(index int) int {
	switch index {
	case 1:
		return 25
	case 2:
		return 75
	case 3:
		return 125
	case 4:
		return 200
	case 5:
		return 300
	default:
		return 0
	}
}

var _ advisor.WeatherClient = (*Client)(nil)
