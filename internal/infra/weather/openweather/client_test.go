package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentMapsReading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/weather":
			require.Equal(t, "Singapore", r.URL.Query().Get("q"))
			require.Equal(t, "metric", r.URL.Query().Get("units"))
			w.Write([]byte(`{
				"weather":[{"main":"Rain","description":"light rain"}],
				"main":{"temp":27.4,"humidity":88},
				"wind":{"speed":4.1},
				"coord":{"lat":1.29,"lon":103.85}
			}`))
		case "/air_pollution":
			require.Equal(t, "1.29", r.URL.Query().Get("lat"))
			w.Write([]byte(`{"list":[{"main":{"aqi":4}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "test-key")
	require.NoError(t, err)

	reading, err := client.Current(context.Background(), "Singapore")
	require.NoError(t, err)
	require.Equal(t, 27.4, reading.TemperatureC)
	require.Equal(t, 88, reading.HumidityPct)
	require.Equal(t, "light rain", reading.Description)
	require.Equal(t, 4.1, reading.WindSpeedMS)
	require.Equal(t, 200, reading.AirQualityIndex)
}

func TestCurrentAirPollutionFailureDegradesToZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/weather":
			w.Write([]byte(`{"weather":[{"description":"clear sky"}],"main":{"temp":30,"humidity":40},"wind":{"speed":2}}`))
		default:
			http.Error(w, "nope", http.StatusBadGateway)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "test-key")
	require.NoError(t, err)

	reading, err := client.Current(context.Background(), "Oslo")
	require.NoError(t, err)
	require.Equal(t, 0, reading.AirQualityIndex)
}

func TestCurrentUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "test-key")
	require.NoError(t, err)

	_, err = client.Current(context.Background(), "Nowhereville")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=404")
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("", "  ")
	require.Error(t, err)
}

func TestScaleAirQuality(t *testing.T) {
	require.Equal(t, 25, scaleAirQuality(1))
	require.Equal(t, 125, scaleAirQuality(3))
	require.Equal(t, 300, scaleAirQuality(5))
	require.Equal(t, 0, scaleAirQuality(0))
	require.Equal(t, 0, scaleAirQuality(9))
}
