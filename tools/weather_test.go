package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribeWeatherCode(t *testing.T) {
	require.Len(t, weatherCodes, 33)
	require.Equal(t, "Clear sky", describeWeatherCode(0))
	require.Equal(t, "Thunderstorm", describeWeatherCode(95))
	require.Equal(t, "Unknown", describeWeatherCode(-1))
	require.Equal(t, "Unknown", describeWeatherCode(42))
	require.Equal(t, "Unknown", describeWeatherCode(100))
}

func TestWeatherLookup_CityNotFound(t *testing.T) {
	geocode := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Atlantis", r.URL.Query().Get("q"))
		require.Equal(t, "json", r.URL.Query().Get("format"))
		require.Equal(t, "1", r.URL.Query().Get("limit"))
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, "[]")
	}))
	t.Cleanup(geocode.Close)

	var forecastCalls int32
	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&forecastCalls, 1)
	}))
	t.Cleanup(forecast.Close)

	svc := &WeatherService{
		GeocodeURL:  geocode.URL,
		ForecastURL: forecast.URL,
		UserAgent:   "wnrelay-test/1.0",
		HTTPClient:  geocode.Client(),
	}
	result := svc.Lookup(context.Background(), "Atlantis")
	require.Equal(t, "City 'Atlantis' not found.", result["error"])
	require.Zero(t, atomic.LoadInt32(&forecastCalls), "no forecast call expected for an unmatched city")
}

func TestWeatherLookup_Success(t *testing.T) {
	geocode := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"lat":"35.6895","lon":"139.6917","display_name":"Tokyo, Japan"}]`)
	}))
	t.Cleanup(geocode.Close)

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "35.6895", q.Get("latitude"))
		require.Equal(t, "139.6917", q.Get("longitude"))
		require.Equal(t, "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m,wind_direction_10m", q.Get("current"))
		require.Equal(t, "temperature_2m_max,temperature_2m_min,weather_code,precipitation_sum", q.Get("daily"))
		require.Equal(t, "1", q.Get("forecast_days"))
		require.Equal(t, "auto", q.Get("timezone"))
		fmt.Fprint(w, `{
			"current": {"temperature_2m": 21.27, "relative_humidity_2m": 63, "weather_code": 2, "wind_speed_10m": 12.4, "wind_direction_10m": 250},
			"daily": {"temperature_2m_max": [25.04], "temperature_2m_min": [17.96], "precipitation_sum": [0.3]}
		}`)
	}))
	t.Cleanup(forecast.Close)

	svc := &WeatherService{GeocodeURL: geocode.URL, ForecastURL: forecast.URL, HTTPClient: geocode.Client()}
	result := svc.Lookup(context.Background(), "Tokyo")

	require.NotContains(t, result, "error")
	require.Equal(t, "Tokyo", result["city"])
	require.Equal(t, "Tokyo, Japan", result["location"])
	require.Equal(t, 21.3, result["temperature"])
	require.Equal(t, "°C", result["temperatureUnit"])
	require.Equal(t, 63.0, result["humidity"])
	require.Equal(t, 12.4, result["windSpeed"])
	require.Equal(t, 250.0, result["windDirection"])
	require.Equal(t, "Partly cloudy", result["weather"])
	require.Equal(t, Result{"maxTemp": 25.0, "minTemp": 18.0, "precipitation": 0.3}, result["forecast"])
	require.Equal(t, Result{"lat": 35.6895, "lon": 139.6917}, result["coordinates"])
}

func TestWeatherLookup_MissingCurrentBlock(t *testing.T) {
	geocode := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"lat":"0","lon":"0"}]`)
	}))
	t.Cleanup(geocode.Close)

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"daily": {}}`)
	}))
	t.Cleanup(forecast.Close)

	svc := &WeatherService{GeocodeURL: geocode.URL, ForecastURL: forecast.URL, HTTPClient: geocode.Client()}
	result := svc.Lookup(context.Background(), "Null Island")
	require.Equal(t, "Weather data not available for this location", result["error"])
}

func TestWeatherLookup_DisplayNameFallsBackToCity(t *testing.T) {
	geocode := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"lat":"1.0","lon":"2.0"}]`)
	}))
	t.Cleanup(geocode.Close)

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"current": {"temperature_2m": 10, "weather_code": 0}, "daily": {}}`)
	}))
	t.Cleanup(forecast.Close)

	svc := &WeatherService{GeocodeURL: geocode.URL, ForecastURL: forecast.URL, HTTPClient: geocode.Client()}
	result := svc.Lookup(context.Background(), "Somewhere")
	require.Equal(t, "Somewhere", result["location"])
	require.Equal(t, Result{"maxTemp": nil, "minTemp": nil, "precipitation": 0.0}, result["forecast"])
}

func TestWeatherLookup_UpstreamFailure(t *testing.T) {
	geocode := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(geocode.Close)

	svc := &WeatherService{GeocodeURL: geocode.URL, ForecastURL: geocode.URL, HTTPClient: geocode.Client()}
	result := svc.Lookup(context.Background(), "Tokyo")
	require.Contains(t, result["error"], "Failed to fetch weather:")
}
