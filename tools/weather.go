package tools

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

// weatherCodes 将 Open-Meteo 返回的 WMO 天气代码映射为可读描述。
// 除 Open-Meteo 文档列出的代码外，补充了 WMO 4677 的 4/5/10/17/19；
// 表外的任何代码一律描述为 "Unknown"。
var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	4:  "Smoke",
	5:  "Haze",
	10: "Mist",
	17: "Thunderstorm without precipitation",
	19: "Funnel cloud",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

func describeWeatherCode(code int) string {
	if desc, ok := weatherCodes[code]; ok {
		return desc
	}
	return "Unknown"
}

// WeatherService 通过 Nominatim 地理编码 + Open-Meteo 预报接口查询城市天气。
type WeatherService struct {
	GeocodeURL  string
	ForecastURL string
	UserAgent   string
	HTTPClient  *http.Client
}

// call 是注册表使用的入口：解出模型给出的 city 参数后执行查询。
func (s *WeatherService) call(ctx context.Context, args map[string]any) Result {
	var in struct {
		City string `mapstructure:"city"`
	}
	if err := mapstructure.Decode(args, &in); err != nil {
		return Result{"error": fmt.Sprintf("Failed to fetch weather: invalid arguments: %v", err)}
	}
	return s.Lookup(ctx, in.City)
}

// Lookup 查询城市的当前天气与当天预报。城市无匹配或上游响应缺少 current
// 块时返回结构化的 error 结果；网络/解析失败同样收敛为 error 结果，
// 从不向上抛。
func (s *WeatherService) Lookup(ctx context.Context, city string) Result {
	match, found, err := s.geocode(ctx, city)
	if err != nil {
		return Result{"error": fmt.Sprintf("Failed to fetch weather: %v", err)}
	}
	if !found {
		return Result{"error": fmt.Sprintf("City '%s' not found.", city)}
	}

	body, err := s.fetchForecast(ctx, match.lat, match.lon)
	if err != nil {
		return Result{"error": fmt.Sprintf("Failed to fetch weather: %v", err)}
	}

	current := gjson.GetBytes(body, "current")
	if !current.Exists() {
		return Result{"error": "Weather data not available for this location"}
	}
	daily := gjson.GetBytes(body, "daily")

	forecast := Result{
		"maxTemp":       nil,
		"minTemp":       nil,
		"precipitation": 0.0,
	}
	if v := daily.Get("temperature_2m_max.0"); v.Exists() {
		forecast["maxTemp"] = round1(v.Float())
	}
	if v := daily.Get("temperature_2m_min.0"); v.Exists() {
		forecast["minTemp"] = round1(v.Float())
	}
	if v := daily.Get("precipitation_sum.0"); v.Exists() {
		forecast["precipitation"] = v.Float()
	}

	return Result{
		"city":            city,
		"location":        match.displayName,
		"temperature":     round1(current.Get("temperature_2m").Float()),
		"temperatureUnit": "°C",
		"humidity":        current.Get("relative_humidity_2m").Float(),
		"windSpeed":       current.Get("wind_speed_10m").Float(),
		"windDirection":   current.Get("wind_direction_10m").Float(),
		"weather":         describeWeatherCode(int(current.Get("weather_code").Int())),
		"forecast":        forecast,
		"coordinates":     Result{"lat": match.lat, "lon": match.lon},
	}
}

type geoMatch struct {
	lat         float64
	lon         float64
	displayName string
}

func (s *WeatherService) geocode(ctx context.Context, city string) (geoMatch, bool, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("format", "json")
	query.Set("limit", "1")

	body, err := fetchJSON(ctx, s.HTTPClient, s.UserAgent, s.GeocodeURL, query)
	if err != nil {
		return geoMatch{}, false, fmt.Errorf("geocoding: %w", err)
	}

	matches := gjson.ParseBytes(body)
	if !matches.IsArray() {
		return geoMatch{}, false, fmt.Errorf("geocoding: unexpected response shape")
	}
	list := matches.Array()
	if len(list) == 0 {
		return geoMatch{}, false, nil
	}

	first := list[0]
	// Nominatim 的 lat/lon 是字符串形式的数字，gjson 会按需转换
	match := geoMatch{
		lat:         first.Get("lat").Float(),
		lon:         first.Get("lon").Float(),
		displayName: first.Get("display_name").String(),
	}
	if match.displayName == "" {
		match.displayName = city
	}
	return match, true, nil
}

func (s *WeatherService) fetchForecast(ctx context.Context, lat, lon float64) ([]byte, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("current", "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m,wind_direction_10m")
	query.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code,precipitation_sum")
	query.Set("forecast_days", "1")
	query.Set("timezone", "auto")

	body, err := fetchJSON(ctx, s.HTTPClient, s.UserAgent, s.ForecastURL, query)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	return body, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
