package wnrelay

import "time"

const (
	// DefaultOpenRouterURL 是 OpenRouter chat-completions 接口的默认地址。
	DefaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"
	// DefaultModel 是默认使用的上游模型 ID（可通过命令行覆盖）。
	DefaultModel = "openai/gpt-4o-mini"

	// DefaultGeocodeURL 是 OpenStreetMap Nominatim 地理编码接口的默认地址。
	DefaultGeocodeURL = "https://nominatim.openstreetmap.org/search"
	// DefaultForecastURL 是 Open-Meteo 天气预报接口的默认地址。
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	// DefaultNewsURL 是 NewsData.io 新闻检索接口的默认地址。
	DefaultNewsURL = "https://newsdata.io/api/1/news"

	// EnvOpenRouterAPIKey / EnvNewsDataAPIKey 是启动时读取的两个密钥环境变量。
	// 缺失不会在启动时报错，只会在对应的上游调用发生时暴露。
	EnvOpenRouterAPIKey = "OPENROUTER_API_KEY"
	EnvNewsDataAPIKey   = "NEWSDATA_API_KEY"

	// DefaultUserAgent 会同时用于工具查询的 User-Agent（Nominatim 要求显式 UA）。
	DefaultUserAgent = "wnrelay/1.0"
)

const (
	// DefaultToolTimeout 是地理编码/天气/新闻查询的固定超时。
	DefaultToolTimeout = 10 * time.Second
	// DefaultChatTimeout 是 chat-completions 调用的固定超时。
	DefaultChatTimeout = 30 * time.Second
)
