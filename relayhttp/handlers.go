package relayhttp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/wnrelay/wnrelay"
	"github.com/wnrelay/wnrelay/chat"
	"github.com/wnrelay/wnrelay/openrouter"
	"github.com/wnrelay/wnrelay/openrouterapi"
	"github.com/wnrelay/wnrelay/tools"
)

// Handlers 根据配置构建工具、注册表、模型客户端与编排器，返回三个 handler。
func Handlers(cfg Config) (chatHandler, rootHandler, healthHandler http.HandlerFunc, err error) {
	resolved := resolveConfig(cfg)

	weather := &tools.WeatherService{
		GeocodeURL:  resolved.GeocodeURL,
		ForecastURL: resolved.ForecastURL,
		UserAgent:   resolved.UserAgent,
		HTTPClient:  resolved.ToolHTTPClient,
	}
	news := &tools.NewsService{
		BaseURL:    resolved.NewsURL,
		APIKey:     resolved.NewsDataAPIKey,
		UserAgent:  resolved.UserAgent,
		HTTPClient: resolved.ToolHTTPClient,
	}
	registry := tools.NewRegistry(weather, news)

	base, err := openrouter.NewChatModel(openrouter.ChatModelConfig{
		Model:      resolved.Model,
		BaseURL:    resolved.OpenRouterURL,
		APIKey:     resolved.OpenRouterAPIKey,
		HTTPClient: resolved.ChatHTTPClient,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	orchestrator, err := chat.NewOrchestrator(base.WithFunctionTools(tools.Definitions()), base, registry)
	if err != nil {
		return nil, nil, nil, err
	}

	chatHandler = newChatHandler(orchestrator)
	rootHandler = handleRoot
	healthHandler = newHealthHandler(registry, resolved)
	return chatHandler, rootHandler, healthHandler, nil
}

func newChatHandler(orchestrator *chat.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		requestID := openrouterapi.NewRequestID()
		w.Header().Set("X-Request-Id", requestID)

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// 处理失败也保持 200，错误只通过响应体传达
			writeJSON(w, ChatResponse{Error: "Chat processing failed: invalid request body"})
			return
		}

		resp, err := orchestrator.Process(r.Context(), req.Message)
		if err != nil {
			writeChatError(w, requestID, err)
			return
		}
		writeJSON(w, ChatResponse{Answer: resp.Answer, ToolResult: resp.ToolResult})
	}
}

func writeChatError(w http.ResponseWriter, requestID string, err error) {
	var unknown *tools.UnknownToolError
	switch {
	case errors.As(err, &unknown):
		log.Printf("[wnrelay] %s unknown tool requested: %s", requestID, unknown.Name)
		writeJSON(w, ChatResponse{Error: unknown.Error()})
	case errors.Is(err, openrouter.ErrNoChoices):
		log.Printf("[wnrelay] %s %v", requestID, err)
		writeJSON(w, ChatResponse{Error: "No response from OpenRouter"})
	default:
		log.Printf("[wnrelay] %s chat processing failed: %v", requestID, err)
		writeJSON(w, ChatResponse{
			Error:   "Chat processing failed: " + err.Error(),
			Details: err.Error(),
		})
	}
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "healthy",
		"message": "wnrelay server is running",
	})
}

func newHealthHandler(registry *tools.Registry, resolved resolvedConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"status":                "healthy",
			"tools":                 registry.Names(),
			"openrouter_configured": resolved.OpenRouterAPIKey != "",
			"newsdata_configured":   resolved.NewsDataAPIKey != "",
		})
	}
}

type resolvedConfig struct {
	Model            string
	OpenRouterAPIKey string
	NewsDataAPIKey   string
	OpenRouterURL    string
	GeocodeURL       string
	ForecastURL      string
	NewsURL          string
	UserAgent        string
	ToolHTTPClient   *http.Client
	ChatHTTPClient   *http.Client
}

func resolveConfig(cfg Config) resolvedConfig {
	resolved := resolvedConfig{
		Model:            strings.TrimSpace(cfg.Model),
		OpenRouterAPIKey: strings.TrimSpace(cfg.OpenRouterAPIKey),
		NewsDataAPIKey:   strings.TrimSpace(cfg.NewsDataAPIKey),
		OpenRouterURL:    strings.TrimSpace(cfg.OpenRouterURL),
		GeocodeURL:       strings.TrimSpace(cfg.GeocodeURL),
		ForecastURL:      strings.TrimSpace(cfg.ForecastURL),
		NewsURL:          strings.TrimSpace(cfg.NewsURL),
		UserAgent:        strings.TrimSpace(cfg.UserAgent),
	}
	if resolved.Model == "" {
		resolved.Model = wnrelay.DefaultModel
	}
	if resolved.OpenRouterURL == "" {
		resolved.OpenRouterURL = wnrelay.DefaultOpenRouterURL
	}
	if resolved.GeocodeURL == "" {
		resolved.GeocodeURL = wnrelay.DefaultGeocodeURL
	}
	if resolved.ForecastURL == "" {
		resolved.ForecastURL = wnrelay.DefaultForecastURL
	}
	if resolved.NewsURL == "" {
		resolved.NewsURL = wnrelay.DefaultNewsURL
	}
	if resolved.UserAgent == "" {
		resolved.UserAgent = wnrelay.DefaultUserAgent
	}
	if cfg.HTTPClient != nil {
		resolved.ToolHTTPClient = cfg.HTTPClient
		resolved.ChatHTTPClient = cfg.HTTPClient
	} else {
		resolved.ToolHTTPClient = &http.Client{Timeout: wnrelay.DefaultToolTimeout}
		resolved.ChatHTTPClient = &http.Client{Timeout: wnrelay.DefaultChatTimeout}
	}
	return resolved
}
