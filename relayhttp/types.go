package relayhttp

import (
	"net/http"

	"github.com/wnrelay/wnrelay/tools"
)

// Config 是 HTTP 层的全部配置，进程启动时构造一次。两个 APIKey 不做预检：
// 缺失只会在对应的上游调用发生时暴露（/health 里只做布尔存在性检查）。
type Config struct {
	// Model 是上游模型 ID，空值回落到 wnrelay.DefaultModel。
	Model string

	OpenRouterAPIKey string
	NewsDataAPIKey   string

	// 以下地址默认指向真实上游，测试时指向 httptest server。
	OpenRouterURL string
	GeocodeURL    string
	ForecastURL   string
	NewsURL       string

	UserAgent string

	// HTTPClient 非空时同时覆盖工具查询与模型调用两类出站 client（测试注入）；
	// 为空时分别使用 10s / 30s 超时的独立 client。
	HTTPClient *http.Client
}

// ChatRequest 是 POST /chat 的请求体。消息内容不做长度或内容校验。
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse 是 POST /chat 的响应体：成功时带 answer（执行过工具时附带
// tool_result），失败时带 error（必要时附带 details）。
type ChatResponse struct {
	Answer     string       `json:"answer,omitempty"`
	ToolResult tools.Result `json:"tool_result,omitempty"`
	Error      string       `json:"error,omitempty"`
	Details    string       `json:"details,omitempty"`
}
