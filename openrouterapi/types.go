package openrouterapi

import (
	"github.com/google/uuid"
)

// ==================== OpenRouter chat-completions 数据结构 ====================

// Message OpenRouter 消息格式。
//
// Content 不带 omitempty：assistant 消息在只携带 tool_calls 时仍需要序列化出
// `"content": ""`，与上游约定保持一致。
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// ToolCall 模型请求的工具调用。Arguments 是 JSON 编码的字符串。
type ToolCall struct {
	ID       string `json:"id"`
	Index    int    `json:"index,omitempty"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// Tool 工具清单条目。
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction 工具函数定义，Parameters 为 JSON-schema 形状的参数描述。
type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ChatRequest chat-completions 请求体。
type ChatRequest struct {
	Model      string    `json:"model"`
	Messages   []Message `json:"messages"`
	Tools      []Tool    `json:"tools,omitempty"`
	ToolChoice string    `json:"tool_choice,omitempty"`
}

// Usage token 使用统计。
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice 非流式响应选项。
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason *string `json:"finish_reason"`
}

// ChatCompletion 非流式响应。
type ChatCompletion struct {
	ID      string    `json:"id"`
	Object  string    `json:"object"`
	Created int64     `json:"created"`
	Model   string    `json:"model"`
	Choices []Choice  `json:"choices"`
	Usage   Usage     `json:"usage,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError OpenRouter 错误信封。
type APIError struct {
	Code    any    `json:"code"`
	Message string `json:"message"`
}

// ==================== 辅助函数 ====================

// NewRequestID 生成一次 /chat 请求的追踪 ID。
func NewRequestID() string {
	return "chatreq-" + uuid.New().String()[:8]
}
