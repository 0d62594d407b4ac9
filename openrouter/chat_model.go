// Package openrouter 实现基于 OpenRouter chat-completions 接口的 ChatModel。
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/wnrelay/wnrelay/openrouterapi"
)

// ErrNoChoices 表示上游返回了 200 但 choices 为空（或缺失）。
var ErrNoChoices = errors.New("no response from OpenRouter")

type ChatModelConfig struct {
	Model      string
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// ChatModel 是基于 OpenRouter chat-completions（非流式 JSON 接口）的模型客户端。
// 每次 Generate 只发起一次上游调用，无重试。
type ChatModel struct {
	config        ChatModelConfig
	functionTools []openrouterapi.Tool
}

func NewChatModel(config ChatModelConfig) (*ChatModel, error) {
	if strings.TrimSpace(config.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, fmt.Errorf("base url is required")
	}
	// APIKey 不在这里校验：缺失的密钥只在调用发生时暴露
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}
	return &ChatModel{config: config}, nil
}

// WithFunctionTools 返回携带工具清单的副本；带工具的请求会把 tool_choice
// 置为 auto，由模型自行决定是否调用。
func (m *ChatModel) WithFunctionTools(tools []openrouterapi.Tool) *ChatModel {
	cloned := *m
	cloned.functionTools = tools
	return &cloned
}

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...einoModel.Option) (*schema.Message, error) {
	if strings.TrimSpace(m.config.APIKey) == "" {
		return nil, fmt.Errorf("openrouter api key is not configured")
	}

	payload, err := m.buildRequestPayload(input)
	if err != nil {
		return nil, err
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode openrouter request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.BaseURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to build openrouter request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", m.config.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.config.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openrouter request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return nil, fmt.Errorf("openrouter request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var completion openrouterapi.ChatCompletion
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("failed to decode openrouter response: %w", err)
	}
	if completion.Error != nil && completion.Error.Message != "" {
		return nil, fmt.Errorf("openrouter response error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return nil, ErrNoChoices
	}
	return schemaMessageFromWire(completion.Choices[0].Message), nil
}

func (m *ChatModel) buildRequestPayload(input []*schema.Message) (*openrouterapi.ChatRequest, error) {
	messages, err := wireMessagesFromSchema(input)
	if err != nil {
		return nil, err
	}
	payload := &openrouterapi.ChatRequest{
		Model:    m.config.Model,
		Messages: messages,
	}
	if len(m.functionTools) > 0 {
		payload.Tools = m.functionTools
		payload.ToolChoice = "auto"
	}
	return payload, nil
}

func wireMessagesFromSchema(input []*schema.Message) ([]openrouterapi.Message, error) {
	messages := make([]openrouterapi.Message, 0, len(input))
	for _, msg := range input {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.System:
			messages = append(messages, openrouterapi.Message{Role: "system", Content: msg.Content})
		case schema.User:
			messages = append(messages, openrouterapi.Message{Role: "user", Content: msg.Content})
		case schema.Assistant:
			m := openrouterapi.Message{Role: "assistant", Content: msg.Content}
			for _, tc := range msg.ToolCalls {
				callID := strings.TrimSpace(tc.ID)
				if callID == "" {
					continue
				}
				callType := strings.TrimSpace(tc.Type)
				if callType == "" {
					callType = "function"
				}
				wireCall := openrouterapi.ToolCall{ID: callID, Type: callType}
				if tc.Index != nil {
					wireCall.Index = *tc.Index
				}
				wireCall.Function.Name = strings.TrimSpace(tc.Function.Name)
				wireCall.Function.Arguments = tc.Function.Arguments
				m.ToolCalls = append(m.ToolCalls, wireCall)
			}
			messages = append(messages, m)
		case schema.Tool:
			if strings.TrimSpace(msg.ToolCallID) == "" {
				continue
			}
			messages = append(messages, openrouterapi.Message{
				Role:       "tool",
				Content:    msg.Content,
				ToolCallID: msg.ToolCallID,
			})
		default:
			return nil, fmt.Errorf("unsupported role: %s", msg.Role)
		}
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("no valid messages to send")
	}
	return messages, nil
}

func schemaMessageFromWire(m openrouterapi.Message) *schema.Message {
	toolCalls := make([]schema.ToolCall, 0, len(m.ToolCalls))
	for _, tc := range m.ToolCalls {
		callID := strings.TrimSpace(tc.ID)
		if callID == "" {
			continue
		}
		callType := strings.TrimSpace(tc.Type)
		if callType == "" {
			callType = "function"
		}
		toolCall := schema.ToolCall{
			ID:   callID,
			Type: callType,
			Function: schema.FunctionCall{
				Name:      strings.TrimSpace(tc.Function.Name),
				Arguments: tc.Function.Arguments,
			},
		}
		if tc.Index != 0 {
			index := tc.Index
			toolCall.Index = &index
		}
		toolCalls = append(toolCalls, toolCall)
	}
	return &schema.Message{
		Role:      schema.Assistant,
		Content:   m.Content,
		ToolCalls: toolCalls,
	}
}
