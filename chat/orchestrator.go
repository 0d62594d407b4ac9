// Package chat 实现两步式 tool-calling 协议的编排：planning call 让模型自行
// 决定是否调用工具；若模型请求了工具，执行后通过 follow-up call 把结果回传，
// 拿到最终的自然语言回答。
package chat

import (
	"context"
	"encoding/json"
	"fmt"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/wnrelay/wnrelay/tools"
)

// ChatModel 是编排器需要的最小模型接口（openrouter.ChatModel 实现了它）。
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...einoModel.Option) (*schema.Message, error)
}

// Response 是一次编排的成功结果。ToolResult 仅在实际执行过工具时非空，
// 随回答一并透出。
type Response struct {
	Answer     string
	ToolResult tools.Result
}

// Orchestrator 持有两个模型视图：planner 携带工具清单（tool_choice auto），
// follower 不带工具，用于 follow-up call。两者通常是同一个客户端的不同副本。
type Orchestrator struct {
	planner  ChatModel
	follower ChatModel
	registry *tools.Registry
}

func NewOrchestrator(planner, follower ChatModel, registry *tools.Registry) (*Orchestrator, error) {
	if planner == nil || follower == nil {
		return nil, fmt.Errorf("chat model is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("tool registry is required")
	}
	return &Orchestrator{planner: planner, follower: follower, registry: registry}, nil
}

// Process 处理一条用户消息：至多两次上游模型调用、至多一次工具执行。
//
// 模型在同一轮里请求多个工具时只执行第一个，其余静默忽略（follow-up 的
// assistant 消息仍会带上全部请求，保证对话记录自洽）。未知工具名以
// *tools.UnknownToolError 返回，且不会发起第二次模型调用。
func (o *Orchestrator) Process(ctx context.Context, message string) (*Response, error) {
	reply, err := o.planner.Generate(ctx, []*schema.Message{schema.UserMessage(message)})
	if err != nil {
		return nil, fmt.Errorf("planning call: %w", err)
	}
	if reply == nil {
		return nil, fmt.Errorf("planning call: empty reply")
	}
	if len(reply.ToolCalls) == 0 {
		return &Response{Answer: reply.Content}, nil
	}

	call := reply.ToolCalls[0]
	var args map[string]any
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("parse arguments of tool %q: %w", call.Function.Name, err)
	}

	result, err := o.registry.Dispatch(ctx, call.Function.Name, args)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result of tool %q: %w", call.Function.Name, err)
	}

	followUp := []*schema.Message{
		schema.UserMessage(message),
		{Role: schema.Assistant, Content: "", ToolCalls: reply.ToolCalls},
		{Role: schema.Tool, Content: string(payload), ToolCallID: call.ID},
	}
	final, err := o.follower.Generate(ctx, followUp)
	if err != nil {
		return nil, fmt.Errorf("follow-up call: %w", err)
	}
	if final == nil {
		return nil, fmt.Errorf("follow-up call: empty reply")
	}
	return &Response{Answer: final.Content, ToolResult: result}, nil
}
