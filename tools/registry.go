// Package tools 实现模型可调用的实时查询（城市天气、新闻检索）与固定的
// 工具注册表。
package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/wnrelay/wnrelay/openrouterapi"
)

// Result 是工具执行的返回值：任意可 JSON 序列化的映射。查询内部的失败以
// Result{"error": ...} 的形式返回，属于合法的工具输出，会原样回传给模型，
// 而不是作为 Go error 向上抛。
type Result = map[string]any

// Func 是注册表中可分发的工具函数，args 来自模型给出的 JSON 参数。
type Func func(ctx context.Context, args map[string]any) Result

// UnknownToolError 表示模型请求了注册表中不存在的工具名。
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Tool '%s' not found", e.Name)
}

// Registry 是工具名到工具函数的映射，进程启动时构造一次，之后只读，
// 可被并发请求共享。
type Registry struct {
	funcs map[string]Func
}

func NewRegistry(weather *WeatherService, news *NewsService) *Registry {
	return &Registry{funcs: map[string]Func{
		"getWeather": weather.call,
		"getNews":    news.call,
	}}
}

// Names 返回已注册的工具名（排序后），用于 /health 输出。
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch 按名称分发一次工具调用；未知工具名返回 *UnknownToolError，
// 由调用方决定如何上报。
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (Result, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return fn(ctx, args), nil
}

// Definitions 返回随 planning call 发给模型的静态工具清单。
func Definitions() []openrouterapi.Tool {
	return []openrouterapi.Tool{
		{
			Type: "function",
			Function: openrouterapi.ToolFunction{
				Name:        "getWeather",
				Description: "Get current weather for a city",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"city": map[string]any{
							"type":        "string",
							"description": "City name",
						},
					},
					"required": []string{"city"},
				},
			},
		},
		{
			Type: "function",
			Function: openrouterapi.ToolFunction{
				Name:        "getNews",
				Description: "Get latest news for a topic",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic": map[string]any{
							"type":        "string",
							"description": "News topic",
						},
					},
					"required": []string{"topic"},
				},
			},
		},
	}
}
