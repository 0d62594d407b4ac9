// Package openrouterapi 定义 OpenRouter chat-completions 接口的数据结构。
//
// 与常见做法不同，这里的类型描述的是本服务“消费”的上游接口（请求与响应
// 报文），而不是对外暴露的接口；relayhttp 对外的 ChatRequest/ChatResponse
// 定义在 relayhttp 包内。
package openrouterapi
