// Package wnrelay 提供一个单端点的聊天转发服务：用户的自然语言消息被转发给
// OpenRouter 的 chat-completions 接口，并携带两个可调用工具（getWeather /
// getNews）；当模型请求工具调用时，服务执行对应的实时查询并把结果回传给模型，
// 最终返回模型的自然语言回答。
//
// 该仓库主要包含三层能力：
//  1. 工具层：tools 包实现城市天气（Nominatim 地理编码 + Open-Meteo）与
//     新闻检索（NewsData.io）两个查询，以及固定的工具注册表
//  2. 编排层：chat 包实现两步式 tool-calling 协议（planning call → 工具执行
//     → follow-up call），openrouter 包提供上游 chat model 客户端
//  3. HTTP 层：relayhttp 包导出 POST /chat 与 GET /、GET /health handlers
package wnrelay
