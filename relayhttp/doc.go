// Package relayhttp 导出聊天转发服务的 HTTP 层：
//
//   - POST /chat   聊天入口；处理失败也返回 200，错误通过响应体的 error 字段传达
//   - GET  /       存活探针
//   - GET  /health 存活探针 + 自省（已注册工具、密钥是否已配置）
//
// handlers 是标准的 http.HandlerFunc，通过 RegisterGinRoutes 挂到 gin 路由上。
package relayhttp
