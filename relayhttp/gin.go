package relayhttp

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

func RegisterGinRoutes(r gin.IRouter, cfg Config) error {
	if r == nil {
		return fmt.Errorf("router is nil")
	}
	chatHandler, rootHandler, healthHandler, err := Handlers(cfg)
	if err != nil {
		return err
	}

	r.POST("/chat", gin.WrapF(chatHandler))
	r.GET("/", gin.WrapF(rootHandler))
	r.GET("/health", gin.WrapF(healthHandler))
	return nil
}
