package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wnrelay/wnrelay"
	"github.com/wnrelay/wnrelay/relayhttp"
)

func main() {
	var (
		listen        = flag.String("listen", "0.0.0.0:8000", "listen address")
		model         = flag.String("model", wnrelay.DefaultModel, "openrouter model id")
		openrouterURL = flag.String("openrouter-url", "", "openrouter chat-completions url (default: "+wnrelay.DefaultOpenRouterURL+")")
	)
	flag.Parse()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	err := relayhttp.RegisterGinRoutes(r, relayhttp.Config{
		Model:            *model,
		OpenRouterURL:    *openrouterURL,
		OpenRouterAPIKey: strings.TrimSpace(os.Getenv(wnrelay.EnvOpenRouterAPIKey)),
		NewsDataAPIKey:   strings.TrimSpace(os.Getenv(wnrelay.EnvNewsDataAPIKey)),
	})
	if err != nil {
		log.Fatalf("register routes failed: %v", err)
	}

	srv := &http.Server{
		Addr:              *listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	local := addrForLocalClient(*listen)
	log.Printf("wnrelay server listening on http://%s", local)
	log.Printf("try: curl http://%s/health", local)
	log.Printf("try: curl http://%s/chat -H 'Content-Type: application/json' -d '{\"message\":\"what is the weather in Tokyo?\"}'", local)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
	}
}

// addrForLocalClient 把监听地址换算成本机可访问的形式，用于启动日志里的 curl 提示。
func addrForLocalClient(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return listen
	}
	switch host {
	case "", "0.0.0.0", "::":
		return net.JoinHostPort("127.0.0.1", port)
	default:
		return listen
	}
}
