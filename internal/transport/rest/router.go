// Package rest serves the latest telemetry view over HTTP.
package rest

import (
	"net/http"

	"horizonx-top/internal/config"
	"horizonx-top/internal/transport/rest/middleware"
)

type RouterDeps struct {
	Telemetry *TelemetryHandler
	Ws        http.HandlerFunc
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg.AllowedOrigins))

	authStack := middleware.New()
	authStack.Use(middleware.JWT(cfg.JWTSecret))

	// HEALTH
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// WEBSOCKET
	if deps.Ws != nil {
		mux.HandleFunc("GET /ws", deps.Ws)
	}

	// TELEMETRY
	mux.Handle("GET /metrics", authStack.Then(deps.Telemetry.Metrics))
	mux.Handle("GET /processes/{pid}", authStack.Then(deps.Telemetry.Process))
	mux.Handle("POST /pause", authStack.Then(deps.Telemetry.Pause))

	return globalMw.Apply(mux)
}
