package main

import (
	"net/http"

	"github.com/angeloszaimis/bot-keepalive/internal/handler"
	"github.com/angeloszaimis/bot-keepalive/internal/metrics"
)

func setupRouter(liveness *handler.LivenessHandler, metricsCollector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", liveness.ServeHTTP)
	mux.HandleFunc("/metrics", metricsCollector.Handler())

	return mux
}
