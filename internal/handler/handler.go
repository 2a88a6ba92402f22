package handler

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angeloszaimis/bot-keepalive/internal/metrics"
)

// Body is the fixed liveness response. The platform only checks the
// status code, but the body is part of the observed contract.
const Body = "Telegram Bot is running in the background!"

// LivenessHandler answers the platform's liveness probes with a fixed
// success response. It holds no reference to the worker's supervisor:
// the response must not depend on whether the bot is alive.
type LivenessHandler struct {
	logger           *slog.Logger
	metricsCollector *metrics.Collector
}

func NewLivenessHandler(logger *slog.Logger, collector *metrics.Collector) *LivenessHandler {
	return &LivenessHandler{
		logger:           logger,
		metricsCollector: collector,
	}
}

func (h *LivenessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The mux "/" pattern is a catch-all; only the root path is served.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.logger.Debug("Liveness probe",
		slog.String("from", extractClientIP(r)),
		slog.String("user_agent", r.UserAgent()))

	h.emitEvent(metrics.MetricEvent{
		Type:      metrics.EventProbeReceived,
		Timestamp: time.Now(),
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Body))
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}

func (h *LivenessHandler) emitEvent(event metrics.MetricEvent) {
	if h.metricsCollector == nil {
		return
	}

	select {
	case h.metricsCollector.EventChannel() <- event:
	default:
	}
}
