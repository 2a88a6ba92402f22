package metrics_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/bot-keepalive/internal/metrics"
)

var _ = Describe("Collector", func() {
	var (
		collector *metrics.Collector
		log       *slog.Logger
		ctx       context.Context
		cancel    context.CancelFunc
	)

	BeforeEach(func() {
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelError, // Suppress logs in tests
		}))
		ctx, cancel = context.WithCancel(context.Background())
		collector = metrics.NewCollector(100, log)
	})

	AfterEach(func() {
		cancel()
		time.Sleep(10 * time.Millisecond) // Allow goroutine to finish
	})

	Describe("EventChannel", func() {
		It("returns a write-only channel", func() {
			Expect(collector.EventChannel()).NotTo(BeNil())
		})
	})

	Describe("Start and event processing", func() {
		It("processes EventProbeReceived", func() {
			collector.Start(ctx)

			collector.EventChannel() <- metrics.MetricEvent{
				Type:      metrics.EventProbeReceived,
				Timestamp: time.Now(),
			}

			Eventually(func() int64 {
				return collector.Snapshot().TotalProbes
			}).Should(Equal(int64(1)))
		})

		It("processes EventWorkerTransition", func() {
			collector.Start(ctx)

			collector.EventChannel() <- metrics.MetricEvent{
				Type:        metrics.EventWorkerTransition,
				Timestamp:   time.Now(),
				WorkerState: "running",
			}

			Eventually(func() string {
				return collector.Snapshot().WorkerState
			}).Should(Equal("running"))
		})

		It("drains buffered events on shutdown", func() {
			for i := 0; i < 5; i++ {
				collector.EventChannel() <- metrics.MetricEvent{
					Type:      metrics.EventProbeReceived,
					Timestamp: time.Now(),
				}
			}

			collector.Start(ctx)
			cancel()

			Eventually(func() int64 {
				return collector.Snapshot().TotalProbes
			}).Should(Equal(int64(5)))
		})
	})

	Describe("Handler", func() {
		It("serves the snapshot as JSON", func() {
			collector.Start(ctx)

			collector.EventChannel() <- metrics.MetricEvent{
				Type:      metrics.EventProbeReceived,
				Timestamp: time.Now(),
			}
			Eventually(func() int64 {
				return collector.Snapshot().TotalProbes
			}).Should(Equal(int64(1)))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

			collector.Handler()(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

			var snap metrics.Snapshot
			Expect(json.Unmarshal(rec.Body.Bytes(), &snap)).To(Succeed())
			Expect(snap.TotalProbes).To(Equal(int64(1)))
		})
	})
})
