// Package metrics provides real-time metrics collection for the keep-alive
// service.
//
// It uses a channel-based event pipeline to asynchronously collect:
//   - Liveness probe counts
//   - Background worker lifecycle transitions (with a bounded history)
//   - Process uptime
//
// The collector runs in a dedicated goroutine and processes events without
// blocking the probe path or the worker's execution context. Events are sent
// via buffered channels with non-blocking semantics.
//
// Example usage:
//
//	collector := metrics.NewCollector(100, logger)
//	collector.Start(ctx)
//
//	collector.EventChannel() <- metrics.MetricEvent{
//		Type:      metrics.EventProbeReceived,
//		Timestamp: time.Now(),
//	}
//
//	snapshot := collector.Snapshot()
package metrics
