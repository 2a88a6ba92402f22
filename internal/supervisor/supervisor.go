package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/angeloszaimis/bot-keepalive/internal/metrics"
)

// Entry is the worker's entry point: a single long-running unit of
// asynchronous work taking no arguments beyond its context. Its return
// value only selects the terminal state; nothing is propagated.
type Entry func(ctx context.Context) error

// ErrStopRequested is the controlled-termination signal: a worker returns
// it (bare or wrapped) to request its own stop. The supervisor logs it and
// ends the worker's execution context without touching the serving process,
// since process lifetime is owned by the hosting platform.
var ErrStopRequested = errors.New("worker requested stop")

type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateStoppedClean
	StateCancelled
	StateCrashed
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateStoppedClean:
		return "stopped_clean"
	case StateCancelled:
		return "cancelled"
	case StateCrashed:
		return "crashed"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Supervisor runs exactly one worker entry point on its own goroutine and
// keeps every failure inside that goroutine. A crashed worker stays dead:
// there is no restart transition, the platform restarts the whole process.
type Supervisor struct {
	logger           *slog.Logger
	metricsCollector *metrics.Collector

	mutex    sync.Mutex
	state    State
	launched bool
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(logger *slog.Logger, collector *metrics.Collector) *Supervisor {
	return &Supervisor{
		logger:           logger,
		metricsCollector: collector,
		state:            StateNotStarted,
		done:             make(chan struct{}),
	}
}

// Launch schedules the entry point on a new goroutine and returns
// immediately; it never waits for the worker to start or finish. The
// supervisor owns a single worker context, so a second call is ignored.
func (s *Supervisor) Launch(entry Entry) {
	s.mutex.Lock()
	if s.launched {
		s.mutex.Unlock()
		s.logger.Warn("Worker already launched, ignoring")
		return
	}
	s.launched = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mutex.Unlock()

	go s.run(ctx, entry)
}

// State reports the worker's current lifecycle state.
func (s *Supervisor) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Done is closed once the worker's execution context has finished. Nothing
// in the serving path waits on it; it exists so that abandoning the worker
// at process exit is a visible choice rather than an accident.
func (s *Supervisor) Done() <-chan struct{} {
	return s.done
}

// Cancel requests cancellation of the worker's context. Safe to call
// before Launch and more than once.
func (s *Supervisor) Cancel() {
	s.mutex.Lock()
	cancel := s.cancel
	s.mutex.Unlock()

	if cancel != nil {
		cancel()
	}
}

// run is the boundary of the worker's execution context. Every way the
// entry point can end is absorbed here; none reaches the HTTP server.
func (s *Supervisor) run(ctx context.Context, entry Entry) {
	defer func() {
		s.setState(StateFinished)
		s.logger.Info("Worker finished")
		close(s.done)
	}()

	s.setState(StateRunning)
	s.logger.Info("Starting background worker")

	err := s.invoke(ctx, entry)

	switch {
	case err == nil:
		s.setState(StateStoppedClean)
		s.logger.Info("Worker stopped cleanly")

	case errors.Is(err, ErrStopRequested):
		s.setState(StateStoppedClean)
		s.logger.Info("Worker requested stop", slog.String("reason", err.Error()))

	case errors.Is(err, context.Canceled):
		s.setState(StateCancelled)
		s.logger.Info("Worker cancelled")

	default:
		s.setState(StateCrashed)
		s.logger.Error("Worker crashed", slog.Any("err", err))
	}
}

// invoke calls the entry point, converting a panic into an error that
// carries the panic value and stack trace.
func (s *Supervisor) invoke(ctx context.Context, entry Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker panic: %v\n%s", r, debug.Stack())
		}
	}()

	return entry(ctx)
}

func (s *Supervisor) setState(next State) {
	s.mutex.Lock()
	s.state = next
	s.mutex.Unlock()

	s.emitEvent(metrics.MetricEvent{
		Type:        metrics.EventWorkerTransition,
		Timestamp:   time.Now(),
		WorkerState: next.String(),
	})
}

func (s *Supervisor) emitEvent(event metrics.MetricEvent) {
	if s.metricsCollector == nil {
		return
	}

	select {
	case s.metricsCollector.EventChannel() <- event:
	default:
	}
}
