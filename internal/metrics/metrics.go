package metrics

import (
	"sync"
	"time"
)

// transitionHistoryCap bounds the retained worker lifecycle history.
const transitionHistoryCap = 100

type Metrics struct {
	mutex       sync.RWMutex
	probes      int64
	workerState string
	transitions []Transition
	startTime   time.Time
}

type Transition struct {
	State string    `json:"state"`
	At    time.Time `json:"at"`
}

type Snapshot struct {
	TotalProbes int64         `json:"total_probes"`
	Uptime      time.Duration `json:"uptime"`
	WorkerState string        `json:"worker_state"`
	Transitions []Transition  `json:"transitions"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		workerState: "not_started",
		startTime:   time.Now(),
	}
}

func (m *Metrics) IncrementProbes() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.probes++
}

func (m *Metrics) RecordWorkerTransition(state string, at time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.workerState = state
	m.transitions = append(m.transitions, Transition{State: state, At: at})

	if len(m.transitions) > transitionHistoryCap {
		m.transitions = m.transitions[1:]
	}
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		TotalProbes: m.probes,
		Uptime:      time.Since(m.startTime),
		WorkerState: m.workerState,
		Transitions: make([]Transition, len(m.transitions)),
	}
	copy(snap.Transitions, m.transitions)

	return snap
}
