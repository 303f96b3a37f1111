package observability

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics aggregates API and resolution counters in memory.
type Metrics struct {
	mu sync.Mutex

	requestTotal  atomic.Int64
	requestFailed atomic.Int64
	timeDefaulted atomic.Int64

	operations map[string]*OperationMetrics
	errorCodes map[string]int64
}

// OperationMetrics counts one API operation.
type OperationMetrics struct {
	executionCount atomic.Int64
	totalDuration  atomic.Int64 // milliseconds
	errorCount     atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		operations: make(map[string]*OperationMetrics),
		errorCodes: make(map[string]int64),
	}
}

// RecordRequest records a request.
func (m *Metrics) RecordRequest(operation string) {
	m.requestTotal.Add(1)
	m.operation(operation).executionCount.Add(1)
}

// RecordFailure records a failed request and its error code.
func (m *Metrics) RecordFailure(operation, code string) {
	m.requestFailed.Add(1)
	m.operation(operation).errorCount.Add(1)

	m.mu.Lock()
	m.errorCodes[code]++
	m.mu.Unlock()
}

// RecordDuration records a request duration.
func (m *Metrics) RecordDuration(operation string, d time.Duration) {
	m.operation(operation).totalDuration.Add(d.Milliseconds())
}

// RecordTimeDefaulted counts resolutions that fell back to the default hour.
func (m *Metrics) RecordTimeDefaulted() {
	m.timeDefaulted.Add(1)
}

func (m *Metrics) operation(name string) *OperationMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	om, ok := m.operations[name]
	if !ok {
		om = &OperationMetrics{}
		m.operations[name] = om
	}
	return om
}

// OperationSnapshot is the exported view of one operation.
type OperationSnapshot struct {
	Name          string `json:"name"`
	Count         int64  `json:"count"`
	Errors        int64  `json:"errors"`
	AvgDurationMs int64  `json:"avgDurationMs"`
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	RequestTotal  int64               `json:"requestTotal"`
	RequestFailed int64               `json:"requestFailed"`
	TimeDefaulted int64               `json:"timeDefaulted"`
	ErrorCodes    map[string]int64    `json:"errorCodes"`
	Operations    []OperationSnapshot `json:"operations"`
}

// Snapshot copies the current counters. Operations are sorted by name.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		TimeDefaulted: m.timeDefaulted.Load(),
		ErrorCodes:    make(map[string]int64, len(m.errorCodes)),
		Operations:    make([]OperationSnapshot, 0, len(m.operations)),
	}
	for code, n := range m.errorCodes {
		s.ErrorCodes[code] = n
	}
	for name, om := range m.operations {
		op := OperationSnapshot{
			Name:   name,
			Count:  om.executionCount.Load(),
			Errors: om.errorCount.Load(),
		}
		if op.Count > 0 {
			op.AvgDurationMs = om.totalDuration.Load() / op.Count
		}
		s.Operations = append(s.Operations, op)
	}
	sort.Slice(s.Operations, func(i, j int) bool { return s.Operations[i].Name < s.Operations[j].Name })
	return s
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requestTotal.Store(0)
	m.requestFailed.Store(0)
	m.timeDefaulted.Store(0)
	m.operations = make(map[string]*OperationMetrics)
	m.errorCodes = make(map[string]int64)
}
