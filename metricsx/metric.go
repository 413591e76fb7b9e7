// Package metricsx is the ambient metrics layer: Counter/Gauge/Averager
// primitives backed by Prometheus, and a Collector that wires up the
// simulation's tick counters, trust gauges, and detection counters.
// Grounded directly on luxfi-consensus's metrics/metric.go and
// metrics/metrics.go.
package metricsx

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trustmesh/engine/wrappers"
)

// Counter is a monotonically increasing count.
type Counter interface {
	Inc()
	Add(delta float64)
	Read() float64
}

type counter struct {
	mu   sync.RWMutex
	val  float64
	prom prometheus.Counter
}

// NewCounter returns a Counter registered against reg, falling back to
// an unregistered in-memory counter (and recording the error in errs)
// if registration fails.
func NewCounter(name, help string, reg prometheus.Registerer, errs *wrappers.Errs) Counter {
	c := &counter{}
	if reg == nil {
		return c
	}
	prom := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
	if err := reg.Register(prom); err != nil {
		errs.Add(fmt.Errorf("metricsx: register counter %q: %w", name, err))
		return c
	}
	c.prom = prom
	return c
}

func (c *counter) Inc() { c.Add(1) }

func (c *counter) Add(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.val += delta
	if c.prom != nil {
		c.prom.Add(delta)
	}
}

func (c *counter) Read() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.val
}

// Gauge is a value that can move up or down.
type Gauge interface {
	Set(value float64)
	Add(delta float64)
	Read() float64
}

type gauge struct {
	mu   sync.RWMutex
	val  float64
	prom prometheus.Gauge
}

// NewGauge returns a Gauge registered against reg, with the same
// unregistered-fallback behavior as NewCounter.
func NewGauge(name, help string, reg prometheus.Registerer, errs *wrappers.Errs) Gauge {
	g := &gauge{}
	if reg == nil {
		return g
	}
	prom := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
	if err := reg.Register(prom); err != nil {
		errs.Add(fmt.Errorf("metricsx: register gauge %q: %w", name, err))
		return g
	}
	g.prom = prom
	return g
}

func (g *gauge) Set(value float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.val = value
	if g.prom != nil {
		g.prom.Set(value)
	}
}

func (g *gauge) Add(delta float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.val += delta
	if g.prom != nil {
		g.prom.Add(delta)
	}
}

func (g *gauge) Read() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.val
}

// Averager tracks a running mean.
type Averager interface {
	Observe(value float64)
	Read() float64
}

type averager struct {
	mu        sync.RWMutex
	sum       float64
	count     float64
	promCount prometheus.Counter
	promSum   prometheus.Gauge
}

// NewAverager returns an Averager registered against reg (two
// underlying metrics: a count and a sum), falling back to an
// unregistered averager and recording the error in errs on failure.
func NewAverager(name, help string, reg prometheus.Registerer, errs *wrappers.Errs) Averager {
	a := &averager{}
	if reg == nil {
		return a
	}
	count := prometheus.NewCounter(prometheus.CounterOpts{
		Name: name + "_count",
		Help: "Total # of observations of " + help,
	})
	sum := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name + "_sum",
		Help: "Sum of " + help,
	})
	if err := reg.Register(count); err != nil {
		errs.Add(fmt.Errorf("metricsx: register averager %q count: %w", name, err))
		return a
	}
	if err := reg.Register(sum); err != nil {
		errs.Add(fmt.Errorf("metricsx: register averager %q sum: %w", name, err))
		return a
	}
	a.promCount = count
	a.promSum = sum
	return a
}

func (a *averager) Observe(value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sum += value
	a.count++
	if a.promCount != nil {
		a.promCount.Inc()
	}
	if a.promSum != nil {
		a.promSum.Set(a.sum)
	}
}

func (a *averager) Read() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.count == 0 {
		return 0
	}
	return a.sum / a.count
}
