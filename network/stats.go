package network

import (
	"math"

	"github.com/trustmesh/engine/kernel"
)

// TrustSnapshot is one recorded row of network-wide trust statistics,
// taken at the end of every tick (§4.10 step 7).
type TrustSnapshot struct {
	Tick      uint64
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	HighTrust int
	LowTrust  int
}

func (n *Network) recordSnapshot() {
	if len(n.Nodes) == 0 {
		n.Snapshots = append(n.Snapshots, TrustSnapshot{Tick: n.Tick})
		return
	}

	values := make([]float64, 0, len(n.Nodes))
	min, max := math.Inf(1), math.Inf(-1)
	high, low := 0, 0
	for _, id := range n.sortedNodeIDs() {
		t := n.Nodes[id].Trust.Value()
		values = append(values, t)
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
		if t > 0.7 {
			high++
		}
		if t < 0.3 {
			low++
		}
	}

	mean := kernel.Mean(values, 0)
	stdDev := math.Sqrt(kernel.Variance(values))

	n.Snapshots = append(n.Snapshots, TrustSnapshot{
		Tick:      n.Tick,
		Mean:      mean,
		StdDev:    stdDev,
		Min:       min,
		Max:       max,
		HighTrust: high,
		LowTrust:  low,
	})
}

// ConvergenceScore is early_std - late_std across the first and second
// half of recorded trust snapshots, borrowed from symbiont-sim's
// MetricsCollector (SPEC_FULL.md §12): positive means trust std-dev
// shrank, i.e. the network converged.
func (n *Network) ConvergenceScore() float64 {
	if len(n.Snapshots) < 2 {
		return 0
	}
	mid := len(n.Snapshots) / 2
	earlyStd := meanStdDev(n.Snapshots[:mid])
	lateStd := meanStdDev(n.Snapshots[mid:])
	return earlyStd - lateStd
}

func meanStdDev(snaps []TrustSnapshot) float64 {
	if len(snaps) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range snaps {
		sum += s.StdDev
	}
	return sum / float64(len(snaps))
}
