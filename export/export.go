// Package export writes simulation results as CSV, per SPEC_FULL.md
// §6's external-interface contract. Grounded on symbiont-sim's
// csv export helpers; the io.Writer-sink shape follows the teacher's
// convention of accepting a caller-supplied writer rather than owning
// file lifecycle itself.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/threat"
)

// TrustRow is one row of the trust snapshot CSV.
type TrustRow struct {
	Tick      uint64
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	HighTrust int
	LowTrust  int
}

// TrustCSV writes rows with header "tick,mean,std_dev,min,max,
// high_trust,low_trust", floats with four fractional digits.
func TrustCSV(w io.Writer, rows []TrustRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tick", "mean", "std_dev", "min", "max", "high_trust", "low_trust"}); err != nil {
		return fmt.Errorf("export: write trust header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			fmt.Sprintf("%d", r.Tick),
			fmt.Sprintf("%.4f", r.Mean),
			fmt.Sprintf("%.4f", r.StdDev),
			fmt.Sprintf("%.4f", r.Min),
			fmt.Sprintf("%.4f", r.Max),
			fmt.Sprintf("%d", r.HighTrust),
			fmt.Sprintf("%d", r.LowTrust),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write trust row tick=%d: %w", r.Tick, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush trust csv: %w", err)
	}
	return nil
}

// DetectionRow is one row of the detection event CSV.
type DetectionRow struct {
	Tick       uint64
	NodeID     ids.NodeID
	ThreatType threat.Type
	Confidence float64
}

// DetectionCSV writes rows with header "tick,node_id,threat_type,
// confidence"; node_id is the first 16 hex characters of the id.
func DetectionCSV(w io.Writer, rows []DetectionRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tick", "node_id", "threat_type", "confidence"}); err != nil {
		return fmt.Errorf("export: write detection header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			fmt.Sprintf("%d", r.Tick),
			r.NodeID.ShortHex(16),
			r.ThreatType.String(),
			fmt.Sprintf("%.4f", r.Confidence),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write detection row tick=%d: %w", r.Tick, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush detection csv: %w", err)
	}
	return nil
}
