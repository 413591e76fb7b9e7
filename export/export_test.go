package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/threat"
)

func TestTrustCSVHeaderAndFormatting(t *testing.T) {
	var buf strings.Builder
	err := TrustCSV(&buf, []TrustRow{
		{Tick: 1, Mean: 0.5, StdDev: 0.123456, Min: 0.1, Max: 0.9, HighTrust: 2, LowTrust: 1},
	})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "tick,mean,std_dev,min,max,high_trust,low_trust", lines[0])
	require.Equal(t, "1,0.5000,0.1235,0.1000,0.9000,2,1", lines[1])
}

func TestDetectionCSVHeaderAndShortHex(t *testing.T) {
	var buf strings.Builder
	id := ids.NodeIDFromIndex(7)
	err := DetectionCSV(&buf, []DetectionRow{
		{Tick: 3, NodeID: id, ThreatType: threat.Sybil, Confidence: 0.75},
	})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "tick,node_id,threat_type,confidence", lines[0])
	require.Equal(t, "3,"+id.ShortHex(16)+",sybil,0.7500", lines[1])
}

func TestEmptyRowsProduceHeaderOnly(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, TrustCSV(&buf, nil))
	require.Equal(t, "tick,mean,std_dev,min,max,high_trust,low_trust\n", buf.String())
}
