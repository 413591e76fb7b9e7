package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trustmesh/engine/config"
	"github.com/trustmesh/engine/export"
	"github.com/trustmesh/engine/sim"
	"github.com/trustmesh/engine/workflow"
)

func runCmd() *cobra.Command {
	var (
		nodes          int
		ticks          uint64
		seed           int64
		injectAt       uint64
		adversaryCount int
		defectAt       uint64
		exportDir      string
		metrics        bool
	)

	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run a named scenario to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			name := args[0]

			scenario, err := buildScenario(name, nodes, injectAt, adversaryCount, defectAt)
			if err != nil {
				return err
			}

			cfg := config.SimulationConfig{
				Seed:          seed,
				NodeCount:     nodes,
				Ticks:         ticks,
				EnableMetrics: metrics,
				ExportEnabled: exportDir != "",
				ExportDir:     exportDir,
			}
			if err := cfg.Verify(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log.Info("starting run", zap.String("scenario", name), zap.Int("nodes", nodes), zap.Uint64("ticks", ticks))
			result := sim.NewRunner(cfg).Run(scenario)
			log.Debug("run complete", zap.Int("snapshots", len(result.Network.Snapshots)))

			if exportDir != "" {
				if err := writeExports(exportDir, result); err != nil {
					log.Error("export failed", zap.Error(err))
					return err
				}
				log.Info("wrote exports", zap.String("dir", exportDir))
			}

			last := result.Network.Snapshots[len(result.Network.Snapshots)-1]
			fmt.Printf("scenario %q finished after %s ticks: mean trust %.3f, convergence %.4f\n",
				name, humanize.Comma(int64(ticks)), last.Mean, result.Convergence)
			if result.Workflow != nil {
				fmt.Printf("workflow %s: %d/%d steps completed, overall quality %.3f\n",
					result.Workflow.ID, countCompletedSteps(result.Workflow), len(result.Workflow.Steps), result.Workflow.OverallQuality().Value())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&nodes, "nodes", 20, "number of honest nodes to seed")
	cmd.Flags().Uint64Var(&ticks, "ticks", 500, "number of ticks to run")
	cmd.Flags().Int64Var(&seed, "seed", 42, "deterministic PRNG seed")
	cmd.Flags().Uint64Var(&injectAt, "inject-at", 100, "tick at which adversaries join (adversary scenarios only)")
	cmd.Flags().IntVar(&adversaryCount, "adversary-count", 3, "number of adversaries to inject (adversary scenarios only)")
	cmd.Flags().Uint64Var(&defectAt, "defect-at", 300, "tick at which strategic adversaries defect")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "directory to write trust.csv and detections.csv into")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "enable the Prometheus metrics collector")

	return cmd
}

func buildScenario(name string, nodes int, injectAt uint64, adversaryCount int, defectAt uint64) (sim.Scenario, error) {
	switch name {
	case "trust_emergence":
		return sim.TrustEmergence{NodeCount: nodes}, nil
	case "adversary_strategic":
		return sim.AdversaryStrategic{HonestCount: nodes, AdversaryCount: adversaryCount, InjectAtTick: injectAt, DefectAtTick: defectAt}, nil
	case "adversary_free_rider":
		return sim.AdversaryFreeRider{HonestCount: nodes, AdversaryCount: adversaryCount, InjectAtTick: injectAt}, nil
	case "adversary_sybil":
		return sim.AdversarySybil{HonestCount: nodes, AdversaryCount: adversaryCount, InjectAtTick: injectAt}, nil
	case "workflow_chain":
		return sim.WorkflowChain{NodeCount: nodes, StepCount: 6}, nil
	case "workflow_fan_out_fan_in":
		return sim.WorkflowFanOutFanIn{NodeCount: nodes, Branches: 3}, nil
	case "workflow_dag":
		return sim.WorkflowDag{NodeCount: nodes}, nil
	default:
		return nil, fmt.Errorf("unknown scenario %q (see `trustmesh info`)", name)
	}
}

func countCompletedSteps(wf *workflow.Workflow) int {
	n := 0
	for _, s := range wf.Steps {
		if s.Status == workflow.Completed {
			n++
		}
	}
	return n
}

func writeExports(dir string, result sim.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	trustFile, err := os.Create(filepath.Join(dir, "trust.csv"))
	if err != nil {
		return fmt.Errorf("open trust.csv: %w", err)
	}
	defer trustFile.Close()

	rows := make([]export.TrustRow, len(result.Network.Snapshots))
	for i, s := range result.Network.Snapshots {
		rows[i] = export.TrustRow{
			Tick: s.Tick, Mean: s.Mean, StdDev: s.StdDev,
			Min: s.Min, Max: s.Max, HighTrust: s.HighTrust, LowTrust: s.LowTrust,
		}
	}
	if err := export.TrustCSV(trustFile, rows); err != nil {
		return err
	}

	detFile, err := os.Create(filepath.Join(dir, "detections.csv"))
	if err != nil {
		return fmt.Errorf("open detections.csv: %w", err)
	}
	defer detFile.Close()

	detRows := make([]export.DetectionRow, len(result.Network.DetectionLog))
	for i, e := range result.Network.DetectionLog {
		detRows[i] = export.DetectionRow{
			Tick: e.Tick, NodeID: e.Subject, ThreatType: e.ThreatType, Confidence: e.Confidence,
		}
	}
	return export.DetectionCSV(detFile, detRows)
}
