package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trustmesh/engine/sim"
)

func quickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick",
		Short: "Run a small default trust-emergence network",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			log.Debug("starting quick run")
			result := sim.QuickRun()
			last := result.Network.Snapshots[len(result.Network.Snapshots)-1]
			log.Info("quick run complete", zap.Int("nodes", len(result.Network.Nodes)), zap.Float64("meanTrust", last.Mean))
			fmt.Printf("quick run: %d nodes, %d ticks, final mean trust %.3f\n",
				len(result.Network.Nodes), len(result.Network.Snapshots), last.Mean)
			return nil
		},
	}
}
