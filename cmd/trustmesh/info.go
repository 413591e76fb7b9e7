package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trustmesh/engine/sim"
)

var scenarioDescriptions = map[string]string{
	"trust_emergence":         "honest nodes only; watch trust converge from the swift-trust base",
	"adversary_strategic":     "honest nodes plus strategic adversaries that defect at a scheduled tick",
	"adversary_free_rider":    "honest nodes plus free-riders taking more than they give",
	"adversary_sybil":         "honest nodes plus a cooperating sybil cohort sharing a cluster",
	"workflow_chain":          "a sequential chain of capability-routed workflow steps",
	"workflow_fan_out_fan_in": "parallel branches feeding a single merge step",
	"workflow_dag":            "a four-step diamond dependency graph",
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "List available scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range sim.Names() {
				fmt.Printf("%-24s %s\n", name, scenarioDescriptions[name])
			}
			return nil
		},
	}
}
