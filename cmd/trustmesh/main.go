// Command trustmesh is the simulation CLI: run/quick/info subcommands
// over the sim package's named scenarios. Grounded on
// luxfi-consensus's cmd/consensus/main.go rootCmd/subcommand pattern.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trustmesh/engine/logx"
)

var (
	verbose bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "trustmesh",
	Short: "Decentralized trust protocol simulation tools",
	Long: `trustmesh runs and inspects simulations of the decentralized trust
and workflow-orchestration protocol: trust emergence, adversary
injection, and multi-step workflow execution over a network of nodes.`,
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "optional rotating log file path")

	rootCmd.AddCommand(runCmd(), quickCmd(), infoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() logx.Logger {
	return logx.New(logx.Options{Verbose: verbose, LogFile: logFile})
}
