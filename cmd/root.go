package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	fBaseDir     string
	fConcurrency int
	system       string
)

var rootCmd = &cobra.Command{
	Use:   "plonky2-gates",
	Short: "helper to fill, check and prove plonky2 gate traces in gnark",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fBaseDir, "dir", "", "base directory holding circuit.json and the build outputs")
	rootCmd.PersistentFlags().IntVar(&fConcurrency, "concurrency", 0, "number of witness generators run in parallel (defaults to the number of CPUs)")
}
