package cmd

import (
	"github.com/ZpokenWeb3/plonky2-gates/verifier"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "compile build circuit data(pk, vk, solidity contract) for the trace of <dir>/circuit.json",
	RunE:  compile,
}

func compile(cmd *cobra.Command, args []string) error {
	raw, err := readDescription()
	if err != nil {
		return err
	}
	circuit, _, err := raw.ToCircuit()
	if err != nil {
		return err
	}
	return verifier.SetupTraceCircuit(circuit, system, fBaseDir+"/build")
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVar(&system, "system", verifier.SystemGroth16, "proof system for compiling (groth16 or plonk)")
}
