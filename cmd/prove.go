package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ZpokenWeb3/plonky2-gates/verifier"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// proveCmd represents the proof command
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "proves the trace of <dir>/circuit.json in gnark and verifies it, writing the hex proof to a json file",
	RunE:  prove,
}

func prove(cmd *cobra.Command, args []string) error {
	raw, err := readDescription()
	if err != nil {
		return err
	}
	trace, err := fillTrace(cmd.Context(), raw)
	if err != nil {
		return err
	}
	if err := trace.check(); err != nil {
		return err
	}

	assignment, err := verifier.NewTraceAssignment(trace.circuit, trace.witness, trace.publicInputsHash)
	if err != nil {
		return err
	}
	proofWithWitness, err := verifier.ProveTrace(fBaseDir+"/build", system, assignment)
	if err != nil {
		return err
	}

	jsonProofWithWitness, err := json.Marshal(proofWithWitness)
	if err != nil {
		return fmt.Errorf("failed to marshal proof with witness: %w", err)
	}
	path := fBaseDir + "/proof_with_witness.json"
	if err := os.WriteFile(path, jsonProofWithWitness, 0644); err != nil {
		return fmt.Errorf("failed to write proof_with_witness file: %w", err)
	}
	log.Info().Msg("Successfully saved " + path)
	return nil
}

func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringVar(&system, "system", verifier.SystemGroth16, "proof system for proving (groth16 or plonk)")
}
