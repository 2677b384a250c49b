package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "fills the witness of <dir>/circuit.json and checks every row's constraints",
	RunE:  check,
}

func check(cmd *cobra.Command, args []string) error {
	raw, err := readDescription()
	if err != nil {
		return err
	}
	trace, err := fillTrace(cmd.Context(), raw)
	if err != nil {
		return err
	}
	for i, row := range trace.circuit.Rows() {
		log.Info().
			Int("row", i).
			Str("gate", row.Gate.Id()).
			Uint64("nbWires", row.Gate.NumWires()).
			Uint64("nbConstraints", row.Gate.NumConstraints()).
			Msg("row")
	}
	if err := trace.check(); err != nil {
		return err
	}
	log.Info().Int("nbDerivedWires", len(trace.derivedWires())).Msg("Trace satisfies every constraint")
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
