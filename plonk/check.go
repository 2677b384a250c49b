package plonk

import (
	"errors"
	"fmt"
	"strings"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/ZpokenWeb3/plonky2-gates/plonk/gates"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/logger"
)

var (
	ErrMissingWire            = errors.New("missing wire")
	ErrConstraintNotSatisfied = errors.New("constraint not satisfied")
)

// Reports the first non-zero constraint found in a trace.
type ConstraintError struct {
	Row    uint64
	GateId string
	Index  int
	Value  gl.ExtensionElement
}

func (e *ConstraintError) Error() string {
	coeffs := make([]string, len(e.Value))
	for i := range e.Value {
		coeffs[i] = e.Value[i].String()
	}
	return fmt.Sprintf(
		"%s: row %d (%s) constraint %d evaluates to [%s]",
		ErrConstraintNotSatisfied,
		e.Row,
		e.GateId,
		e.Index,
		strings.Join(coeffs, ", "),
	)
}

func (e *ConstraintError) Unwrap() error {
	return ErrConstraintNotSatisfied
}

func rowWireValues(pw *witness.PartialWitness, row uint64, numWires uint64) ([]goldilocks.Element, error) {
	values := make([]goldilocks.Element, numWires)
	for column := uint64(0); column < numWires; column++ {
		v, ok := pw.GetWire(witness.NewWire(row, column))
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingWire, witness.NewWire(row, column))
		}
		values[column] = v
	}
	return values, nil
}

// Evaluates every row's constraints on the base field trace values.
func CheckTrace(c *Circuit, pw *witness.PartialWitness, publicInputsHash gates.HashOut) error {
	log := logger.Logger()
	for i, row := range c.rows {
		wires, err := rowWireValues(pw, uint64(i), row.Gate.NumWires())
		if err != nil {
			return err
		}

		vars := gates.NewEvaluationVarsBase(row.Constants, wires, publicInputsHash)
		for j, constraint := range row.Gate.EvalUnfilteredBase(*vars) {
			if !constraint.IsZero() {
				return &ConstraintError{
					Row:    uint64(i),
					GateId: row.Gate.Id(),
					Index:  j,
					Value:  gl.ExtensionElement{constraint},
				}
			}
		}
	}
	log.Debug().Uint64("nbRows", c.NumRows()).Msg("trace satisfies every base constraint")
	return nil
}

// Like CheckTrace, but embeds each row into the degree d extension and evaluates it in the
// extension context.
func CheckTraceExtension(c *Circuit, pw *witness.PartialWitness, publicInputsHash gates.HashOut, d uint64) error {
	log := logger.Logger()
	field := gl.ExtensionFieldOfDegree(d)
	for i, row := range c.rows {
		wires, err := rowWireValues(pw, uint64(i), row.Gate.NumWires())
		if err != nil {
			return err
		}

		vars := gates.NewEvaluationVarsBase(row.Constants, wires, publicInputsHash).ToExtension(field)
		for j, constraint := range row.Gate.EvalUnfiltered(*vars) {
			if !field.IsZero(constraint) {
				return &ConstraintError{
					Row:    uint64(i),
					GateId: row.Gate.Id(),
					Index:  j,
					Value:  constraint,
				}
			}
		}
	}
	log.Debug().Uint64("nbRows", c.NumRows()).Uint64("D", d).Msg("trace satisfies every extension constraint")
	return nil
}
