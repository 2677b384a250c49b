package gates

import (
	"context"
	"testing"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/stretchr/testify/require"
)

func randomElement(t *testing.T) goldilocks.Element {
	var x goldilocks.Element
	_, err := x.SetRandom()
	require.NoError(t, err)
	return x
}

func randomElements(t *testing.T, n uint64) []goldilocks.Element {
	res := make([]goldilocks.Element, n)
	for i := range res {
		res[i] = randomElement(t)
	}
	return res
}

func elements(values ...uint64) []goldilocks.Element {
	res := make([]goldilocks.Element, len(values))
	for i, v := range values {
		res[i] = goldilocks.NewElement(v)
	}
	return res
}

// Runs the generators of gate at row 0 on inputs and returns the row's wires.
func fillRow(t *testing.T, gate Gate, constants []goldilocks.Element, inputs *witness.PartialWitness) []goldilocks.Element {
	pw, err := witness.GeneratePartialWitness(context.Background(), inputs, gate.Generators(0, constants))
	require.NoError(t, err)

	wires := make([]goldilocks.Element, gate.NumWires())
	for i := range wires {
		v, err := pw.MustGetWire(witness.NewWire(0, uint64(i)))
		require.NoError(t, err)
		wires[i] = v
	}
	return wires
}

func isZero(values []goldilocks.Element) bool {
	for i := range values {
		if !values[i].IsZero() {
			return false
		}
	}
	return true
}

func isZeroExtension(f *gl.ExtensionField, values []gl.ExtensionElement) bool {
	for i := range values {
		if !f.IsZero(values[i]) {
			return false
		}
	}
	return true
}

// Evaluates gate on a base row in both native contexts and checks they agree.
func evalBoth(t *testing.T, gate Gate, d uint64, constants, wires []goldilocks.Element, hash HashOut) []goldilocks.Element {
	f := gl.ExtensionFieldOfDegree(d)
	vars := NewEvaluationVarsBase(constants, wires, hash)

	base := gate.EvalUnfilteredBase(*vars)
	require.Len(t, base, int(gate.NumConstraints()))

	ext := gate.EvalUnfiltered(*vars.ToExtension(f))
	require.Len(t, ext, int(gate.NumConstraints()))
	for i := range base {
		require.True(t, f.Equal(ext[i], f.FromBase(base[i])), "constraint %d", i)
	}
	return base
}
