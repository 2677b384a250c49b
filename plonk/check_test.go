package plonk

import (
	"context"
	"errors"
	"testing"

	"github.com/ZpokenWeb3/plonky2-gates/plonk/gates"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/stretchr/testify/require"
)

func elements(values ...uint64) []goldilocks.Element {
	res := make([]goldilocks.Element, len(values))
	for i, v := range values {
		res[i] = goldilocks.NewElement(v)
	}
	return res
}

var testHash = gates.HashOut{
	goldilocks.NewElement(11),
	goldilocks.NewElement(12),
	goldilocks.NewElement(13),
	goldilocks.NewElement(14),
}

// A five row circuit: constants, one arithmetic op, a lookup of list[accessIndex] in a
// three element list of quadratic extension elements, the public inputs hash and padding.
func testCircuit(t *testing.T, accessIndex uint64) (*Circuit, *witness.PartialWitness) {
	c := NewCircuit()
	require.Equal(t, uint64(0), c.AddGate(gates.NewConstantGate(2), elements(3, 4)))
	require.Equal(t, uint64(1), c.AddGate(gates.NewArithmeticGate(1), elements(1, 1)))
	randomAccess := gates.NewRandomAccessGate(3, 2)
	require.Equal(t, uint64(2), c.AddGate(randomAccess, nil))
	require.Equal(t, uint64(3), c.AddGate(gates.NewPublicInputGate(), nil))
	require.Equal(t, uint64(4), c.AddGate(gates.NewNoopGate(), nil))

	inputs := witness.NewPartialWitness()
	set := func(row, column, value uint64) {
		require.NoError(t, inputs.SetWire(witness.NewWire(row, column), goldilocks.NewElement(value)))
	}
	set(1, 0, 5)
	set(1, 1, 6)
	set(1, 2, 7)

	list := [][]uint64{{100, 101}, {200, 201}, {300, 301}}
	set(2, randomAccess.WireAccessIndex(), accessIndex)
	for i, item := range list {
		for j, v := range item {
			set(2, randomAccess.WiresListItem(uint64(i)).Start()+uint64(j), v)
		}
	}
	claimed := []uint64{0, 0}
	if accessIndex < 3 {
		claimed = list[accessIndex]
	}
	for j, v := range claimed {
		set(2, randomAccess.WiresElementToCompare().Start()+uint64(j), v)
	}

	for i := range testHash {
		require.NoError(t, inputs.SetWire(witness.NewWire(3, uint64(i)), testHash[i]))
	}
	return c, inputs
}

// Copies every wire of pw into a fresh witness, replacing or dropping the given wires.
func rebuild(t *testing.T, c *Circuit, pw *witness.PartialWitness, override map[witness.Wire]uint64, omit *witness.Wire) *witness.PartialWitness {
	res := witness.NewPartialWitness()
	for i, row := range c.Rows() {
		for column := uint64(0); column < row.Gate.NumWires(); column++ {
			w := witness.NewWire(uint64(i), column)
			if omit != nil && *omit == w {
				continue
			}
			v, err := pw.MustGetWire(w)
			require.NoError(t, err)
			if o, ok := override[w]; ok {
				v = goldilocks.NewElement(o)
			}
			require.NoError(t, res.SetWire(w, v))
		}
	}
	return res
}

func TestCircuitLayout(t *testing.T) {
	c, _ := testCircuit(t, 1)
	require.Equal(t, uint64(5), c.NumRows())
	require.Equal(t, gates.NewRandomAccessGate(3, 2).NumWires(), c.NumWires())
	// 1 constant, 1 arithmetic and 1 random access generator.
	require.Len(t, c.Generators(), 3)

	require.Panics(t, func() { c.AddGate(gates.NewArithmeticGate(1), elements(1)) })
}

func TestGenerateWitnessAndCheckTrace(t *testing.T) {
	for accessIndex := uint64(0); accessIndex < 3; accessIndex++ {
		c, inputs := testCircuit(t, accessIndex)
		pw, err := GenerateWitness(context.Background(), c, inputs, witness.WithConcurrency(2))
		require.NoError(t, err)

		v, ok := pw.GetWire(witness.NewWire(0, 1))
		require.True(t, ok)
		require.Equal(t, uint64(4), v.Uint64())
		v, ok = pw.GetWire(witness.NewWire(1, 3))
		require.True(t, ok)
		require.Equal(t, uint64(5*6+7), v.Uint64())

		require.NoError(t, CheckTrace(c, pw, testHash))
		require.NoError(t, CheckTraceExtension(c, pw, testHash, 2))
	}
}

func TestCheckTraceReportsConstraint(t *testing.T) {
	c, inputs := testCircuit(t, 1)
	pw, err := GenerateWitness(context.Background(), c, inputs)
	require.NoError(t, err)

	bad := rebuild(t, c, pw, map[witness.Wire]uint64{witness.NewWire(1, 3): 38}, nil)
	err = CheckTrace(c, bad, testHash)
	require.ErrorIs(t, err, ErrConstraintNotSatisfied)
	var constraintErr *ConstraintError
	require.True(t, errors.As(err, &constraintErr))
	require.Equal(t, uint64(1), constraintErr.Row)
	require.Equal(t, 0, constraintErr.Index)
	require.Equal(t, "ArithmeticGate { num_ops: 1 }", constraintErr.GateId)

	err = CheckTraceExtension(c, bad, testHash, 2)
	require.True(t, errors.As(err, &constraintErr))
	require.Equal(t, uint64(1), constraintErr.Row)

	otherHash := testHash
	otherHash[2] = goldilocks.NewElement(99)
	err = CheckTrace(c, pw, otherHash)
	require.True(t, errors.As(err, &constraintErr))
	require.Equal(t, uint64(3), constraintErr.Row)
	require.Equal(t, 2, constraintErr.Index)
}

func TestCheckTraceMissingWire(t *testing.T) {
	c, inputs := testCircuit(t, 1)
	pw, err := GenerateWitness(context.Background(), c, inputs)
	require.NoError(t, err)

	omit := witness.NewWire(2, 0)
	err = CheckTrace(c, rebuild(t, c, pw, nil, &omit), testHash)
	require.ErrorIs(t, err, ErrMissingWire)
}

func TestGenerateWitnessOutOfRange(t *testing.T) {
	c, inputs := testCircuit(t, 3)
	_, err := GenerateWitness(context.Background(), c, inputs)
	require.ErrorIs(t, err, gates.ErrAccessIndexOutOfRange)
}
