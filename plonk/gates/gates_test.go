package gates

import (
	"testing"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

func TestGateInstanceFromId(t *testing.T) {
	testCases := []struct {
		id             string
		numWires       uint64
		numConstants   uint64
		degree         uint64
		numConstraints uint64
	}{
		{"NoopGate", 0, 0, 0, 0},
		{"ConstantGate { num_consts: 2 }", 2, 2, 1, 2},
		{"ArithmeticGate { num_ops: 20 }", 80, 2, 3, 20},
		{"PublicInputGate", 4, 0, 1, 4},
		{"RandomAccessGate { vec_size: 4, _phantom: PhantomData<plonky2_field::goldilocks_field::GoldilocksField> }<D=2>", 19, 0, 2, 16},
	}
	for _, tc := range testCases {
		gate := GateInstanceFromId(tc.id)
		require.Equal(t, tc.id, gate.Id())
		require.Equal(t, tc.numWires, gate.NumWires(), tc.id)
		require.Equal(t, tc.numConstants, gate.NumConstants(), tc.id)
		require.Equal(t, tc.degree, gate.Degree(), tc.id)
		require.Equal(t, tc.numConstraints, gate.NumConstraints(), tc.id)
	}

	require.Panics(t, func() { GateInstanceFromId("PoseidonGate(PhantomData<plonky2_field::goldilocks_field::GoldilocksField>)<WIDTH=12>") })
	_, err := ParseGateId("RandomAccessGate { vec_size: 4 }<D=3>")
	require.Error(t, err)
	_, err = ParseGateId("NoopGateX")
	require.Error(t, err)
	gate, err := ParseGateId("NoopGate")
	require.NoError(t, err)
	require.IsType(t, &NoopGate{}, gate)
}

func TestArithmeticGate(t *testing.T) {
	g := NewArithmeticGate(2)
	constants := elements(3, 5)

	inputs := witness.NewPartialWitness()
	for column, v := range map[uint64]uint64{0: 2, 1: 7, 2: 11, 4: 1, 5: 1, 6: 1} {
		require.NoError(t, inputs.SetWire(witness.NewWire(0, column), goldilocks.NewElement(v)))
	}
	wires := fillRow(t, g, constants, inputs)
	require.Equal(t, uint64(3*2*7+5*11), wires[g.WireIthOutput(0)].Uint64())
	require.Equal(t, uint64(3+5), wires[g.WireIthOutput(1)].Uint64())
	require.True(t, isZero(evalBoth(t, g, 2, constants, wires, HashOut{})))

	wires[g.WireIthOutput(1)] = goldilocks.NewElement(9)
	constraints := evalBoth(t, g, 2, constants, wires, HashOut{})
	require.True(t, constraints[0].IsZero())
	require.False(t, constraints[1].IsZero())

	require.Len(t, g.Generators(0, constants), 2)
	require.Panics(t, func() { g.Generators(0, elements(3)) })
}

func TestConstantGate(t *testing.T) {
	g := NewConstantGate(3)
	constants := elements(7, 8, 9)

	wires := fillRow(t, g, constants, witness.NewPartialWitness())
	require.Equal(t, constants, wires)
	require.True(t, isZero(evalBoth(t, g, 4, constants, wires, HashOut{})))

	wires[2] = goldilocks.NewElement(10)
	constraints := evalBoth(t, g, 4, constants, wires, HashOut{})
	require.Equal(t, []bool{true, true, false}, []bool{constraints[0].IsZero(), constraints[1].IsZero(), constraints[2].IsZero()})
}

func TestPublicInputGate(t *testing.T) {
	g := NewPublicInputGate()
	hash := HashOut{}
	copy(hash[:], randomElements(t, 4))

	wires := append([]goldilocks.Element{}, hash[:]...)
	require.True(t, isZero(evalBoth(t, g, 2, nil, wires, hash)))
	require.Empty(t, g.Generators(0, nil))

	wires[3] = randomElement(t)
	constraints := evalBoth(t, g, 2, nil, wires, hash)
	require.False(t, constraints[3].IsZero())
}

func TestNoopGate(t *testing.T) {
	g := NewNoopGate()
	require.Empty(t, evalBoth(t, g, 5, nil, nil, HashOut{}))
	require.Empty(t, g.Generators(0, nil))
}

type TestGateCircuit struct {
	Constants        []gl.Variable
	Wires            []gl.Variable
	PublicInputsHash [4]gl.Variable
	Expected         []gl.QuadraticExtensionVariable

	Gate Gate `gnark:"-"`
}

func (c *TestGateCircuit) Define(api frontend.API) error {
	glApi := gl.New(api)
	embed := func(values []gl.Variable) []gl.QuadraticExtensionVariable {
		res := make([]gl.QuadraticExtensionVariable, len(values))
		for i := range values {
			res[i] = values[i].ToQuadraticExtension()
		}
		return res
	}
	vars := NewEvaluationTargets(embed(c.Constants), embed(c.Wires), HashOutTarget(c.PublicInputsHash))

	constraints := c.Gate.EvalUnfilteredCircuit(api, glApi, *vars)
	if len(constraints) != len(c.Expected) {
		panic("unexpected number of constraints")
	}
	for i := range constraints {
		glApi.AssertIsEqualExtension(constraints[i], c.Expected[i])
	}
	return nil
}

func TestGatesCircuitMatchesNative(t *testing.T) {
	assert := test.NewAssert(t)
	gates := []Gate{
		NewNoopGate(),
		NewConstantGate(2),
		NewArithmeticGate(3),
		NewPublicInputGate(),
		NewRandomAccessGate(2, gl.D),
	}
	for _, g := range gates {
		constants := randomElements(t, g.NumConstants())
		wires := randomElements(t, g.NumWires())
		var hash HashOut
		copy(hash[:], randomElements(t, 4))
		expected := evalBoth(t, g, gl.D, constants, wires, hash)

		newCircuit := func() *TestGateCircuit {
			c := &TestGateCircuit{
				Constants: gl.ElementsToVariableArray(constants),
				Wires:     gl.ElementsToVariableArray(wires),
				Expected:  gl.ElementsToQuadraticExtensionArray(expected),
				Gate:      g,
			}
			copy(c.PublicInputsHash[:], gl.ElementsToVariableArray(hash[:]))
			return c
		}
		err := test.IsSolved(newCircuit(), newCircuit(), ecc.BN254.ScalarField())
		assert.NoError(err, g.Id())
	}
}
