package gates

import (
	"testing"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

// Three gates sharing one selector column; row constants are [selector, c0, c1].
func filteredFixture() ([]Gate, *SelectorsInfo, uint64) {
	gates := []Gate{
		NewArithmeticGate(1),
		NewConstantGate(2),
		NewRandomAccessGate(2, 2),
	}
	selectorsInfo := NewSelectorsInfo([]uint64{0, 0, 0}, []uint64{0}, []uint64{3})
	numGateConstraints := uint64(0)
	for _, g := range gates {
		if n := g.NumConstraints(); n > numGateConstraints {
			numGateConstraints = n
		}
	}
	return gates, selectorsInfo, numGateConstraints
}

func TestComputeFilter(t *testing.T) {
	group := NewRange(0, 3)

	// Vanishes on the rows of the other gates of the group.
	onOther := computeFilterBase(0, group, goldilocks.NewElement(1), false)
	require.True(t, onOther.IsZero())
	onOther = computeFilterBase(0, group, goldilocks.NewElement(2), false)
	require.True(t, onOther.IsZero())
	onOwn := computeFilterBase(0, group, goldilocks.NewElement(0), false)
	require.Equal(t, uint64(2), onOwn.Uint64())

	unused := goldilocks.NewElement(UNUSED_SELECTOR)
	onUnused := computeFilterBase(1, group, unused, true)
	require.True(t, onUnused.IsZero())
	onOwn = computeFilterBase(1, group, goldilocks.NewElement(1), true)
	require.False(t, onOwn.IsZero())

	f := gl.ExtensionFieldOfDegree(2)
	s := goldilocks.NewElement(2)
	expected := computeFilterBase(2, group, s, true)
	require.True(t, f.Equal(computeFilter(f, 2, group, f.FromBase(s), true), f.FromBase(expected)))
}

func randomAccessRow(t *testing.T, g *RandomAccessGate) ([]goldilocks.Element, [][]goldilocks.Element) {
	list := [][]goldilocks.Element{randomElements(t, 2), randomElements(t, 2)}
	return fillRow(t, g, nil, randomAccessInputs(g, list, 1, list[1])), list
}

func TestEvaluateGateConstraints(t *testing.T) {
	gates, selectorsInfo, numGateConstraints := filteredFixture()
	g := gates[2].(*RandomAccessGate)
	wires, list := randomAccessRow(t, g)

	// The arithmetic and constant gates read garbage from this row, their filters cancel it.
	constants := append([]goldilocks.Element{goldilocks.NewElement(2)}, randomElements(t, 2)...)
	vars := NewEvaluationVarsBase(constants, wires, HashOut{})
	f := gl.ExtensionFieldOfDegree(2)

	base := EvaluateGateConstraintsBase(gates, numGateConstraints, selectorsInfo, *vars)
	require.Len(t, base, int(numGateConstraints))
	require.True(t, isZero(base))
	ext := EvaluateGateConstraints(gates, numGateConstraints, selectorsInfo, *vars.ToExtension(f))
	require.True(t, isZeroExtension(f, ext))

	require.Equal(t, uint64(0), selectorsInfo.SelectorIndex(2))

	// The selector prefix is only removed from the copies handed to the gates.
	require.Len(t, vars.localConstants, 3)

	wires[g.WiresElementToCompare().Start()] = list[0][0]
	vars = NewEvaluationVarsBase(constants, wires, HashOut{})
	require.False(t, isZero(EvaluateGateConstraintsBase(gates, numGateConstraints, selectorsInfo, *vars)))
	require.False(t, isZeroExtension(f, EvaluateGateConstraints(gates, numGateConstraints, selectorsInfo, *vars.ToExtension(f))))

	require.Panics(t, func() { EvaluateGateConstraintsBase(gates, 1, selectorsInfo, *vars) })
}

type evaluateGatesCircuit struct {
	Constants []gl.Variable
	Wires     []gl.Variable

	Gates              []Gate        `gnark:"-"`
	SelectorsInfo      SelectorsInfo `gnark:"-"`
	NumGateConstraints uint64        `gnark:"-"`
}

func (c *evaluateGatesCircuit) Define(api frontend.API) error {
	glApi := gl.New(api)
	embed := func(values []gl.Variable) []gl.QuadraticExtensionVariable {
		res := make([]gl.QuadraticExtensionVariable, len(values))
		for i := range values {
			res[i] = values[i].ToQuadraticExtension()
		}
		return res
	}
	vars := NewEvaluationTargets(embed(c.Constants), embed(c.Wires), HashOutTarget{gl.Zero(), gl.Zero(), gl.Zero(), gl.Zero()})

	chip := NewEvaluateGatesChip(api, c.Gates, c.NumGateConstraints, c.SelectorsInfo)
	for _, constraint := range chip.EvaluateGateConstraints(*vars) {
		glApi.AssertIsZeroExtension(constraint)
	}
	return nil
}

func TestEvaluateGatesCircuit(t *testing.T) {
	assert := test.NewAssert(t)
	gates, selectorsInfo, numGateConstraints := filteredFixture()
	wires, list := randomAccessRow(t, gates[2].(*RandomAccessGate))
	constants := append([]goldilocks.Element{goldilocks.NewElement(2)}, randomElements(t, 2)...)

	newCircuit := func(wires []goldilocks.Element) *evaluateGatesCircuit {
		return &evaluateGatesCircuit{
			Constants:          gl.ElementsToVariableArray(constants),
			Wires:              gl.ElementsToVariableArray(wires),
			Gates:              gates,
			SelectorsInfo:      *selectorsInfo,
			NumGateConstraints: numGateConstraints,
		}
	}
	err := test.IsSolved(newCircuit(wires), newCircuit(wires), ecc.BN254.ScalarField())
	assert.NoError(err)

	bad := append([]goldilocks.Element{}, wires...)
	bad[1] = list[0][0]
	err = test.IsSolved(newCircuit(wires), newCircuit(bad), ecc.BN254.ScalarField())
	assert.Error(err)
}
