package gates

import (
	"errors"
	"fmt"
	"regexp"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
)

var randomAccessGateRegex = regexp.MustCompile(`^RandomAccessGate \{ vec_size: (?P<vecSize>[0-9]+)(, _phantom: PhantomData(<[^>]*>)?)? \}<D=(?P<base>[0-9]+)>`)

func deserializeRandomAccessGate(parameters map[string]string) Gate {
	// Has the format "RandomAccessGate { vec_size: 4, _phantom: PhantomData<plonky2_field::goldilocks_field::GoldilocksField> }<D=2>"
	vecSize := uintParameter(parameters, "vecSize", "RandomAccessGate")
	base := uintParameter(parameters, "base", "RandomAccessGate")
	return NewRandomAccessGate(vecSize, base)
}

var ErrAccessIndexOutOfRange = errors.New("access index out of range")

// RandomAccessGate checks that list[access_index] == element_to_compare for a list of vecSize
// extension elements, using only degree 2 constraints.
//
// For each index i it witnesses index_matches_i (1 at the access index, 0 elsewhere) and an
// equality dummy, the inverse of i - access_index away from the access index.
//
// The constraints do not bound access_index. With an index outside [0, vecSize) every
// index_matches_i = 0 satisfies them and element_to_compare is left free, so callers must
// range check the index separately. The generator refuses such an index.
type RandomAccessGate struct {
	vecSize uint64
	d       uint64
	field   *gl.ExtensionField
}

func NewRandomAccessGate(vecSize uint64, d uint64) *RandomAccessGate {
	if vecSize == 0 {
		panic("RandomAccessGate requires vec_size >= 1")
	}
	return &RandomAccessGate{
		vecSize: vecSize,
		d:       d,
		field:   gl.ExtensionFieldOfDegree(d),
	}
}

const goldilocksPhantom = "PhantomData<plonky2_field::goldilocks_field::GoldilocksField>"

// Matches plonky2's derived Debug output, so ids round trip through its circuit data.
func (g *RandomAccessGate) Id() string {
	return fmt.Sprintf("RandomAccessGate { vec_size: %d, _phantom: %s }<D=%d>", g.vecSize, goldilocksPhantom, g.d)
}

func (g *RandomAccessGate) VecSize() uint64 {
	return g.vecSize
}

// The extension degree the gate's list items and compared element live in.
func (g *RandomAccessGate) D() uint64 {
	return g.d
}

func (g *RandomAccessGate) WireAccessIndex() uint64 {
	return 0
}

func (g *RandomAccessGate) WiresElementToCompare() Range {
	return Range{1, g.d + 1}
}

func (g *RandomAccessGate) WiresListItem(i uint64) Range {
	if i >= g.vecSize {
		panic("RandomAccessGate.WiresListItem called with i >= vec_size")
	}
	start := (i+1)*g.d + 1
	return Range{start, start + g.d}
}

func (g *RandomAccessGate) startOfIntermediateWires() uint64 {
	return (g.vecSize+1)*g.d + 1
}

// 1/(i - access_index) when i != access_index, 1 otherwise.
func (g *RandomAccessGate) WireEqualityDummyForIndex(i uint64) uint64 {
	if i >= g.vecSize {
		panic("RandomAccessGate.WireEqualityDummyForIndex called with i >= vec_size")
	}
	return g.startOfIntermediateWires() + i
}

// 1 if i == access_index, 0 otherwise.
func (g *RandomAccessGate) WireIndexMatchesForIndex(i uint64) uint64 {
	if i >= g.vecSize {
		panic("RandomAccessGate.WireIndexMatchesForIndex called with i >= vec_size")
	}
	return g.startOfIntermediateWires() + g.vecSize + i
}

func (g *RandomAccessGate) EvalUnfiltered(vars EvaluationVars) []gl.ExtensionElement {
	f := vars.Field()
	checkFieldDegree(g.Id(), g.d, f)

	accessIndex := vars.localWires[g.WireAccessIndex()]
	elementToCompare := vars.GetLocalExtAlgebra(g.WiresElementToCompare())
	one := f.One()

	constraints := make([]gl.ExtensionElement, 0, g.NumConstraints())
	for i := uint64(0); i < g.vecSize; i++ {
		listItem := vars.GetLocalExtAlgebra(g.WiresListItem(i))
		difference := f.Sub(f.FromCanonicalUint64(i), accessIndex)
		equalityDummy := vars.localWires[g.WireEqualityDummyForIndex(i)]
		indexMatches := vars.localWires[g.WireIndexMatchesForIndex(i)]

		// The two index equality constraints.
		constraints = append(constraints, f.Sub(f.Mul(difference, equalityDummy), f.Sub(one, indexMatches)))
		constraints = append(constraints, f.Mul(indexMatches, difference))

		// Value equality constraint.
		conditionalDiff := f.ScalarMulAlgebra(indexMatches, f.SubAlgebra(listItem, elementToCompare))
		constraints = append(constraints, conditionalDiff...)
	}

	return constraints
}

func (g *RandomAccessGate) EvalUnfilteredBase(vars EvaluationVarsBase) []goldilocks.Element {
	f := g.field

	accessIndex := vars.localWires[g.WireAccessIndex()]
	elementToCompare := vars.GetLocalExt(f, g.WiresElementToCompare())
	var one goldilocks.Element
	one.SetOne()

	constraints := make([]goldilocks.Element, 0, g.NumConstraints())
	for i := uint64(0); i < g.vecSize; i++ {
		listItem := vars.GetLocalExt(f, g.WiresListItem(i))
		curIndex := goldilocks.NewElement(i)
		equalityDummy := vars.localWires[g.WireEqualityDummyForIndex(i)]
		indexMatches := vars.localWires[g.WireIndexMatchesForIndex(i)]

		var difference, notIndexMatches, c goldilocks.Element
		difference.Sub(&curIndex, &accessIndex)
		notIndexMatches.Sub(&one, &indexMatches)

		c.Mul(&difference, &equalityDummy).Sub(&c, &notIndexMatches)
		constraints = append(constraints, c)
		c.Mul(&indexMatches, &difference)
		constraints = append(constraints, c)

		conditionalDiff := f.ScalarMul(f.Sub(listItem, elementToCompare), indexMatches)
		constraints = append(constraints, conditionalDiff...)
	}

	return constraints
}

func (g *RandomAccessGate) EvalUnfilteredCircuit(
	api frontend.API,
	glApi *gl.Chip,
	vars EvaluationTargets,
) []gl.QuadraticExtensionVariable {
	if g.d != gl.D {
		panic("Expected base field in RandomAccessGate to equal gl.D")
	}

	accessIndex := vars.localWires[g.WireAccessIndex()]
	elementToCompare := vars.GetLocalExtAlgebra(g.WiresElementToCompare())

	constraints := []gl.QuadraticExtensionVariable{}
	for i := uint64(0); i < g.vecSize; i++ {
		listItem := vars.GetLocalExtAlgebra(g.WiresListItem(i))
		curIndex := gl.ConstantExtensionFromUint64(i)

		difference := glApi.SubExtension(curIndex, accessIndex)
		equalityDummy := vars.localWires[g.WireEqualityDummyForIndex(i)]
		indexMatches := vars.localWires[g.WireIndexMatchesForIndex(i)]

		// The two index equality constraints.
		prod := glApi.MulExtension(difference, equalityDummy)
		notIndexMatches := glApi.SubExtension(gl.OneExtension(), indexMatches)
		constraints = append(constraints, glApi.SubExtension(prod, notIndexMatches))
		constraints = append(constraints, glApi.MulExtension(indexMatches, difference))

		// Value equality constraint.
		diff := glApi.SubExtensionAlgebra(listItem, elementToCompare)
		conditionalDiff := glApi.ScalarMulExtensionAlgebra(indexMatches, diff)
		for j := 0; j < gl.D; j++ {
			constraints = append(constraints, conditionalDiff[j])
		}
	}

	return constraints
}

func (g *RandomAccessGate) Generators(row uint64, _ []goldilocks.Element) []witness.WitnessGenerator {
	return []witness.WitnessGenerator{&RandomAccessGenerator{row: row, gate: g}}
}

func (g *RandomAccessGate) NumWires() uint64 {
	return g.WireIndexMatchesForIndex(g.vecSize-1) + 1
}

func (g *RandomAccessGate) NumConstants() uint64 {
	return 0
}

func (g *RandomAccessGate) Degree() uint64 {
	return 2
}

func (g *RandomAccessGate) NumConstraints() uint64 {
	return g.vecSize * (2 + g.d)
}

// RandomAccessGenerator fills the equality dummy and index matches wires of one
// RandomAccessGate row from its access index.
type RandomAccessGenerator struct {
	row  uint64
	gate *RandomAccessGate
}

func (r *RandomAccessGenerator) Id() string {
	return fmt.Sprintf("RandomAccessGenerator { row: %d, gate: %s }", r.row, r.gate.Id())
}

func (r *RandomAccessGenerator) localWires(wireRange Range) []witness.Wire {
	return witness.RowWires(r.row, wireRange.start, wireRange.end)
}

func (r *RandomAccessGenerator) Dependencies() []witness.Wire {
	deps := []witness.Wire{witness.NewWire(r.row, r.gate.WireAccessIndex())}
	deps = append(deps, r.localWires(r.gate.WiresElementToCompare())...)
	for i := uint64(0); i < r.gate.vecSize; i++ {
		deps = append(deps, r.localWires(r.gate.WiresListItem(i))...)
	}
	return deps
}

func (r *RandomAccessGenerator) RunOnce(pw *witness.PartialWitness) (*witness.GeneratedValues, error) {
	accessIndexF, err := pw.MustGetWire(witness.NewWire(r.row, r.gate.WireAccessIndex()))
	if err != nil {
		return nil, err
	}

	vecSize := r.gate.vecSize
	accessIndex := accessIndexF.Uint64()
	if accessIndex >= vecSize {
		return nil, fmt.Errorf(
			"%w: access index %d is larger than the vector size %d",
			ErrAccessIndexOutOfRange,
			accessIndex,
			vecSize,
		)
	}

	result := witness.NewGeneratedValues(int(2 * vecSize))
	var one, zero goldilocks.Element
	one.SetOne()
	for i := uint64(0); i < vecSize; i++ {
		equalityDummyWire := witness.NewWire(r.row, r.gate.WireEqualityDummyForIndex(i))
		indexMatchesWire := witness.NewWire(r.row, r.gate.WireIndexMatchesForIndex(i))
		if i == accessIndex {
			result.SetWire(equalityDummyWire, one)
			result.SetWire(indexMatchesWire, one)
			continue
		}

		var difference goldilocks.Element
		curIndex := goldilocks.NewElement(i)
		difference.Sub(&curIndex, &accessIndexF)
		difference.Inverse(&difference)
		result.SetWire(equalityDummyWire, difference)
		result.SetWire(indexMatchesWire, zero)
	}

	return result, nil
}
