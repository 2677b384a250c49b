package gates

import (
	"fmt"
	"regexp"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
)

var arithmeticGateRegex = regexp.MustCompile(`^ArithmeticGate \{ num_ops: (?P<numOps>[0-9]+) \}`)

func deserializeArithmeticGate(parameters map[string]string) Gate {
	// Has the format "ArithmeticGate { num_ops: 10 }"
	return NewArithmeticGate(uintParameter(parameters, "numOps", "ArithmeticGate"))
}

// Computes output = const0 * multiplicand0 * multiplicand1 + const1 * addend for numOps
// independent operations sharing the two row constants.
type ArithmeticGate struct {
	numOps uint64
}

func NewArithmeticGate(numOps uint64) *ArithmeticGate {
	return &ArithmeticGate{
		numOps: numOps,
	}
}

func (g *ArithmeticGate) Id() string {
	return fmt.Sprintf("ArithmeticGate { num_ops: %d }", g.numOps)
}

func (g *ArithmeticGate) WireIthMultiplicand0(i uint64) uint64 {
	return 4 * i
}

func (g *ArithmeticGate) WireIthMultiplicand1(i uint64) uint64 {
	return 4*i + 1
}

func (g *ArithmeticGate) WireIthAddend(i uint64) uint64 {
	return 4*i + 2
}

func (g *ArithmeticGate) WireIthOutput(i uint64) uint64 {
	return 4*i + 3
}

func (g *ArithmeticGate) EvalUnfiltered(vars EvaluationVars) []gl.ExtensionElement {
	f := vars.Field()
	const0 := vars.localConstants[0]
	const1 := vars.localConstants[1]

	constraints := make([]gl.ExtensionElement, 0, g.numOps)
	for i := uint64(0); i < g.numOps; i++ {
		multiplicand0 := vars.localWires[g.WireIthMultiplicand0(i)]
		multiplicand1 := vars.localWires[g.WireIthMultiplicand1(i)]
		addend := vars.localWires[g.WireIthAddend(i)]
		output := vars.localWires[g.WireIthOutput(i)]

		computedOutput := f.Add(
			f.Mul(f.Mul(multiplicand0, multiplicand1), const0),
			f.Mul(addend, const1),
		)
		constraints = append(constraints, f.Sub(output, computedOutput))
	}

	return constraints
}

func arithmeticOutput(const0, const1, multiplicand0, multiplicand1, addend goldilocks.Element) goldilocks.Element {
	var product, scaledAddend goldilocks.Element
	product.Mul(&multiplicand0, &multiplicand1).Mul(&product, &const0)
	scaledAddend.Mul(&addend, &const1)
	return *product.Add(&product, &scaledAddend)
}

func (g *ArithmeticGate) EvalUnfilteredBase(vars EvaluationVarsBase) []goldilocks.Element {
	const0 := vars.localConstants[0]
	const1 := vars.localConstants[1]

	constraints := make([]goldilocks.Element, g.numOps)
	for i := uint64(0); i < g.numOps; i++ {
		computedOutput := arithmeticOutput(
			const0,
			const1,
			vars.localWires[g.WireIthMultiplicand0(i)],
			vars.localWires[g.WireIthMultiplicand1(i)],
			vars.localWires[g.WireIthAddend(i)],
		)
		constraints[i].Sub(&vars.localWires[g.WireIthOutput(i)], &computedOutput)
	}

	return constraints
}

func (g *ArithmeticGate) EvalUnfilteredCircuit(
	api frontend.API,
	glApi *gl.Chip,
	vars EvaluationTargets,
) []gl.QuadraticExtensionVariable {
	const0 := vars.localConstants[0]
	const1 := vars.localConstants[1]

	constraints := []gl.QuadraticExtensionVariable{}
	for i := uint64(0); i < g.numOps; i++ {
		multiplicand0 := vars.localWires[g.WireIthMultiplicand0(i)]
		multiplicand1 := vars.localWires[g.WireIthMultiplicand1(i)]
		addend := vars.localWires[g.WireIthAddend(i)]
		output := vars.localWires[g.WireIthOutput(i)]

		computedOutput := glApi.AddExtension(
			glApi.MulExtension(glApi.MulExtension(multiplicand0, multiplicand1), const0),
			glApi.MulExtension(addend, const1),
		)

		constraints = append(constraints, glApi.SubExtension(output, computedOutput))
	}

	return constraints
}

func (g *ArithmeticGate) Generators(row uint64, localConstants []goldilocks.Element) []witness.WitnessGenerator {
	if len(localConstants) < 2 {
		panic(fmt.Sprintf("%s needs 2 constants, got %d", g.Id(), len(localConstants)))
	}
	generators := make([]witness.WitnessGenerator, 0, g.numOps)
	for i := uint64(0); i < g.numOps; i++ {
		generators = append(generators, &ArithmeticBaseGenerator{
			row:    row,
			gate:   g,
			const0: localConstants[0],
			const1: localConstants[1],
			i:      i,
		})
	}
	return generators
}

func (g *ArithmeticGate) NumWires() uint64 {
	return 4 * g.numOps
}

func (g *ArithmeticGate) NumConstants() uint64 {
	return 2
}

func (g *ArithmeticGate) Degree() uint64 {
	return 3
}

func (g *ArithmeticGate) NumConstraints() uint64 {
	return g.numOps
}

// Computes the output wire of operation i from its three inputs.
type ArithmeticBaseGenerator struct {
	row    uint64
	gate   *ArithmeticGate
	const0 goldilocks.Element
	const1 goldilocks.Element
	i      uint64
}

func (a *ArithmeticBaseGenerator) Id() string {
	return fmt.Sprintf("ArithmeticBaseGenerator { row: %d, i: %d }", a.row, a.i)
}

func (a *ArithmeticBaseGenerator) Dependencies() []witness.Wire {
	return []witness.Wire{
		witness.NewWire(a.row, a.gate.WireIthMultiplicand0(a.i)),
		witness.NewWire(a.row, a.gate.WireIthMultiplicand1(a.i)),
		witness.NewWire(a.row, a.gate.WireIthAddend(a.i)),
	}
}

func (a *ArithmeticBaseGenerator) RunOnce(pw *witness.PartialWitness) (*witness.GeneratedValues, error) {
	inputs := make([]goldilocks.Element, 0, 3)
	for _, w := range a.Dependencies() {
		v, err := pw.MustGetWire(w)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, v)
	}

	result := witness.NewGeneratedValues(1)
	result.SetWire(
		witness.NewWire(a.row, a.gate.WireIthOutput(a.i)),
		arithmeticOutput(a.const0, a.const1, inputs[0], inputs[1], inputs[2]),
	)
	return result, nil
}
