package gates

import (
	"fmt"
	"regexp"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
)

var constantGateRegex = regexp.MustCompile(`^ConstantGate \{ num_consts: (?P<numConsts>[0-9]+) \}`)

func deserializeConstantGate(parameters map[string]string) Gate {
	// Has the format "ConstantGate { num_consts: 2 }"
	return NewConstantGate(uintParameter(parameters, "numConsts", "ConstantGate"))
}

// Copies its numConsts row constants onto the first numConsts wires.
type ConstantGate struct {
	numConsts uint64
}

func NewConstantGate(numConsts uint64) *ConstantGate {
	return &ConstantGate{
		numConsts: numConsts,
	}
}

func (g *ConstantGate) Id() string {
	return fmt.Sprintf("ConstantGate { num_consts: %d }", g.numConsts)
}

func (g *ConstantGate) ConstInput(i uint64) uint64 {
	if i >= g.numConsts {
		panic("Invalid constant index")
	}
	return i
}

func (g *ConstantGate) WireOutput(i uint64) uint64 {
	if i >= g.numConsts {
		panic("Invalid wire index")
	}
	return i
}

func (g *ConstantGate) EvalUnfiltered(vars EvaluationVars) []gl.ExtensionElement {
	f := vars.Field()
	constraints := make([]gl.ExtensionElement, 0, g.numConsts)
	for i := uint64(0); i < g.numConsts; i++ {
		constraints = append(constraints, f.Sub(vars.localConstants[g.ConstInput(i)], vars.localWires[g.WireOutput(i)]))
	}
	return constraints
}

func (g *ConstantGate) EvalUnfilteredBase(vars EvaluationVarsBase) []goldilocks.Element {
	constraints := make([]goldilocks.Element, g.numConsts)
	for i := uint64(0); i < g.numConsts; i++ {
		constraints[i].Sub(&vars.localConstants[g.ConstInput(i)], &vars.localWires[g.WireOutput(i)])
	}
	return constraints
}

func (g *ConstantGate) EvalUnfilteredCircuit(
	api frontend.API,
	glApi *gl.Chip,
	vars EvaluationTargets,
) []gl.QuadraticExtensionVariable {
	constraints := []gl.QuadraticExtensionVariable{}

	for i := uint64(0); i < g.numConsts; i++ {
		constraints = append(constraints, glApi.SubExtension(vars.localConstants[g.ConstInput(i)], vars.localWires[g.WireOutput(i)]))
	}

	return constraints
}

func (g *ConstantGate) Generators(row uint64, localConstants []goldilocks.Element) []witness.WitnessGenerator {
	if uint64(len(localConstants)) < g.numConsts {
		panic(fmt.Sprintf("%s needs %d constants, got %d", g.Id(), g.numConsts, len(localConstants)))
	}
	constants := make([]goldilocks.Element, g.numConsts)
	copy(constants, localConstants)
	return []witness.WitnessGenerator{&ConstantGenerator{row: row, gate: g, constants: constants}}
}

func (g *ConstantGate) NumWires() uint64 {
	return g.numConsts
}

func (g *ConstantGate) NumConstants() uint64 {
	return g.numConsts
}

func (g *ConstantGate) Degree() uint64 {
	return 1
}

func (g *ConstantGate) NumConstraints() uint64 {
	return g.numConsts
}

type ConstantGenerator struct {
	row       uint64
	gate      *ConstantGate
	constants []goldilocks.Element
}

func (c *ConstantGenerator) Id() string {
	return fmt.Sprintf("ConstantGenerator { row: %d, gate: %s }", c.row, c.gate.Id())
}

func (c *ConstantGenerator) Dependencies() []witness.Wire {
	return nil
}

func (c *ConstantGenerator) RunOnce(*witness.PartialWitness) (*witness.GeneratedValues, error) {
	result := witness.NewGeneratedValues(len(c.constants))
	for i := range c.constants {
		result.SetWire(witness.NewWire(c.row, c.gate.WireOutput(uint64(i))), c.constants[i])
	}
	return result, nil
}
