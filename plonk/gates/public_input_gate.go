package gates

import (
	"regexp"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
)

var publicInputGateRegex = regexp.MustCompile("^PublicInputGate$")

func deserializePublicInputGate(parameters map[string]string) Gate {
	// Has the format "PublicInputGate"
	return NewPublicInputGate()
}

// Binds the first four wires of its row to the public inputs hash.
type PublicInputGate struct {
}

func NewPublicInputGate() *PublicInputGate {
	return &PublicInputGate{}
}

func (g *PublicInputGate) Id() string {
	return "PublicInputGate"
}

func (g *PublicInputGate) WiresPublicInputsHash() []uint64 {
	return []uint64{0, 1, 2, 3}
}

func (g *PublicInputGate) EvalUnfiltered(vars EvaluationVars) []gl.ExtensionElement {
	f := vars.Field()
	constraints := []gl.ExtensionElement{}
	for i, wire := range g.WiresPublicInputsHash() {
		constraints = append(constraints, f.Sub(vars.localWires[wire], f.FromBase(vars.publicInputsHash[i])))
	}
	return constraints
}

func (g *PublicInputGate) EvalUnfilteredBase(vars EvaluationVarsBase) []goldilocks.Element {
	constraints := []goldilocks.Element{}
	for i, wire := range g.WiresPublicInputsHash() {
		var diff goldilocks.Element
		diff.Sub(&vars.localWires[wire], &vars.publicInputsHash[i])
		constraints = append(constraints, diff)
	}
	return constraints
}

func (g *PublicInputGate) EvalUnfilteredCircuit(
	api frontend.API,
	glApi *gl.Chip,
	vars EvaluationTargets,
) []gl.QuadraticExtensionVariable {
	constraints := []gl.QuadraticExtensionVariable{}

	wires := g.WiresPublicInputsHash()
	hashParts := vars.publicInputsHash
	for i := 0; i < len(wires); i++ {
		wire := wires[i]
		hashPart := hashParts[i]

		tmp := gl.NewQuadraticExtensionVariable(hashPart, gl.Zero())
		diff := glApi.SubExtension(vars.localWires[wire], tmp)
		constraints = append(constraints, diff)
	}

	return constraints
}

// The hash wires are set by the caller.
func (g *PublicInputGate) Generators(uint64, []goldilocks.Element) []witness.WitnessGenerator {
	return nil
}

func (g *PublicInputGate) NumWires() uint64 {
	return 4
}

func (g *PublicInputGate) NumConstants() uint64 {
	return 0
}

func (g *PublicInputGate) Degree() uint64 {
	return 1
}

func (g *PublicInputGate) NumConstraints() uint64 {
	return 4
}
