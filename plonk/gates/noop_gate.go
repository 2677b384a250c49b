package gates

import (
	"regexp"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
)

var noopGateRegex = regexp.MustCompile("^NoopGate$")

func deserializeNoopGate(parameters map[string]string) Gate {
	// Has the format "NoopGate"
	return NewNoopGate()
}

// A gate with no constraints, used to pad rows.
type NoopGate struct {
}

func NewNoopGate() *NoopGate {
	return &NoopGate{}
}

func (g *NoopGate) Id() string {
	return "NoopGate"
}

func (g *NoopGate) EvalUnfiltered(vars EvaluationVars) []gl.ExtensionElement {
	return []gl.ExtensionElement{}
}

func (g *NoopGate) EvalUnfilteredBase(vars EvaluationVarsBase) []goldilocks.Element {
	return []goldilocks.Element{}
}

func (g *NoopGate) EvalUnfilteredCircuit(
	api frontend.API,
	glApi *gl.Chip,
	vars EvaluationTargets,
) []gl.QuadraticExtensionVariable {
	return []gl.QuadraticExtensionVariable{}
}

func (g *NoopGate) Generators(uint64, []goldilocks.Element) []witness.WitnessGenerator {
	return nil
}

func (g *NoopGate) NumWires() uint64 {
	return 0
}

func (g *NoopGate) NumConstants() uint64 {
	return 0
}

func (g *NoopGate) Degree() uint64 {
	return 0
}

func (g *NoopGate) NumConstraints() uint64 {
	return 0
}
