package gates

import (
	"fmt"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// The public inputs hash as native base field elements.
type HashOut [4]goldilocks.Element

// The public inputs hash inside a circuit.
type HashOutTarget [4]gl.Variable

// Row values at an extension field point, e.g. the openings at the challenge zeta.
type EvaluationVars struct {
	field            *gl.ExtensionField
	localConstants   []gl.ExtensionElement
	localWires       []gl.ExtensionElement
	publicInputsHash HashOut
}

func NewEvaluationVars(
	field *gl.ExtensionField,
	localConstants []gl.ExtensionElement,
	localWires []gl.ExtensionElement,
	publicInputsHash HashOut,
) *EvaluationVars {
	return &EvaluationVars{
		field:            field,
		localConstants:   localConstants,
		localWires:       localWires,
		publicInputsHash: publicInputsHash,
	}
}

func (e *EvaluationVars) Field() *gl.ExtensionField {
	return e.field
}

func (e *EvaluationVars) RemovePrefix(numSelectors uint64) {
	e.localConstants = e.localConstants[numSelectors:]
}

func (e *EvaluationVars) GetLocalExtAlgebra(wireRange Range) gl.ExtensionAlgebraElement {
	if wireRange.Len() != e.field.D() {
		panic("Range must be of size D")
	}
	return e.field.FromExtensionArray(e.localWires[wireRange.start:wireRange.end])
}

// Row values in the base field, as found in the execution trace.
type EvaluationVarsBase struct {
	localConstants   []goldilocks.Element
	localWires       []goldilocks.Element
	publicInputsHash HashOut
}

func NewEvaluationVarsBase(
	localConstants []goldilocks.Element,
	localWires []goldilocks.Element,
	publicInputsHash HashOut,
) *EvaluationVarsBase {
	return &EvaluationVarsBase{
		localConstants:   localConstants,
		localWires:       localWires,
		publicInputsHash: publicInputsHash,
	}
}

func (e *EvaluationVarsBase) RemovePrefix(numSelectors uint64) {
	e.localConstants = e.localConstants[numSelectors:]
}

func (e *EvaluationVarsBase) GetLocalExt(field *gl.ExtensionField, wireRange Range) gl.ExtensionElement {
	if wireRange.Len() != field.D() {
		panic("Range must be of size D")
	}
	return field.FromBaseArray(e.localWires[wireRange.start:wireRange.end])
}

// Embeds the base row into the extension field, giving the extension context the same
// assignment.
func (e *EvaluationVarsBase) ToExtension(field *gl.ExtensionField) *EvaluationVars {
	embed := func(values []goldilocks.Element) []gl.ExtensionElement {
		res := make([]gl.ExtensionElement, len(values))
		for i := range values {
			res[i] = field.FromBase(values[i])
		}
		return res
	}
	return NewEvaluationVars(field, embed(e.localConstants), embed(e.localWires), e.publicInputsHash)
}

// Row values as circuit variables, used to verify a row inside another circuit.
type EvaluationTargets struct {
	localConstants   []gl.QuadraticExtensionVariable
	localWires       []gl.QuadraticExtensionVariable
	publicInputsHash HashOutTarget
}

func NewEvaluationTargets(
	localConstants []gl.QuadraticExtensionVariable,
	localWires []gl.QuadraticExtensionVariable,
	publicInputsHash HashOutTarget,
) *EvaluationTargets {
	return &EvaluationTargets{
		localConstants:   localConstants,
		localWires:       localWires,
		publicInputsHash: publicInputsHash,
	}
}

func (e *EvaluationTargets) RemovePrefix(numSelectors uint64) {
	e.localConstants = e.localConstants[numSelectors:]
}

func (e *EvaluationTargets) GetLocalExtAlgebra(wireRange Range) gl.QuadraticExtensionAlgebraVariable {
	// For now, only support degree 2
	if wireRange.Len() != gl.D {
		panic("Range must be of size D")
	}

	var ret gl.QuadraticExtensionAlgebraVariable
	for i := wireRange.start; i < wireRange.end; i++ {
		ret[i-wireRange.start] = e.localWires[i]
	}

	return ret
}

func checkFieldDegree(gateId string, expected uint64, field *gl.ExtensionField) {
	if field.D() != expected {
		panic(fmt.Sprintf("%s evaluated over an extension of degree %d, expected %d", gateId, field.D(), expected))
	}
}
