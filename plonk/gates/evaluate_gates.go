package gates

import (
	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
)

// Evaluates the selector filtered constraints of every gate of a circuit and sums them into
// numGateConstraints slots. The filter of gate i is the product of (j - s) over the other
// gates j of its selector group, times (UNUSED_SELECTOR - s) when there are several selector
// columns, so it vanishes on rows that belong to another gate.
type EvaluateGatesChip struct {
	api frontend.API

	gates              []Gate
	numGateConstraints uint64

	selectorsInfo SelectorsInfo
}

func NewEvaluateGatesChip(
	api frontend.API,
	gates []Gate,
	numGateConstraints uint64,
	selectorsInfo SelectorsInfo,
) *EvaluateGatesChip {
	return &EvaluateGatesChip{
		api: api,

		gates:              gates,
		numGateConstraints: numGateConstraints,

		selectorsInfo: selectorsInfo,
	}
}

func (g *EvaluateGatesChip) computeFilter(
	row uint64,
	groupRange Range,
	s gl.QuadraticExtensionVariable,
	manySelector bool,
) gl.QuadraticExtensionVariable {
	glApi := gl.New(g.api)
	product := gl.OneExtension()
	for i := groupRange.start; i < groupRange.end; i++ {
		if i == uint64(row) {
			continue
		}
		tmp := gl.NewQuadraticExtensionVariable(gl.NewVariable(i), gl.Zero())
		product = glApi.MulExtension(product, glApi.SubExtension(tmp, s))
	}

	if manySelector {
		tmp := gl.NewQuadraticExtensionVariable(gl.NewVariable(UNUSED_SELECTOR), gl.Zero())
		product = glApi.MulExtension(product, glApi.SubExtension(tmp, s))
	}

	return product
}

func (g *EvaluateGatesChip) evalFiltered(
	gate Gate,
	vars EvaluationTargets,
	row uint64,
	selectorIndex uint64,
	groupRange Range,
	numSelectors uint64,
) []gl.QuadraticExtensionVariable {
	glApi := gl.New(g.api)
	filter := g.computeFilter(row, groupRange, vars.localConstants[selectorIndex], numSelectors > 1)

	vars.RemovePrefix(numSelectors)

	unfiltered := gate.EvalUnfilteredCircuit(g.api, glApi, vars)
	for i := range unfiltered {
		unfiltered[i] = glApi.MulExtension(unfiltered[i], filter)
	}
	return unfiltered
}

func (g *EvaluateGatesChip) EvaluateGateConstraints(vars EvaluationTargets) []gl.QuadraticExtensionVariable {
	glApi := gl.New(g.api)
	constraints := make([]gl.QuadraticExtensionVariable, g.numGateConstraints)
	for i := range constraints {
		constraints[i] = gl.ZeroExtension()
	}

	for i, gate := range g.gates {
		selectorIndex := g.selectorsInfo.SelectorIndex(uint64(i))

		gateConstraints := g.evalFiltered(
			gate,
			vars,
			uint64(i),
			selectorIndex,
			g.selectorsInfo.groups[selectorIndex],
			g.selectorsInfo.NumSelectors(),
		)

		for i, constraint := range gateConstraints {
			if uint64(i) >= g.numGateConstraints {
				panic("num_constraints() gave too low of a number")
			}
			constraints[i] = glApi.AddExtension(constraints[i], constraint)
		}
	}

	return constraints
}

func computeFilter(
	f *gl.ExtensionField,
	row uint64,
	groupRange Range,
	s gl.ExtensionElement,
	manySelector bool,
) gl.ExtensionElement {
	product := f.One()
	for i := groupRange.start; i < groupRange.end; i++ {
		if i == row {
			continue
		}
		product = f.Mul(product, f.Sub(f.FromCanonicalUint64(i), s))
	}

	if manySelector {
		product = f.Mul(product, f.Sub(f.FromCanonicalUint64(UNUSED_SELECTOR), s))
	}

	return product
}

func computeFilterBase(row uint64, groupRange Range, s goldilocks.Element, manySelector bool) goldilocks.Element {
	var product goldilocks.Element
	product.SetOne()
	for i := groupRange.start; i < groupRange.end; i++ {
		if i == row {
			continue
		}
		var diff goldilocks.Element
		diff.SetUint64(i).Sub(&diff, &s)
		product.Mul(&product, &diff)
	}

	if manySelector {
		var diff goldilocks.Element
		diff.SetUint64(UNUSED_SELECTOR).Sub(&diff, &s)
		product.Mul(&product, &diff)
	}

	return product
}

// The extension context counterpart of EvaluateGatesChip.EvaluateGateConstraints.
func EvaluateGateConstraints(
	gates []Gate,
	numGateConstraints uint64,
	selectorsInfo *SelectorsInfo,
	vars EvaluationVars,
) []gl.ExtensionElement {
	f := vars.Field()
	constraints := make([]gl.ExtensionElement, numGateConstraints)
	for i := range constraints {
		constraints[i] = f.Zero()
	}

	numSelectors := selectorsInfo.NumSelectors()
	for i, gate := range gates {
		selectorIndex := selectorsInfo.SelectorIndex(uint64(i))
		filter := computeFilter(
			f,
			uint64(i),
			selectorsInfo.groups[selectorIndex],
			vars.localConstants[selectorIndex],
			numSelectors > 1,
		)

		gateVars := vars
		gateVars.RemovePrefix(numSelectors)
		for j, constraint := range gate.EvalUnfiltered(gateVars) {
			if uint64(j) >= numGateConstraints {
				panic("num_constraints() gave too low of a number")
			}
			constraints[j] = f.Add(constraints[j], f.Mul(constraint, filter))
		}
	}

	return constraints
}

// The base context counterpart of EvaluateGatesChip.EvaluateGateConstraints, run on trace rows.
func EvaluateGateConstraintsBase(
	gates []Gate,
	numGateConstraints uint64,
	selectorsInfo *SelectorsInfo,
	vars EvaluationVarsBase,
) []goldilocks.Element {
	constraints := make([]goldilocks.Element, numGateConstraints)

	numSelectors := selectorsInfo.NumSelectors()
	for i, gate := range gates {
		selectorIndex := selectorsInfo.SelectorIndex(uint64(i))
		filter := computeFilterBase(
			uint64(i),
			selectorsInfo.groups[selectorIndex],
			vars.localConstants[selectorIndex],
			numSelectors > 1,
		)

		gateVars := vars
		gateVars.RemovePrefix(numSelectors)
		for j, constraint := range gate.EvalUnfilteredBase(gateVars) {
			if uint64(j) >= numGateConstraints {
				panic("num_constraints() gave too low of a number")
			}
			constraint.Mul(&constraint, &filter)
			constraints[j].Add(&constraints[j], &constraint)
		}
	}

	return constraints
}
