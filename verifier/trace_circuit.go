// Package verifier checks trace rows inside a gnark circuit over BN254, and compiles, proves
// and exports that circuit with groth16 or plonk.
package verifier

import (
	"fmt"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/ZpokenWeb3/plonky2-gates/plonk"
	"github.com/ZpokenWeb3/plonky2-gates/plonk/gates"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark/frontend"
)

// TraceCircuit asserts that every row of Circuit is satisfied by the witnessed wire values.
// Wires are base field values, embedded into the quadratic extension inside Define.
type TraceCircuit struct {
	PublicInputsHash [4]gl.Variable `gnark:",public"`
	Wires            [][]gl.Variable

	// This is configuration for the circuit, it is a constant not a variable
	Circuit *plonk.Circuit `gnark:"-"`
}

// Returns a TraceCircuit with the shape of c, to be compiled.
func NewTraceCircuit(c *plonk.Circuit) *TraceCircuit {
	wires := make([][]gl.Variable, c.NumRows())
	for i, row := range c.Rows() {
		wires[i] = make([]gl.Variable, row.Gate.NumWires())
	}
	return &TraceCircuit{
		Wires:   wires,
		Circuit: c,
	}
}

// Returns the assignment of c's TraceCircuit for a filled witness.
func NewTraceAssignment(
	c *plonk.Circuit,
	pw *witness.PartialWitness,
	publicInputsHash gates.HashOut,
) (*TraceCircuit, error) {
	assignment := NewTraceCircuit(c)
	for i := range publicInputsHash {
		assignment.PublicInputsHash[i] = gl.ConstantVariable(publicInputsHash[i])
	}
	for i, row := range c.Rows() {
		for column := uint64(0); column < row.Gate.NumWires(); column++ {
			v, err := pw.MustGetWire(witness.NewWire(uint64(i), column))
			if err != nil {
				return nil, fmt.Errorf("assign row %d: %w", i, err)
			}
			assignment.Wires[i][column] = gl.ConstantVariable(v)
		}
	}
	return assignment, nil
}

func (t *TraceCircuit) Define(api frontend.API) error {
	if t.Circuit == nil {
		return fmt.Errorf("trace circuit has no layout")
	}
	if uint64(len(t.Wires)) != t.Circuit.NumRows() {
		return fmt.Errorf("expected %d rows of wires, got %d", t.Circuit.NumRows(), len(t.Wires))
	}

	glApi := gl.New(api)
	for i := range t.PublicInputsHash {
		glApi.RangeCheck(t.PublicInputsHash[i])
	}
	publicInputsHash := gates.HashOutTarget(t.PublicInputsHash)

	for i, row := range t.Circuit.Rows() {
		if g, ok := row.Gate.(*gates.RandomAccessGate); ok && g.D() != gl.D {
			return fmt.Errorf("row %d: %s can only be checked in circuit with D=%d", i, g.Id(), gl.D)
		}
		for _, w := range t.Wires[i] {
			glApi.RangeCheck(w)
		}

		localWires := make([]gl.QuadraticExtensionVariable, len(t.Wires[i]))
		for j, w := range t.Wires[i] {
			localWires[j] = w.ToQuadraticExtension()
		}
		localConstants := gl.ElementsToQuadraticExtensionArray(row.Constants)

		vars := gates.NewEvaluationTargets(localConstants, localWires, publicInputsHash)
		for _, constraint := range row.Gate.EvalUnfilteredCircuit(api, glApi, *vars) {
			glApi.AssertIsZeroExtension(constraint)
		}
	}

	return nil
}
