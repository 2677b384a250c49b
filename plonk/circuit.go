// Package plonk lays gates out on trace rows, fills their witnesses and checks that a
// trace satisfies every row's constraints.
package plonk

import (
	"context"
	"fmt"

	"github.com/ZpokenWeb3/plonky2-gates/plonk/gates"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// One trace row: a gate instance and the gate's own constants.
type Row struct {
	Gate      gates.Gate
	Constants []goldilocks.Element
}

// An ordered list of gate rows.
type Circuit struct {
	rows []Row
}

func NewCircuit() *Circuit {
	return &Circuit{}
}

// Appends a row running gate with the given constants and returns its index. Panics if the
// number of constants differs from gate.NumConstants().
func (c *Circuit) AddGate(gate gates.Gate, constants []goldilocks.Element) uint64 {
	if uint64(len(constants)) != gate.NumConstants() {
		panic(fmt.Sprintf("%s takes %d constants, got %d", gate.Id(), gate.NumConstants(), len(constants)))
	}
	c.rows = append(c.rows, Row{Gate: gate, Constants: constants})
	return uint64(len(c.rows) - 1)
}

func (c *Circuit) Rows() []Row {
	return c.rows
}

func (c *Circuit) NumRows() uint64 {
	return uint64(len(c.rows))
}

// The largest NumWires over all rows.
func (c *Circuit) NumWires() uint64 {
	numWires := uint64(0)
	for _, row := range c.rows {
		if n := row.Gate.NumWires(); n > numWires {
			numWires = n
		}
	}
	return numWires
}

// The witness generators of every row, in row order.
func (c *Circuit) Generators() []witness.WitnessGenerator {
	generators := []witness.WitnessGenerator{}
	for i, row := range c.rows {
		generators = append(generators, row.Gate.Generators(uint64(i), row.Constants)...)
	}
	return generators
}

// Runs every row's generators to a fixpoint starting from the caller supplied inputs.
func GenerateWitness(
	ctx context.Context,
	c *Circuit,
	inputs *witness.PartialWitness,
	opts ...witness.Option,
) (*witness.PartialWitness, error) {
	pw, err := witness.GeneratePartialWitness(ctx, inputs, c.Generators(), opts...)
	if err != nil {
		return pw, fmt.Errorf("generate witness: %w", err)
	}
	return pw, nil
}
