package cmd

import (
	"context"
	"fmt"

	"github.com/ZpokenWeb3/plonky2-gates/plonk"
	"github.com/ZpokenWeb3/plonky2-gates/plonk/gates"
	"github.com/ZpokenWeb3/plonky2-gates/types"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
)

// A circuit description with its witness filled by the gate generators.
type filledTrace struct {
	raw              types.CircuitDescriptionRaw
	circuit          *plonk.Circuit
	inputs           *witness.PartialWitness
	witness          *witness.PartialWitness
	publicInputsHash gates.HashOut
}

// Reads <dir>/circuit.json.
func readDescription() (types.CircuitDescriptionRaw, error) {
	if fBaseDir == "" {
		return types.CircuitDescriptionRaw{}, fmt.Errorf("--dir is required")
	}
	return types.ReadCircuitDescription(fBaseDir + "/circuit.json")
}

func fillTrace(ctx context.Context, raw types.CircuitDescriptionRaw) (*filledTrace, error) {
	circuit, inputs, err := raw.ToCircuit()
	if err != nil {
		return nil, err
	}
	hash, err := raw.PublicInputs()
	if err != nil {
		return nil, err
	}

	opts := []witness.Option{}
	if fConcurrency > 0 {
		opts = append(opts, witness.WithConcurrency(fConcurrency))
	}
	pw, err := plonk.GenerateWitness(ctx, circuit, inputs, opts...)
	if err != nil {
		return nil, err
	}

	return &filledTrace{
		raw:              raw,
		circuit:          circuit,
		inputs:           inputs,
		witness:          pw,
		publicInputsHash: hash,
	}, nil
}

// Runs the base and extension trace checks.
func (t *filledTrace) check() error {
	if err := plonk.CheckTrace(t.circuit, t.witness, t.publicInputsHash); err != nil {
		return fmt.Errorf("base check: %w", err)
	}
	if err := plonk.CheckTraceExtension(t.circuit, t.witness, t.publicInputsHash, t.raw.Degree); err != nil {
		return fmt.Errorf("extension check: %w", err)
	}
	return nil
}

type derivedWire struct {
	Row    uint64 `json:"row"`
	Column uint64 `json:"column"`
	Value  uint64 `json:"value"`
}

// The wires set by generators rather than by the description, in row then column order.
func (t *filledTrace) derivedWires() []derivedWire {
	derived := []derivedWire{}
	for i, row := range t.circuit.Rows() {
		for column := uint64(0); column < row.Gate.NumWires(); column++ {
			w := witness.NewWire(uint64(i), column)
			if t.inputs.Contains(w) {
				continue
			}
			v, ok := t.witness.GetWire(w)
			if !ok {
				continue
			}
			derived = append(derived, derivedWire{Row: w.Row, Column: w.Column, Value: v.Uint64()})
		}
	}
	return derived
}
