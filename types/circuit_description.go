package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/ZpokenWeb3/plonky2-gates/plonk"
	"github.com/ZpokenWeb3/plonky2-gates/plonk/gates"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark-crypto/field/goldilocks"
)

var ErrInvalidDescription = errors.New("invalid circuit description")

type RowRaw struct {
	Gate      uint64            `json:"gate"`
	Constants []uint64          `json:"constants"`
	Wires     map[string]uint64 `json:"wires"`
}

// The JSON form of a circuit: gate ids, the rows using them with their constants and primary
// wire values, and the public inputs hash.
type CircuitDescriptionRaw struct {
	Degree           uint64    `json:"degree"`
	Gates            []string  `json:"gates"`
	Rows             []RowRaw  `json:"rows"`
	PublicInputsHash [4]uint64 `json:"public_inputs_hash"`
}

func ReadCircuitDescription(path string) (CircuitDescriptionRaw, error) {
	jsonFile, err := os.Open(path)
	if err != nil {
		return CircuitDescriptionRaw{}, fmt.Errorf("failed to open circuit description: %w", err)
	}
	defer jsonFile.Close()

	rawBytes, err := io.ReadAll(jsonFile)
	if err != nil {
		return CircuitDescriptionRaw{}, fmt.Errorf("failed to read circuit description: %w", err)
	}
	return ReadCircuitDescriptionFromRequest(rawBytes)
}

func ReadCircuitDescriptionFromRequest(rawBytes []byte) (CircuitDescriptionRaw, error) {
	var raw CircuitDescriptionRaw
	if err := json.Unmarshal(rawBytes, &raw); err != nil {
		return CircuitDescriptionRaw{}, fmt.Errorf("%w: %v", ErrInvalidDescription, err)
	}
	if raw.Degree == 0 {
		raw.Degree = 2
	}
	if !gl.IsSupportedExtensionDegree(raw.Degree) {
		return CircuitDescriptionRaw{}, fmt.Errorf("%w: unsupported extension degree %d", ErrInvalidDescription, raw.Degree)
	}
	return raw, nil
}

func canonicalElement(x uint64) (goldilocks.Element, error) {
	if x >= goldilocks.Modulus().Uint64() {
		return goldilocks.Element{}, fmt.Errorf("%w: %d is not a canonical field element", ErrInvalidDescription, x)
	}
	return goldilocks.NewElement(x), nil
}

func (raw CircuitDescriptionRaw) PublicInputs() (gates.HashOut, error) {
	var hash gates.HashOut
	for i, x := range raw.PublicInputsHash {
		e, err := canonicalElement(x)
		if err != nil {
			return gates.HashOut{}, err
		}
		hash[i] = e
	}
	return hash, nil
}

// Instantiates the described gates and rows, returning the circuit along with the witness
// holding the primary wire values.
func (raw CircuitDescriptionRaw) ToCircuit() (*plonk.Circuit, *witness.PartialWitness, error) {
	instances := make([]gates.Gate, len(raw.Gates))
	for i, gateId := range raw.Gates {
		gate, err := gates.ParseGateId(gateId)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDescription, err)
		}
		if g, ok := gate.(*gates.RandomAccessGate); ok && g.D() != raw.Degree {
			return nil, nil, fmt.Errorf(
				"%w: %s is over an extension of degree %d, the circuit uses %d",
				ErrInvalidDescription, g.Id(), g.D(), raw.Degree,
			)
		}
		instances[i] = gate
	}

	circuit := plonk.NewCircuit()
	inputs := witness.NewPartialWitness()
	for i, row := range raw.Rows {
		if row.Gate >= uint64(len(instances)) {
			return nil, nil, fmt.Errorf("%w: row %d uses gate %d of %d", ErrInvalidDescription, i, row.Gate, len(instances))
		}
		gate := instances[row.Gate]

		if uint64(len(row.Constants)) != gate.NumConstants() {
			return nil, nil, fmt.Errorf(
				"%w: row %d has %d constants, %s takes %d",
				ErrInvalidDescription, i, len(row.Constants), gate.Id(), gate.NumConstants(),
			)
		}
		constants := make([]goldilocks.Element, len(row.Constants))
		for j, c := range row.Constants {
			e, err := canonicalElement(c)
			if err != nil {
				return nil, nil, err
			}
			constants[j] = e
		}
		rowIndex := circuit.AddGate(gate, constants)

		for column, value := range row.Wires {
			c, err := strconv.ParseUint(column, 10, 64)
			if err != nil || c >= gate.NumWires() {
				return nil, nil, fmt.Errorf("%w: row %d has no wire %q", ErrInvalidDescription, i, column)
			}
			e, err := canonicalElement(value)
			if err != nil {
				return nil, nil, err
			}
			if err := inputs.SetWire(witness.NewWire(rowIndex, c), e); err != nil {
				return nil, nil, err
			}
		}
	}

	return circuit, inputs, nil
}
