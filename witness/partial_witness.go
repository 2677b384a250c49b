package witness

import (
	"errors"
	"fmt"
	"sync"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/consensys/gnark-crypto/field/goldilocks"
)

var (
	ErrWireAlreadySet = errors.New("wire already set")
	ErrWireNotSet     = errors.New("wire not set")
)

// A PartialWitness is a single-assignment store of wire values. A wire that was never written
// is reported as absent rather than read as zero.
type PartialWitness struct {
	mu     sync.RWMutex
	values map[Wire]goldilocks.Element
}

func NewPartialWitness() *PartialWitness {
	return &PartialWitness{values: make(map[Wire]goldilocks.Element)}
}

func (pw *PartialWitness) GetWire(w Wire) (goldilocks.Element, bool) {
	pw.mu.RLock()
	defer pw.mu.RUnlock()
	v, ok := pw.values[w]
	return v, ok
}

// Like GetWire, but a missing wire is an error.
func (pw *PartialWitness) MustGetWire(w Wire) (goldilocks.Element, error) {
	v, ok := pw.GetWire(w)
	if !ok {
		return goldilocks.Element{}, fmt.Errorf("%w: %s", ErrWireNotSet, w)
	}
	return v, nil
}

// Reads D consecutive wires as an extension element.
func (pw *PartialWitness) GetExtension(field *gl.ExtensionField, wires []Wire) (gl.ExtensionElement, error) {
	if uint64(len(wires)) != field.D() {
		panic(fmt.Sprintf("GetExtension called with %d wires, expected %d", len(wires), field.D()))
	}
	coeffs := make([]goldilocks.Element, len(wires))
	for i, w := range wires {
		v, err := pw.MustGetWire(w)
		if err != nil {
			return nil, err
		}
		coeffs[i] = v
	}
	return field.FromBaseArray(coeffs), nil
}

func (pw *PartialWitness) Contains(w Wire) bool {
	_, ok := pw.GetWire(w)
	return ok
}

func (pw *PartialWitness) SetWire(w Wire, v goldilocks.Element) error {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if _, ok := pw.values[w]; ok {
		return fmt.Errorf("%w: %s", ErrWireAlreadySet, w)
	}
	pw.values[w] = v
	return nil
}

// Writes the D coefficients of e to D consecutive wires.
func (pw *PartialWitness) SetExtension(wires []Wire, e gl.ExtensionElement) error {
	if len(wires) != len(e) {
		panic(fmt.Sprintf("SetExtension called with %d wires for %d coefficients", len(wires), len(e)))
	}
	for i, w := range wires {
		if err := pw.SetWire(w, e[i]); err != nil {
			return err
		}
	}
	return nil
}

// Applies every value of gv, stopping at the first conflict.
func (pw *PartialWitness) Extend(gv *GeneratedValues) error {
	for _, wv := range gv.values {
		if err := pw.SetWire(wv.Wire, wv.Value); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PartialWitness) Len() int {
	pw.mu.RLock()
	defer pw.mu.RUnlock()
	return len(pw.values)
}

// Returns a copy of the witness that can be extended independently.
func (pw *PartialWitness) Clone() *PartialWitness {
	pw.mu.RLock()
	defer pw.mu.RUnlock()
	clone := NewPartialWitness()
	for w, v := range pw.values {
		clone.values[w] = v
	}
	return clone
}
