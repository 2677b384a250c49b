package witness

import (
	"fmt"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/consensys/gnark-crypto/field/goldilocks"
)

type WireValue struct {
	Wire  Wire
	Value goldilocks.Element
}

// The output of one generator run, applied to the PartialWitness by the scheduler.
type GeneratedValues struct {
	values []WireValue
}

func NewGeneratedValues(capacity int) *GeneratedValues {
	return &GeneratedValues{values: make([]WireValue, 0, capacity)}
}

func (gv *GeneratedValues) SetWire(w Wire, v goldilocks.Element) {
	gv.values = append(gv.values, WireValue{Wire: w, Value: v})
}

func (gv *GeneratedValues) SetExtension(wires []Wire, e gl.ExtensionElement) {
	if len(wires) != len(e) {
		panic(fmt.Sprintf("SetExtension called with %d wires for %d coefficients", len(wires), len(e)))
	}
	for i, w := range wires {
		gv.SetWire(w, e[i])
	}
}

func (gv *GeneratedValues) Values() []WireValue {
	return gv.values
}

func (gv *GeneratedValues) Len() int {
	return len(gv.values)
}
