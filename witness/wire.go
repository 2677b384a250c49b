package witness

import "fmt"

// A wire is a (row, column) position in the execution trace. Row is the index of the gate
// instance that owns the wire, Column is the slot inside that gate's row.
type Wire struct {
	Row    uint64
	Column uint64
}

func NewWire(row uint64, column uint64) Wire {
	return Wire{Row: row, Column: column}
}

func (w Wire) String() string {
	return fmt.Sprintf("Wire { row: %d, column: %d }", w.Row, w.Column)
}

// Returns the wires of row for the columns [start, end).
func RowWires(row uint64, start uint64, end uint64) []Wire {
	if end < start {
		panic("RowWires called with end < start")
	}
	wires := make([]Wire, 0, end-start)
	for column := start; column < end; column++ {
		wires = append(wires, NewWire(row, column))
	}
	return wires
}
