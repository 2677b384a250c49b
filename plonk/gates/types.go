package gates

import "fmt"

const UNUSED_SELECTOR = uint64(^uint32(0)) // max uint32

// A half-open range of wire columns [start, end).
type Range struct {
	start uint64
	end   uint64
}

func NewRange(start uint64, end uint64) Range {
	if end < start {
		panic(fmt.Sprintf("invalid range %d..%d", start, end))
	}
	return Range{start: start, end: end}
}

func (r Range) Start() uint64 {
	return r.start
}

func (r Range) End() uint64 {
	return r.end
}

func (r Range) Len() uint64 {
	return r.end - r.start
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.start, r.end)
}

type SelectorsInfo struct {
	selectorIndices []uint64
	groups          []Range
}

func NewSelectorsInfo(selectorIndices []uint64, groupStarts []uint64, groupEnds []uint64) *SelectorsInfo {
	if len(groupStarts) != len(groupEnds) {
		panic("groupStarts and groupEnds must have the same length")
	}

	groups := []Range{}
	for i := range groupStarts {
		groups = append(groups, NewRange(groupStarts[i], groupEnds[i]))
	}

	return &SelectorsInfo{
		selectorIndices: selectorIndices,
		groups:          groups,
	}
}

func (s *SelectorsInfo) NumSelectors() uint64 {
	return uint64(len(s.groups))
}

// The selector column for the gate at gateIndex.
func (s *SelectorsInfo) SelectorIndex(gateIndex uint64) uint64 {
	return s.selectorIndices[gateIndex]
}
