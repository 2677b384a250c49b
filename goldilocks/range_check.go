package goldilocks

import (
	"math"
	"strconv"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/std/math/bits"
)

// The number of bits to use for range checks on inner products of field elements.
// This MUST be a multiple of EXPECTED_OPTIMAL_BASEWIDTH if the commit based range checker is used.
// There is a bug in the pre 0.9.2 gnark range checker where it wouldn't appropriately range check a bitwidth that
// is misaligned from EXPECTED_OPTIMAL_BASEWIDTH:  https://github.com/Consensys/gnark/security/advisories/GHSA-rjjm-x32p-m3f7
var RANGE_CHECK_NB_BITS int = 144

// The bit width size that the gnark commit based range checker should use.
var EXPECTED_OPTIMAL_BASEWIDTH int = 16

type RangeCheckerType int

const (
	NATIVE_RANGE_CHECKER RangeCheckerType = iota
	COMMIT_RANGE_CHECKER
	BIT_DECOMP_RANGE_CHECKER
)

type checkedVariable struct {
	v    frontend.Variable
	bits int
}

type bitDecompChecker struct {
	api frontend.API
}

func (pl bitDecompChecker) Check(v frontend.Variable, nbBits int) {
	bits.ToBinary(pl.api, v, bits.WithNbDigits(nbBits))
}

// Asserts that x is less than 2^nbBits, or queues the check until the circuit is finalized when
// the commit range checker is in use.
func (p *Chip) rangeCheckerCheck(x frontend.Variable, nbBits int) {
	switch p.rangeCheckerType {
	case NATIVE_RANGE_CHECKER:
	case BIT_DECOMP_RANGE_CHECKER:
		p.rangeChecker.Check(x, nbBits)
	case COMMIT_RANGE_CHECKER:
		p.collectedMutex.Lock()
		defer p.collectedMutex.Unlock()
		p.rangeCheckCollected = append(p.rangeCheckCollected, checkedVariable{v: x, bits: nbBits})
	}
}

func (p *Chip) checkCollected(api frontend.API) error {
	if p.rangeCheckerType != COMMIT_RANGE_CHECKER {
		panic("checkCollected should only be called when using the commit range checker")
	}

	// Small circuits make gnark pick a narrower base width, which the collected widths are not
	// aligned to. Those fall back to bit decomposition.
	nbBits := getOptimalBasewidth(p.api, p.rangeCheckCollected)
	var checker frontend.Rangechecker = p.rangeChecker
	aligned := nbBits == EXPECTED_OPTIMAL_BASEWIDTH
	if !aligned {
		log := logger.Logger()
		log.Debug().
			Int("nbChecks", len(p.rangeCheckCollected)).
			Msg("commit range checker width is not " + strconv.Itoa(EXPECTED_OPTIMAL_BASEWIDTH) + ", using bit decomposition")
		checker = bitDecompChecker{api: api}
	}

	for _, v := range p.rangeCheckCollected {
		if aligned && v.bits%nbBits != 0 {
			panic("v.bits is not nbBits aligned")
		}

		checker.Check(v.v, v.bits)
	}

	return nil
}

// Mirrors the selection logic of gnark's rangecheck.New.
func gnarkRangeCheckerSelector(api frontend.API) RangeCheckerType {
	if _, ok := api.(frontend.Rangechecker); ok {
		return NATIVE_RANGE_CHECKER
	} else if _, ok := api.(frontend.Committer); ok {
		return COMMIT_RANGE_CHECKER
	}
	return BIT_DECOMP_RANGE_CHECKER
}

// The cost model below follows gnark's std/rangecheck/rangecheck_commit.go.
type frontendType int

const (
	r1csFrontend frontendType = iota
	scsFrontend
)

type frontendTyper interface {
	FrontendType() frontendType
}

func getOptimalBasewidth(api frontend.API, collected []checkedVariable) int {
	if ft, ok := api.(frontendTyper); ok && ft.FrontendType() == scsFrontend {
		return optimalWidth(nbPLONKConstraints, collected)
	}
	return optimalWidth(nbR1CSConstraints, collected)
}

func optimalWidth(countFn func(baseLength int, collected []checkedVariable) int, collected []checkedVariable) int {
	min := math.MaxInt64
	minVal := 0
	for j := 2; j < 18; j++ {
		current := countFn(j, collected)
		if current < min {
			min = current
			minVal = j
		}
	}
	return minVal
}

func nbDecomposed(baseLength int, collected []checkedVariable) int {
	n := 0
	for i := range collected {
		n += (collected[i].bits + baseLength - 1) / baseLength
	}
	return n
}

func nbR1CSConstraints(baseLength int, collected []checkedVariable) int {
	decomposed := nbDecomposed(baseLength, collected)
	// decomposition checks, one inverse per limb, one division per table entry
	return (1 << baseLength) + decomposed + len(collected) + 1
}

func nbPLONKConstraints(baseLength int, collected []checkedVariable) int {
	decomposed := nbDecomposed(baseLength, collected)
	return 3*(1<<baseLength) + 3*decomposed + decomposed + 1
}
