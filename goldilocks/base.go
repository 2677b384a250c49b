// This package implements Goldilocks arithmetic in two flavours: native elements and extensions
// used when evaluating gate constraints directly, and a gnark Chip used when the same
// constraints are expressed inside a circuit. The in-circuit arithmetic does not use the
// emulated field API, because it is too slow for our purposes. Instead, we use an efficient
// reduction method that leverages the fact that the modulus is a simple linear combination of
// powers of two.
package goldilocks

// In general, methods whose name do not contain `NoReduce` can be used without any extra mental
// overhead. These methods act exactly as you would expect a normal field would operate.

import (
	"fmt"
	"math"
	"math/big"
	"os"
	"sync"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/std/rangecheck"
)

// The modulus of the field.
var MODULUS *big.Int = emulated.Goldilocks{}.Modulus()

// Registers the hint functions with the solver.
func init() {
	solver.RegisterHint(MulAddHint)
	solver.RegisterHint(ReduceHint)
	solver.RegisterHint(SplitLimbsHint)
}

// A Goldilocks field element inside a circuit.
type Variable struct {
	Limb frontend.Variable
}

// Creates a new Goldilocks field element from an existing variable. Assumes that the element is
// already reduced.
func NewVariable(x frontend.Variable) Variable {
	return Variable{Limb: x}
}

// Lifts a native element into a circuit constant.
func ConstantVariable(x goldilocks.Element) Variable {
	return NewVariable(x.Uint64())
}

func Zero() Variable {
	return NewVariable(0)
}

func One() Variable {
	return NewVariable(1)
}

func NegOne() Variable {
	return NewVariable(MODULUS.Uint64() - 1)
}

// The chip used for Goldilocks field operations.
type Chip struct {
	api frontend.API

	rangeChecker     frontend.Rangechecker
	rangeCheckerType RangeCheckerType

	// Only populated with the commit range checker, see checkCollected.
	rangeCheckCollected []checkedVariable
	collectedMutex      sync.Mutex
}

var (
	chips   = make(map[frontend.API]*Chip)
	chipsMu sync.Mutex
)

// Returns the Goldilocks chip bound to api, creating it on first use.
func New(api frontend.API) *Chip {
	chipsMu.Lock()
	defer chipsMu.Unlock()

	if chip, ok := chips[api]; ok {
		return chip
	}

	c := &Chip{api: api}

	// Emulates gnark's range checker selection (native, commit or bit decomposition) unless
	// USE_BIT_DECOMPOSITION_RANGE_CHECK forces the bit decomposition checker.
	c.rangeCheckerType = gnarkRangeCheckerSelector(api)
	if os.Getenv("USE_BIT_DECOMPOSITION_RANGE_CHECK") == "true" {
		log := logger.Logger()
		log.Debug().Msg("USE_BIT_DECOMPOSITION_RANGE_CHECK is set, using the bit decomposition range checker")
		c.rangeCheckerType = BIT_DECOMP_RANGE_CHECKER
	}

	if c.rangeCheckerType == BIT_DECOMP_RANGE_CHECKER {
		c.rangeChecker = bitDecompChecker{api: api}
	} else {
		if c.rangeCheckerType == COMMIT_RANGE_CHECKER {
			api.Compiler().Defer(c.checkCollected)
		}

		// The commit range checker defers its own callback, which must run after
		// c.checkCollected, so it is created second.
		c.rangeChecker = rangecheck.New(api)
	}

	chips[api] = c

	return c
}

func (p *Chip) Add(a Variable, b Variable) Variable {
	return p.MulAdd(a, NewVariable(1), b)
}

// The sum is not reduced.
func (p *Chip) AddNoReduce(a Variable, b Variable) Variable {
	return NewVariable(p.api.Add(a.Limb, b.Limb))
}

func (p *Chip) Sub(a Variable, b Variable) Variable {
	return p.MulAdd(b, NegOne(), a)
}

// The difference is not reduced.
func (p *Chip) SubNoReduce(a Variable, b Variable) Variable {
	return NewVariable(p.api.Add(a.Limb, p.api.Mul(b.Limb, NegOne().Limb)))
}

func (p *Chip) Mul(a Variable, b Variable) Variable {
	return p.MulAdd(a, b, Zero())
}

// The product is not reduced.
func (p *Chip) MulNoReduce(a Variable, b Variable) Variable {
	return NewVariable(p.api.Mul(a.Limb, b.Limb))
}

// Computes a * b + c, reduced into the Goldilocks field.
func (p *Chip) MulAdd(a Variable, b Variable, c Variable) Variable {
	result, err := p.api.Compiler().NewHint(MulAddHint, 2, a.Limb, b.Limb, c.Limb)
	if err != nil {
		panic(err)
	}

	quotient := NewVariable(result[0])
	remainder := NewVariable(result[1])

	cLimbCopy := p.api.Mul(c.Limb, 1)
	lhs := p.api.MulAcc(cLimbCopy, a.Limb, b.Limb)
	rhs := p.api.MulAcc(remainder.Limb, MODULUS, quotient.Limb)
	p.api.AssertIsEqual(lhs, rhs)

	p.RangeCheck(quotient)
	p.RangeCheck(remainder)
	return remainder
}

// Computes a * b + c without reducing.
func (p *Chip) MulAddNoReduce(a Variable, b Variable, c Variable) Variable {
	cLimbCopy := p.api.Mul(c.Limb, 1)
	return NewVariable(p.api.MulAcc(cLimbCopy, a.Limb, b.Limb))
}

func MulAddHint(_ *big.Int, inputs []*big.Int, results []*big.Int) error {
	if len(inputs) != 3 {
		panic("MulAddHint expects 3 input operands")
	}

	for _, operand := range inputs {
		if operand.Cmp(MODULUS) >= 0 {
			panic(fmt.Sprintf("%s is not in the field", operand.String()))
		}
	}

	product := new(big.Int).Mul(inputs[0], inputs[1])
	sum := new(big.Int).Add(product, inputs[2])
	quotient := new(big.Int).Div(sum, MODULUS)
	remainder := new(big.Int).Rem(sum, MODULUS)

	results[0] = quotient
	results[1] = remainder

	return nil
}

// Reduces x modulo the Goldilocks modulus, assuming x has at most RANGE_CHECK_NB_BITS bits.
func (p *Chip) Reduce(x Variable) Variable {
	return p.ReduceWithMaxBits(x, uint64(RANGE_CHECK_NB_BITS))
}

// Witnesses quotient and remainder with MODULUS * quotient + remainder = x, checking
// remainder < MODULUS and quotient < 2^maxNbBits so the identity cannot overflow.
func (p *Chip) ReduceWithMaxBits(x Variable, maxNbBits uint64) Variable {
	result, err := p.api.Compiler().NewHint(ReduceHint, 2, x.Limb)
	if err != nil {
		panic(err)
	}

	quotient := result[0]
	p.rangeCheckerCheck(quotient, int(maxNbBits))

	remainder := NewVariable(result[1])
	p.RangeCheck(remainder)

	p.api.AssertIsEqual(x.Limb, p.api.Add(p.api.Mul(quotient, MODULUS), remainder.Limb))

	return remainder
}

func ReduceHint(_ *big.Int, inputs []*big.Int, results []*big.Int) error {
	if len(inputs) != 1 {
		panic("ReduceHint expects 1 input operand")
	}
	input := inputs[0]
	quotient := new(big.Int).Div(input, MODULUS)
	remainder := new(big.Int).Rem(input, MODULUS)
	results[0] = quotient
	results[1] = remainder
	return nil
}

// Splits a Goldilocks element into its high and low 32 bit limbs.
func SplitLimbsHint(_ *big.Int, inputs []*big.Int, results []*big.Int) error {
	if len(inputs) != 1 {
		panic("SplitLimbsHint expects 1 input operand")
	}

	input := inputs[0]

	if input.Cmp(MODULUS) >= 0 {
		return fmt.Errorf("input is not in the field")
	}

	two32 := big.NewInt(int64(math.Pow(2, 32)))

	results[0] = new(big.Int).Quo(input, two32)
	results[1] = new(big.Int).Rem(input, two32)

	return nil
}

// Range checks x to be less than the Goldilocks modulus 2^64 - 2^32 + 1.
func (p *Chip) RangeCheck(x Variable) {
	// The modulus is 1111111111111111111111111111111100000000000000000000000000000001 in big
	// endian binary. x must fit in 64 bits, and if its high 32 bits are all ones its low 32
	// bits must all be zero.
	result, err := p.api.Compiler().NewHint(SplitLimbsHint, 2, x.Limb)
	if err != nil {
		panic(err)
	}

	mostSigLimb := result[0]
	leastSigLimb := result[1]
	p.api.AssertIsEqual(
		p.api.Add(
			p.api.Mul(mostSigLimb, uint64(math.Pow(2, 32))),
			leastSigLimb,
		),
		x.Limb,
	)
	p.rangeCheckerCheck(mostSigLimb, 32)
	p.rangeCheckerCheck(leastSigLimb, 32)

	shouldCheck := p.api.IsZero(p.api.Sub(mostSigLimb, uint64(math.Pow(2, 32))-1))
	p.api.AssertIsEqual(
		p.api.Select(
			shouldCheck,
			leastSigLimb,
			frontend.Variable(0),
		),
		frontend.Variable(0),
	)
}

func (p *Chip) AssertIsEqual(x, y Variable) {
	p.api.AssertIsEqual(x.Limb, y.Limb)
}
