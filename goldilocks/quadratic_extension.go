package goldilocks

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// The quadratic non-residue: the circuit extension is F[X]/(X^2 - W).
const W uint64 = 7

type QuadraticExtensionVariable [2]Variable

func NewQuadraticExtensionVariable(x Variable, y Variable) QuadraticExtensionVariable {
	return QuadraticExtensionVariable{x, y}
}

func (p Variable) ToQuadraticExtension() QuadraticExtensionVariable {
	return NewQuadraticExtensionVariable(p, Zero())
}

func ZeroExtension() QuadraticExtensionVariable {
	return Zero().ToQuadraticExtension()
}

func OneExtension() QuadraticExtensionVariable {
	return One().ToQuadraticExtension()
}

// Injects a native quadratic extension element as a circuit constant.
func ConstantExtension(e ExtensionElement) QuadraticExtensionVariable {
	if len(e) != D {
		panic(fmt.Sprintf("expected an extension element of degree %d, got %d", D, len(e)))
	}
	return NewQuadraticExtensionVariable(ConstantVariable(e[0]), ConstantVariable(e[1]))
}

// Injects a canonical integer as a circuit extension constant.
func ConstantExtensionFromUint64(x uint64) QuadraticExtensionVariable {
	return ConstantVariable(goldilocks.NewElement(x)).ToQuadraticExtension()
}

func (p *Chip) AddExtension(a, b QuadraticExtensionVariable) QuadraticExtensionVariable {
	c0 := p.Add(a[0], b[0])
	c1 := p.Add(a[1], b[1])
	return NewQuadraticExtensionVariable(c0, c1)
}

func (p *Chip) AddExtensionNoReduce(a, b QuadraticExtensionVariable) QuadraticExtensionVariable {
	c0 := p.AddNoReduce(a[0], b[0])
	c1 := p.AddNoReduce(a[1], b[1])
	return NewQuadraticExtensionVariable(c0, c1)
}

func (p *Chip) SubExtension(a, b QuadraticExtensionVariable) QuadraticExtensionVariable {
	c0 := p.Sub(a[0], b[0])
	c1 := p.Sub(a[1], b[1])
	return NewQuadraticExtensionVariable(c0, c1)
}

func (p *Chip) MulExtension(a, b QuadraticExtensionVariable) QuadraticExtensionVariable {
	product := p.MulExtensionNoReduce(a, b)
	return p.ReduceExtension(product)
}

// (a0 + a1 X)(b0 + b1 X) = a0 b0 + W a1 b1 + (a0 b1 + a1 b0) X, not reduced.
func (p *Chip) MulExtensionNoReduce(a, b QuadraticExtensionVariable) QuadraticExtensionVariable {
	c0o0 := p.MulNoReduce(a[0], b[0])
	c0o1 := p.MulNoReduce(p.MulNoReduce(NewVariable(W), a[1]), b[1])
	c0 := p.AddNoReduce(c0o0, c0o1)
	c1 := p.AddNoReduce(p.MulNoReduce(a[0], b[1]), p.MulNoReduce(a[1], b[0]))
	return NewQuadraticExtensionVariable(c0, c1)
}

// Computes a * b + c. a * b + c must be less than RANGE_CHECK_NB_BITS bits.
func (p *Chip) MulAddExtension(a, b, c QuadraticExtensionVariable) QuadraticExtensionVariable {
	product := p.MulExtensionNoReduce(a, b)
	sum := p.AddExtensionNoReduce(product, c)
	return p.ReduceExtension(sum)
}

func (p *Chip) ReduceExtension(x QuadraticExtensionVariable) QuadraticExtensionVariable {
	return NewQuadraticExtensionVariable(p.Reduce(x[0]), p.Reduce(x[1]))
}

func (p *Chip) AssertIsEqualExtension(
	a QuadraticExtensionVariable,
	b QuadraticExtensionVariable,
) {
	p.AssertIsEqual(a[0], b[0])
	p.AssertIsEqual(a[1], b[1])
}

// Asserts that a is the zero extension element.
func (p *Chip) AssertIsZeroExtension(a QuadraticExtensionVariable) {
	p.AssertIsEqualExtension(a, ZeroExtension())
}
