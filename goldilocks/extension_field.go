package goldilocks

// Native (out of circuit) arithmetic over the binomial extensions F[X]/(X^D - W) of the
// Goldilocks field. These mirror the plonky2 extension fields and are used by the base and
// extension evaluation contexts of the gates as well as by the witness generators.

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// The non-residues W used by plonky2 for each supported extension degree.
var extensionNonResidues = map[uint64]uint64{
	1: 1,
	2: W,
	4: 7,
	5: 3,
}

// An element of a degree D extension, stored as its D base field coefficients.
type ExtensionElement []goldilocks.Element

// An element of the extension algebra: D extension elements, one per basis element of the
// extension viewed as a vector space over the base field.
type ExtensionAlgebraElement []ExtensionElement

type ExtensionField struct {
	d uint64
	w goldilocks.Element

	// W^((p-1)/D), so that frobenius(X) = dthRoot * X.
	dthRoot goldilocks.Element
}

var (
	extensionFields   = make(map[uint64]*ExtensionField)
	extensionFieldsMu sync.Mutex
)

func IsSupportedExtensionDegree(d uint64) bool {
	_, ok := extensionNonResidues[d]
	return ok
}

// Returns the extension field of degree d. Panics if plonky2 does not define an extension of
// that degree over Goldilocks.
func ExtensionFieldOfDegree(d uint64) *ExtensionField {
	extensionFieldsMu.Lock()
	defer extensionFieldsMu.Unlock()

	if f, ok := extensionFields[d]; ok {
		return f
	}

	w, ok := extensionNonResidues[d]
	if !ok {
		panic(fmt.Sprintf("unsupported extension degree %d", d))
	}

	f := &ExtensionField{d: d, w: goldilocks.NewElement(w)}
	f.dthRoot.SetOne()
	if d > 1 {
		exponent := new(big.Int).Sub(MODULUS, big.NewInt(1))
		exponent.Div(exponent, new(big.Int).SetUint64(d))
		f.dthRoot.Exp(f.w, exponent)
	}

	extensionFields[d] = f
	return f
}

func (f *ExtensionField) D() uint64 {
	return f.d
}

func (f *ExtensionField) checkShape(a ExtensionElement) {
	if uint64(len(a)) != f.d {
		panic(fmt.Sprintf("extension element has %d coefficients, expected %d", len(a), f.d))
	}
}

func (f *ExtensionField) Zero() ExtensionElement {
	return make(ExtensionElement, f.d)
}

func (f *ExtensionField) One() ExtensionElement {
	res := f.Zero()
	res[0].SetOne()
	return res
}

// Embeds a base field element into the extension.
func (f *ExtensionField) FromBase(x goldilocks.Element) ExtensionElement {
	res := f.Zero()
	res[0] = x
	return res
}

func (f *ExtensionField) FromCanonicalUint64(x uint64) ExtensionElement {
	return f.FromBase(goldilocks.NewElement(x))
}

// Builds an extension element from its D base field coefficients.
func (f *ExtensionField) FromBaseArray(coeffs []goldilocks.Element) ExtensionElement {
	f.checkShape(coeffs)
	res := f.Zero()
	copy(res, coeffs)
	return res
}

func (f *ExtensionField) Add(a, b ExtensionElement) ExtensionElement {
	f.checkShape(a)
	f.checkShape(b)
	res := f.Zero()
	for i := range res {
		res[i].Add(&a[i], &b[i])
	}
	return res
}

func (f *ExtensionField) Sub(a, b ExtensionElement) ExtensionElement {
	f.checkShape(a)
	f.checkShape(b)
	res := f.Zero()
	for i := range res {
		res[i].Sub(&a[i], &b[i])
	}
	return res
}

func (f *ExtensionField) Neg(a ExtensionElement) ExtensionElement {
	return f.Sub(f.Zero(), a)
}

// Schoolbook multiplication, folding X^(i+j) for i+j >= D back with X^D = W.
func (f *ExtensionField) Mul(a, b ExtensionElement) ExtensionElement {
	f.checkShape(a)
	f.checkShape(b)
	res := f.Zero()
	var term goldilocks.Element
	for i := uint64(0); i < f.d; i++ {
		for j := uint64(0); j < f.d; j++ {
			term.Mul(&a[i], &b[j])
			if i+j >= f.d {
				term.Mul(&term, &f.w)
			}
			idx := (i + j) % f.d
			res[idx].Add(&res[idx], &term)
		}
	}
	return res
}

func (f *ExtensionField) ScalarMul(a ExtensionElement, s goldilocks.Element) ExtensionElement {
	f.checkShape(a)
	res := f.Zero()
	for i := range res {
		res[i].Mul(&a[i], &s)
	}
	return res
}

// Applies the Frobenius automorphism x -> x^(p^count).
func (f *ExtensionField) RepeatedFrobenius(a ExtensionElement, count uint64) ExtensionElement {
	f.checkShape(a)
	count %= f.d
	if count == 0 {
		return f.FromBaseArray(a)
	}

	var z0 goldilocks.Element
	z0.Exp(f.dthRoot, new(big.Int).SetUint64(count))

	res := f.Zero()
	var z goldilocks.Element
	z.SetOne()
	for i := range res {
		res[i].Mul(&a[i], &z)
		z.Mul(&z, &z0)
	}
	return res
}

func (f *ExtensionField) Frobenius(a ExtensionElement) ExtensionElement {
	return f.RepeatedFrobenius(a, 1)
}

// Returns the inverse of a, or false if a is zero. With r = 1 + p + ... + p^(D-1),
// a^(r-1) is the product of the non trivial conjugates of a and a^r lies in the base field.
func (f *ExtensionField) TryInverse(a ExtensionElement) (ExtensionElement, bool) {
	if f.IsZero(a) {
		return nil, false
	}

	aPowRMinus1 := f.One()
	for k := uint64(1); k < f.d; k++ {
		aPowRMinus1 = f.Mul(aPowRMinus1, f.RepeatedFrobenius(a, k))
	}
	aPowR := f.Mul(aPowRMinus1, a)

	var normInv goldilocks.Element
	normInv.Inverse(&aPowR[0])
	return f.ScalarMul(aPowRMinus1, normInv), true
}

func (f *ExtensionField) Inverse(a ExtensionElement) ExtensionElement {
	inv, ok := f.TryInverse(a)
	if !ok {
		panic("cannot invert zero in the extension field")
	}
	return inv
}

func (f *ExtensionField) IsZero(a ExtensionElement) bool {
	f.checkShape(a)
	for i := range a {
		if !a[i].IsZero() {
			return false
		}
	}
	return true
}

func (f *ExtensionField) Equal(a, b ExtensionElement) bool {
	f.checkShape(a)
	f.checkShape(b)
	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}

// Samples a uniformly random extension element.
func (f *ExtensionField) Rand() ExtensionElement {
	res := f.Zero()
	for i := range res {
		if _, err := res[i].SetRandom(); err != nil {
			panic(err)
		}
	}
	return res
}

func (f *ExtensionField) AlgebraZero() ExtensionAlgebraElement {
	res := make(ExtensionAlgebraElement, f.d)
	for i := range res {
		res[i] = f.Zero()
	}
	return res
}

func (f *ExtensionField) checkAlgebraShape(a ExtensionAlgebraElement) {
	if uint64(len(a)) != f.d {
		panic(fmt.Sprintf("extension algebra element has %d components, expected %d", len(a), f.d))
	}
}

// Builds an algebra element from D extension elements, e.g. D consecutive wires evaluated at
// an extension point.
func (f *ExtensionField) FromExtensionArray(components []ExtensionElement) ExtensionAlgebraElement {
	f.checkAlgebraShape(components)
	res := make(ExtensionAlgebraElement, f.d)
	for i := range res {
		res[i] = f.FromBaseArray(components[i])
	}
	return res
}

func (f *ExtensionField) AddAlgebra(a, b ExtensionAlgebraElement) ExtensionAlgebraElement {
	f.checkAlgebraShape(a)
	f.checkAlgebraShape(b)
	res := make(ExtensionAlgebraElement, f.d)
	for i := range res {
		res[i] = f.Add(a[i], b[i])
	}
	return res
}

func (f *ExtensionField) SubAlgebra(a, b ExtensionAlgebraElement) ExtensionAlgebraElement {
	f.checkAlgebraShape(a)
	f.checkAlgebraShape(b)
	res := make(ExtensionAlgebraElement, f.d)
	for i := range res {
		res[i] = f.Sub(a[i], b[i])
	}
	return res
}

// Multiplies every component of the algebra element by the extension scalar s.
func (f *ExtensionField) ScalarMulAlgebra(s ExtensionElement, a ExtensionAlgebraElement) ExtensionAlgebraElement {
	f.checkAlgebraShape(a)
	res := make(ExtensionAlgebraElement, f.d)
	for i := range res {
		res[i] = f.Mul(s, a[i])
	}
	return res
}
