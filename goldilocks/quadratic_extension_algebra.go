package goldilocks

// The extension degree used inside circuits.
const D = 2

type QuadraticExtensionAlgebraVariable = [D]QuadraticExtensionVariable

func (p *Chip) SubExtensionAlgebra(
	a QuadraticExtensionAlgebraVariable,
	b QuadraticExtensionAlgebraVariable,
) QuadraticExtensionAlgebraVariable {
	var diff QuadraticExtensionAlgebraVariable
	for i := 0; i < D; i++ {
		diff[i] = p.SubExtension(a[i], b[i])
	}
	return diff
}

func (p *Chip) ScalarMulExtensionAlgebra(
	a QuadraticExtensionVariable,
	b QuadraticExtensionAlgebraVariable,
) QuadraticExtensionAlgebraVariable {
	var product QuadraticExtensionAlgebraVariable
	for i := 0; i < D; i++ {
		product[i] = p.MulExtension(a, b[i])
	}
	return product
}
