package goldilocks

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// Assigns native base field values to circuit variables, embedded into the quadratic
// extension. Used to feed base-field trace rows into recursive evaluation.
func ElementsToQuadraticExtensionArray(input []goldilocks.Element) []QuadraticExtensionVariable {
	output := make([]QuadraticExtensionVariable, len(input))
	for i := range input {
		output[i] = ConstantVariable(input[i]).ToQuadraticExtension()
	}
	return output
}

// Assigns native quadratic extension values to circuit variables.
func ExtensionsToQuadraticExtensionArray(input []ExtensionElement) []QuadraticExtensionVariable {
	output := make([]QuadraticExtensionVariable, len(input))
	for i := range input {
		output[i] = ConstantExtension(input[i])
	}
	return output
}

func ElementsToVariableArray(input []goldilocks.Element) []Variable {
	output := make([]Variable, len(input))
	for i := range input {
		output[i] = ConstantVariable(input[i])
	}
	return output
}

// Parses decimal strings into native elements, panicking on malformed input.
func StrArrayToElementArray(input []string) []goldilocks.Element {
	output := make([]goldilocks.Element, len(input))
	for i := range input {
		if _, err := output[i].SetString(input[i]); err != nil {
			panic(err)
		}
	}
	return output
}
