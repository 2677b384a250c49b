package gates

import (
	"fmt"
	"regexp"
	"strconv"

	gl "github.com/ZpokenWeb3/plonky2-gates/goldilocks"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
)

// A Gate is a parameterized set of polynomial constraints over the wires of one trace row.
//
// The same constraint polynomials are evaluated in three contexts: at an extension field point
// (EvalUnfiltered), on base field trace values (EvalUnfilteredBase) and inside another circuit
// (EvalUnfilteredCircuit). For any assignment the three must agree once the base values are
// embedded into the extension, and all of them return exactly NumConstraints() values.
type Gate interface {
	Id() string
	EvalUnfiltered(vars EvaluationVars) []gl.ExtensionElement
	EvalUnfilteredBase(vars EvaluationVarsBase) []goldilocks.Element
	EvalUnfilteredCircuit(
		api frontend.API,
		glApi *gl.Chip,
		vars EvaluationTargets,
	) []gl.QuadraticExtensionVariable
	// The generators that fill this gate's derived wires at the given row.
	Generators(row uint64, localConstants []goldilocks.Element) []witness.WitnessGenerator
	NumWires() uint64
	NumConstants() uint64
	// Upper bound on the total degree of any constraint polynomial.
	Degree() uint64
	NumConstraints() uint64
}

var gateRegexHandlers = map[*regexp.Regexp]func(parameters map[string]string) Gate{
	arithmeticGateRegex:   deserializeArithmeticGate,
	constantGateRegex:     deserializeConstantGate,
	noopGateRegex:         deserializeNoopGate,
	publicInputGateRegex:  deserializePublicInputGate,
	randomAccessGateRegex: deserializeRandomAccessGate,
}

func GateInstanceFromId(gateId string) Gate {
	for regex, handler := range gateRegexHandlers {
		matches := regex.FindStringSubmatch(gateId)
		if matches != nil {
			parameters := make(map[string]string)
			for i, name := range regex.SubexpNames() {
				if i != 0 && name != "" {
					parameters[name] = matches[i]
				}
			}
			return handler(parameters)
		}
	}
	panic(fmt.Sprintf("Unknown gate ID %s", gateId))
}

// Parses the unsigned integer parameter name of gateName, panicking if it is missing or
// malformed.
func uintParameter(parameters map[string]string, name string, gateName string) uint64 {
	raw, ok := parameters[name]
	if !ok {
		panic(fmt.Sprintf("Missing field %s in %s", name, gateName))
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		panic(fmt.Sprintf("Invalid %s field in %s", name, gateName))
	}
	return value
}

// Like GateInstanceFromId, but reports unknown or malformed ids as an error.
func ParseGateId(gateId string) (gate Gate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse gate id %q: %v", gateId, r)
		}
	}()
	return GateInstanceFromId(gateId), nil
}
