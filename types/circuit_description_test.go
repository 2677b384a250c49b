package types

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZpokenWeb3/plonky2-gates/plonk"
	"github.com/ZpokenWeb3/plonky2-gates/witness"
	"github.com/stretchr/testify/require"
)

const testDescription = `{
	"degree": 2,
	"gates": [
		"ArithmeticGate { num_ops: 1 }",
		"RandomAccessGate { vec_size: 3, _phantom: PhantomData<plonky2_field::goldilocks_field::GoldilocksField> }<D=2>"
	],
	"rows": [
		{"gate": 0, "constants": [2, 1], "wires": {"0": 3, "1": 4, "2": 5}},
		{"gate": 1, "constants": [], "wires": {"0": 1, "1": 20, "2": 21, "3": 10, "4": 11, "5": 20, "6": 21, "7": 30, "8": 31}}
	],
	"public_inputs_hash": [1, 2, 3, 4]
}`

func TestReadCircuitDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuit.json")
	require.NoError(t, os.WriteFile(path, []byte(testDescription), 0644))

	raw, err := ReadCircuitDescription(path)
	require.NoError(t, err)
	require.Equal(t, uint64(2), raw.Degree)
	require.Len(t, raw.Gates, 2)
	require.Len(t, raw.Rows, 2)

	hash, err := raw.PublicInputs()
	require.NoError(t, err)
	require.Equal(t, uint64(4), hash[3].Uint64())

	circuit, inputs, err := raw.ToCircuit()
	require.NoError(t, err)
	require.Equal(t, uint64(2), circuit.NumRows())
	require.Equal(t, 3+9, inputs.Len())

	pw, err := plonk.GenerateWitness(context.Background(), circuit, inputs)
	require.NoError(t, err)
	out, ok := pw.GetWire(witness.NewWire(0, 3))
	require.True(t, ok)
	require.Equal(t, uint64(2*3*4+5), out.Uint64())
	require.NoError(t, plonk.CheckTrace(circuit, pw, hash))
	require.NoError(t, plonk.CheckTraceExtension(circuit, pw, hash, raw.Degree))

	_, err = ReadCircuitDescription(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestCircuitDescriptionDefaultsDegree(t *testing.T) {
	raw, err := ReadCircuitDescriptionFromRequest([]byte(`{"gates": ["NoopGate"], "rows": [{"gate": 0}]}`))
	require.NoError(t, err)
	require.Equal(t, uint64(2), raw.Degree)
}

func TestInvalidCircuitDescriptions(t *testing.T) {
	testCases := map[string]string{
		"malformed json":   `{"gates": [`,
		"unknown gate":     `{"gates": ["PoseidonGate"], "rows": []}`,
		"unknown gate row": `{"gates": ["NoopGate"], "rows": [{"gate": 1}]}`,
		"constant count":   `{"gates": ["ConstantGate { num_consts: 2 }"], "rows": [{"gate": 0, "constants": [1]}]}`,
		"wire column":      `{"gates": ["PublicInputGate"], "rows": [{"gate": 0, "wires": {"4": 1}}]}`,
		"wire name":        `{"gates": ["PublicInputGate"], "rows": [{"gate": 0, "wires": {"a": 1}}]}`,
		"non canonical":    `{"gates": ["PublicInputGate"], "rows": [{"gate": 0, "wires": {"0": 18446744069414584321}}]}`,
		"degree":           `{"degree": 3, "gates": ["NoopGate"], "rows": [{"gate": 0}]}`,
		"gate degree":      `{"gates": ["RandomAccessGate { vec_size: 3 }<D=1>"], "rows": []}`,
		"gate degree 4":    `{"degree": 4, "gates": ["RandomAccessGate { vec_size: 3 }<D=2>"], "rows": []}`,
		"gate degree 3":    `{"degree": 2, "gates": ["RandomAccessGate { vec_size: 3 }<D=3>"], "rows": []}`,
	}
	for name, body := range testCases {
		raw, err := ReadCircuitDescriptionFromRequest([]byte(body))
		if err == nil {
			_, _, err = raw.ToCircuit()
		}
		require.ErrorIs(t, err, ErrInvalidDescription, name)
	}

	raw, err := ReadCircuitDescriptionFromRequest([]byte(`{"public_inputs_hash": [18446744073709551615, 0, 0, 0]}`))
	require.NoError(t, err)
	_, err = raw.PublicInputs()
	require.ErrorIs(t, err, ErrInvalidDescription)
}
