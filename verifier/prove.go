package verifier

import (
	"bytes"
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	plonk_bn254 "github.com/consensys/gnark/backend/plonk/bn254"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// A proof of a TraceCircuit along with its public witness.
type ProofWithWitness struct {
	System        string        `json:"system"`
	PublicInputs  []uint64      `json:"inputs"`
	PublicWitness hexutil.Bytes `json:"public_witness"`
	Proof         hexutil.Bytes `json:"proof"`
}

// Proves assignment with the keys saved in buildPath by SetupTraceCircuit and verifies the
// proof before returning it.
func ProveTrace(buildPath string, system string, assignment *TraceCircuit) (*ProofWithWitness, error) {
	log := logger.Logger()

	start := time.Now()
	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("failed to generate witness: %w", err)
	}
	publicWitness, err := fullWitness.Public()
	if err != nil {
		return nil, fmt.Errorf("failed to extract public witness: %w", err)
	}
	publicWitnessBytes, err := publicWitness.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize public witness: %w", err)
	}
	elapsed := time.Since(start)
	log.Info().Msg("Successfully generated witness, time: " + elapsed.String())

	result := &ProofWithWitness{System: system, PublicWitness: publicWitnessBytes}
	for i := range assignment.PublicInputsHash {
		result.PublicInputs = append(result.PublicInputs, limbUint64(assignment.PublicInputsHash[i].Limb))
	}

	log.Info().Msg("Creating proof")
	start = time.Now()
	switch system {
	case SystemPlonk:
		cs, pk, err := LoadPlonkProverData(buildPath)
		if err != nil {
			return nil, err
		}
		vk, err := LoadPlonkVerifierKey(buildPath)
		if err != nil {
			return nil, err
		}
		proof, err := plonk.Prove(cs, pk, fullWitness)
		if err != nil {
			return nil, fmt.Errorf("failed to create proof: %w", err)
		}
		if err := plonk.Verify(proof, vk, publicWitness); err != nil {
			return nil, fmt.Errorf("failed to verify proof: %w", err)
		}
		result.Proof = proof.(*plonk_bn254.Proof).MarshalSolidity()
	case SystemGroth16:
		cs, pk, err := LoadGroth16ProverData(buildPath)
		if err != nil {
			return nil, err
		}
		vk, err := LoadGroth16VerifierKey(buildPath)
		if err != nil {
			return nil, err
		}
		proof, err := groth16.Prove(cs, pk, fullWitness)
		if err != nil {
			return nil, fmt.Errorf("failed to create proof: %w", err)
		}
		if err := groth16.Verify(proof, vk, publicWitness); err != nil {
			return nil, fmt.Errorf("failed to verify proof: %w", err)
		}
		buf := new(bytes.Buffer)
		if _, err := proof.WriteRawTo(buf); err != nil {
			return nil, fmt.Errorf("failed to serialize proof: %w", err)
		}
		result.Proof = buf.Bytes()
	default:
		_, err := builderFor(system)
		return nil, err
	}
	elapsed = time.Since(start)
	log.Info().Int("proofLen", len(result.Proof)).Msg("Successfully created and verified proof, time: " + elapsed.String())

	return result, nil
}

func limbUint64(v frontend.Variable) uint64 {
	switch x := v.(type) {
	case uint64:
		return x
	case int:
		return uint64(x)
	default:
		panic(fmt.Sprintf("unexpected public input assignment %T", v))
	}
}
