package verifier

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	plonky2 "github.com/ZpokenWeb3/plonky2-gates/plonk"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/test"
)

const (
	SystemGroth16 = "groth16"
	SystemPlonk   = "plonk"
)

func builderFor(system string) (frontend.NewBuilder, error) {
	switch system {
	case SystemPlonk:
		return scs.NewBuilder, nil
	case SystemGroth16:
		return r1cs.NewBuilder, nil
	default:
		return nil, fmt.Errorf("unknown proof system %q, expected %s or %s", system, SystemGroth16, SystemPlonk)
	}
}

func CompileTraceCircuit(c *plonky2.Circuit, system string) (constraint.ConstraintSystem, error) {
	builder, err := builderFor(system)
	if err != nil {
		return nil, err
	}
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), builder, NewTraceCircuit(c))
	if err != nil {
		return nil, fmt.Errorf("failed to compile circuit: %w", err)
	}
	return cs, nil
}

// Compiles the trace circuit of c, runs the setup of system and saves the constraint system,
// the keys and the solidity verifier to buildPath.
func SetupTraceCircuit(c *plonky2.Circuit, system string, buildPath string) error {
	log := logger.Logger()
	cs, err := CompileTraceCircuit(c, system)
	if err != nil {
		return err
	}
	log.Info().Int("nbConstraints", cs.GetNbConstraints()).Msg("Running circuit setup")
	start := time.Now()
	switch system {
	case SystemPlonk:
		srs, err := test.NewKZGSRS(cs)
		if err != nil {
			return fmt.Errorf("failed to create srs: %w", err)
		}
		pk, vk, err := plonk.Setup(cs, srs)
		if err != nil {
			return err
		}
		if err := SaveTraceCircuitPlonk(buildPath, cs, pk, vk); err != nil {
			return fmt.Errorf("failed to save circuit: %w", err)
		}
	case SystemGroth16:
		pk, vk, err := groth16.Setup(cs)
		if err != nil {
			return err
		}
		if err := SaveTraceCircuitGroth(buildPath, cs, pk, vk); err != nil {
			return fmt.Errorf("failed to save circuit: %w", err)
		}
	}
	elapsed := time.Since(start)
	log.Info().Msg("Successfully ran circuit setup, time: " + elapsed.String())

	return nil
}

func saveConstraintSystem(path string, cs constraint.ConstraintSystem) error {
	log := logger.Logger()
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}
	log.Info().Msg("Saving circuit constraints to " + path + "/r1cs.bin")
	r1csFile, err := os.Create(path + "/r1cs.bin")
	if err != nil {
		return fmt.Errorf("failed to create r1cs file: %w", err)
	}
	defer r1csFile.Close()
	start := time.Now()
	if _, err := cs.WriteTo(r1csFile); err != nil {
		return fmt.Errorf("failed to write r1cs file: %w", err)
	}
	elapsed := time.Since(start)
	log.Debug().Msg("Successfully saved circuit constraints, time: " + elapsed.String())
	return nil
}

type rawWriter interface {
	WriteRawTo(w io.Writer) (int64, error)
}

func saveKey(path string, name string, key rawWriter) error {
	log := logger.Logger()
	log.Info().Msg("Saving " + name + " to " + path)
	keyFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", name, err)
	}
	defer keyFile.Close()
	start := time.Now()
	if _, err := key.WriteRawTo(keyFile); err != nil {
		return fmt.Errorf("failed to write %s file: %w", name, err)
	}
	elapsed := time.Since(start)
	log.Debug().Msg("Successfully saved " + name + ", time: " + elapsed.String())
	return nil
}

func SaveTraceCircuitPlonk(path string, cs constraint.ConstraintSystem, pk plonk.ProvingKey, vk plonk.VerifyingKey) error {
	log := logger.Logger()
	if err := saveConstraintSystem(path, cs); err != nil {
		return err
	}
	if err := saveKey(path+"/pk.bin", "proving key", pk); err != nil {
		return err
	}
	if err := saveKey(path+"/vk.bin", "verifying key", vk); err != nil {
		return err
	}

	start := time.Now()
	if err := ExportPlonkVerifierSolidity(path, vk); err != nil {
		return fmt.Errorf("failed to create solidity file: %w", err)
	}
	elapsed := time.Since(start)
	log.Info().Msg("Successfully saved solidity file, time: " + elapsed.String())
	return nil
}

func SaveTraceCircuitGroth(path string, cs constraint.ConstraintSystem, pk groth16.ProvingKey, vk groth16.VerifyingKey) error {
	log := logger.Logger()
	if err := saveConstraintSystem(path, cs); err != nil {
		return err
	}
	if err := saveKey(path+"/pk.bin", "proving key", pk); err != nil {
		return err
	}
	if err := saveKey(path+"/vk.bin", "verifying key", vk); err != nil {
		return err
	}

	start := time.Now()
	if err := ExportGrothVerifierSolidity(path, vk); err != nil {
		return fmt.Errorf("failed to create solidity file: %w", err)
	}
	elapsed := time.Since(start)
	log.Info().Msg("Successfully saved solidity file, time: " + elapsed.String())
	return nil
}

type solidityExporter interface {
	ExportSolidity(w io.Writer) error
}

func exportSolidity(path string, vk solidityExporter) error {
	log := logger.Logger()
	buf := new(bytes.Buffer)
	if err := vk.ExportSolidity(buf); err != nil {
		log.Err(err).Msg("failed to export verifying key to solidity")
		return err
	}

	contractFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer contractFile.Close()
	w := bufio.NewWriter(contractFile)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	return w.Flush()
}

func ExportPlonkVerifierSolidity(path string, vk plonk.VerifyingKey) error {
	return exportSolidity(path+"/PlonkVerifier.sol", vk)
}

func ExportGrothVerifierSolidity(path string, vk groth16.VerifyingKey) error {
	return exportSolidity(path+"/GrothVerifier.sol", vk)
}

type keyReader interface {
	ReadFrom(r io.Reader) (int64, error)
}

func loadFrom(path string, name string, dst keyReader) error {
	log := logger.Logger()
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s file: %w", name, err)
	}
	defer f.Close()
	start := time.Now()
	if _, err := dst.ReadFrom(bufio.NewReader(f)); err != nil {
		return fmt.Errorf("failed to read %s file: %w", name, err)
	}
	elapsed := time.Since(start)
	log.Debug().Msg("Successfully loaded " + name + ", time: " + elapsed.String())
	return nil
}

func LoadPlonkVerifierKey(path string) (plonk.VerifyingKey, error) {
	vk := plonk.NewVerifyingKey(ecc.BN254)
	if err := loadFrom(path+"/vk.bin", "verifying key", vk); err != nil {
		return nil, err
	}
	return vk, nil
}

func LoadPlonkProverData(path string) (constraint.ConstraintSystem, plonk.ProvingKey, error) {
	cs := plonk.NewCS(ecc.BN254)
	if err := loadFrom(path+"/r1cs.bin", "constraint system", cs); err != nil {
		return nil, nil, err
	}
	pk := plonk.NewProvingKey(ecc.BN254)
	if err := loadFrom(path+"/pk.bin", "proving key", pk); err != nil {
		return nil, nil, err
	}
	return cs, pk, nil
}

func LoadGroth16VerifierKey(path string) (groth16.VerifyingKey, error) {
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if err := loadFrom(path+"/vk.bin", "verifying key", vk); err != nil {
		return nil, err
	}
	return vk, nil
}

func LoadGroth16ProverData(path string) (constraint.ConstraintSystem, groth16.ProvingKey, error) {
	cs := groth16.NewCS(ecc.BN254)
	if err := loadFrom(path+"/r1cs.bin", "constraint system", cs); err != nil {
		return nil, nil, err
	}
	pk := groth16.NewProvingKey(ecc.BN254)
	if err := loadFrom(path+"/pk.bin", "proving key", pk); err != nil {
		return nil, nil, err
	}
	return cs, pk, nil
}
