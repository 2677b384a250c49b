package witness

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/consensys/gnark/logger"
	"golang.org/x/sync/errgroup"
)

var ErrGeneratorsPending = errors.New("generators never became ready")

type resolverConfig struct {
	concurrency int
}

// Option configures GeneratePartialWitness.
type Option func(*resolverConfig)

// WithConcurrency bounds the number of generators run in parallel within a round.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(c *resolverConfig) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// GeneratePartialWitness runs generators to a fixpoint starting from inputs, which is left
// untouched. A generator becomes ready once all of its dependencies are set; every ready
// generator of a round runs in parallel and the outputs are applied once the round is over,
// so generators never observe each other's writes mid-round.
//
// The first generator error aborts the pass. If the queue drains while some generators are
// still waiting on unset wires, the partially filled witness is returned along with an error
// wrapping ErrGeneratorsPending.
func GeneratePartialWitness(
	ctx context.Context,
	inputs *PartialWitness,
	generators []WitnessGenerator,
	opts ...Option,
) (*PartialWitness, error) {
	cfg := resolverConfig{concurrency: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&cfg)
	}

	log := logger.Logger().With().Int("nbGenerators", len(generators)).Logger()
	start := time.Now()

	witness := inputs.Clone()

	watchers := make(map[Wire][]int)
	remaining := make([]int, len(generators))
	var ready []int
	for i, generator := range generators {
		seen := make(map[Wire]struct{})
		for _, dep := range generator.Dependencies() {
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			if witness.Contains(dep) {
				continue
			}
			watchers[dep] = append(watchers[dep], i)
			remaining[i]++
		}
		if remaining[i] == 0 {
			ready = append(ready, i)
		}
	}

	nbRun := 0
	for round := 0; len(ready) > 0; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outputs := make([]*GeneratedValues, len(ready))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.concurrency)
		for k, idx := range ready {
			k, idx := k, idx
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				out, err := generators[idx].RunOnce(witness)
				if err != nil {
					return fmt.Errorf("generator %s: %w", generators[idx].Id(), err)
				}
				outputs[k] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		nbRun += len(ready)

		var next []int
		nbWritten := 0
		for _, out := range outputs {
			if out == nil {
				continue
			}
			for _, wv := range out.Values() {
				if err := witness.SetWire(wv.Wire, wv.Value); err != nil {
					return nil, err
				}
				nbWritten++
				for _, idx := range watchers[wv.Wire] {
					remaining[idx]--
					if remaining[idx] == 0 {
						next = append(next, idx)
					}
				}
				delete(watchers, wv.Wire)
			}
		}

		log.Debug().Int("round", round).Int("ran", len(ready)).Int("written", nbWritten).Msg("witness generation round")
		ready = next
	}

	if nbRun != len(generators) {
		return witness, fmt.Errorf("%w: %d of %d generators", ErrGeneratorsPending, len(generators)-nbRun, len(generators))
	}

	log.Debug().Int("nbWires", witness.Len()).Msg("witness generation done, time: " + time.Since(start).String())
	return witness, nil
}
