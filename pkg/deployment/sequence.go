// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deployment

import (
	"context"

	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

// Builder compiles the artifacts of contracts.
type Builder interface {
	Build(ctx context.Context, contracts []contract.Contract) error
}

// Sequencer composes stages into the deploy and migrate commands.
type Sequencer struct {
	Engine *Engine
	// Builder may be nil, in which case every build is skipped.
	Builder Builder
	// Steps reports each stage with its duration. Nil stays quiet.
	Steps *ux.StepTracker
}

func (s *Sequencer) step(name string, fn func() error) error {
	if s.Steps == nil {
		return fn()
	}
	s.Steps.Start(name)
	if err := fn(); err != nil {
		s.Steps.Failed(err.Error())
		return err
	}
	s.Steps.Complete("")
	return nil
}

func (s *Sequencer) run(ctx context.Context, stage Stage, contracts []contract.Contract) error {
	return s.step(stage.String(), func() error {
		return s.run(ctx, stage, contracts)
	})
}

func (s *Sequencer) build(ctx context.Context, contracts []contract.Contract) error {
	if s.Builder == nil {
		return nil
	}
	return s.step("build", func() error {
		return s.Builder.Build(ctx, contracts)
	})
}

// Deploy builds, stores, instantiates, configures and sets up contracts.
func (s *Sequencer) Deploy(ctx context.Context, contracts []contract.Contract, noBuild bool) error {
	if !noBuild {
		if err := s.build(ctx, contracts); err != nil {
			return err
		}
	}
	if err := s.run(ctx, StoreCode, contracts); err != nil {
		return err
	}
	if err := s.Instantiate(ctx, contracts); err != nil {
		return err
	}
	if err := s.run(ctx, SetConfig, contracts); err != nil {
		return err
	}
	return s.run(ctx, SetUp, contracts)
}

// Instantiate runs the instantiate stage followed by the external instantiations.
func (s *Sequencer) Instantiate(ctx context.Context, contracts []contract.Contract) error {
	if err := s.run(ctx, Instantiate, contracts); err != nil {
		return err
	}
	return s.run(ctx, ExternalInstantiate, contracts)
}

// Migrate rebuilds and stores contracts unless noBuild, then migrates them to their
// latest code id.
func (s *Sequencer) Migrate(ctx context.Context, contracts []contract.Contract, noBuild bool) error {
	if !noBuild {
		if err := s.build(ctx, contracts); err != nil {
			return err
		}
		if err := s.run(ctx, StoreCode, contracts); err != nil {
			return err
		}
	}
	return s.run(ctx, Migrate, contracts)
}
