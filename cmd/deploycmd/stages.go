// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deploycmd

import (
	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/cmd/flags"
	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/deployment"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

type stageFlags struct {
	contracts   flags.ContractsFlag
	pick        bool
	dryRun      bool
	interactive bool
	noBuild     bool
	cargoArgs   []string
}

func (f *stageFlags) selectContracts() ([]contract.Contract, error) {
	if f.pick {
		return f.contracts.Pick(app)
	}
	return f.contracts.Select(app)
}

func (f *stageFlags) addInteractive(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "enter the messages instead of using the preprogrammed ones")
}

func (f *stageFlags) addBuild(cmd *cobra.Command, noBuildUsage string) {
	cmd.Flags().BoolVar(&f.noBuild, "no-build", false, noBuildUsage)
	cmd.Flags().StringSliceVar(&f.cargoArgs, "cargo-arg", nil, "extra argument passed to cargo build, repeatable")
}

func newStageCmd(use, short string, f *stageFlags, run func(*cobra.Command, *stageFlags) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}
	flags.AddContractsFlagToCmd(cmd, app, &f.contracts)
	flags.AddPickFlagToCmd(cmd, &f.pick)
	flags.AddDryRunFlagToCmd(cmd, &f.dryRun)
	return cmd
}

// runStages opens a session and hands the selected contracts to fn.
func runStages(cmd *cobra.Command, f *stageFlags, fn func(*deployment.Sequencer, []contract.Contract) error) error {
	contracts, err := f.selectContracts()
	if err != nil {
		return err
	}
	s, err := openSession(sessionOptions{dryRun: f.dryRun, interactive: f.interactive})
	if err != nil {
		return err
	}
	defer s.Close()
	seq := &deployment.Sequencer{
		Engine:  s.engine,
		Builder: newBuilder(f.cargoArgs),
		Steps:   ux.NewStepTracker(ux.Logger),
	}
	return fn(seq, contracts)
}

func newBuildCmd() *cobra.Command {
	f := &stageFlags{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build, optimize and compress contracts into the artifacts dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			contracts, err := f.selectContracts()
			if err != nil {
				return err
			}
			if err := checkBuildTools(cmd.Context()); err != nil {
				return err
			}
			if err := newBuilder(f.cargoArgs).Build(cmd.Context(), contracts); err != nil {
				return err
			}
			ux.Logger.GreenCheckmarkToUser("Built %d contracts into %s", len(contracts), app.Workspace.ArtifactsDir)
			return nil
		},
	}
	flags.AddContractsFlagToCmd(cmd, app, &f.contracts)
	flags.AddPickFlagToCmd(cmd, &f.pick)
	cmd.Flags().StringSliceVar(&f.cargoArgs, "cargo-arg", nil, "extra argument passed to cargo build, repeatable")
	return cmd
}

func newDeployCmd() *cobra.Command {
	f := &stageFlags{}
	cmd := newStageCmd("deploy", "Build, store, instantiate, configure and set up contracts", f,
		func(cmd *cobra.Command, f *stageFlags) error {
			if !f.noBuild {
				if err := checkBuildTools(cmd.Context()); err != nil {
					return err
				}
			}
			return runStages(cmd, f, func(seq *deployment.Sequencer, cs []contract.Contract) error {
				if err := seq.Deploy(cmd.Context(), cs, f.noBuild); err != nil {
					return err
				}
				ux.Logger.GreenCheckmarkToUser("Deployed %d contracts", len(cs))
				return nil
			})
		})
	f.addInteractive(cmd)
	f.addBuild(cmd, "store the artifacts already in the artifacts dir without rebuilding")
	return cmd
}

func newStoreCodeCmd() *cobra.Command {
	f := &stageFlags{}
	return newStageCmd("store-code", "Store the contract artifacts on chain and record their code ids", f,
		func(cmd *cobra.Command, f *stageFlags) error {
			return runStages(cmd, f, func(seq *deployment.Sequencer, cs []contract.Contract) error {
				return seq.Engine.Run(cmd.Context(), deployment.StoreCode, cs)
			})
		})
}

func newInstantiateCmd() *cobra.Command {
	f := &stageFlags{}
	cmd := newStageCmd("instantiate", "Instantiate stored contracts and record their addresses", f,
		func(cmd *cobra.Command, f *stageFlags) error {
			return runStages(cmd, f, func(seq *deployment.Sequencer, cs []contract.Contract) error {
				return seq.Instantiate(cmd.Context(), cs)
			})
		})
	f.addInteractive(cmd)
	return cmd
}

func newMigrateCmd() *cobra.Command {
	f := &stageFlags{}
	cmd := newStageCmd("migrate", "Rebuild, store and migrate instantiated contracts to the new code", f,
		func(cmd *cobra.Command, f *stageFlags) error {
			if !f.noBuild {
				if err := checkBuildTools(cmd.Context()); err != nil {
					return err
				}
			}
			return runStages(cmd, f, func(seq *deployment.Sequencer, cs []contract.Contract) error {
				return seq.Migrate(cmd.Context(), cs, f.noBuild)
			})
		})
	f.addInteractive(cmd)
	f.addBuild(cmd, "migrate to the latest stored code without building and storing")
	return cmd
}

func newSetConfigCmd() *cobra.Command {
	f := &stageFlags{}
	return newStageCmd("set-config", "Send the set_config message of each contract", f,
		func(cmd *cobra.Command, f *stageFlags) error {
			return runStages(cmd, f, func(seq *deployment.Sequencer, cs []contract.Contract) error {
				return seq.Engine.Run(cmd.Context(), deployment.SetConfig, cs)
			})
		})
}

func newSetUpCmd() *cobra.Command {
	f := &stageFlags{}
	return newStageCmd("set-up", "Send the set_up messages of each contract in one transaction", f,
		func(cmd *cobra.Command, f *stageFlags) error {
			return runStages(cmd, f, func(seq *deployment.Sequencer, cs []contract.Contract) error {
				return seq.Engine.Run(cmd.Context(), deployment.SetUp, cs)
			})
		})
}
