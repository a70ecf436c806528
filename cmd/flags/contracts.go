// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/luxfi/wasm-deploy/pkg/application"
	"github.com/luxfi/wasm-deploy/pkg/contract"
)

const contractsFlag = "contracts"

var (
	errNothingPicked    = errors.New("no contracts picked")
	errPickAndContracts = errors.New("--pick cannot be combined with --contracts")
)

// ContractsFlag is a comma separated list of contract names. Empty selects every
// contract of the workspace.
type ContractsFlag []string

var _ pflag.Value = (*ContractsFlag)(nil)

func (f *ContractsFlag) String() string {
	return strings.Join(*f, ",")
}

func (f *ContractsFlag) Set(v string) error {
	for _, name := range strings.Split(v, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*f = append(*f, name)
		}
	}
	return nil
}

func (*ContractsFlag) Type() string {
	return "names"
}

// Select resolves the listed names against the workspace contracts.
func (f *ContractsFlag) Select(app *application.WasmDeploy) ([]contract.Contract, error) {
	all, err := app.LoadContracts()
	if err != nil {
		return nil, err
	}
	return contract.Select(all, *f)
}

// Pick lets the user choose the contracts from the workspace list instead of naming
// them. The choice keeps the workspace order.
func (f *ContractsFlag) Pick(app *application.WasmDeploy) ([]contract.Contract, error) {
	if len(*f) > 0 {
		return nil, errPickAndContracts
	}
	all, err := app.LoadContracts()
	if err != nil {
		return nil, err
	}
	picked, err := app.Prompt.CaptureMultiSelect("Which contracts?", contract.Names(all))
	if err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return nil, errNothingPicked
	}
	chosen := make(map[string]bool, len(picked))
	for _, name := range picked {
		chosen[name] = true
	}
	names := make([]string, 0, len(picked))
	for _, name := range contract.Names(all) {
		if chosen[name] {
			names = append(names, name)
		}
	}
	return contract.Select(all, names)
}

// AddPickFlagToCmd registers --pick.
func AddPickFlagToCmd(cmd *cobra.Command, pick *bool) {
	cmd.Flags().BoolVarP(pick, "pick", "p", false, "choose the contracts from a list")
}

// AddContractsFlagToCmd registers --contracts and completes it with the workspace
// contract names.
func AddContractsFlagToCmd(cmd *cobra.Command, app *application.WasmDeploy, f *ContractsFlag) {
	cmd.Flags().VarP(f, contractsFlag, "c", "comma separated contracts to operate on (default all)")
	_ = cmd.RegisterFlagCompletionFunc(contractsFlag, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		all, err := app.LoadContracts()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return contract.Names(all), cobra.ShellCompDirectiveNoFileComp
	})
}

// AddDryRunFlagToCmd registers --dry-run.
func AddDryRunFlagToCmd(cmd *cobra.Command, dryRun *bool) {
	cmd.Flags().BoolVar(dryRun, "dry-run", false, "print the messages instead of sending them")
}
