// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/application"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

var app *application.WasmDeploy

func NewCmd(injectedApp *application.WasmDeploy) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Edit the contract registry of the active env",
		Long: `Edit the contract registry of the active env by hand, for contracts deployed
outside of wasm-deploy or entries that need fixing.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Println(err)
			}
		},
	}
	app = injectedApp
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newListCmd())
	return cmd
}

func newAddCmd() *cobra.Command {
	var (
		addr   string
		codeID uint64
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a contract address and code id",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			entry := models.ContractInfo{Name: args[0], Addr: addr, CodeID: codeID}
			if !entry.HasAddr() && !entry.HasCodeID() {
				return fmt.Errorf("give at least one of --addr and --code-id")
			}
			err := app.UpdateConfig(func(cfg *models.Config) error {
				return cfg.AddContract(entry)
			})
			if err != nil {
				return err
			}
			ux.Logger.GreenCheckmarkToUser("Registered %s", entry.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "contract address")
	cmd.Flags().Uint64Var(&codeID, "code-id", 0, "stored code id")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a contract from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			err := app.UpdateConfig(func(cfg *models.Config) error {
				return cfg.DeleteContract(args[0])
			})
			if err != nil {
				return err
			}
			ux.Logger.PrintToUser("Removed %s", args[0])
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the code ids and addresses of the active env",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			contracts, err := cfg.Contracts()
			if err != nil {
				return err
			}
			return ux.PrintContracts(cmd.OutOrStdout(), contracts)
		},
	}
}
