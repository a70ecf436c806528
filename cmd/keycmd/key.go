// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keycmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/application"
)

var app *application.WasmDeploy

func NewCmd(injectedApp *application.WasmDeploy) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage signing keys",
		Long: `Manage the keys envs sign with. A key is a mnemonic stored in the workspace
state file, a reference to a key in the OS keyring, or a ledger account.
Ledger accounts only sign from a binary built with CGO_ENABLED=1 and -tags ledger.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Println(err)
			}
		},
	}
	app = injectedApp
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newShowCmd())
	return cmd
}
