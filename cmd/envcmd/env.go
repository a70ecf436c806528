// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package envcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/application"
)

var app *application.WasmDeploy

func NewCmd(injectedApp *application.WasmDeploy) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage deployment environments",
		Long: `An env pairs a chain with a key and keeps its own contract registry. Exactly
one env is active and every deployment command works against it.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Println(err)
			}
		},
	}
	app = injectedApp
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newSelectCmd())
	cmd.AddCommand(newIDCmd())
	cmd.AddCommand(newShowCmd())
	return cmd
}
