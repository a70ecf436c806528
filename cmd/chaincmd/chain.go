// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaincmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/application"
)

var app *application.WasmDeploy

func NewCmd(injectedApp *application.WasmDeploy) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Manage the chains of the workspace",
		Long: `Manage the chains deployments can target. A chain is stored under a label and
referenced by envs.`,
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
