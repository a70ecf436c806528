// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/application"
)

var app *application.WasmDeploy

// NewCmd needs the root command to generate shell completions for it.
func NewCmd(injectedApp *application.WasmDeploy, root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and tune the workspace configuration",
		Long:  `Create the workspace state file and tune how wasm-deploy runs`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Println(err)
			}
		},
	}
	app = injectedApp
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newChunkSizeCmd())
	cmd.AddCommand(newCompletionCmd(root))
	cmd.AddCommand(newSetCmd())
	return cmd
}
