// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deploycmd holds the deployment stage commands and the contract call commands.
package deploycmd

import (
	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/application"
)

var app *application.WasmDeploy

// NewCmds returns the top level commands of this package.
func NewCmds(injectedApp *application.WasmDeploy) []*cobra.Command {
	app = injectedApp
	return []*cobra.Command{
		newBuildCmd(),
		newDeployCmd(),
		newStoreCodeCmd(),
		newInstantiateCmd(),
		newMigrateCmd(),
		newSetConfigCmd(),
		newSetUpCmd(),
		newExecuteCmd(),
		newQueryCmd(),
		newExecutePayloadCmd(),
		newQueryPayloadCmd(),
		newSendCmd(),
		newCw20SendCmd(),
		newCw20ExecuteCmd(),
		newCw20QueryCmd(),
		newCw20InstantiateCmd(),
	}
}
