// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

var preferenceKeys = []string{
	constants.ConfigWorkspaceKey,
	constants.ConfigChunkSizeKey,
	constants.ConfigNonInteractive,
	constants.ConfigToolchainKey,
	constants.ConfigTargetDirKey,
	constants.ConfigArtifactsDirKey,
	constants.ConfigStateFileKey,
}

// newSetCmd edits ~/.wasm-deploy/cli.json, the preferences shared by every workspace.
func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a user preference in cli.json",
		Args:      cobra.ExactArgs(2),
		ValidArgs: preferenceKeys,
		RunE: func(_ *cobra.Command, args []string) error {
			key, raw := args[0], args[1]
			if !slices.Contains(preferenceKeys, key) {
				return fmt.Errorf("unknown preference %q, expected one of %v", key, preferenceKeys)
			}
			var value any = raw
			switch key {
			case constants.ConfigChunkSizeKey:
				n, err := strconv.Atoi(raw)
				if err != nil || n < 1 {
					return fmt.Errorf("%s must be a positive integer", key)
				}
				value = n
			case constants.ConfigNonInteractive:
				b, err := strconv.ParseBool(raw)
				if err != nil {
					return fmt.Errorf("%s must be true or false", key)
				}
				value = b
			}
			if err := app.Conf.SetConfigValue(key, value); err != nil {
				return err
			}
			ux.Logger.PrintToUser("%s = %v", key, value)
			return nil
		},
	}
}
