// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keycmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a key no env uses",
		Long: `Delete a key from the state file. Keys kept in the OS keyring stay there and
can be removed with the keyring tools of the OS.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]
			err := app.UpdateConfig(func(cfg *models.Config) error {
				if _, err := cfg.Key(name); err != nil {
					return err
				}
				for _, env := range cfg.Envs {
					if env.KeyName == name {
						return fmt.Errorf("key %s is used by env %s, delete the env first", name, env.EnvID)
					}
				}
				cfg.DeleteKey(name)
				return nil
			})
			if err != nil {
				return err
			}
			ux.Logger.PrintToUser("Deleted key %s", name)
			return nil
		},
	}
}
