// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaincmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <label>",
		Short: "Delete a chain no env uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			label := args[0]
			err := app.UpdateConfig(func(cfg *models.Config) error {
				if _, ok := cfg.Chains[label]; !ok {
					return fmt.Errorf("%w: %s", constants.ErrChainConfigNotFound, label)
				}
				for _, env := range cfg.Envs {
					if env.ChainLabel == label {
						return fmt.Errorf("chain %s is used by env %s, delete the env first", label, env.EnvID)
					}
				}
				cfg.DeleteChain(label)
				return nil
			})
			if err != nil {
				return err
			}
			ux.Logger.PrintToUser("Deleted chain %s", label)
			return nil
		},
	}
}
