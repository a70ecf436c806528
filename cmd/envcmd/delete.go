// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package envcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

func newDeleteCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <env-id>",
		Short: "Delete an env together with its contract registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			envID := args[0]
			if !force {
				if !prompts.IsInteractive() {
					return fmt.Errorf("confirmation required: use --force to delete without confirmation")
				}
				confirm, err := app.Prompt.CaptureNoYes(fmt.Sprintf("Delete env %s and every address recorded in it?", envID))
				if err != nil {
					return err
				}
				if !confirm {
					ux.Logger.PrintToUser("Cancelled")
					return nil
				}
			}
			return app.UpdateConfig(func(cfg *models.Config) error {
				return deleteEnv(cfg, envID)
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt (required in non-interactive mode)")
	return cmd
}

// deleteEnv removes envID. When it was active the first remaining env takes over.
func deleteEnv(cfg *models.Config, envID string) error {
	var wasActive, found bool
	for _, e := range cfg.Envs {
		if e.EnvID == envID {
			found, wasActive = true, e.IsActive
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", constants.ErrEnvNotFound, envID)
	}
	cfg.DeleteEnv(envID)
	ux.Logger.PrintToUser("Deleted env %s", envID)
	if wasActive && len(cfg.Envs) > 0 {
		next := cfg.Envs[0].EnvID
		ux.Logger.PrintToUser("Env %s is now active", next)
		return cfg.ActivateEnv(next)
	}
	return nil
}
