// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package envcmd

import (
	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select [env-id]",
		Short: "Make an env the active one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var envID string
			err := app.UpdateConfig(func(cfg *models.Config) error {
				if len(args) == 1 {
					envID = args[0]
				} else {
					var err error
					if envID, err = promptEnvID(app.Prompt, cfg); err != nil {
						return err
					}
				}
				return cfg.ActivateEnv(envID)
			})
			if err != nil {
				return err
			}
			ux.Logger.GreenCheckmarkToUser("Env %s is now active", envID)
			return nil
		},
	}
}

// promptEnvID asks for an env, starting on the active one.
func promptEnvID(p prompts.Prompter, cfg *models.Config) (string, error) {
	if len(cfg.Envs) == 0 {
		return "", constants.ErrEnvNotFound
	}
	active := cfg.Envs[0].EnvID
	if env, err := cfg.ActiveEnv(); err == nil {
		active = env.EnvID
	}
	return p.CaptureListWithDefault("Which env should be active?", cfg.EnvIDs(), active)
}

func newIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id",
		Short: "Print the id of the active env",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			env, err := cfg.ActiveEnv()
			if err != nil {
				return err
			}
			ux.Logger.PrintToUser("%s", env.EnvID)
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List every env with its chain and key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			return ux.PrintEnvs(cmd.OutOrStdout(), cfg.Envs)
		},
	}
}
