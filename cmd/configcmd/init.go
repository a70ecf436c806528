// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/cmd/chaincmd"
	"github.com/luxfi/wasm-deploy/cmd/envcmd"
	"github.com/luxfi/wasm-deploy/cmd/keycmd"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

const (
	defaultKeyName = "deployer"
	defaultEnvID   = "dev"
)

type initFlags struct {
	chain      chaincmd.ChainFlags
	key        keycmd.KeyFlags
	chainLabel string
	keyName    string
	envID      string
	force      bool
}

func newInitCmd() *cobra.Command {
	f := &initFlags{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the workspace state file with a chain, a key and an active env",
		Long: `Create .wasm-deploy/config.json for the workspace. The first chain, key and env
are entered interactively or taken from the flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.ConfigExists() && !f.force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", app.Workspace.ConfigPath)
			}
			if err := app.Lock(); err != nil {
				return err
			}
			defer func() { _ = app.Unlock() }()

			cfg, err := f.build(cmd)
			if err != nil {
				return err
			}
			if err := app.SaveConfig(cfg); err != nil {
				return err
			}
			ux.Logger.GreenCheckmarkToUser("Created %s with env %s", app.Workspace.ConfigPath, f.envID)
			return nil
		},
	}
	f.chain.AddToCmd(cmd)
	f.key.AddToCmd(cmd)
	cmd.Flags().StringVar(&f.chainLabel, "chain", "", "label of the chain (default its chain id)")
	cmd.Flags().StringVar(&f.keyName, "key", "", "name of the key (default "+defaultKeyName+")")
	cmd.Flags().StringVar(&f.envID, "env", "", "id of the env (default "+defaultEnvID+")")
	cmd.Flags().BoolVar(&f.force, "force", false, "overwrite an existing config")
	return cmd
}

func (f *initFlags) build(cmd *cobra.Command) (*models.Config, error) {
	cfg := models.NewConfig()

	ux.Logger.PrintToUser("Chain")
	info, err := f.chain.Resolve(cmd.Context(), cmd.Name())
	if err != nil {
		return nil, err
	}
	err = prompts.NewValidator(cmd.Name()).
		RequireWithDefault(&f.chainLabel, prompts.MissingOpt{Flag: "--chain", Prompt: "Chain label"}, info.ChainID).
		RequireWithDefault(&f.keyName, prompts.MissingOpt{Flag: "--key", Prompt: "Key name"}, defaultKeyName).
		RequireWithDefault(&f.envID, prompts.MissingOpt{Flag: "--env", Prompt: "Env id"}, defaultEnvID).
		Resolve(func(opt prompts.MissingOpt) (string, error) {
			v, err := app.Prompt.CaptureStringAllowEmpty(fmt.Sprintf("%s (%s)", opt.Prompt, opt.Default))
			if v == "" {
				v = opt.Default
			}
			return v, err
		})
	if err != nil {
		return nil, err
	}
	if err := cfg.AddChain(f.chainLabel, info); err != nil {
		return nil, err
	}

	ux.Logger.PrintToUser("Key")
	userKey, err := f.key.UserKey(f.keyName, info)
	if err != nil {
		return nil, err
	}
	if err := cfg.AddKey(userKey); err != nil {
		return nil, err
	}

	env, err := envcmd.NewEnv(cfg, app.Prompt, f.envID, f.chainLabel, f.keyName)
	if err != nil {
		return nil, err
	}
	if err := cfg.AddEnv(env); err != nil {
		return nil, err
	}
	return cfg, nil
}
