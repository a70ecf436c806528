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

func newAddCmd() *cobra.Command {
	var chainLabel, keyName string
	cmd := &cobra.Command{
		Use:   "add <env-id>",
		Short: "Add an env and make it the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			envID := args[0]
			err := app.UpdateConfig(func(cfg *models.Config) error {
				env, err := NewEnv(cfg, app.Prompt, envID, chainLabel, keyName)
				if err != nil {
					return err
				}
				return cfg.AddEnv(env)
			})
			if err != nil {
				return err
			}
			ux.Logger.GreenCheckmarkToUser("Added env %s, it is now active", envID)
			return nil
		},
	}
	cmd.Flags().StringVar(&chainLabel, "chain", "", "label of the chain the env deploys to")
	cmd.Flags().StringVar(&keyName, "key", "", "name of the key the env signs with")
	return cmd
}

// NewEnv validates the chain and key of a new env, letting the user pick them when
// they were not given.
func NewEnv(cfg *models.Config, prompt prompts.Prompter, envID, chainLabel, keyName string) (models.Env, error) {
	if envID == "" {
		return models.Env{}, fmt.Errorf("env id cannot be empty")
	}
	var err error
	if chainLabel == "" {
		if len(cfg.Chains) == 0 {
			return models.Env{}, fmt.Errorf("%w, add one with \"wasm-deploy chain add\"", constants.ErrChainConfigNotFound)
		}
		if chainLabel, err = prompt.CaptureList("Which chain should the env deploy to?", cfg.Chains.Labels()); err != nil {
			return models.Env{}, err
		}
	}
	if _, ok := cfg.Chains[chainLabel]; !ok {
		return models.Env{}, fmt.Errorf("%w: %s", constants.ErrChainConfigNotFound, chainLabel)
	}
	if keyName == "" {
		if len(cfg.Keys) == 0 {
			return models.Env{}, fmt.Errorf("%w, add one with \"wasm-deploy key add\"", constants.ErrKeyNotFound)
		}
		if keyName, err = prompt.CaptureList("Which key should the env sign with?", cfg.KeyNames()); err != nil {
			return models.Env{}, err
		}
	}
	if _, err := cfg.Key(keyName); err != nil {
		return models.Env{}, err
	}
	return models.Env{
		EnvID:      envID,
		ChainLabel: chainLabel,
		KeyName:    keyName,
		Contracts:  []models.ContractInfo{},
	}, nil
}
