// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keycmd

import (
	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/chain"
	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/key"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

func newShowCmd() *cobra.Command {
	var chainLabel string
	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show the address of a key, the active env key by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			userKey, info, err := resolve(cfg, args, chainLabel)
			if err != nil {
				return err
			}
			enc, err := chain.MakeEncodingConfig(info.Prefix)
			if err != nil {
				return err
			}
			signer, err := key.Load(userKey, info, enc.Codec)
			if err != nil {
				return err
			}
			addr, err := signer.Address(info.Prefix)
			if err != nil {
				return err
			}
			ux.Logger.PrintToUser("%s (%s): %s", userKey.Name, userKey.Kind(), addr)
			return nil
		},
	}
	cmd.Flags().StringVar(&chainLabel, "chain", "", "chain label whose prefix and derivation path are used (default the active env chain)")
	return cmd
}

func resolve(cfg *models.Config, args []string, chainLabel string) (models.UserKey, models.ChainInfo, error) {
	var (
		userKey models.UserKey
		err     error
	)
	if len(args) == 1 {
		userKey, err = cfg.Key(args[0])
	} else {
		userKey, err = cfg.ActiveKey()
	}
	if err != nil {
		return models.UserKey{}, models.ChainInfo{}, err
	}
	if chainLabel == "" {
		info, err := cfg.ActiveChainInfo()
		return userKey, info, err
	}
	info, ok := cfg.Chains[chainLabel]
	if !ok {
		return models.UserKey{}, models.ChainInfo{}, constants.ErrChainConfigNotFound
	}
	return userKey, info, nil
}
