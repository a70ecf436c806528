// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keycmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/chain"
	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/key"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

const defaultCoinType = 118

var errConflictingSources = errors.New("--ledger cannot be combined with --mnemonic, --generate or --keyring")

// KeyFlags select where a new key comes from and where it is kept.
type KeyFlags struct {
	Mnemonic string
	Generate bool
	Keyring  bool
	Backend  string
	Dir      string
	Ledger   bool
	CoinType uint32
	Account  uint32
	Index    uint32
}

func (f *KeyFlags) AddToCmd(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Mnemonic, "mnemonic", "", "mnemonic of the key")
	cmd.Flags().BoolVar(&f.Generate, "generate", false, "generate a new mnemonic")
	cmd.Flags().BoolVar(&f.Keyring, "keyring", false, "keep the mnemonic in the OS keyring instead of the state file")
	cmd.Flags().StringVar(&f.Backend, "keyring-backend", "", "cosmos keyring backend (default os)")
	cmd.Flags().StringVar(&f.Dir, "keyring-dir", "", "directory of file based keyring backends")
	cmd.Flags().BoolVar(&f.Ledger, "ledger", false, "sign with a ledger device, needs a binary built with -tags ledger")
	cmd.Flags().Uint32Var(&f.CoinType, "coin-type", defaultCoinType, "ledger coin type")
	cmd.Flags().Uint32Var(&f.Account, "account", 0, "ledger account")
	cmd.Flags().Uint32Var(&f.Index, "index", 0, "ledger address index")
}

func newAddCmd() *cobra.Command {
	f := &KeyFlags{}
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a key from a mnemonic, the OS keyring or a ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]
			return app.UpdateConfig(func(cfg *models.Config) error {
				if _, err := cfg.Key(name); err == nil {
					return constants.ErrKeyAlreadyExists
				}
				// the active chain, when there is one, decides the derivation path
				info, _ := cfg.ActiveChainInfo()
				userKey, err := f.UserKey(name, info)
				if err != nil {
					return err
				}
				if err := cfg.AddKey(userKey); err != nil {
					return err
				}
				ux.Logger.GreenCheckmarkToUser("Added %s key %s", userKey.Kind(), name)
				if userKey.Kind() == models.KeyKindLedger {
					if err := key.CheckLedgerSupport(); err != nil {
						ux.Logger.RedXToUser("This binary cannot sign with it: %s", err)
					}
				}
				return nil
			})
		},
	}
	f.AddToCmd(cmd)
	return cmd
}

// UserKey builds the key called name, prompting for the mnemonic when needed.
func (f *KeyFlags) UserKey(name string, info models.ChainInfo) (models.UserKey, error) {
	if f.Ledger {
		if f.Mnemonic != "" || f.Generate || f.Keyring {
			return models.UserKey{}, errConflictingSources
		}
		return models.UserKey{Name: name, Key: models.KeyMaterial{Ledger: &models.LedgerParams{
			CoinType: f.CoinType,
			Account:  f.Account,
			Index:    f.Index,
		}}}, nil
	}

	mnemonic, err := f.mnemonic()
	if err != nil {
		return models.UserKey{}, err
	}
	if !f.Keyring {
		return models.UserKey{Name: name, Key: models.KeyMaterial{Mnemonic: mnemonic}}, nil
	}

	params := &models.KeyringParams{Service: constants.KeyringServiceName, User: name, Backend: f.Backend, Dir: f.Dir}
	prefix := info.Prefix
	if prefix == "" {
		prefix = "cosmos"
	}
	enc, err := chain.MakeEncodingConfig(prefix)
	if err != nil {
		return models.UserKey{}, err
	}
	if err := key.ImportMnemonic(params, mnemonic, info.DerivationPath, enc.Codec); err != nil {
		return models.UserKey{}, err
	}
	return models.UserKey{Name: name, Key: models.KeyMaterial{Keyring: params}}, nil
}

func (f *KeyFlags) mnemonic() (string, error) {
	switch {
	case f.Generate:
		mnemonic, err := key.NewMnemonic()
		if err != nil {
			return "", err
		}
		ux.Logger.PrintToUser("Generated mnemonic, write it down:\n%s", mnemonic)
		return mnemonic, nil
	case f.Mnemonic != "":
		return f.Mnemonic, key.ValidateMnemonic(f.Mnemonic)
	default:
		mnemonic, err := app.Prompt.CaptureValidatedString("Mnemonic", key.ValidateMnemonic)
		if err != nil {
			return "", err
		}
		return mnemonic, nil
	}
}
