// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaincmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/chainregistry"
	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

// ChainFlags are the chain settings accepted on the command line.
type ChainFlags struct {
	Registry       string
	ChainID        string
	Denom          string
	Prefix         string
	DerivationPath string
	GasPrice       string
	GasAdjustment  string
	RPC            string
	GRPC           string
}

func (f *ChainFlags) AddToCmd(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Registry, "registry", "", "import the chain from the cosmos chain registry by name, e.g. juno")
	cmd.Flags().StringVar(&f.ChainID, "chain-id", "", "chain id")
	cmd.Flags().StringVar(&f.Denom, "denom", "", "fee denom")
	cmd.Flags().StringVar(&f.Prefix, "prefix", "", "bech32 address prefix")
	cmd.Flags().StringVar(&f.DerivationPath, "derivation-path", "", "HD derivation path (default "+constants.DefaultDerivationPath+")")
	cmd.Flags().StringVar(&f.GasPrice, "gas-price", "", "gas price in the fee denom")
	cmd.Flags().StringVar(&f.GasAdjustment, "gas-adjustment", "", "multiplier applied to simulated gas")
	cmd.Flags().StringVar(&f.RPC, "rpc", "", "tendermint rpc endpoint")
	cmd.Flags().StringVar(&f.GRPC, "grpc", "", "grpc endpoint")
}

func newAddCmd() *cobra.Command {
	f := &ChainFlags{}
	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a chain, entered manually or imported from the cosmos chain registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := f.Resolve(cmd.Context(), cmd.Name())
			if err != nil {
				return err
			}
			err = app.UpdateConfig(func(cfg *models.Config) error {
				return cfg.AddChain(args[0], info)
			})
			if err != nil {
				return err
			}
			ux.Logger.GreenCheckmarkToUser("Added chain %s (%s)", args[0], info.ChainID)
			return nil
		},
	}
	f.AddToCmd(cmd)
	return cmd
}

// Resolve builds the ChainInfo from the registry or from the flags, prompting for
// whatever is missing.
func (f *ChainFlags) Resolve(ctx context.Context, cmdName string) (models.ChainInfo, error) {
	if f.Registry != "" {
		chainJSON, err := chainregistry.New().Fetch(ctx, f.Registry)
		if err != nil {
			return models.ChainInfo{}, err
		}
		return chainJSON.ChainInfo()
	}

	v := prompts.NewValidator(cmdName).
		Require(&f.ChainID, prompts.MissingOpt{Flag: "--chain-id", Prompt: "Chain id"}).
		Require(&f.Denom, prompts.MissingOpt{Flag: "--denom", Prompt: "Fee denom"}).
		Require(&f.Prefix, prompts.MissingOpt{Flag: "--prefix", Prompt: "Bech32 prefix"}).
		Require(&f.GasPrice, prompts.MissingOpt{Flag: "--gas-price", Prompt: "Gas price"}).
		RequireWithDefault(&f.GasAdjustment, prompts.MissingOpt{Flag: "--gas-adjustment", Prompt: "Gas adjustment"},
			strconv.FormatFloat(constants.DefaultGasAdjustment, 'f', -1, 64))
	// one endpoint is enough
	if f.GRPC == "" {
		v.Require(&f.RPC, prompts.MissingOpt{Flag: "--rpc", Prompt: "RPC endpoint", Note: "or --grpc"})
	}
	err := v.Resolve(func(opt prompts.MissingOpt) (string, error) {
		return captureChainOpt(app.Prompt, opt)
	})
	if err != nil {
		return models.ChainInfo{}, err
	}
	return f.ChainInfo()
}

// captureChainOpt prompts for one missing chain flag. Gas values are read as floats
// so ChainInfo never sees an unparsable one.
func captureChainOpt(p prompts.Prompter, opt prompts.MissingOpt) (string, error) {
	var validate func(float64) error
	switch opt.Flag {
	case "--rpc":
		return p.CaptureURL(opt.Prompt)
	case "--gas-price":
		validate = prompts.ValidateNonNegativeFloat
	case "--gas-adjustment":
		validate = prompts.ValidatePositiveFloat
	default:
		return p.CaptureString(opt.Prompt)
	}
	label := opt.Prompt
	if opt.Default != "" {
		label = fmt.Sprintf("%s (default %s)", opt.Prompt, opt.Default)
	}
	v, err := p.CaptureFloat(label, validate)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// ChainInfo converts already complete flags.
func (f *ChainFlags) ChainInfo() (models.ChainInfo, error) {
	gasPrice, err := strconv.ParseFloat(f.GasPrice, 64)
	if err != nil || gasPrice < 0 {
		return models.ChainInfo{}, fmt.Errorf("invalid gas price %q", f.GasPrice)
	}
	gasAdjustment := constants.DefaultGasAdjustment
	if f.GasAdjustment != "" {
		if gasAdjustment, err = strconv.ParseFloat(f.GasAdjustment, 64); err != nil || gasAdjustment <= 0 {
			return models.ChainInfo{}, fmt.Errorf("invalid gas adjustment %q", f.GasAdjustment)
		}
	}
	if f.RPC == "" && f.GRPC == "" {
		return models.ChainInfo{}, constants.ErrMissingClient
	}
	path := f.DerivationPath
	if path == "" {
		path = constants.DefaultDerivationPath
	}
	return models.ChainInfo{
		ChainID:        f.ChainID,
		Denom:          f.Denom,
		Prefix:         f.Prefix,
		DerivationPath: path,
		GasPrice:       gasPrice,
		GasAdjustment:  gasAdjustment,
		RPCEndpoint:    f.RPC,
		GRPCEndpoint:   f.GRPC,
	}, nil
}
