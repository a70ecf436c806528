// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deploycmd

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/cmd/flags"
	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

type callFlags struct {
	dryRun  bool
	msg     string
	funds   string
	address string
}

func (f *callFlags) addMsg(cmd *cobra.Command, name, usage string) {
	cmd.Flags().StringVar(&f.msg, name, "", usage)
}

func (f *callFlags) addFunds(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.funds, "funds", "", "coins sent along, e.g. 100uatom,5ujuno")
}

func (f *callFlags) addAddress(cmd *cobra.Command, usage string) {
	cmd.Flags().StringVar(&f.address, "address", "", usage)
}

// requireAddress prompts for --address when it was not given.
func (f *callFlags) requireAddress(cmdName string) error {
	return prompts.NewValidator(cmdName).
		Require(&f.address, prompts.MissingOpt{Flag: "--address", Prompt: "Contract address (or &name)"}).
		Resolve(func(opt prompts.MissingOpt) (string, error) {
			return app.Prompt.CaptureString(opt.Prompt)
		})
}

func newExecuteCmd() *cobra.Command {
	f := &callFlags{}
	cmd := &cobra.Command{
		Use:               "execute <contract>",
		Short:             "Execute a message on a deployed contract",
		Long:              "Execute a message on a deployed contract. Without --msg the message is entered interactively.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeContractNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := selectOne(args[0])
			if err != nil {
				return err
			}
			msg, err := parseMsg("msg", f.msg)
			if err != nil {
				return err
			}
			funds, err := parseFunds(f.funds)
			if err != nil {
				return err
			}
			s, err := openSession(sessionOptions{dryRun: f.dryRun})
			if err != nil {
				return err
			}
			defer s.Close()
			return s.engine.Execute(cmd.Context(), c, msg, funds)
		},
	}
	f.addMsg(cmd, "msg", "execute message as JSON, \"&name\" strings become contract addresses")
	f.addFunds(cmd)
	flags.AddDryRunFlagToCmd(cmd, &f.dryRun)
	return cmd
}

func newQueryCmd() *cobra.Command {
	f := &callFlags{}
	cmd := &cobra.Command{
		Use:               "query <contract>",
		Short:             "Run a smart query against a deployed contract",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeContractNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := selectOne(args[0])
			if err != nil {
				return err
			}
			msg, err := parseMsg("msg", f.msg)
			if err != nil {
				return err
			}
			s, err := openSession(sessionOptions{dryRun: f.dryRun})
			if err != nil {
				return err
			}
			defer s.Close()
			res, err := s.engine.Query(cmd.Context(), c, msg)
			if err != nil || res == nil {
				return err
			}
			return ux.Logger.PrintJSON(res)
		},
	}
	f.addMsg(cmd, "msg", "query message as JSON")
	flags.AddDryRunFlagToCmd(cmd, &f.dryRun)
	return cmd
}

func newExecutePayloadCmd() *cobra.Command {
	f := &callFlags{}
	cmd := &cobra.Command{
		Use:   "execute-payload",
		Short: "Execute a raw JSON payload on any contract address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.requireAddress(cmd.Name()); err != nil {
				return err
			}
			payload, err := requirePayload(f.msg)
			if err != nil {
				return err
			}
			funds, err := parseFunds(f.funds)
			if err != nil {
				return err
			}
			s, err := openSession(sessionOptions{dryRun: f.dryRun})
			if err != nil {
				return err
			}
			defer s.Close()
			return s.engine.ExecutePayload(cmd.Context(), f.address, payload, funds)
		},
	}
	f.addAddress(cmd, "contract address, or &name for a registered contract")
	f.addMsg(cmd, "payload", "execute message as JSON")
	f.addFunds(cmd)
	flags.AddDryRunFlagToCmd(cmd, &f.dryRun)
	return cmd
}

func newQueryPayloadCmd() *cobra.Command {
	f := &callFlags{}
	cmd := &cobra.Command{
		Use:   "query-payload",
		Short: "Run a raw JSON smart query against any contract address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.requireAddress(cmd.Name()); err != nil {
				return err
			}
			payload, err := requirePayload(f.msg)
			if err != nil {
				return err
			}
			s, err := openSession(sessionOptions{dryRun: f.dryRun})
			if err != nil {
				return err
			}
			defer s.Close()
			res, err := s.engine.QueryPayload(cmd.Context(), f.address, payload)
			if err != nil || res == nil {
				return err
			}
			return ux.Logger.PrintJSON(res)
		},
	}
	f.addAddress(cmd, "contract address, or &name for a registered contract")
	f.addMsg(cmd, "payload", "query message as JSON")
	flags.AddDryRunFlagToCmd(cmd, &f.dryRun)
	return cmd
}

func newSendCmd() *cobra.Command {
	var (
		f      = &callFlags{}
		amount uint64
		denom  string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send tokens from the active key to an address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.requireAddress(cmd.Name()); err != nil {
				return err
			}
			if err := requireAmount(cmd, &amount); err != nil {
				return err
			}
			s, err := openSession(sessionOptions{dryRun: f.dryRun})
			if err != nil {
				return err
			}
			defer s.Close()
			if denom == "" {
				info, err := s.cfg.ActiveChainInfo()
				if err != nil {
					return err
				}
				denom = info.Denom
			}
			coins, err := sendCoins(denom, amount)
			if err != nil {
				return err
			}
			return s.engine.Send(cmd.Context(), f.address, coins)
		},
	}
	f.addAddress(cmd, "recipient address, or &name for a registered contract")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "amount to send in the smallest unit (default entered interactively)")
	cmd.Flags().StringVar(&denom, "denom", "", "denom to send (default the chain fee denom)")
	flags.AddDryRunFlagToCmd(cmd, &f.dryRun)
	return cmd
}

// requirePayload parses the payload flag, prompting for it when empty.
func requirePayload(value string) (contract.Msg, error) {
	if value != "" {
		return parseMsg("payload", value)
	}
	raw, err := app.Prompt.CaptureJSON("Enter the payload as JSON")
	if err != nil {
		return nil, fmt.Errorf("missing --payload: %w", err)
	}
	return raw, nil
}

// sendCoins checks the denom first since sdk.NewCoin panics on an invalid one.
func sendCoins(denom string, amount uint64) (sdk.Coins, error) {
	if err := sdk.ValidateDenom(denom); err != nil {
		return nil, fmt.Errorf("invalid --denom %q: %w", denom, err)
	}
	return sdk.NewCoins(sdk.NewCoin(denom, sdkmath.NewIntFromUint64(amount))), nil
}

// requireAmount prompts for --amount when the flag was not set.
func requireAmount(cmd *cobra.Command, amount *uint64) error {
	if cmd.Flags().Changed("amount") {
		return nil
	}
	v, err := app.Prompt.CaptureUint64("Amount in the smallest unit")
	if err != nil {
		return fmt.Errorf("missing --amount: %w", err)
	}
	*amount = v
	return nil
}
