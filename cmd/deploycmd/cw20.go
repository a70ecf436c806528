// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deploycmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/cmd/flags"
	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

var errOneCw20Action = errors.New("pick exactly one of --msg, --transfer-to, --balance or --token-info")

type cw20Flags struct {
	callFlags
	token  string
	amount uint64
}

func (f *cw20Flags) addToken(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.token, "token", "", "cw20 token address, or &name for a registered token")
}

func (f *cw20Flags) requireToken(cmdName string) error {
	return prompts.NewValidator(cmdName).
		Require(&f.token, prompts.MissingOpt{Flag: "--token", Prompt: "Cw20 contract address"}).
		Resolve(func(opt prompts.MissingOpt) (string, error) {
			return app.Prompt.CaptureString(opt.Prompt)
		})
}

func newCw20SendCmd() *cobra.Command {
	f := &cw20Flags{}
	cmd := &cobra.Command{
		Use:               "cw20-send <contract>",
		Short:             "Send cw20 tokens to a contract together with a receive hook message",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeContractNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := selectOne(args[0])
			if err != nil {
				return err
			}
			if err := f.requireToken(cmd.Name()); err != nil {
				return err
			}
			if err := requireAmount(cmd, &f.amount); err != nil {
				return err
			}
			hook, err := parseMsg("msg", f.msg)
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
			return s.engine.Cw20Send(cmd.Context(), c, f.token, f.amount, hook, funds)
		},
	}
	f.addToken(cmd)
	f.addMsg(cmd, "msg", "receive hook message as JSON (default entered interactively)")
	f.addFunds(cmd)
	cmd.Flags().Uint64Var(&f.amount, "amount", 0, "amount of tokens to send (default entered interactively)")
	flags.AddDryRunFlagToCmd(cmd, &f.dryRun)
	return cmd
}

func newCw20ExecuteCmd() *cobra.Command {
	var (
		f          = &cw20Flags{}
		transferTo string
	)
	cmd := &cobra.Command{
		Use:   "cw20-execute",
		Short: "Execute a cw20 message on a token contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.requireToken(cmd.Name()); err != nil {
				return err
			}
			var msg contract.Msg
			switch {
			case f.msg != "" && transferTo != "":
				return errOneCw20Action
			case transferTo != "":
				if err := requireAmount(cmd, &f.amount); err != nil {
					return err
				}
				msg = contract.Cw20TransferMsg(transferTo, f.amount)
			default:
				var err error
				if msg, err = requirePayload(f.msg); err != nil {
					return err
				}
			}
			s, err := openSession(sessionOptions{dryRun: f.dryRun})
			if err != nil {
				return err
			}
			defer s.Close()
			return s.engine.ExecutePayload(cmd.Context(), f.token, msg, nil)
		},
	}
	f.addToken(cmd)
	f.addMsg(cmd, "msg", "cw20 execute message as JSON")
	cmd.Flags().StringVar(&transferTo, "transfer-to", "", "transfer --amount tokens to this address or &name")
	cmd.Flags().Uint64Var(&f.amount, "amount", 0, "amount for --transfer-to")
	flags.AddDryRunFlagToCmd(cmd, &f.dryRun)
	return cmd
}

func newCw20QueryCmd() *cobra.Command {
	var (
		f         = &cw20Flags{}
		balanceOf string
		tokenInfo bool
	)
	cmd := &cobra.Command{
		Use:   "cw20-query",
		Short: "Query a cw20 token contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.requireToken(cmd.Name()); err != nil {
				return err
			}
			chosen := 0
			for _, set := range []bool{f.msg != "", balanceOf != "", tokenInfo} {
				if set {
					chosen++
				}
			}
			if chosen > 1 {
				return errOneCw20Action
			}
			var msg contract.Msg
			switch {
			case balanceOf != "":
				msg = contract.Cw20BalanceQuery(balanceOf)
			case tokenInfo:
				msg = contract.Cw20TokenInfoQuery()
			default:
				var err error
				if msg, err = requirePayload(f.msg); err != nil {
					return err
				}
			}
			s, err := openSession(sessionOptions{dryRun: f.dryRun})
			if err != nil {
				return err
			}
			defer s.Close()
			res, err := s.engine.QueryPayload(cmd.Context(), f.token, msg)
			if err != nil || res == nil {
				return err
			}
			return ux.Logger.PrintJSON(res)
		},
	}
	f.addToken(cmd)
	f.addMsg(cmd, "msg", "cw20 query message as JSON")
	cmd.Flags().StringVar(&balanceOf, "balance", "", "query the balance of this address or &name")
	cmd.Flags().BoolVar(&tokenInfo, "token-info", false, "query the token info")
	flags.AddDryRunFlagToCmd(cmd, &f.dryRun)
	return cmd
}

func newCw20InstantiateCmd() *cobra.Command {
	var (
		f        = &cw20Flags{}
		codeID   uint64
		admin    string
		name     string
		symbol   string
		decimals uint8
		minter   string
	)
	cmd := &cobra.Command{
		Use:   "cw20-instantiate",
		Short: "Instantiate a cw20 token from a stored code id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := parseMsg("msg", f.msg)
			if err != nil {
				return err
			}
			if msg == nil {
				err := prompts.NewValidator(cmd.Name()).
					Require(&name, prompts.MissingOpt{Flag: "--name", Prompt: "Token name"}).
					Require(&symbol, prompts.MissingOpt{Flag: "--symbol", Prompt: "Token symbol"}).
					Resolve(func(opt prompts.MissingOpt) (string, error) {
						return app.Prompt.CaptureString(opt.Prompt)
					})
				if err != nil {
					return err
				}
				msg = contract.Cw20InstantiateMsg(name, symbol, decimals, minter)
			}
			s, err := openSession(sessionOptions{dryRun: f.dryRun})
			if err != nil {
				return err
			}
			defer s.Close()
			_, err = s.engine.Cw20Instantiate(cmd.Context(), codeID, admin, msg)
			return err
		},
	}
	cmd.Flags().Uint64Var(&codeID, "code-id", 0, "stored cw20 code id")
	cmd.Flags().StringVar(&admin, "admin", "", "admin address of the token")
	cmd.Flags().StringVar(&name, "name", "", "token name")
	cmd.Flags().StringVar(&symbol, "symbol", "", "token symbol")
	cmd.Flags().Uint8Var(&decimals, "decimals", 6, "token decimals")
	cmd.Flags().StringVar(&minter, "minter", "", "minter address or &name, empty for a fixed supply")
	f.addMsg(cmd, "msg", "full instantiate message as JSON, overrides the token flags")
	_ = cmd.MarkFlagRequired("code-id")
	flags.AddDryRunFlagToCmd(cmd, &f.dryRun)
	return cmd
}
