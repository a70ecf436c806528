// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deployment

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/luxfi/wasm-deploy/pkg/chain"
	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
)

// Cw20Label is the label of tokens created by Cw20Instantiate.
const Cw20Label = "cw20"

// Execute sends msg to the registered address of c. A nil msg is read from the
// contract's interactive constructor.
func (e *Engine) Execute(ctx context.Context, c contract.Contract, msg contract.Msg, funds sdk.Coins) error {
	if msg == nil {
		var err error
		if msg, err = e.interactive(c, contract.Interactive.ExecuteInteractive); err != nil {
			return err
		}
	}
	req, err := e.execRequest(c.Name(), msg)
	if err != nil {
		return err
	}
	req.Funds = funds
	e.out.PrintToUser("Executing %s", c.Name())
	return e.execute(ctx, []chain.ExecRequest{req})
}

// ExecutePayload sends payload to addr, which may be a "&name" reference.
func (e *Engine) ExecutePayload(ctx context.Context, addr string, payload contract.Msg, funds sdk.Coins) error {
	to, err := e.resolve(addr)
	if err != nil {
		return err
	}
	raw, err := contract.BuildMsg(payload, e.cfg.Store)
	if err != nil {
		return err
	}
	return e.execute(ctx, []chain.ExecRequest{{Address: to, Msg: raw, Funds: funds}})
}

// Query runs a smart query against c and returns the raw JSON response. Dry runs
// print the query and return nil.
func (e *Engine) Query(ctx context.Context, c contract.Contract, msg contract.Msg) (json.RawMessage, error) {
	if msg == nil {
		var err error
		if msg, err = e.interactive(c, contract.Interactive.QueryInteractive); err != nil {
			return nil, err
		}
	}
	addr, err := e.addr(c.Name())
	if err != nil {
		return nil, err
	}
	return e.query(ctx, addr, msg)
}

func (e *Engine) QueryPayload(ctx context.Context, addr string, payload contract.Msg) (json.RawMessage, error) {
	to, err := e.resolve(addr)
	if err != nil {
		return nil, err
	}
	return e.query(ctx, to, payload)
}

// Send moves amount from the signing account to addr.
func (e *Engine) Send(ctx context.Context, addr string, amount sdk.Coins) error {
	if !amount.IsValid() || amount.IsZero() {
		return fmt.Errorf("invalid amount %q", amount.String())
	}
	to, err := e.resolve(addr)
	if err != nil {
		return err
	}
	if e.cfg.DryRun {
		e.out.PrintToUser("would send %s to %s", amount, to)
		return nil
	}
	client, err := e.client()
	if err != nil {
		return err
	}
	res, err := client.Send(ctx, to, amount)
	if err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	e.out.PrintTxResult(res.GasWanted, res.GasUsed, res.TxHash, res.Height)
	return nil
}

// Cw20Send sends amount of the token at tokenAddr to c, whose receive hook gets hook.
// A nil hook is read from c's interactive constructor.
func (e *Engine) Cw20Send(ctx context.Context, c contract.Contract, tokenAddr string, amount uint64, hook contract.Msg, funds sdk.Coins) error {
	if hook == nil {
		var err error
		if hook, err = e.interactive(c, contract.Interactive.Cw20SendInteractive); err != nil {
			return err
		}
	}
	recipient, err := e.addr(c.Name())
	if err != nil {
		return err
	}
	rawHook, err := contract.BuildMsg(hook, e.cfg.Store)
	if err != nil {
		return err
	}
	e.out.PrintToUser("Executing cw20 send to %s", c.Name())
	return e.ExecutePayload(ctx, tokenAddr, contract.Cw20SendMsg(recipient, amount, rawHook), funds)
}

// Cw20Instantiate creates a cw20 token from codeID and prints its address.
func (e *Engine) Cw20Instantiate(ctx context.Context, codeID uint64, admin string, msg contract.Msg) (string, error) {
	if codeID == 0 {
		return "", &constants.CodeIDNotFoundError{Name: Cw20Label}
	}
	raw, err := contract.BuildMsg(msg, e.cfg.Store)
	if err != nil {
		return "", err
	}
	req := chain.InstantiateRequest{CodeID: codeID, Msg: raw, Label: Cw20Label, Admin: admin}
	if e.cfg.DryRun {
		return "", e.printMsgs([]json.RawMessage{raw})
	}
	client, err := e.client()
	if err != nil {
		return "", err
	}
	res, err := client.InstantiateBatch(ctx, []chain.InstantiateRequest{req})
	if err != nil {
		return "", fmt.Errorf("cw20 instantiate failed: %w", err)
	}
	if len(res.Addresses) != 1 {
		return "", chain.ErrMissingResponses
	}
	e.out.PrintTxResult(res.Tx.GasWanted, res.Tx.GasUsed, res.Tx.TxHash, res.Tx.Height)
	e.out.GreenCheckmarkToUser("cw20 instantiated at %s", res.Addresses[0])
	return res.Addresses[0], nil
}

func (e *Engine) query(ctx context.Context, addr string, msg contract.Msg) (json.RawMessage, error) {
	raw, err := contract.BuildMsg(msg, e.cfg.Store)
	if err != nil {
		return nil, err
	}
	if e.cfg.DryRun {
		return nil, e.printMsgs([]json.RawMessage{raw})
	}
	client, err := e.client()
	if err != nil {
		return nil, err
	}
	res, err := client.Query(ctx, addr, raw)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return res, nil
}

// resolve turns a "&name" reference into the registered address and leaves plain
// addresses alone.
func (e *Engine) resolve(addr string) (string, error) {
	v, err := contract.ReplaceStrings(addr, e.cfg.Store)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (e *Engine) interactive(c contract.Contract, build func(contract.Interactive, prompts.Prompter) (contract.Msg, error)) (contract.Msg, error) {
	ic, ok := c.(contract.Interactive)
	if !ok {
		return nil, fmt.Errorf("%s: %w", c.Name(), constants.ErrNotImplemented)
	}
	msg, err := build(ic, e.cfg.Prompt)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fmt.Errorf("%s: no message given", c.Name())
	}
	return msg, nil
}

