// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"encoding/json"
	"strconv"
)

type cw20Send struct {
	Contract string `json:"contract"`
	// Uint128 travels as a decimal string.
	Amount string `json:"amount"`
	// Binary travels as base64, which is how encoding/json writes []byte.
	Msg []byte `json:"msg"`
}

// Cw20SendMsg is the cw20 execute msg that moves amount tokens to recipient and calls
// its receive hook with hook.
func Cw20SendMsg(recipient string, amount uint64, hook json.RawMessage) Msg {
	return map[string]any{
		"send": cw20Send{
			Contract: recipient,
			Amount:   strconv.FormatUint(amount, 10),
			Msg:      hook,
		},
	}
}

// Cw20TransferMsg moves amount tokens from the sender to recipient.
func Cw20TransferMsg(recipient string, amount uint64) Msg {
	return map[string]any{
		"transfer": map[string]any{
			"recipient": recipient,
			"amount":    strconv.FormatUint(amount, 10),
		},
	}
}

func Cw20BalanceQuery(address string) Msg {
	return map[string]any{"balance": map[string]any{"address": address}}
}

func Cw20TokenInfoQuery() Msg {
	return map[string]any{"token_info": map[string]any{}}
}

// Cw20InstantiateMsg is the cw20-base instantiate msg with no initial balances. An
// empty minter leaves the supply fixed.
func Cw20InstantiateMsg(name, symbol string, decimals uint8, minter string) Msg {
	msg := map[string]any{
		"name":             name,
		"symbol":           symbol,
		"decimals":         decimals,
		"initial_balances": []any{},
	}
	if minter != "" {
		msg["mint"] = map[string]any{"minter": minter}
	}
	return msg
}
