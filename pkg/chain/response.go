// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"
	"sort"
	"strconv"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	abci "github.com/cometbft/cometbft/abci/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const msgIndexAttr = "msg_index"

// checkBroadcast turns a rejected CheckTx or a failed execution into an *Error.
func checkBroadcast(res *coretypes.ResultBroadcastTxCommit) (CommitResult, error) {
	hash := res.Hash.String()
	if res.CheckTx.Code != 0 {
		return CommitResult{}, &Error{
			Code:      res.CheckTx.Code,
			Codespace: res.CheckTx.Codespace,
			Log:       res.CheckTx.Log,
			TxHash:    hash,
		}
	}
	if res.TxResult.Code != 0 {
		return CommitResult{}, &Error{
			Code:      res.TxResult.Code,
			Codespace: res.TxResult.Codespace,
			Log:       res.TxResult.Log,
			TxHash:    hash,
		}
	}
	return CommitResult{
		GasWanted: res.TxResult.GasWanted,
		GasUsed:   res.TxResult.GasUsed,
		TxHash:    hash,
		Height:    res.Height,
	}, nil
}

func msgResponses(cdc codec.Codec, data []byte) ([]*codectypes.Any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var msgData sdk.TxMsgData
	if err := cdc.Unmarshal(data, &msgData); err != nil {
		return nil, fmt.Errorf("failed decoding tx msg data: %w", err)
	}
	return msgData.MsgResponses, nil
}

// decodeCodeIDs reads one code id per store code msg, in msg order. It prefers the
// typed msg responses and falls back to store_code events.
func decodeCodeIDs(cdc codec.Codec, res abci.ExecTxResult, expected int) ([]uint64, error) {
	anys, err := msgResponses(cdc, res.Data)
	if err != nil {
		return nil, err
	}
	typeURL := sdk.MsgTypeURL(&wasmtypes.MsgStoreCodeResponse{})
	codeIDs := make([]uint64, 0, expected)
	for _, a := range anys {
		if a.TypeUrl != typeURL {
			continue
		}
		var r wasmtypes.MsgStoreCodeResponse
		if err := cdc.Unmarshal(a.Value, &r); err != nil {
			return nil, err
		}
		codeIDs = append(codeIDs, r.CodeID)
	}
	if len(codeIDs) == expected {
		return codeIDs, nil
	}

	codeIDs = codeIDs[:0]
	for _, v := range eventValues(res.Events, wasmtypes.EventTypeStoreCode, wasmtypes.AttributeKeyCodeID) {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid code id %q in events: %w", v, err)
		}
		codeIDs = append(codeIDs, id)
	}
	if len(codeIDs) != expected {
		return nil, fmt.Errorf("%w: want %d code ids, got %d", ErrMissingResponses, expected, len(codeIDs))
	}
	return codeIDs, nil
}

// decodeAddresses reads one contract address per instantiate msg, in msg order.
func decodeAddresses(cdc codec.Codec, res abci.ExecTxResult, expected int) ([]string, error) {
	anys, err := msgResponses(cdc, res.Data)
	if err != nil {
		return nil, err
	}
	typeURL := sdk.MsgTypeURL(&wasmtypes.MsgInstantiateContractResponse{})
	addrs := make([]string, 0, expected)
	for _, a := range anys {
		if a.TypeUrl != typeURL {
			continue
		}
		var r wasmtypes.MsgInstantiateContractResponse
		if err := cdc.Unmarshal(a.Value, &r); err != nil {
			return nil, err
		}
		addrs = append(addrs, r.Address)
	}
	if len(addrs) == expected {
		return addrs, nil
	}

	addrs = eventValues(res.Events, wasmtypes.EventTypeInstantiate, wasmtypes.AttributeKeyContractAddr)
	if len(addrs) != expected {
		return nil, fmt.Errorf("%w: want %d addresses, got %d", ErrMissingResponses, expected, len(addrs))
	}
	return addrs, nil
}

// eventValues collects attr of every eventType event, ordered by the msg_index the
// SDK stamps on message events. Events without msg_index keep their emitted order.
func eventValues(events []abci.Event, eventType, attr string) []string {
	type indexed struct {
		msgIndex int
		value    string
	}
	var found []indexed
	for _, e := range events {
		if e.Type != eventType {
			continue
		}
		item := indexed{msgIndex: -1}
		ok := false
		for _, a := range e.Attributes {
			switch a.Key {
			case attr:
				item.value = a.Value
				ok = true
			case msgIndexAttr:
				if i, err := strconv.Atoi(a.Value); err == nil {
					item.msgIndex = i
				}
			}
		}
		if ok {
			found = append(found, item)
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].msgIndex < found[j].msgIndex
	})
	values := make([]string, len(found))
	for i, f := range found {
		values[i] = f.value
	}
	return values
}
