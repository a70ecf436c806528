// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"testing"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	abci "github.com/cometbft/cometbft/abci/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/models"
)

func testEncoding(t *testing.T) EncodingConfig {
	t.Helper()
	enc, err := MakeEncodingConfig("wasm")
	require.NoError(t, err)
	return enc
}

func msgData(t *testing.T, enc EncodingConfig, msgs ...sdk.Msg) []byte {
	t.Helper()
	data := sdk.TxMsgData{}
	for _, m := range msgs {
		a, err := codectypes.NewAnyWithValue(m)
		require.NoError(t, err)
		data.MsgResponses = append(data.MsgResponses, a)
	}
	bz, err := enc.Codec.Marshal(&data)
	require.NoError(t, err)
	return bz
}

func event(typ string, attrs ...string) abci.Event {
	e := abci.Event{Type: typ}
	for i := 0; i+1 < len(attrs); i += 2 {
		e.Attributes = append(e.Attributes, abci.EventAttribute{Key: attrs[i], Value: attrs[i+1]})
	}
	return e
}

func TestDecodeCodeIDsFromMsgResponses(t *testing.T) {
	require := require.New(t)
	enc := testEncoding(t)

	res := abci.ExecTxResult{
		Data: msgData(t, enc,
			&wasmtypes.MsgStoreCodeResponse{CodeID: 12},
			&wasmtypes.MsgStoreCodeResponse{CodeID: 13},
		),
	}
	ids, err := decodeCodeIDs(enc.Codec, res, 2)
	require.NoError(err)
	require.Equal([]uint64{12, 13}, ids)
}

func TestDecodeCodeIDsFromEvents(t *testing.T) {
	require := require.New(t)
	enc := testEncoding(t)

	res := abci.ExecTxResult{
		Events: []abci.Event{
			event("message", "action", "/cosmwasm.wasm.v1.MsgStoreCode"),
			event(wasmtypes.EventTypeStoreCode, wasmtypes.AttributeKeyCodeID, "5", msgIndexAttr, "1"),
			event(wasmtypes.EventTypeStoreCode, wasmtypes.AttributeKeyCodeID, "4", msgIndexAttr, "0"),
		},
	}
	ids, err := decodeCodeIDs(enc.Codec, res, 2)
	require.NoError(err)
	require.Equal([]uint64{4, 5}, ids)
}

func TestDecodeCodeIDsCountMismatch(t *testing.T) {
	require := require.New(t)
	enc := testEncoding(t)

	res := abci.ExecTxResult{
		Data: msgData(t, enc, &wasmtypes.MsgStoreCodeResponse{CodeID: 1}),
	}
	_, err := decodeCodeIDs(enc.Codec, res, 2)
	require.ErrorIs(err, ErrMissingResponses)
}

func TestDecodeCodeIDsBadEventValue(t *testing.T) {
	enc := testEncoding(t)
	res := abci.ExecTxResult{
		Events: []abci.Event{event(wasmtypes.EventTypeStoreCode, wasmtypes.AttributeKeyCodeID, "x")},
	}
	_, err := decodeCodeIDs(enc.Codec, res, 1)
	require.Error(t, err)
}

func TestDecodeAddresses(t *testing.T) {
	enc := testEncoding(t)

	tests := []struct {
		name     string
		res      abci.ExecTxResult
		expected int
		want     []string
		wantErr  error
	}{
		{
			name: "msg responses",
			res: abci.ExecTxResult{
				Data: msgData(t, enc,
					&wasmtypes.MsgInstantiateContractResponse{Address: "wasm1a"},
					&wasmtypes.MsgInstantiateContractResponse{Address: "wasm1b"},
				),
			},
			expected: 2,
			want:     []string{"wasm1a", "wasm1b"},
		},
		{
			name: "events ordered by msg index",
			res: abci.ExecTxResult{
				Events: []abci.Event{
					event(wasmtypes.EventTypeInstantiate, wasmtypes.AttributeKeyContractAddr, "wasm1b", msgIndexAttr, "1"),
					event(wasmtypes.EventTypeInstantiate, wasmtypes.AttributeKeyContractAddr, "wasm1a", msgIndexAttr, "0"),
				},
			},
			expected: 2,
			want:     []string{"wasm1a", "wasm1b"},
		},
		{
			name: "events without msg index keep emitted order",
			res: abci.ExecTxResult{
				Events: []abci.Event{
					event(wasmtypes.EventTypeInstantiate, wasmtypes.AttributeKeyContractAddr, "wasm1x"),
					event(wasmtypes.EventTypeInstantiate, wasmtypes.AttributeKeyContractAddr, "wasm1y"),
				},
			},
			expected: 2,
			want:     []string{"wasm1x", "wasm1y"},
		},
		{
			name:     "nothing to decode",
			res:      abci.ExecTxResult{},
			expected: 1,
			wantErr:  ErrMissingResponses,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			got, err := decodeAddresses(enc.Codec, tt.res, tt.expected)
			if tt.wantErr != nil {
				require.ErrorIs(err, tt.wantErr)
				return
			}
			require.NoError(err)
			require.Equal(tt.want, got)
		})
	}
}

func TestCheckBroadcast(t *testing.T) {
	tests := []struct {
		name    string
		res     coretypes.ResultBroadcastTxCommit
		wantErr bool
		code    uint32
	}{
		{
			name: "rejected at check tx",
			res: coretypes.ResultBroadcastTxCommit{
				CheckTx: abci.ResponseCheckTx{Code: 13, Codespace: "sdk", Log: "insufficient fee"},
				Hash:    []byte{0xab, 0xcd},
			},
			wantErr: true,
			code:    13,
		},
		{
			name: "failed during execution",
			res: coretypes.ResultBroadcastTxCommit{
				TxResult: abci.ExecTxResult{Code: 5, Codespace: "wasm", Log: "execute wasm contract failed"},
				Hash:     []byte{0xab, 0xcd},
				Height:   9,
			},
			wantErr: true,
			code:    5,
		},
		{
			name: "committed",
			res: coretypes.ResultBroadcastTxCommit{
				TxResult: abci.ExecTxResult{GasWanted: 200, GasUsed: 150},
				Hash:     []byte{0xab, 0xcd},
				Height:   9,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			res := tt.res
			got, err := checkBroadcast(&res)
			if tt.wantErr {
				require.ErrorIs(err, ErrTxFailed)
				var chainErr *Error
				require.ErrorAs(err, &chainErr)
				require.Equal(tt.code, chainErr.Code)
				require.Equal("ABCD", chainErr.TxHash)
				return
			}
			require.NoError(err)
			require.Equal(CommitResult{GasWanted: 200, GasUsed: 150, TxHash: "ABCD", Height: 9}, got)
		})
	}
}

func TestNewCosmosClientNeedsAnEndpoint(t *testing.T) {
	info := models.ChainInfo{ChainID: "localwasm-1", Prefix: "wasm", Denom: "ustake"}
	_, err := NewCosmosClient(info, nil, testEncoding(t), nil)
	require.ErrorIs(t, err, constants.ErrMissingClient)
}
