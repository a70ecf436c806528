// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
	"fmt"
)

var (
	ErrTxFailed         = errors.New("transaction failed")
	ErrMissingResponses = errors.New("transaction committed without the expected responses")
)

// Error is a transaction rejected by the chain, either at CheckTx or during execution.
type Error struct {
	Code      uint32
	Codespace string
	Log       string
	TxHash    string
}

func (e *Error) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("chain error code %d (%s) in tx %s: %s", e.Code, e.Codespace, e.TxHash, e.Log)
	}
	return fmt.Sprintf("chain error code %d (%s): %s", e.Code, e.Codespace, e.Log)
}

func (*Error) Is(target error) bool {
	return target == ErrTxFailed
}
