// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/models"
)

// Registry resolves contract names of the active env.
type Registry interface {
	Contract(name string) (models.ContractInfo, error)
}

// ToValue converts msg into its generic JSON form. Numbers stay json.Number so that
// large integers survive the round trip.
func ToValue(msg Msg) (any, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed encoding msg: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// ReplaceStrings rewrites every string of the form "<anything>&<name>" whose name is a
// registered contract into that contract's address. Only the first '&' splits. Names
// that are not registered are left alone; registered names without an address fail.
func ReplaceStrings(value any, reg Registry) (any, error) {
	switch v := value.(type) {
	case string:
		_, name, found := strings.Cut(v, "&")
		if !found {
			return v, nil
		}
		info, err := reg.Contract(name)
		if errors.Is(err, constants.ErrContractNotFound) {
			return v, nil
		}
		if err != nil {
			return nil, err
		}
		if !info.HasAddr() {
			return nil, &constants.AddrNotFoundError{Name: info.Name}
		}
		return info.Addr, nil
	case []any:
		for i := range v {
			replaced, err := ReplaceStrings(v[i], reg)
			if err != nil {
				return nil, err
			}
			v[i] = replaced
		}
		return v, nil
	case map[string]any:
		for k := range v {
			replaced, err := ReplaceStrings(v[k], reg)
			if err != nil {
				return nil, err
			}
			v[k] = replaced
		}
		return v, nil
	default:
		return v, nil
	}
}

// BuildMsg encodes msg with contract references resolved.
func BuildMsg(msg Msg, reg Registry) (json.RawMessage, error) {
	value, err := ToValue(msg)
	if err != nil {
		return nil, err
	}
	value, err = ReplaceStrings(value, reg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(value)
}
