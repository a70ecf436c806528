// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import (
	"errors"
	"fmt"
)

var (
	ErrConfigNotFound        = errors.New("config file not found, perhaps you need to run \"wasm-deploy config init\"?")
	ErrEnvNotFound           = errors.New("env not found")
	ErrChainConfigNotFound   = errors.New("chain config not found for the active env")
	ErrKeyNotFound           = errors.New("key not found")
	ErrChainAlreadyExists    = errors.New("chain already exists")
	ErrEnvAlreadyExists      = errors.New("env already exists")
	ErrKeyAlreadyExists      = errors.New("key already exists")
	ErrContractNotFound      = errors.New("contract not found")
	ErrContractAlreadyExists = errors.New("contract already exists")
	ErrCodeIDNotFound        = errors.New("code id not found, perhaps you need to store code first?")
	ErrAddrNotFound          = errors.New("contract address not found")
	ErrInvalidDir            = errors.New("invalid directory")
	ErrUnsupportedShell      = errors.New("unsupported shell, must use bash or zsh")
	ErrNotImplemented        = errors.New("this feature has not been implemented for this contract")
	ErrMissingClient         = errors.New("both the gRPC endpoint and the RPC endpoint are empty, update the chain info to add at least one endpoint")
	ErrMissingGRPC           = errors.New("this operation requires the gRPC endpoint, update the chain info to include it")
	ErrMissingRPC            = errors.New("this operation requires the RPC endpoint, update the chain info to include it")
)

// AddrNotFoundError is returned when a contract is registered but was never instantiated.
type AddrNotFoundError struct {
	Name string
}

func (e *AddrNotFoundError) Error() string {
	return fmt.Sprintf("contract address not found for %s, perhaps you need to instantiate first?", e.Name)
}

func (*AddrNotFoundError) Is(target error) bool {
	return target == ErrAddrNotFound
}

type ContractNotFoundError struct {
	Name string
}

func (e *ContractNotFoundError) Error() string {
	return fmt.Sprintf("contract %s not found in the active env, perhaps you need to store code first?", e.Name)
}

func (*ContractNotFoundError) Is(target error) bool {
	return target == ErrContractNotFound
}

type CodeIDNotFoundError struct {
	Name string
}

func (e *CodeIDNotFoundError) Error() string {
	return fmt.Sprintf("code id not found for %s, perhaps you need to store code first?", e.Name)
}

func (*CodeIDNotFoundError) Is(target error) bool {
	return target == ErrCodeIDNotFound
}

type KeyNotFoundError struct {
	KeyName string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %q not found", e.KeyName)
}

func (*KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}
