// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deployment

import "fmt"

// Stage is one step of a deployment. Each Run executes exactly one stage.
type Stage int

const (
	StoreCode Stage = iota
	Instantiate
	ExternalInstantiate
	Migrate
	SetConfig
	SetUp
)

func (s Stage) String() string {
	switch s {
	case StoreCode:
		return "store-code"
	case Instantiate:
		return "instantiate"
	case ExternalInstantiate:
		return "external-instantiate"
	case Migrate:
		return "migrate"
	case SetConfig:
		return "set-config"
	case SetUp:
		return "set-up"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}
