// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/units"

	"github.com/ava-labs/factoryvm/contract"
)

const (
	DefaultMaxContractSize = 4 * units.MiB
	DefaultStepInterval    = time.Second
	DefaultViewGas         = MaxPrepaidGas
)

// Config tunes the runtime.
type Config struct {
	// MaxContractSize bounds the code a DeployContract action may store.
	MaxContractSize int
	// StepInterval is how often Run executes a step while receipts are
	// queued.
	StepInterval time.Duration
	// ViewGas is the budget of a view call.
	ViewGas contract.Gas
}

func DefaultConfig() Config {
	return Config{
		MaxContractSize: DefaultMaxContractSize,
		StepInterval:    DefaultStepInterval,
		ViewGas:         DefaultViewGas,
	}
}
