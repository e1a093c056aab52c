// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import "errors"

// Host-level failures a contract can observe from a Host call. A contract
// that returns any error aborts its invocation; the runtime reverts every
// state change it made and returns its attached deposit.
var (
	ErrInvalidAccountID = errors.New("contract: invalid account id")
	ErrOutOfGas         = errors.New("contract: exceeded the prepaid gas")
	ErrProhibitedInView = errors.New("contract: operation prohibited in view call")
	ErrMethodNotFound   = errors.New("contract: method not found")
	ErrNotEnoughBalance = errors.New("contract: not enough balance to attach deposit")
	ErrEmptyPromise     = errors.New("contract: promise has no actions")
	ErrActionOrder      = errors.New("contract: create account must be the first action of a batch")
	ErrInvalidAction    = errors.New("contract: invalid action")
	ErrInvalidInput     = errors.New("contract: invalid call input")
)
