// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import "errors"

var (
	ErrPermissionDenied  = errors.New("factory: set_code may only be called by the factory account")
	ErrAlreadyConfigured = errors.New("factory: code is already set")
	ErrNotConfigured     = errors.New("factory: code not set, call set_code first")
	ErrInvalidArguments  = errors.New("factory: invalid arguments")
	ErrInsufficientGas   = errors.New("factory: not enough gas attached")
	ErrPrivateMethod     = errors.New("factory: method is private")
)
