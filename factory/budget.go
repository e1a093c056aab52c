// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import (
	"fmt"

	"github.com/ava-labs/factoryvm/contract"
)

const (
	// CallbackGas is reserved for after_create.
	CallbackGas = 20 * contract.Tgas

	// CreateGas is reserved for submitting the create, transfer and deploy
	// steps of the chain, on top of CodeByteGas per byte of deployed code.
	CreateGas = 15 * contract.Tgas

	// CodeByteGas matches what the runtime charges per deployed byte.
	CodeByteGas contract.Gas = 1_000_000
)

// GasPlan is the split of a create invocation's remaining gas.
type GasPlan struct {
	CreateGas   contract.Gas
	InitGas     contract.Gas
	CallbackGas contract.Gas
}

// CreateReservation returns the gas reserved for the creation steps of an
// account receiving [codeSize] bytes of code.
func CreateReservation(codeSize int) contract.Gas {
	return CreateGas + contract.Gas(codeSize)*CodeByteGas
}

// PlanGas splits what is left of [prepaid] after [used] between the
// creation steps, the optional initializer and the completion callback.
// It fails before anything has been dispatched when the reservations for
// [codeSize] bytes of code do not fit.
func PlanGas(prepaid, used contract.Gas, codeSize int, withInit bool) (GasPlan, error) {
	createGas := CreateReservation(codeSize)
	reserved := createGas + CallbackGas
	if used > prepaid || prepaid-used < reserved {
		var available contract.Gas
		if used < prepaid {
			available = prepaid - used
		}
		return GasPlan{}, fmt.Errorf("%w: %d available, %d required", ErrInsufficientGas, available, reserved)
	}
	plan := GasPlan{
		CreateGas:   createGas,
		CallbackGas: CallbackGas,
	}
	if withInit {
		plan.InitGas = prepaid - used - reserved
	}
	return plan, nil
}
