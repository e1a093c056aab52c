// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"github.com/ava-labs/factoryvm/contract"
)

// MaxPrepaidGas is the most gas a transaction may attach.
const MaxPrepaidGas = 300 * contract.Tgas

// Gas schedule. Static action costs are charged to the invocation that
// submits the action; host calls are charged to the invocation making them.
const (
	FunctionCallBaseGas = 2_500 * contract.Ggas
	CreateAccountGas    = 3 * contract.Tgas
	TransferGas         = 1 * contract.Tgas
	DeployBaseGas       = 2 * contract.Tgas
	DeployByteGas       = 1_000_000

	StorageBaseGas = 5 * contract.Ggas
	StorageByteGas = 1_000_000
	LogGas         = 3 * contract.Ggas
	ReceiptGas     = 5 * contract.Ggas
	Sha256BaseGas  = 4 * contract.Ggas
	Sha256ByteGas  = 1_000_000
)

// ActionGas returns the static cost of [a], excluding the gas it prepays.
func ActionGas(a contract.Action) contract.Gas {
	switch a.Kind {
	case contract.ActionCreateAccount:
		return CreateAccountGas
	case contract.ActionTransfer:
		return TransferGas
	case contract.ActionDeployContract:
		return DeployBaseGas + contract.Gas(len(a.Code))*DeployByteGas
	case contract.ActionFunctionCall:
		return FunctionCallBaseGas
	default:
		return 0
	}
}

// PromiseGas returns what submitting the chain starting at [p] costs its
// submitter: one receipt per batch, the static cost of every action and the
// gas prepaid to every function call.
func PromiseGas(p *contract.Promise) contract.Gas {
	total := p.Gas()
	for cur := p; cur != nil; cur = cur.Next() {
		total += ReceiptGas
		for _, a := range cur.Actions() {
			total += ActionGas(a)
		}
	}
	return total
}

// gasMeter tracks the gas of one invocation.
type gasMeter struct {
	prepaid contract.Gas
	used    contract.Gas
}

// burn charges [amount]. Once the budget is exceeded the meter stays
// exhausted and every further charge fails.
func (m *gasMeter) burn(amount contract.Gas) error {
	if amount > m.prepaid-m.used {
		m.used = m.prepaid
		return contract.ErrOutOfGas
	}
	m.used += amount
	return nil
}

func storageGas(sizes ...int) contract.Gas {
	gas := StorageBaseGas
	for _, size := range sizes {
		gas += contract.Gas(size) * StorageByteGas
	}
	return gas
}
