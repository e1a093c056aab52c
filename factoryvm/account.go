// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"

	"github.com/ava-labs/factoryvm/contract"
)

// Account is the ledger entry of one account id.
type Account struct {
	ID       contract.AccountID
	Balance  *uint256.Int
	Nonce    uint64
	CodeHash ids.ID
}

// NewAccount returns an empty account holding [balance].
func NewAccount(id contract.AccountID, balance *uint256.Int) *Account {
	a := &Account{ID: id, Balance: contract.Zero()}
	if balance != nil {
		a.Balance.Set(balance)
	}
	return a
}

// HasCode reports whether code was deployed to the account.
func (a *Account) HasCode() bool { return a.CodeHash != ids.Empty }

// Copy returns a deep copy of [a].
func (a *Account) Copy() *Account {
	return &Account{
		ID:       a.ID,
		Balance:  new(uint256.Int).Set(a.Balance),
		Nonce:    a.Nonce,
		CodeHash: a.CodeHash,
	}
}

// Credit adds [amount] to the balance.
func (a *Account) Credit(amount *uint256.Int) error {
	if _, overflow := a.Balance.AddOverflow(a.Balance, amount); overflow {
		return errBalanceOverflow
	}
	return nil
}

// Debit takes [amount] from the balance, leaving it untouched when the
// balance is too low.
func (a *Account) Debit(amount *uint256.Int) error {
	if a.Balance.Lt(amount) {
		return errInsufficientBalance
	}
	a.Balance.Sub(a.Balance, amount)
	return nil
}

// accountRecord is the persisted form of an Account. Its id is the database
// key.
type accountRecord struct {
	Balance  [32]byte `serialize:"true"`
	Nonce    uint64   `serialize:"true"`
	CodeHash ids.ID   `serialize:"true"`
}

func (a *Account) record() *accountRecord {
	return &accountRecord{
		Balance:  a.Balance.Bytes32(),
		Nonce:    a.Nonce,
		CodeHash: a.CodeHash,
	}
}

func (r *accountRecord) account(id contract.AccountID) *Account {
	balance := new(uint256.Int)
	balance.SetBytes32(r.Balance[:])
	return &Account{
		ID:       id,
		Balance:  balance,
		Nonce:    r.Nonce,
		CodeHash: r.CodeHash,
	}
}
