// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract defines what deployed code sees of the ledger: the Host
// capability handed to every invocation, account ids, native units and the
// promise builder used to schedule cross-account work.
package contract

//go:generate mockgen -package=contract -destination=host_mock.go . Host

import (
	"github.com/holiman/uint256"
)

// PromiseStatus is the settled state of a dependency seen by a callback.
type PromiseStatus uint8

const (
	PromiseSuccessful PromiseStatus = iota + 1
	PromiseFailed
)

// PromiseResult is the outcome of one promise a callback depends on.
type PromiseResult struct {
	Status PromiseStatus
	// Value is the return value of a successful promise.
	Value []byte
}

// Succeeded reports whether the promise completed successfully.
func (r PromiseResult) Succeeded() bool { return r.Status == PromiseSuccessful }

// Host is the capability an executing contract uses to reach the ledger.
// Every call burns gas from the invocation's prepaid budget; once the budget
// is exhausted calls fail with ErrOutOfGas.
type Host interface {
	// Input returns the raw call input.
	Input() []byte
	// CurrentAccount returns the account whose code is executing.
	CurrentAccount() AccountID
	// Predecessor returns the account that issued this invocation.
	Predecessor() AccountID
	// Signer returns the account that signed the originating transaction.
	Signer() AccountID
	// AttachedDeposit returns the value attached to this invocation.
	AttachedDeposit() *uint256.Int
	// AccountBalance returns the current balance of the executing account.
	AccountBalance() *uint256.Int
	// PrepaidGas returns the gas budget of this invocation.
	PrepaidGas() Gas
	// UsedGas returns the gas burnt or committed to promises so far.
	UsedGas() Gas

	StorageRead(key []byte) ([]byte, bool, error)
	StorageWrite(key, value []byte) error
	StorageHas(key []byte) (bool, error)
	StorageRemove(key []byte) error

	// Sha256 hashes [data] on the host.
	Sha256(data []byte) ([32]byte, error)
	// Log records an informational line in the invocation's outcome.
	Log(msg string) error
	// Return sets the invocation's return value.
	Return(value []byte)

	// Submit schedules [p] for execution after this invocation finishes.
	// The chain's deposits are taken from the executing account and its gas
	// is charged to this invocation.
	Submit(p *Promise) error
	// ReturnPromise submits [p] and makes the invocation's result the
	// result of the last promise of the chain.
	ReturnPromise(p *Promise) error
	// PromiseResults returns the outcomes of the promises this invocation
	// was chained after, in the order they were declared.
	PromiseResults() []PromiseResult
}

// Contract is executable code resolved from deployed bytes.
type Contract interface {
	// Call runs [method] against [host]. A returned error aborts the
	// invocation.
	Call(host Host, method string) error
}

// Factory instantiates the Contract for one piece of code.
type Factory interface {
	// Name is a short human readable name of the code.
	Name() string
	// Code returns the deployable bytes this factory answers for.
	Code() []byte
	// New returns a fresh contract instance.
	New() Contract
}
