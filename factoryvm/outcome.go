// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/factoryvm/contract"
)

// Status is how a receipt settled.
type Status uint8

const (
	// StatusSuccessValue carries the receipt's return value.
	StatusSuccessValue Status = iota + 1
	// StatusSuccessReceipt defers the result to the receipt the execution
	// returned as a promise.
	StatusSuccessReceipt
	// StatusFailure means an action of the receipt failed.
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccessValue:
		return "SuccessValue"
	case StatusSuccessReceipt:
		return "SuccessReceipt"
	case StatusFailure:
		return "Failure"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Outcome is the persisted result of executing one receipt.
type Outcome struct {
	ReceiptID   ids.ID             `serialize:"true"`
	TxID        ids.ID             `serialize:"true"`
	Predecessor contract.AccountID `serialize:"true"`
	Receiver    contract.AccountID `serialize:"true"`
	Refund      bool               `serialize:"true"`

	Status Status `serialize:"true"`
	// Value is the return value of StatusSuccessValue.
	Value []byte `serialize:"true"`
	// ReturnedReceipt is the receipt a StatusSuccessReceipt defers to.
	ReturnedReceipt ids.ID `serialize:"true"`
	// Failure describes the failed action of StatusFailure.
	Failure string `serialize:"true"`

	Logs     []string `serialize:"true"`
	GasBurnt uint64   `serialize:"true"`
	// Produced lists the receipts this execution enqueued, refunds first.
	Produced []ids.ID `serialize:"true"`

	Height    uint64 `serialize:"true"`
	Index     uint32 `serialize:"true"`
	Timestamp int64  `serialize:"true"`
}

// Succeeded reports whether the receipt itself succeeded. A
// StatusSuccessReceipt outcome still depends on the receipt it returned.
func (o *Outcome) Succeeded() bool { return o.Status != StatusFailure }

// Final reports whether the outcome carries a result of its own.
func (o *Outcome) Final() bool { return o.Status != StatusSuccessReceipt }

// PromiseResult is what a callback depending on a final outcome sees.
func (o *Outcome) PromiseResult() contract.PromiseResult {
	if o.Status == StatusFailure {
		return contract.PromiseResult{Status: contract.PromiseFailed}
	}
	return contract.PromiseResult{
		Status: contract.PromiseSuccessful,
		Value:  append([]byte(nil), o.Value...),
	}
}
