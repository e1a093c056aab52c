// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"

	"github.com/ava-labs/factoryvm/contract"
)

// SystemAccount is the predecessor of refund receipts.
const SystemAccount contract.AccountID = "system"

// Receipt is one batch of actions addressed to a single receiver, waiting to
// be executed by a step.
type Receipt struct {
	ID   ids.ID
	TxID ids.ID

	Predecessor contract.AccountID
	Receiver    contract.AccountID
	Signer      contract.AccountID

	Actions []contract.Action

	// DependsOn lists the receipts whose outcomes this receipt consumes as
	// promise results. It runs only once all of them have settled.
	DependsOn []ids.ID

	// Refund marks a receipt returning value to Receiver. A failed refund
	// is never refunded again.
	Refund bool
}

// Deposit returns the value the actions from [from] onwards carry.
func (r *Receipt) Deposit(from int) *uint256.Int {
	total := contract.Zero()
	for _, a := range r.Actions[from:] {
		total.Add(total, a.Deposit())
	}
	return total
}

func newRefundReceipt(id, txID ids.ID, receiver, signer contract.AccountID, amount *uint256.Int) *Receipt {
	return &Receipt{
		ID:          id,
		TxID:        txID,
		Predecessor: SystemAccount,
		Receiver:    receiver,
		Signer:      signer,
		Actions: []contract.Action{{
			Kind:   contract.ActionTransfer,
			Amount: new(uint256.Int).Set(amount),
		}},
		Refund: true,
	}
}

// receiptIDs hands out the ids of the receipts produced while executing
// one parent.
type receiptIDs struct {
	parent ids.ID
	next   uint32
}

func (g *receiptIDs) Next() ids.ID {
	id := ReceiptID(g.parent, g.next)
	g.next++
	return id
}
