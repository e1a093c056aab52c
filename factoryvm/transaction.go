// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/holiman/uint256"

	"github.com/ava-labs/factoryvm/contract"
)

// TxRequest is a call submitted on behalf of [Signer]. There are no
// signatures: the runtime trusts the submitter.
type TxRequest struct {
	Signer   contract.AccountID
	Receiver contract.AccountID
	Method   string
	Args     []byte
	Gas      contract.Gas
	Deposit  *uint256.Int
}

// Transaction is an accepted TxRequest, stamped with the signer's nonce.
type Transaction struct {
	Signer   contract.AccountID `serialize:"true"`
	Receiver contract.AccountID `serialize:"true"`
	Method   string             `serialize:"true"`
	Args     []byte             `serialize:"true"`
	Gas      uint64             `serialize:"true"`
	Deposit  [32]byte           `serialize:"true"`
	Nonce    uint64             `serialize:"true"`

	id    ids.ID
	bytes []byte
}

func newTransaction(req TxRequest, nonce uint64) (*Transaction, error) {
	deposit := contract.Zero()
	if req.Deposit != nil {
		deposit.Set(req.Deposit)
	}
	tx := &Transaction{
		Signer:   req.Signer,
		Receiver: req.Receiver,
		Method:   req.Method,
		Args:     append([]byte(nil), req.Args...),
		Gas:      uint64(req.Gas),
		Deposit:  deposit.Bytes32(),
		Nonce:    nonce,
	}
	return tx, tx.initialize()
}

func (tx *Transaction) initialize() error {
	bytes, err := Codec.Marshal(CodecVersion, tx)
	if err != nil {
		return fmt.Errorf("couldn't marshal transaction: %w", err)
	}
	tx.bytes = bytes
	tx.id = hashing.ComputeHash256Array(bytes)
	return nil
}

// ID returns the SHA-256 of the transaction's encoding.
func (tx *Transaction) ID() ids.ID { return tx.id }

// Bytes returns the transaction's encoding.
func (tx *Transaction) Bytes() []byte { return tx.bytes }

// Amount returns the attached deposit.
func (tx *Transaction) Amount() *uint256.Int {
	return new(uint256.Int).SetBytes32(tx.Deposit[:])
}

// RootReceipt returns the function call receipt that starts the
// transaction.
func (tx *Transaction) RootReceipt() *Receipt {
	return &Receipt{
		ID:          ReceiptID(tx.id, 0),
		TxID:        tx.id,
		Predecessor: tx.Signer,
		Receiver:    tx.Receiver,
		Signer:      tx.Signer,
		Actions: []contract.Action{{
			Kind:   contract.ActionFunctionCall,
			Method: tx.Method,
			Args:   append([]byte(nil), tx.Args...),
			Gas:    contract.Gas(tx.Gas),
			Amount: tx.Amount(),
		}},
	}
}

func parseTransaction(bytes []byte) (*Transaction, error) {
	tx := &Transaction{}
	parsedVersion, err := Codec.Unmarshal(bytes, tx)
	if err != nil {
		return nil, err
	}
	if parsedVersion != CodecVersion {
		return nil, errTxWrongVersion
	}
	tx.bytes = bytes
	tx.id = hashing.ComputeHash256Array(bytes)
	return tx, nil
}
