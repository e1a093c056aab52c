// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/ids"
)

var (
	receiptOutcomePrefix = []byte("receipt")
	txPrefix             = []byte("tx")
	txOutcomePrefix      = []byte("txOutcome")

	errOutcomeWrongVersion = errors.New("wrong version")
	errTxWrongVersion      = errors.New("wrong version")
	errOutcomeIndex        = errors.New("outcome does not match its index entry")

	_ OutcomeState = &outcomeState{}
)

// OutcomeState persists accepted transactions and the outcome of every
// executed receipt, indexed by transaction in execution order.
type OutcomeState interface {
	GetTransaction(txID ids.ID) (*Transaction, error)
	PutTransaction(tx *Transaction) error

	GetOutcome(receiptID ids.ID) (*Outcome, error)
	PutOutcome(o *Outcome) error

	// GetTransactionOutcomes returns the outcomes of [txID]'s receipts in
	// the order they were executed.
	GetTransactionOutcomes(txID ids.ID) ([]*Outcome, error)
}

type outcomeState struct {
	outcomeDB   database.Database
	txDB        database.Database
	txOutcomeDB database.Database
}

func NewOutcomeState(db database.Database) OutcomeState {
	return &outcomeState{
		outcomeDB:   prefixdb.New(receiptOutcomePrefix, db),
		txDB:        prefixdb.New(txPrefix, db),
		txOutcomeDB: prefixdb.New(txOutcomePrefix, db),
	}
}

func (s *outcomeState) GetTransaction(txID ids.ID) (*Transaction, error) {
	bytes, err := s.txDB.Get(txID[:])
	if err != nil {
		return nil, err
	}
	return parseTransaction(bytes)
}

func (s *outcomeState) PutTransaction(tx *Transaction) error {
	txID := tx.ID()
	return s.txDB.Put(txID[:], tx.Bytes())
}

func (s *outcomeState) GetOutcome(receiptID ids.ID) (*Outcome, error) {
	bytes, err := s.outcomeDB.Get(receiptID[:])
	if err != nil {
		return nil, err
	}

	o := &Outcome{}
	parsedVersion, err := Codec.Unmarshal(bytes, o)
	if err != nil {
		return nil, err
	}
	if parsedVersion != CodecVersion {
		return nil, errOutcomeWrongVersion
	}
	return o, nil
}

func (s *outcomeState) PutOutcome(o *Outcome) error {
	bytes, err := Codec.Marshal(CodecVersion, o)
	if err != nil {
		return err
	}
	if err := s.outcomeDB.Put(o.ReceiptID[:], bytes); err != nil {
		return err
	}
	return s.txOutcomeDB.Put(MarshalTxOutcomeKey(o.TxID, o.Height, o.Index), o.ReceiptID[:])
}

func (s *outcomeState) GetTransactionOutcomes(txID ids.ID) ([]*Outcome, error) {
	it := s.txOutcomeDB.NewIteratorWithPrefix(txID[:])
	defer it.Release()

	var outcomes []*Outcome
	for it.Next() {
		keyTxID, height, index, err := UnmarshalTxOutcomeKey(it.Key())
		if err != nil {
			return nil, err
		}
		receiptID, err := ids.ToID(it.Value())
		if err != nil {
			return nil, err
		}
		o, err := s.GetOutcome(receiptID)
		if err != nil {
			return nil, err
		}
		if o.TxID != keyTxID || o.Height != height || o.Index != index {
			return nil, fmt.Errorf("%w: receipt %s", errOutcomeIndex, receiptID)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, it.Error()
}
