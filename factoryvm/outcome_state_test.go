// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func putTestOutcome(t *testing.T, s OutcomeState, txID ids.ID, height uint64, index uint32) *Outcome {
	o := &Outcome{
		ReceiptID: ReceiptID(txID, index),
		TxID:      txID,
		Status:    StatusSuccessValue,
		Height:    height,
		Index:     index,
	}
	require.NoError(t, s.PutOutcome(o))
	return o
}

func TestTransactionOutcomesOrder(t *testing.T) {
	require := require.New(t)
	s := NewOutcomeState(memdb.New())
	txID := ids.GenerateTestID()

	late := putTestOutcome(t, s, txID, 2, 0)
	early := putTestOutcome(t, s, txID, 1, 5)
	putTestOutcome(t, s, ids.GenerateTestID(), 1, 0)

	outcomes, err := s.GetTransactionOutcomes(txID)
	require.NoError(err)
	require.Len(outcomes, 2)
	require.Equal(early.ReceiptID, outcomes[0].ReceiptID)
	require.Equal(late.ReceiptID, outcomes[1].ReceiptID)
}

func TestTransactionOutcomesBadIndex(t *testing.T) {
	require := require.New(t)
	txID := ids.GenerateTestID()

	// A key of the wrong length.
	s := NewOutcomeState(memdb.New()).(*outcomeState)
	o := putTestOutcome(t, s, txID, 1, 0)
	require.NoError(s.txOutcomeDB.Put(append(txID[:], 1, 2, 3), o.ReceiptID[:]))
	_, err := s.GetTransactionOutcomes(txID)
	require.ErrorIs(err, ErrInvalidKeyFormat)

	// An entry pointing at an outcome recorded elsewhere.
	s = NewOutcomeState(memdb.New()).(*outcomeState)
	o = putTestOutcome(t, s, txID, 1, 0)
	require.NoError(s.txOutcomeDB.Put(MarshalTxOutcomeKey(txID, 9, 9), o.ReceiptID[:]))
	_, err = s.GetTransactionOutcomes(txID)
	require.ErrorIs(err, errOutcomeIndex)
}
