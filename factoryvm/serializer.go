// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

const (
	receiptSeedSize  = 32 /* Parent ID Len */ + wrappers.IntLen
	txOutcomeKeySize = 32 /* Tx ID Len */ + wrappers.LongLen + wrappers.IntLen
)

var (
	ErrInvalidKeyFormat = errors.New("invalid key format")
)

// ReceiptID derives the id of the [index]th receipt produced by [parent].
// The root receipt of a transaction is ReceiptID(txID, 0).
func ReceiptID(parent ids.ID, index uint32) ids.ID {
	raw := make([]byte, receiptSeedSize)
	work := raw

	copy(work, parent[:])
	work = work[32:]
	binary.BigEndian.PutUint32(work, index)
	return hashing.ComputeHash256Array(raw)
}

// MarshalTxOutcomeKey orders the outcomes of a transaction by execution:
// step height first, then position within the step.
func MarshalTxOutcomeKey(txID ids.ID, height uint64, index uint32) []byte {
	raw := make([]byte, txOutcomeKeySize)
	work := raw

	copy(work, txID[:])
	work = work[32:]
	binary.BigEndian.PutUint64(work, height)
	work = work[8:]
	binary.BigEndian.PutUint32(work, index)
	return raw
}

func UnmarshalTxOutcomeKey(raw []byte) (ids.ID, uint64, uint32, error) {
	if len(raw) != txOutcomeKeySize {
		return ids.Empty, 0, 0, ErrInvalidKeyFormat
	}
	work := raw

	// TxID
	txID := ids.ID{}
	copy(txID[:], work[:32])
	work = work[32:]

	// Height
	height := binary.BigEndian.Uint64(work)
	work = work[8:]

	// Index
	index := binary.BigEndian.Uint32(work)
	return txID, height, index, nil
}
