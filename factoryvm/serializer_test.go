// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"bytes"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/assert"

	"github.com/ava-labs/factoryvm/contract"
)

func TestReceiptIDs(t *testing.T) {
	assert := assert.New(t)
	parent := ids.GenerateTestID()

	gen := &receiptIDs{parent: parent}
	first, second := gen.Next(), gen.Next()
	assert.Equal(ReceiptID(parent, 0), first)
	assert.Equal(ReceiptID(parent, 1), second)
	assert.NotEqual(first, second)
	assert.NotEqual(ReceiptID(ids.GenerateTestID(), 0), first)
}

func TestTxOutcomeKey(t *testing.T) {
	assert := assert.New(t)
	txID := ids.GenerateTestID()

	key := MarshalTxOutcomeKey(txID, 7, 3)
	gotTxID, height, index, err := UnmarshalTxOutcomeKey(key)
	assert.NoError(err)
	assert.Equal(txID, gotTxID)
	assert.Equal(uint64(7), height)
	assert.Equal(uint32(3), index)

	// Keys sort by height, then index.
	assert.Equal(-1, bytes.Compare(MarshalTxOutcomeKey(txID, 7, 3), MarshalTxOutcomeKey(txID, 7, 4)))
	assert.Equal(-1, bytes.Compare(MarshalTxOutcomeKey(txID, 7, 9), MarshalTxOutcomeKey(txID, 8, 0)))

	_, _, _, err = UnmarshalTxOutcomeKey(key[1:])
	assert.ErrorIs(err, ErrInvalidKeyFormat)
}

func TestPromiseGas(t *testing.T) {
	assert := assert.New(t)

	p := contract.NewPromise("sub.factory.test").
		CreateAccount().
		DeployContract(make([]byte, 10)).
		Then(contract.NewPromise("factory.test").
			FunctionCall("after_create", nil, nil, 20*contract.Tgas))

	expected := 2*ReceiptGas +
		CreateAccountGas +
		DeployBaseGas + 10*DeployByteGas +
		FunctionCallBaseGas + 20*contract.Tgas
	assert.Equal(expected, PromiseGas(p))
}

func TestGasMeter(t *testing.T) {
	assert := assert.New(t)

	m := gasMeter{prepaid: 10}
	assert.NoError(m.burn(4))
	assert.NoError(m.burn(6))
	assert.ErrorIs(m.burn(1), contract.ErrOutOfGas)
	assert.Equal(contract.Gas(10), m.used)

	m = gasMeter{prepaid: 10}
	assert.ErrorIs(m.burn(11), contract.ErrOutOfGas)
	assert.Equal(contract.Gas(10), m.used)

	assert.Equal(StorageBaseGas+3*StorageByteGas, storageGas(1, 2))
}
