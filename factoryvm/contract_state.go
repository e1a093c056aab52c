// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ava-labs/factoryvm/contract"
)

var _ ContractState = &contractState{}

// ContractState holds deployed code and the key-value storage of every
// account. Code is content addressed: accounts running the same code share
// one blob.
type ContractState interface {
	GetCode(codeHash ids.ID) ([]byte, error)
	PutCode(code []byte) (ids.ID, error)

	// ContractStorage returns the storage of [id]. Its writes belong to the
	// layer it was opened from.
	ContractStorage(id contract.AccountID) database.Database
}

type contractState struct {
	codeDB    database.Database
	storageDB database.Database
}

func NewContractState(codeDB, storageDB database.Database) ContractState {
	return &contractState{
		codeDB:    codeDB,
		storageDB: storageDB,
	}
}

func (s *contractState) GetCode(codeHash ids.ID) ([]byte, error) {
	return s.codeDB.Get(codeHash[:])
}

func (s *contractState) PutCode(code []byte) (ids.ID, error) {
	codeHash := ids.ID(hashing.ComputeHash256Array(code))
	return codeHash, s.codeDB.Put(codeHash[:], code)
}

func (s *contractState) ContractStorage(id contract.AccountID) database.Database {
	return prefixdb.New([]byte(id), s.storageDB)
}
