// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

const (
	IsInitializedKey byte = iota
	GenesisIDKey
	HeightKey
)

var (
	isInitializedKey                  = []byte{IsInitializedKey}
	genesisIDKey                      = []byte{GenesisIDKey}
	heightKey                         = []byte{HeightKey}
	_                InitializedState = (*initializedState)(nil)
)

// InitializedState is a thin wrapper around a database to provide
// serialization and de-serialization of the chain's singletons: whether
// genesis was applied, which genesis it was, and the last executed step.
type InitializedState interface {
	IsInitialized() (bool, error)
	SetInitialized(genesisID ids.ID) error
	GetGenesisID() (ids.ID, error)

	GetHeight() (uint64, error)
	SetHeight(height uint64) error
}

type initializedState struct {
	singletonDB database.Database
}

func NewInitializedState(db database.Database) InitializedState {
	return &initializedState{
		singletonDB: db,
	}
}

func (s *initializedState) IsInitialized() (bool, error) {
	return s.singletonDB.Has(isInitializedKey)
}

func (s *initializedState) SetInitialized(genesisID ids.ID) error {
	if err := s.singletonDB.Put(genesisIDKey, genesisID[:]); err != nil {
		return err
	}
	return s.singletonDB.Put(isInitializedKey, nil)
}

func (s *initializedState) GetGenesisID() (ids.ID, error) {
	b, err := s.singletonDB.Get(genesisIDKey)
	if err != nil {
		return ids.Empty, err
	}
	return ids.ToID(b)
}

func (s *initializedState) GetHeight() (uint64, error) {
	height, err := database.GetUInt64(s.singletonDB, heightKey)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	return height, err
}

func (s *initializedState) SetHeight(height uint64) error {
	return database.PutUInt64(s.singletonDB, heightKey, height)
}
