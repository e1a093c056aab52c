// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
)

var (
	// These are prefixes for db keys.
	// It's important to set different prefixes for each separate database objects.
	singletonStatePrefix = []byte("singleton")
	accountStatePrefix   = []byte("account")
	codeStatePrefix      = []byte("code")
	storageStatePrefix   = []byte("storage")
	outcomeStatePrefix   = []byte("outcome")

	_ State = &state{}
)

// State is the ledger as seen by one execution layer. Every layer buffers
// its writes in a versiondb on top of its parent: Commit folds them into the
// parent and Abort drops them, which is how a failed invocation or action is
// reverted without touching what ran before it.
type State interface {
	InitializedState
	AccountState
	ContractState
	OutcomeState

	// Nested opens a child layer on top of this one.
	Nested() State

	Commit() error
	Abort()
	Close() error
}

type state struct {
	InitializedState
	AccountState
	ContractState
	OutcomeState

	baseDB *versiondb.Database
	parent *state
}

// NewState opens the root layer on top of [db].
func NewState(db database.Database) State {
	return newState(db, nil)
}

func newState(db database.Database, parent *state) *state {
	// create a new baseDB
	baseDB := versiondb.New(db)

	// return state with created sub state components
	return &state{
		InitializedState: NewInitializedState(prefixdb.New(singletonStatePrefix, baseDB)),
		AccountState:     NewAccountState(prefixdb.New(accountStatePrefix, baseDB)),
		ContractState: NewContractState(
			prefixdb.New(codeStatePrefix, baseDB),
			prefixdb.New(storageStatePrefix, baseDB),
		),
		OutcomeState: NewOutcomeState(prefixdb.New(outcomeStatePrefix, baseDB)),
		baseDB:       baseDB,
		parent:       parent,
	}
}

func (s *state) Nested() State {
	return newState(s.baseDB, s)
}

// Commit commits pending operations to the parent layer, or to the
// underlying database for the root layer.
func (s *state) Commit() error {
	if err := s.baseDB.Commit(); err != nil {
		return err
	}
	if s.parent != nil {
		// The parent's cached accounts may predate what was just written
		// underneath it.
		s.parent.ClearCache()
	}
	return nil
}

// Abort drops every pending operation of this layer.
func (s *state) Abort() {
	s.baseDB.Abort()
	s.ClearCache()
}

// Close closes the underlying base database
func (s *state) Close() error {
	return s.baseDB.Close()
}
