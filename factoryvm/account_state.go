// (c) 2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"errors"

	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/factoryvm/contract"
)

const (
	accountCacheSize = 8192
)

var (
	errAccountWrongVersion = errors.New("wrong version")

	_ AccountState = &accountState{}
)

// AccountState persists accounts keyed by their id. Accounts handed out are
// copies: a change only lands through PutAccount.
type AccountState interface {
	GetAccount(id contract.AccountID) (*Account, error)
	PutAccount(acc *Account) error
	HasAccount(id contract.AccountID) (bool, error)

	ClearCache()
}

type accountState struct {
	accCache  cache.Cacher
	accountDB database.Database
}

func NewAccountState(db database.Database) AccountState {
	return &accountState{
		accCache:  &cache.LRU{Size: accountCacheSize},
		accountDB: db,
	}
}

// GetAccount returns database.ErrNotFound when [id] has no account.
func (s *accountState) GetAccount(id contract.AccountID) (*Account, error) {
	if accIntf, ok := s.accCache.Get(id); ok {
		if accIntf == nil {
			return nil, database.ErrNotFound
		}
		return accIntf.(*Account).Copy(), nil
	}

	accBytes, err := s.accountDB.Get([]byte(id))
	if err == database.ErrNotFound {
		s.accCache.Put(id, nil)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	record := accountRecord{}
	parsedVersion, err := Codec.Unmarshal(accBytes, &record)
	if err != nil {
		return nil, err
	}

	if parsedVersion != CodecVersion {
		return nil, errAccountWrongVersion
	}

	acc := record.account(id)
	s.accCache.Put(id, acc)

	return acc.Copy(), nil
}

func (s *accountState) PutAccount(acc *Account) error {
	bytes, err := Codec.Marshal(CodecVersion, acc.record())
	if err != nil {
		return err
	}

	s.accCache.Put(acc.ID, acc.Copy())
	return s.accountDB.Put([]byte(acc.ID), bytes)
}

func (s *accountState) HasAccount(id contract.AccountID) (bool, error) {
	_, err := s.GetAccount(id)
	switch {
	case err == nil:
		return true, nil
	case err == database.ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}

func (s *accountState) ClearCache() {
	s.accCache.Flush()
}
