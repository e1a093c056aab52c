// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ava-labs/factoryvm/contract"
)

var (
	errEmptyGenesis            = errors.New("genesis has no accounts")
	errDuplicateGenesisAccount = errors.New("duplicate genesis account")
)

// Genesis is the initial ledger.
type Genesis struct {
	Accounts []GenesisAccount `json:"accounts"`
}

// GenesisAccount is one account of the initial ledger. Contract optionally
// names a registered contract whose code is deployed to the account.
type GenesisAccount struct {
	ID       contract.AccountID `json:"id"`
	Balance  contract.Amount    `json:"balance"`
	Contract string             `json:"contract,omitempty"`
}

// ParseGenesis decodes and verifies genesis JSON.
func ParseGenesis(bytes []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := json.Unmarshal(bytes, g); err != nil {
		return nil, fmt.Errorf("couldn't parse genesis: %w", err)
	}
	return g, g.Verify()
}

func (g *Genesis) Verify() error {
	if len(g.Accounts) == 0 {
		return errEmptyGenesis
	}
	seen := make(map[contract.AccountID]struct{}, len(g.Accounts))
	for _, acc := range g.Accounts {
		if err := acc.ID.Validate(); err != nil {
			return err
		}
		if acc.ID == SystemAccount {
			return fmt.Errorf("%w: %s is reserved", contract.ErrInvalidAccountID, acc.ID)
		}
		if _, ok := seen[acc.ID]; ok {
			return fmt.Errorf("%w: %s", errDuplicateGenesisAccount, acc.ID)
		}
		seen[acc.ID] = struct{}{}
	}
	return nil
}

// genesisID identifies the genesis an initialized database was built from.
func genesisID(bytes []byte) ids.ID {
	return hashing.ComputeHash256Array(bytes)
}

// apply writes the genesis accounts into [s].
func (g *Genesis) apply(s State, engine *Engine) error {
	for _, ga := range g.Accounts {
		acc := NewAccount(ga.ID, ga.Balance.Value())
		if ga.Contract != "" {
			f, err := engine.Lookup(ga.Contract)
			if err != nil {
				return fmt.Errorf("genesis account %s: %w", ga.ID, err)
			}
			codeHash, err := s.PutCode(f.Code())
			if err != nil {
				return err
			}
			acc.CodeHash = codeHash
		}
		if err := s.PutAccount(acc); err != nil {
			return err
		}
	}
	return nil
}
