// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/holiman/uint256"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/factoryvm/contract"
)

var _ contract.Host = &invocation{}

// invocation is the Host of one function call. Its writes go to [state],
// a layer the executor commits or aborts once the call returns.
type invocation struct {
	state   State
	storage database.Database
	log     log.Logger

	current     contract.AccountID
	predecessor contract.AccountID
	signer      contract.AccountID
	input       []byte
	deposit     *uint256.Int
	results     []contract.PromiseResult
	view        bool

	meter gasMeter
	ids   *receiptIDs
	txID  ids.ID

	logs      []string
	value     []byte
	returned  *ids.ID
	submitted []*Receipt
}

func (inv *invocation) Input() []byte { return append([]byte(nil), inv.input...) }

func (inv *invocation) CurrentAccount() contract.AccountID { return inv.current }

func (inv *invocation) Predecessor() contract.AccountID { return inv.predecessor }

func (inv *invocation) Signer() contract.AccountID { return inv.signer }

func (inv *invocation) AttachedDeposit() *uint256.Int { return new(uint256.Int).Set(inv.deposit) }

func (inv *invocation) AccountBalance() *uint256.Int {
	acc, err := inv.state.GetAccount(inv.current)
	if err != nil {
		inv.log.Warn("couldn't read balance", "account", inv.current, "err", err)
		return contract.Zero()
	}
	return acc.Balance
}

func (inv *invocation) PrepaidGas() contract.Gas { return inv.meter.prepaid }

func (inv *invocation) UsedGas() contract.Gas { return inv.meter.used }

func (inv *invocation) StorageRead(key []byte) ([]byte, bool, error) {
	if err := inv.meter.burn(storageGas(len(key))); err != nil {
		return nil, false, err
	}
	value, err := inv.storage.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := inv.meter.burn(contract.Gas(len(value)) * StorageByteGas); err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (inv *invocation) StorageWrite(key, value []byte) error {
	if inv.view {
		return fmt.Errorf("%w: storage write", contract.ErrProhibitedInView)
	}
	if err := inv.meter.burn(storageGas(len(key), len(value))); err != nil {
		return err
	}
	return inv.storage.Put(key, value)
}

func (inv *invocation) StorageHas(key []byte) (bool, error) {
	if err := inv.meter.burn(storageGas(len(key))); err != nil {
		return false, err
	}
	return inv.storage.Has(key)
}

func (inv *invocation) StorageRemove(key []byte) error {
	if inv.view {
		return fmt.Errorf("%w: storage remove", contract.ErrProhibitedInView)
	}
	if err := inv.meter.burn(storageGas(len(key))); err != nil {
		return err
	}
	return inv.storage.Delete(key)
}

func (inv *invocation) Sha256(data []byte) ([32]byte, error) {
	if err := inv.meter.burn(Sha256BaseGas + contract.Gas(len(data))*Sha256ByteGas); err != nil {
		return [32]byte{}, err
	}
	return hashing.ComputeHash256Array(data), nil
}

func (inv *invocation) Log(msg string) error {
	if err := inv.meter.burn(LogGas); err != nil {
		return err
	}
	inv.logs = append(inv.logs, msg)
	inv.log.Debug("contract log", "account", inv.current, "msg", msg)
	return nil
}

func (inv *invocation) Return(value []byte) {
	inv.value = append([]byte(nil), value...)
}

func (inv *invocation) Submit(p *contract.Promise) error {
	_, err := inv.submit(p)
	return err
}

func (inv *invocation) ReturnPromise(p *contract.Promise) error {
	last, err := inv.submit(p)
	if err != nil {
		return err
	}
	inv.returned = &last
	inv.value = nil
	return nil
}

func (inv *invocation) PromiseResults() []contract.PromiseResult {
	results := make([]contract.PromiseResult, len(inv.results))
	copy(results, inv.results)
	return results
}

// submit turns the chain starting at [p] into receipts, each depending on
// the one before, and returns the id of the last. The chain's gas is
// charged and its deposits are taken from the current account up front.
func (inv *invocation) submit(p *contract.Promise) (ids.ID, error) {
	if inv.view {
		return ids.Empty, fmt.Errorf("%w: promise submission", contract.ErrProhibitedInView)
	}
	if p == nil {
		return ids.Empty, contract.ErrEmptyPromise
	}
	if err := p.Validate(); err != nil {
		return ids.Empty, err
	}
	if err := inv.meter.burn(PromiseGas(p)); err != nil {
		return ids.Empty, err
	}

	acc, err := inv.state.GetAccount(inv.current)
	if err != nil {
		return ids.Empty, err
	}
	deposit := p.Deposit()
	if err := acc.Debit(deposit); err != nil {
		return ids.Empty, fmt.Errorf("%w: %s has %s, chain needs %s",
			contract.ErrNotEnoughBalance, inv.current, acc.Balance.Dec(), deposit.Dec())
	}
	if err := inv.state.PutAccount(acc); err != nil {
		return ids.Empty, err
	}

	var prev *Receipt
	for cur := p; cur != nil; cur = cur.Next() {
		r := &Receipt{
			ID:          inv.ids.Next(),
			TxID:        inv.txID,
			Predecessor: inv.current,
			Receiver:    cur.Receiver(),
			Signer:      inv.signer,
			Actions:     cur.Actions(),
		}
		if prev != nil {
			r.DependsOn = []ids.ID{prev.ID}
		}
		inv.submitted = append(inv.submitted, r)
		prev = r
	}
	return prev.ID, nil
}
