// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/factoryvm/contract"
)

var (
	ErrAccountExists    = errors.New("account already exists")
	ErrAccountNotFound  = errors.New("account does not exist")
	ErrNotSubAccount    = errors.New("only the parent account can create a sub-account")
	ErrContractTooLarge = errors.New("contract code exceeds the maximum size")
	ErrNoCode           = errors.New("account has no code, deploy a contract first")
	ErrUnknownCode      = errors.New("deployed code is not a known contract")

	errBalanceOverflow     = errors.New("balance overflow")
	errInsufficientBalance = errors.New("insufficient balance")
)

// ActionError is the failure of one action of a receipt.
type ActionError struct {
	Index int
	Kind  contract.ActionKind
	Err   error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action #%d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// executor applies receipts to a state layer.
type executor struct {
	engine *Engine
	config Config
	log    log.Logger
}

// execution is what running one receipt produced.
type execution struct {
	outcome *Outcome
	// produced lists new receipts in enqueue order: the refund first, then
	// whatever the successful call submitted.
	produced []*Receipt
}

// execute runs [r] on top of [parent]. Every action commits into [parent]
// on its own: the first failing action is reverted and stops the batch, but
// the actions before it stay applied. The deposits of the failed and
// skipped actions go back to the predecessor in a refund receipt.
//
// Only a failure of [parent] itself is returned as an error.
func (e *executor) execute(parent State, r *Receipt, results []contract.PromiseResult) (*execution, error) {
	gen := &receiptIDs{parent: r.ID}
	exec := &execution{
		outcome: &Outcome{
			ReceiptID:   r.ID,
			TxID:        r.TxID,
			Predecessor: r.Predecessor,
			Receiver:    r.Receiver,
			Refund:      r.Refund,
			Status:      StatusSuccessValue,
		},
	}

	var submitted []*Receipt
	for i, action := range r.Actions {
		layer := parent.Nested()
		inv, err := e.apply(layer, r, action, results, gen)
		if inv != nil {
			exec.outcome.GasBurnt += uint64(inv.meter.used)
			exec.outcome.Logs = append(exec.outcome.Logs, inv.logs...)
		}
		if err != nil {
			layer.Abort()
			actionErr := &ActionError{Index: i, Kind: action.Kind, Err: err}
			exec.outcome.Status = StatusFailure
			exec.outcome.Failure = actionErr.Error()
			exec.outcome.Value = nil
			exec.outcome.ReturnedReceipt = ids.Empty
			e.log.Debug("action failed",
				"receipt", r.ID,
				"receiver", r.Receiver,
				"err", actionErr,
			)

			refund := r.Deposit(i)
			switch {
			case refund.IsZero():
			case r.Refund:
				e.log.Warn("dropping failed refund",
					"receipt", r.ID,
					"receiver", r.Receiver,
					"amount", refund.Dec(),
				)
			default:
				exec.produced = append(exec.produced,
					newRefundReceipt(gen.Next(), r.TxID, r.Predecessor, r.Signer, refund))
			}
			submitted = nil
			break
		}
		if err := layer.Commit(); err != nil {
			return nil, fmt.Errorf("couldn't commit action %d of %s: %w", i, r.ID, err)
		}

		exec.outcome.Value = nil
		exec.outcome.ReturnedReceipt = ids.Empty
		exec.outcome.Status = StatusSuccessValue
		if inv != nil {
			submitted = append(submitted, inv.submitted...)
			if inv.returned != nil {
				exec.outcome.Status = StatusSuccessReceipt
				exec.outcome.ReturnedReceipt = *inv.returned
			} else {
				exec.outcome.Value = inv.value
			}
		}
	}

	exec.produced = append(exec.produced, submitted...)
	for _, p := range exec.produced {
		exec.outcome.Produced = append(exec.outcome.Produced, p.ID)
	}
	return exec, nil
}

// apply runs one action in [layer]. The invocation is returned for function
// calls, whether or not they failed.
func (e *executor) apply(
	layer State,
	r *Receipt,
	action contract.Action,
	results []contract.PromiseResult,
	gen *receiptIDs,
) (*invocation, error) {
	switch action.Kind {
	case contract.ActionCreateAccount:
		return nil, e.createAccount(layer, r)
	case contract.ActionTransfer:
		return nil, e.transfer(layer, r.Receiver, action)
	case contract.ActionDeployContract:
		return nil, e.deployContract(layer, r.Receiver, action)
	case contract.ActionFunctionCall:
		return e.functionCall(layer, r, action, results, gen)
	default:
		return nil, fmt.Errorf("%w: %s", contract.ErrInvalidAction, action.Kind)
	}
}

func (e *executor) createAccount(layer State, r *Receipt) error {
	exists, err := layer.HasAccount(r.Receiver)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAccountExists, r.Receiver)
	}
	if !r.Receiver.IsDirectSubAccountOf(r.Predecessor) {
		return fmt.Errorf("%w: %s cannot create %s", ErrNotSubAccount, r.Predecessor, r.Receiver)
	}
	return layer.PutAccount(NewAccount(r.Receiver, nil))
}

func (e *executor) transfer(layer State, receiver contract.AccountID, action contract.Action) error {
	acc, err := getAccount(layer, receiver)
	if err != nil {
		return err
	}
	if err := acc.Credit(action.Deposit()); err != nil {
		return err
	}
	return layer.PutAccount(acc)
}

func (e *executor) deployContract(layer State, receiver contract.AccountID, action contract.Action) error {
	if len(action.Code) > e.config.MaxContractSize {
		return fmt.Errorf("%w: %d > %d bytes", ErrContractTooLarge, len(action.Code), e.config.MaxContractSize)
	}
	acc, err := getAccount(layer, receiver)
	if err != nil {
		return err
	}
	codeHash, err := layer.PutCode(action.Code)
	if err != nil {
		return err
	}
	acc.CodeHash = codeHash
	return layer.PutAccount(acc)
}

func (e *executor) functionCall(
	layer State,
	r *Receipt,
	action contract.Action,
	results []contract.PromiseResult,
	gen *receiptIDs,
) (*invocation, error) {
	acc, err := getAccount(layer, r.Receiver)
	if err != nil {
		return nil, err
	}
	deposit := action.Deposit()
	if err := acc.Credit(deposit); err != nil {
		return nil, err
	}
	if err := layer.PutAccount(acc); err != nil {
		return nil, err
	}

	c, err := e.resolve(acc)
	if err != nil {
		return nil, err
	}
	inv := &invocation{
		state:       layer,
		storage:     layer.ContractStorage(r.Receiver),
		log:         e.log,
		current:     r.Receiver,
		predecessor: r.Predecessor,
		signer:      r.Signer,
		input:       action.Args,
		deposit:     deposit,
		results:     results,
		meter:       gasMeter{prepaid: action.Gas},
		ids:         gen,
		txID:        r.TxID,
	}
	if err := c.Call(inv, action.Method); err != nil {
		return inv, err
	}
	return inv, nil
}

// resolve links the code deployed to [acc].
func (e *executor) resolve(acc *Account) (contract.Contract, error) {
	if !acc.HasCode() {
		return nil, fmt.Errorf("%w: %s", ErrNoCode, acc.ID)
	}
	f, ok := e.engine.Resolve(acc.CodeHash)
	if !ok {
		return nil, fmt.Errorf("%w: %s runs %s", ErrUnknownCode, acc.ID, acc.CodeHash)
	}
	return f.New(), nil
}

// view runs [method] of [id] against a read-only host on [layer].
func (e *executor) view(layer State, id contract.AccountID, method string, args []byte) (*invocation, error) {
	acc, err := getAccount(layer, id)
	if err != nil {
		return nil, err
	}
	c, err := e.resolve(acc)
	if err != nil {
		return nil, err
	}
	inv := &invocation{
		state:   layer,
		storage: layer.ContractStorage(id),
		log:     e.log,
		current: id,
		input:   args,
		deposit: contract.Zero(),
		view:    true,
		meter:   gasMeter{prepaid: e.config.ViewGas},
		ids:     &receiptIDs{},
	}
	return inv, c.Call(inv, method)
}

func getAccount(s AccountState, id contract.AccountID) (*Account, error) {
	acc, err := s.GetAccount(id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	return acc, err
}
