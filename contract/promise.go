// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"fmt"

	"github.com/holiman/uint256"
)

// ActionKind identifies one step of a promise batch.
type ActionKind uint8

const (
	// ActionCreateAccount creates the batch receiver.
	ActionCreateAccount ActionKind = iota + 1

	// ActionTransfer moves an amount from the predecessor to the receiver.
	ActionTransfer

	// ActionDeployContract stores code on the receiver.
	ActionDeployContract

	// ActionFunctionCall invokes a method of the receiver's code.
	ActionFunctionCall
)

func (k ActionKind) String() string {
	switch k {
	case ActionCreateAccount:
		return "CreateAccount"
	case ActionTransfer:
		return "Transfer"
	case ActionDeployContract:
		return "DeployContract"
	case ActionFunctionCall:
		return "FunctionCall"
	default:
		return fmt.Sprintf("ActionKind(%d)", uint8(k))
	}
}

// Action is a single step of a promise batch. Only the fields relevant to
// [Kind] are set.
type Action struct {
	Kind ActionKind

	// Amount is the transferred value for ActionTransfer and the attached
	// deposit for ActionFunctionCall.
	Amount *uint256.Int

	// Code is the deployed code for ActionDeployContract.
	Code []byte

	// Method, Args and Gas describe an ActionFunctionCall.
	Method string
	Args   []byte
	Gas    Gas
}

// Deposit returns the value this action moves to the receiver.
func (a Action) Deposit() *uint256.Int {
	if a.Amount == nil {
		return Zero()
	}
	return new(uint256.Int).Set(a.Amount)
}

// Promise is an ordered batch of actions addressed to a single receiver,
// optionally followed by a callback promise that runs once the batch has
// settled, whatever its outcome.
//
// A Promise is built with the chaining methods and handed to Host.Submit or
// Host.ReturnPromise. The actions of one batch run in the order they were
// added.
type Promise struct {
	receiver AccountID
	actions  []Action
	then     *Promise
}

// NewPromise starts an empty batch addressed to [receiver].
func NewPromise(receiver AccountID) *Promise {
	return &Promise{
		receiver: receiver,
		actions:  make([]Action, 0, 4),
	}
}

// CreateAccount appends the creation of the receiver account.
func (p *Promise) CreateAccount() *Promise {
	p.actions = append(p.actions, Action{Kind: ActionCreateAccount})
	return p
}

// Transfer appends a transfer of [amount] to the receiver.
func (p *Promise) Transfer(amount *uint256.Int) *Promise {
	p.actions = append(p.actions, Action{
		Kind:   ActionTransfer,
		Amount: new(uint256.Int).Set(amount),
	})
	return p
}

// DeployContract appends the deployment of [code] to the receiver.
func (p *Promise) DeployContract(code []byte) *Promise {
	p.actions = append(p.actions, Action{
		Kind: ActionDeployContract,
		Code: append([]byte(nil), code...),
	})
	return p
}

// FunctionCall appends a call of [method] on the receiver with [gas]
// prepaid and [deposit] attached.
func (p *Promise) FunctionCall(method string, args []byte, deposit *uint256.Int, gas Gas) *Promise {
	a := Action{
		Kind:   ActionFunctionCall,
		Method: method,
		Args:   append([]byte(nil), args...),
		Gas:    gas,
		Amount: Zero(),
	}
	if deposit != nil {
		a.Amount.Set(deposit)
	}
	p.actions = append(p.actions, a)
	return p
}

// Then schedules [next] to run after the last promise of this chain has
// settled. It returns the head of the chain.
func (p *Promise) Then(next *Promise) *Promise {
	tail := p
	for tail.then != nil {
		tail = tail.then
	}
	tail.then = next
	return p
}

// Receiver returns the account this batch is addressed to.
func (p *Promise) Receiver() AccountID { return p.receiver }

// Actions returns the batch's actions in execution order.
func (p *Promise) Actions() []Action {
	actions := make([]Action, len(p.actions))
	copy(actions, p.actions)
	return actions
}

// Next returns the callback chained after this batch, or nil.
func (p *Promise) Next() *Promise { return p.then }

// Len returns the number of batches in the chain starting at [p].
func (p *Promise) Len() int {
	n := 0
	for cur := p; cur != nil; cur = cur.then {
		n++
	}
	return n
}

// Deposit returns the total value the chain moves out of the submitting
// account.
func (p *Promise) Deposit() *uint256.Int {
	total := Zero()
	for cur := p; cur != nil; cur = cur.then {
		for _, a := range cur.actions {
			total.Add(total, a.Deposit())
		}
	}
	return total
}

// Gas returns the total gas the chain prepays to its function calls.
func (p *Promise) Gas() Gas {
	var total Gas
	for cur := p; cur != nil; cur = cur.then {
		for _, a := range cur.actions {
			total += a.Gas
		}
	}
	return total
}

// Validate checks the shape of every batch in the chain.
func (p *Promise) Validate() error {
	for i, cur := 0, p; cur != nil; i, cur = i+1, cur.then {
		if err := cur.receiver.Validate(); err != nil {
			return fmt.Errorf("promise %d: %w", i, err)
		}
		if len(cur.actions) == 0 {
			return fmt.Errorf("promise %d to %s: %w", i, cur.receiver, ErrEmptyPromise)
		}
		for j, a := range cur.actions {
			switch a.Kind {
			case ActionCreateAccount:
				if j != 0 {
					return fmt.Errorf("promise %d to %s: %w", i, cur.receiver, ErrActionOrder)
				}
			case ActionTransfer, ActionDeployContract:
			case ActionFunctionCall:
				if a.Method == "" {
					return fmt.Errorf("promise %d to %s, action %d: %w: empty method name", i, cur.receiver, j, ErrInvalidAction)
				}
			default:
				return fmt.Errorf("promise %d to %s, action %d: %w: %s", i, cur.receiver, j, ErrInvalidAction, a.Kind)
			}
		}
	}
	return nil
}
