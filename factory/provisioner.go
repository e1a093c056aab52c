// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import (
	"encoding/json"
	"fmt"

	"github.com/ava-labs/factoryvm/contract"
)

// CreateArgs are the JSON arguments of create. InitFunction and InitArgs
// are either both present or both absent.
type CreateArgs struct {
	Name         string  `json:"name"`
	InitFunction *string `json:"init_function,omitempty"`
	InitArgs     *string `json:"init_args,omitempty"`
}

// Provisioner creates sub-accounts running the registry's code.
type Provisioner struct {
	registry Registry
}

// Create provisions "<name>.<factory>": it creates the account, forwards
// the whole attached deposit, deploys the stored code and optionally calls
// the initializer, then chains after_create on the factory to settle the
// outcome. Every check below happens before anything is dispatched.
func (p *Provisioner) Create(host contract.Host, args CreateArgs) error {
	withInit := args.InitFunction != nil
	if withInit != (args.InitArgs != nil) {
		return fmt.Errorf("%w: init_function and init_args must be provided together", ErrInvalidArguments)
	}
	if withInit && *args.InitFunction == "" {
		return fmt.Errorf("%w: empty init_function", ErrInvalidArguments)
	}

	code, err := p.registry.Code(host)
	if err != nil {
		return err
	}

	factoryID := host.CurrentAccount()
	accountID, err := contract.SubAccount(args.Name, factoryID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}

	plan, err := PlanGas(host.PrepaidGas(), host.UsedGas(), len(code), withInit)
	if err != nil {
		return err
	}

	deposit := host.AttachedDeposit()
	chain := contract.NewPromise(accountID).
		CreateAccount().
		Transfer(deposit).
		DeployContract(code)
	if withInit {
		chain.FunctionCall(*args.InitFunction, []byte(*args.InitArgs), contract.Zero(), plan.InitGas)
	}

	callbackArgs, err := json.Marshal(AfterCreateArgs{
		Caller: host.Predecessor(),
		Amount: contract.NewAmount(deposit),
	})
	if err != nil {
		return err
	}
	callback := contract.NewPromise(factoryID).
		FunctionCall(MethodAfterCreate, callbackArgs, contract.Zero(), plan.CallbackGas)

	return host.ReturnPromise(chain.Then(callback))
}
