// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import (
	"fmt"

	"github.com/ava-labs/factoryvm/contract"
)

// AfterCreateArgs carry the refund record of one create call into its
// callback.
type AfterCreateArgs struct {
	Caller contract.AccountID `json:"caller"`
	Amount contract.Amount    `json:"amount"`
}

// CompletionHandler settles a provisioning chain. The steps that already ran
// cannot be undone, so a failed chain is compensated by returning the
// caller's deposit.
type CompletionHandler struct{}

// AfterCreate reports whether the chain succeeded, refunding [args].Amount
// to [args].Caller when it did not. Only the factory itself may call it.
func (CompletionHandler) AfterCreate(host contract.Host, args AfterCreateArgs) (bool, error) {
	if host.Predecessor() != host.CurrentAccount() {
		return false, fmt.Errorf("%w: after_create called by %s", ErrPrivateMethod, host.Predecessor())
	}
	results := host.PromiseResults()
	if len(results) != 1 {
		return false, fmt.Errorf("%w: expected 1 promise result, got %d", ErrInvalidArguments, len(results))
	}

	if results[0].Succeeded() {
		if err := host.Log(fmt.Sprintf("provisioned account for %s", args.Caller)); err != nil {
			return false, err
		}
		return true, nil
	}

	amount := args.Amount.Value()
	if !amount.IsZero() {
		refund := contract.NewPromise(args.Caller).Transfer(amount)
		if err := host.Submit(refund); err != nil {
			return false, fmt.Errorf("couldn't refund %s to %s: %w", amount.Dec(), args.Caller, err)
		}
	}
	if err := host.Log(fmt.Sprintf("provisioning failed, refunded %s to %s", amount.Dec(), args.Caller)); err != nil {
		return false, err
	}
	return false, nil
}
