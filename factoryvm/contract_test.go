// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/factoryvm/contract"
)

var (
	scriptedCode = []byte("factoryvm/tests/scripted@v1")

	errScriptedFailed = errors.New("scripted: requested failure")
)

// scripted is a contract driving the runtime from tests.
type scripted struct{}

func (scripted) Name() string { return "scripted" }

func (scripted) Code() []byte { return append([]byte(nil), scriptedCode...) }

func (scripted) New() contract.Contract { return scripted{} }

// batchArgs describe the batch "batch" submits to the sub-account "child".
type batchArgs struct {
	First  uint64 `json:"first"`
	Code   []byte `json:"code"`
	Second uint64 `json:"second"`
}

// callArgs describe the function call "call" submits, chained to
// "results" on the contract itself.
type callArgs struct {
	Receiver contract.AccountID `json:"receiver"`
	Method   string             `json:"method"`
	Args     []byte             `json:"args"`
	Deposit  uint64             `json:"deposit"`
	Gas      contract.Gas       `json:"gas"`
	Return   bool               `json:"return"`
}

func (p scripted) Call(host contract.Host, method string) error {
	switch method {
	case "write":
		if err := host.StorageWrite([]byte("k"), host.Input()); err != nil {
			return err
		}
		if string(host.Input()) == "fail" {
			return errScriptedFailed
		}
		return nil

	case "read":
		value, ok, err := host.StorageRead([]byte("k"))
		if err != nil {
			return err
		}
		if ok {
			host.Return(value)
		}
		return host.Log(fmt.Sprintf("found=%t", ok))

	case "clear":
		return host.StorageRemove([]byte("k"))

	case "fail":
		if err := host.Log("about to fail"); err != nil {
			return err
		}
		return errScriptedFailed

	case "burn":
		for i := 0; ; i++ {
			if err := host.StorageWrite([]byte(fmt.Sprintf("k%d", i)), make([]byte, 1024)); err != nil {
				return err
			}
		}

	case "batch":
		var args batchArgs
		if err := json.Unmarshal(host.Input(), &args); err != nil {
			return err
		}
		child, err := contract.SubAccount("child", host.CurrentAccount())
		if err != nil {
			return err
		}
		return host.Submit(contract.NewPromise(child).
			CreateAccount().
			Transfer(uint256.NewInt(args.First)).
			DeployContract(args.Code).
			Transfer(uint256.NewInt(args.Second)))

	case "call":
		var args callArgs
		if err := json.Unmarshal(host.Input(), &args); err != nil {
			return err
		}
		chain := contract.NewPromise(args.Receiver).
			FunctionCall(args.Method, args.Args, uint256.NewInt(args.Deposit), args.Gas).
			Then(contract.NewPromise(host.CurrentAccount()).
				FunctionCall("results", nil, nil, 10*contract.Tgas))
		if args.Return {
			return host.ReturnPromise(chain)
		}
		return host.Submit(chain)

	case "results":
		if host.Predecessor() != host.CurrentAccount() {
			return errScriptedFailed
		}
		results := host.PromiseResults()
		summary := make([]string, 0, len(results))
		for _, r := range results {
			if r.Succeeded() {
				summary = append(summary, "ok:"+string(r.Value))
			} else {
				summary = append(summary, "failed")
			}
		}
		b, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		host.Return(b)
		return nil

	case "echo":
		host.Return(host.Input())
		return nil

	case "balance":
		host.Return([]byte(host.AccountBalance().Dec()))
		return nil

	default:
		return fmt.Errorf("%w: %q", contract.ErrMethodNotFound, method)
	}
}
