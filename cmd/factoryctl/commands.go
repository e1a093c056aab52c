// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/urfave/cli/v2"

	"github.com/ava-labs/factoryvm/client"
	"github.com/ava-labs/factoryvm/contract"
	"github.com/ava-labs/factoryvm/factory"
	"github.com/ava-labs/factoryvm/factoryvm"
)

var (
	errSettleTimeout = errors.New("transaction did not settle in time")

	uriFlag = cli.StringFlag{
		Name:    "uri",
		Usage:   "base URI of the factoryvm node",
		EnvVars: []string{"FACTORYCTL_URI"},
		Value:   "http://127.0.0.1:9650",
	}
	signerFlag = cli.StringFlag{
		Name:     "signer",
		Usage:    "account signing the transaction",
		EnvVars:  []string{"FACTORYCTL_SIGNER"},
		Required: true,
	}
	factoryFlag = cli.StringFlag{
		Name:  "factory",
		Usage: "factory account",
		Value: "factory.test",
	}
	depositFlag = cli.StringFlag{
		Name:  "deposit",
		Usage: "attached deposit in the smallest native unit",
	}
	gasFlag = cli.Uint64Flag{
		Name:  "gas",
		Usage: "prepaid gas",
		Value: uint64(factoryvm.MaxPrepaidGas),
	}
	waitFlag = cli.DurationFlag{
		Name:  "wait",
		Usage: "how long to wait for the final outcome, 0 returns right away",
		Value: 30 * time.Second,
	}
)

var SetCode = cli.Command{
	Action:    setCode,
	Name:      "set-code",
	Usage:     "stores the code the factory deploys, signed by the factory itself",
	ArgsUsage: "<code-file>",
	Flags:     []cli.Flag{&factoryFlag, &gasFlag, &waitFlag},
}

func setCode(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("missing code file")
	}
	code, err := os.ReadFile(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	factoryID := contract.AccountID(ctx.String(factoryFlag.Name))
	return transact(ctx, client.Transaction{
		Signer:   factoryID,
		Receiver: factoryID,
		Method:   factory.MethodSetCode,
		Args:     code,
		Gas:      contract.Gas(ctx.Uint64(gasFlag.Name)),
	})
}

var (
	initFunctionFlag = cli.StringFlag{
		Name:  "init-function",
		Usage: "method called on the new account, requires --init-args",
	}
	initArgsFlag = cli.StringFlag{
		Name:  "init-args",
		Usage: "input of --init-function",
	}
)

var Create = cli.Command{
	Action:    create,
	Name:      "create",
	Usage:     "provisions <name>.<factory> running the factory's code",
	ArgsUsage: "<name>",
	Flags: []cli.Flag{
		&signerFlag, &factoryFlag, &depositFlag, &gasFlag, &waitFlag,
		&initFunctionFlag, &initArgsFlag,
	},
}

func create(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("missing account name")
	}
	args := factory.CreateArgs{Name: ctx.Args().Get(0)}
	if ctx.IsSet(initFunctionFlag.Name) {
		fn := ctx.String(initFunctionFlag.Name)
		args.InitFunction = &fn
	}
	if ctx.IsSet(initArgsFlag.Name) {
		initArgs := ctx.String(initArgsFlag.Name)
		args.InitArgs = &initArgs
	}
	input, err := json.Marshal(args)
	if err != nil {
		return err
	}
	deposit, err := contract.ParseAmount(ctx.String(depositFlag.Name))
	if err != nil {
		return err
	}
	return transact(ctx, client.Transaction{
		Signer:   contract.AccountID(ctx.String(signerFlag.Name)),
		Receiver: contract.AccountID(ctx.String(factoryFlag.Name)),
		Method:   factory.MethodCreate,
		Args:     input,
		Gas:      contract.Gas(ctx.Uint64(gasFlag.Name)),
		Deposit:  deposit,
	})
}

var codeFileFlag = cli.StringFlag{
	Name:  "file",
	Usage: "hash this code file locally instead of asking the factory",
}

var CodeHash = cli.Command{
	Action: codeHash,
	Name:   "code-hash",
	Usage:  "prints the base58 SHA-256 of the factory's code, null when unset",
	Flags:  []cli.Flag{&factoryFlag, &codeFileFlag},
}

func codeHash(ctx *cli.Context) error {
	node := newClient(ctx)
	if path := ctx.String(codeFileFlag.Name); path != "" {
		code, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		hash, err := node.CodeHash(ctx.Context, code)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, hash)
		return nil
	}
	value, _, err := node.View(ctx.Context, contract.AccountID(ctx.String(factoryFlag.Name)), factory.MethodGetCodeHash, nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, string(value))
	return nil
}

var Account = cli.Command{
	Action:    account,
	Name:      "account",
	Usage:     "prints an account's balance, nonce and code hash",
	ArgsUsage: "<account>",
}

func account(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("missing account")
	}
	reply, err := newClient(ctx).GetAccount(ctx.Context, contract.AccountID(ctx.Args().Get(0)))
	if err != nil {
		return err
	}
	return printJSON(ctx, reply)
}

var Outcome = cli.Command{
	Action:    outcome,
	Name:      "outcome",
	Usage:     "prints the final outcome of a transaction",
	ArgsUsage: "<txID>",
}

func outcome(ctx *cli.Context) error {
	txID, err := txIDArg(ctx)
	if err != nil {
		return err
	}
	reply, err := newClient(ctx).GetOutcome(ctx.Context, txID)
	if err != nil {
		return err
	}
	if reply == nil {
		fmt.Fprintln(ctx.App.Writer, "pending")
		return nil
	}
	return printJSON(ctx, reply)
}

var Receipts = cli.Command{
	Action:    receipts,
	Name:      "receipts",
	Usage:     "prints every executed receipt of a transaction",
	ArgsUsage: "<txID>",
}

func receipts(ctx *cli.Context) error {
	txID, err := txIDArg(ctx)
	if err != nil {
		return err
	}
	reply, err := newClient(ctx).GetReceipts(ctx.Context, txID)
	if err != nil {
		return err
	}
	return printJSON(ctx, reply)
}

var Step = cli.Command{
	Action: step,
	Name:   "step",
	Usage:  "executes the receipts that are ready now",
}

func step(ctx *cli.Context) error {
	reply, err := newClient(ctx).Step(ctx.Context)
	if err != nil {
		return err
	}
	return printJSON(ctx, reply)
}

var (
	limitFlag = cli.UintFlag{
		Name:  "limit",
		Usage: "most receipts to print",
		Value: 20,
	}
	offsetFlag = cli.UintFlag{
		Name:  "offset",
		Usage: "receipts to skip",
	}
)

var History = cli.Command{
	Action:    history,
	Name:      "history",
	Usage:     "prints the journaled receipts an account sent or received",
	ArgsUsage: "<account>",
	Flags:     []cli.Flag{&limitFlag, &offsetFlag},
}

func history(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("missing account")
	}
	entries, err := newClient(ctx).GetAccountHistory(ctx.Context,
		contract.AccountID(ctx.Args().Get(0)),
		uint32(ctx.Uint(limitFlag.Name)),
		uint32(ctx.Uint(offsetFlag.Name)),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, entries)
}

var Call = cli.Command{
	Action:    call,
	Name:      "call",
	Usage:     "submits a raw function call",
	ArgsUsage: "<receiver> <method> [args]",
	Flags:     []cli.Flag{&signerFlag, &depositFlag, &gasFlag, &waitFlag},
}

func call(ctx *cli.Context) error {
	if ctx.Args().Len() < 2 || ctx.Args().Len() > 3 {
		return fmt.Errorf("expected <receiver> <method> [args]")
	}
	deposit, err := contract.ParseAmount(ctx.String(depositFlag.Name))
	if err != nil {
		return err
	}
	return transact(ctx, client.Transaction{
		Signer:   contract.AccountID(ctx.String(signerFlag.Name)),
		Receiver: contract.AccountID(ctx.Args().Get(0)),
		Method:   ctx.Args().Get(1),
		Args:     []byte(ctx.Args().Get(2)),
		Gas:      contract.Gas(ctx.Uint64(gasFlag.Name)),
		Deposit:  deposit,
	})
}

var View = cli.Command{
	Action:    view,
	Name:      "view",
	Usage:     "calls a contract method without persisting anything",
	ArgsUsage: "<account> <method> [args]",
}

func view(ctx *cli.Context) error {
	if ctx.Args().Len() < 2 || ctx.Args().Len() > 3 {
		return fmt.Errorf("expected <account> <method> [args]")
	}
	value, logs, err := newClient(ctx).View(ctx.Context,
		contract.AccountID(ctx.Args().Get(0)),
		ctx.Args().Get(1),
		[]byte(ctx.Args().Get(2)),
	)
	if err != nil {
		return err
	}
	for _, line := range logs {
		fmt.Fprintln(ctx.App.ErrWriter, line)
	}
	fmt.Fprintln(ctx.App.Writer, string(value))
	return nil
}

func newClient(ctx *cli.Context) client.Client {
	return client.New(ctx.String(uriFlag.Name))
}

func txIDArg(ctx *cli.Context) (ids.ID, error) {
	if ctx.Args().Len() != 1 {
		return ids.Empty, fmt.Errorf("missing transaction id")
	}
	return ids.FromString(ctx.Args().Get(0))
}

// transact submits [tx] and, unless --wait is 0, polls until its final
// outcome is known.
func transact(ctx *cli.Context, tx client.Transaction) error {
	node := newClient(ctx)
	txID, err := node.SubmitTransaction(ctx.Context, tx)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "submitted %s\n", txID)

	wait := ctx.Duration(waitFlag.Name)
	if wait == 0 {
		return nil
	}
	deadline := time.Now().Add(wait)
	for {
		reply, err := node.GetOutcome(ctx.Context, txID)
		if err != nil {
			return err
		}
		if reply != nil {
			return printJSON(ctx, reply)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", errSettleTimeout, txID)
		}
		select {
		case <-ctx.Context.Done():
			return ctx.Context.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}

func printJSON(ctx *cli.Context, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, string(b))
	return nil
}
