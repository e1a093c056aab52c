// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/holiman/uint256"

	"github.com/ava-labs/factoryvm/contract"
	"github.com/ava-labs/factoryvm/factoryvm"
	"github.com/ava-labs/factoryvm/receipts"
)

// Client defines factoryvm client operations.
type Client interface {
	// SubmitTransaction queues a function call and returns its transaction id
	SubmitTransaction(ctx context.Context, tx Transaction) (ids.ID, error)

	// GetOutcome fetches the final outcome of a transaction. The outcome is
	// nil while the transaction is pending.
	GetOutcome(ctx context.Context, txID ids.ID) (*factoryvm.OutcomeReply, error)

	// GetReceipts fetches every executed receipt of a transaction
	GetReceipts(ctx context.Context, txID ids.ID) (*factoryvm.GetReceiptsReply, error)

	// View calls a contract method without persisting anything
	View(ctx context.Context, account contract.AccountID, method string, args []byte) ([]byte, []string, error)

	// GetAccount fetches an account's balance, nonce and code hash
	GetAccount(ctx context.Context, account contract.AccountID) (*factoryvm.GetAccountReply, error)

	// GetAccountHistory fetches the journaled receipts of an account
	GetAccountHistory(ctx context.Context, account contract.AccountID, limit, offset uint32) ([]receipts.Entry, error)

	// Step executes the receipts that are ready now
	Step(ctx context.Context) (*factoryvm.StepReply, error)

	// CodeHash returns the base58 SHA-256 of [code] as a factory would
	// report it
	CodeHash(ctx context.Context, code []byte) (string, error)
}

// Transaction is a function call to submit.
type Transaction struct {
	Signer   contract.AccountID
	Receiver contract.AccountID
	Method   string
	Args     []byte
	Gas      contract.Gas
	Deposit  *uint256.Int
}

// New creates a new client object for the node listening at [uri].
func New(uri string) Client {
	return &client{
		uri:  strings.TrimSuffix(uri, "/"),
		http: http.DefaultClient,
	}
}

type client struct {
	uri  string
	http *http.Client
}

func (cli *client) SubmitTransaction(ctx context.Context, tx Transaction) (ids.ID, error) {
	args, err := formatting.EncodeWithChecksum(formatting.Hex, tx.Args)
	if err != nil {
		return ids.Empty, err
	}
	deposit := ""
	if tx.Deposit != nil {
		deposit = tx.Deposit.Dec()
	}

	resp := new(factoryvm.SubmitTransactionReply)
	err = cli.send(ctx, factoryvm.Endpoint, "submitTransaction", &factoryvm.SubmitTransactionArgs{
		Signer:   tx.Signer,
		Receiver: tx.Receiver,
		Method:   tx.Method,
		Args:     args,
		Gas:      json.Uint64(tx.Gas),
		Deposit:  deposit,
	}, resp)
	if err != nil {
		return ids.Empty, err
	}
	return resp.TxID, nil
}

func (cli *client) GetOutcome(ctx context.Context, txID ids.ID) (*factoryvm.OutcomeReply, error) {
	resp := new(factoryvm.GetOutcomeReply)
	err := cli.send(ctx, factoryvm.Endpoint, "getOutcome", &factoryvm.TxIDArgs{TxID: txID}, resp)
	if err != nil {
		return nil, err
	}
	return resp.Outcome, nil
}

func (cli *client) GetReceipts(ctx context.Context, txID ids.ID) (*factoryvm.GetReceiptsReply, error) {
	resp := new(factoryvm.GetReceiptsReply)
	err := cli.send(ctx, factoryvm.Endpoint, "getReceipts", &factoryvm.TxIDArgs{TxID: txID}, resp)
	return resp, err
}

func (cli *client) View(ctx context.Context, account contract.AccountID, method string, args []byte) ([]byte, []string, error) {
	encoded, err := formatting.EncodeWithChecksum(formatting.Hex, args)
	if err != nil {
		return nil, nil, err
	}
	resp := new(factoryvm.ViewReply)
	err = cli.send(ctx, factoryvm.Endpoint, "view", &factoryvm.ViewArgs{
		Account: account,
		Method:  method,
		Args:    encoded,
	}, resp)
	if err != nil {
		return nil, nil, err
	}
	value, err := formatting.Decode(formatting.Hex, resp.Value)
	if err != nil {
		return nil, nil, err
	}
	return value, resp.Logs, nil
}

func (cli *client) GetAccount(ctx context.Context, account contract.AccountID) (*factoryvm.GetAccountReply, error) {
	resp := new(factoryvm.GetAccountReply)
	err := cli.send(ctx, factoryvm.Endpoint, "getAccount", &factoryvm.AccountArgs{Account: account}, resp)
	return resp, err
}

func (cli *client) GetAccountHistory(ctx context.Context, account contract.AccountID, limit, offset uint32) ([]receipts.Entry, error) {
	resp := new(factoryvm.GetAccountHistoryReply)
	err := cli.send(ctx, factoryvm.Endpoint, "getAccountHistory", &factoryvm.GetAccountHistoryArgs{
		Account: account,
		Limit:   json.Uint32(limit),
		Offset:  json.Uint32(offset),
	}, resp)
	return resp.Receipts, err
}

func (cli *client) Step(ctx context.Context) (*factoryvm.StepReply, error) {
	resp := new(factoryvm.StepReply)
	err := cli.send(ctx, factoryvm.Endpoint, "step", &struct{}{}, resp)
	return resp, err
}

func (cli *client) CodeHash(ctx context.Context, code []byte) (string, error) {
	encoded, err := formatting.EncodeWithChecksum(formatting.Hex, code)
	if err != nil {
		return "", err
	}
	resp := new(factoryvm.CodeHashReply)
	err = cli.send(ctx, factoryvm.StaticEndpoint, "codeHash", &factoryvm.CodeHashArgs{Code: encoded}, resp)
	return resp.Hash, err
}

func (cli *client) send(ctx context.Context, endpoint, method string, args, reply interface{}) error {
	body, err := json2.EncodeClientRequest(factoryvm.Name+"."+method, args)
	if err != nil {
		return fmt.Errorf("couldn't encode %s request: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cli.uri+endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := cli.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	if err := json2.DecodeClientResponse(resp.Body, reply); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s returned status %d: %w", method, resp.StatusCode, err)
		}
		return err
	}
	return nil
}
