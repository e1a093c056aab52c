// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/factoryvm/contract"
	"github.com/ava-labs/factoryvm/factory"
	"github.com/ava-labs/factoryvm/factoryvm"
	"github.com/ava-labs/factoryvm/hello"
	receiptjournal "github.com/ava-labs/factoryvm/receipts"
)

const (
	alice          contract.AccountID = "alice.test"
	factoryAccount contract.AccountID = "factory.test"
)

// newTestNode serves a running node and returns its base URI.
func newTestNode(t *testing.T) string {
	require := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())

	journal, err := receiptjournal.Open(ctx, receiptjournal.MemoryPath)
	require.NoError(err)

	genesis, err := json.Marshal(factoryvm.Genesis{Accounts: []factoryvm.GenesisAccount{
		{ID: alice, Balance: contract.NewAmount(contract.Coins(100))},
		{ID: factoryAccount, Balance: contract.NewAmount(contract.Coins(10)), Contract: factory.Name},
	}})
	require.NoError(err)

	vm := factoryvm.New(factoryvm.WithJournal(journal))
	require.NoError(vm.Initialize(memdb.New(), genesis))

	handler, err := factoryvm.NewHandler(vm)
	require.NoError(err)
	staticHandler, err := factoryvm.NewStaticHandler()
	require.NoError(err)

	mux := http.NewServeMux()
	mux.Handle(factoryvm.Endpoint, handler)
	mux.Handle(factoryvm.StaticEndpoint, staticHandler)
	server := httptest.NewServer(mux)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = vm.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		server.Close()
		journal.Close()
	})
	return server.URL
}

// run executes factoryctl against [uri] and returns what it printed.
func run(t *testing.T, uri string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"factoryctl", "--uri", uri}, args...))
	return stdout.String(), err
}

func mustRun(t *testing.T, uri string, args ...string) string {
	out, err := run(t, uri, args...)
	require.NoError(t, err)
	return out
}

// parseTransact splits the output of a waited transaction into its id and
// final outcome.
func parseTransact(t *testing.T, out string) (ids.ID, factoryvm.OutcomeReply) {
	require := require.New(t)

	first, rest, ok := strings.Cut(out, "\n")
	require.True(ok, out)
	require.True(strings.HasPrefix(first, "submitted "), first)
	txID, err := ids.FromString(strings.TrimPrefix(first, "submitted "))
	require.NoError(err)

	var reply factoryvm.OutcomeReply
	require.NoError(json.Unmarshal([]byte(rest), &reply))
	return txID, reply
}

func outcomeValue(t *testing.T, reply factoryvm.OutcomeReply) string {
	value, err := formatting.Decode(formatting.Hex, reply.Value)
	require.NoError(t, err)
	return string(value)
}

func TestCommands(t *testing.T) {
	require := require.New(t)
	uri := newTestNode(t)

	codeFile := filepath.Join(t.TempDir(), "hello.code")
	require.NoError(os.WriteFile(codeFile, hello.Code(), 0o600))

	require.Equal("null\n", mustRun(t, uri, "code-hash"))

	_, reply := parseTransact(t, mustRun(t, uri, "set-code", codeFile))
	require.Equal(factoryvm.StatusSuccessValue.String(), reply.Status)
	require.Equal("true", outcomeValue(t, reply))

	localHash := strings.TrimSpace(mustRun(t, uri, "code-hash", "--file", codeFile))
	require.Equal(`"`+localHash+`"`, strings.TrimSpace(mustRun(t, uri, "code-hash")))

	txID, reply := parseTransact(t, mustRun(t, uri, "create",
		"--signer", string(alice),
		"--deposit", contract.Coins(2).Dec(),
		"--init-function", hello.MethodNew,
		"--init-args", `{"subject":"world"}`,
		"sub",
	))
	require.Equal("true", outcomeValue(t, reply))
	require.Equal([]string{"provisioned account for alice.test"}, reply.Logs)

	require.Equal("\"Hello, world!\"\n", mustRun(t, uri, "view", "sub.factory.test", hello.MethodHello))

	var account factoryvm.GetAccountReply
	require.NoError(json.Unmarshal([]byte(mustRun(t, uri, "account", "sub.factory.test")), &account))
	require.Equal(contract.Coins(2), account.Balance.Value())
	require.Equal(localHash, account.CodeHash)

	var final factoryvm.OutcomeReply
	require.NoError(json.Unmarshal([]byte(mustRun(t, uri, "outcome", txID.String())), &final))
	require.Equal(reply, final)

	var executed factoryvm.GetReceiptsReply
	require.NoError(json.Unmarshal([]byte(mustRun(t, uri, "receipts", txID.String())), &executed))
	require.Equal(alice, executed.Signer)
	require.Len(executed.Receipts, 3)

	var history []receiptjournal.Entry
	require.NoError(json.Unmarshal([]byte(mustRun(t, uri, "history", "--limit", "1", string(alice))), &history))
	require.Len(history, 1)

	var step factoryvm.StepReply
	require.NoError(json.Unmarshal([]byte(mustRun(t, uri, "step")), &step))
	require.Empty(step.Executed)
}

func TestCallWithoutWaiting(t *testing.T) {
	require := require.New(t)
	uri := newTestNode(t)

	out := mustRun(t, uri, "call", "--signer", string(alice), "--wait", "0", string(factoryAccount), factory.MethodGetCodeHash)
	first, rest, ok := strings.Cut(out, "\n")
	require.True(ok)
	require.Empty(rest)
	txID, err := ids.FromString(strings.TrimPrefix(first, "submitted "))
	require.NoError(err)

	require.Eventually(func() bool {
		out, err := run(t, uri, "outcome", txID.String())
		return err == nil && out != "pending\n"
	}, 10*time.Second, 50*time.Millisecond)
}

func TestCommandErrors(t *testing.T) {
	uri := newTestNode(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "create without signer", args: []string{"create", "sub"}},
		{name: "create without name", args: []string{"create", "--signer", string(alice)}},
		{name: "bad deposit", args: []string{"create", "--signer", string(alice), "--deposit", "-1", "sub"}},
		{name: "missing code file", args: []string{"set-code", filepath.Join(t.TempDir(), "missing")}},
		{name: "bad transaction id", args: []string{"outcome", "nope"}},
		{name: "unknown account", args: []string{"account", "nobody.test"}},
		{name: "view without method", args: []string{"view", string(factoryAccount)}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := run(t, uri, test.args...)
			require.Error(t, err)
		})
	}
}
