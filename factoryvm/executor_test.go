// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"
	log "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/factoryvm/contract"
)

func newTestExecutor(t *testing.T) (*executor, State) {
	s := NewState(memdb.New())
	require.NoError(t, s.PutAccount(NewAccount(alice, contract.Coins(1))))
	require.NoError(t, s.PutAccount(NewAccount(bob, contract.Coins(1))))
	return &executor{engine: testEngine(t), config: DefaultConfig(), log: log.New()}, s
}

func transferAction(amount uint64) contract.Action {
	return contract.Action{Kind: contract.ActionTransfer, Amount: uint256.NewInt(amount)}
}

func TestExecuteCreateAccountRequiresParent(t *testing.T) {
	require := require.New(t)
	exec, s := newTestExecutor(t)

	r := &Receipt{
		ID:          ids.GenerateTestID(),
		TxID:        ids.GenerateTestID(),
		Predecessor: alice,
		Receiver:    "x.bob.test",
		Signer:      alice,
		Actions: []contract.Action{
			{Kind: contract.ActionCreateAccount},
			transferAction(5),
		},
	}
	res, err := exec.execute(s, r, nil)
	require.NoError(err)
	require.Equal(StatusFailure, res.outcome.Status)
	require.Contains(res.outcome.Failure, "action #0 (CreateAccount)")
	require.Contains(res.outcome.Failure, ErrNotSubAccount.Error())

	require.Len(res.produced, 1)
	refund := res.produced[0]
	require.Equal(ReceiptID(r.ID, 0), refund.ID)
	require.Equal(alice, refund.Receiver)
	require.Equal(uint256.NewInt(5), refund.Deposit(0))
	require.Equal([]ids.ID{refund.ID}, res.outcome.Produced)

	has, err := s.HasAccount("x.bob.test")
	require.NoError(err)
	require.False(has)
}

func TestExecuteFailedRefundIsDropped(t *testing.T) {
	require := require.New(t)
	exec, s := newTestExecutor(t)

	r := newRefundReceipt(ids.GenerateTestID(), ids.GenerateTestID(), "gone.test", alice, uint256.NewInt(5))
	res, err := exec.execute(s, r, nil)
	require.NoError(err)
	require.Equal(StatusFailure, res.outcome.Status)
	require.Contains(res.outcome.Failure, ErrAccountNotFound.Error())
	require.True(res.outcome.Refund)
	require.Empty(res.produced)
}

func TestExecuteZeroDepositFailureHasNoRefund(t *testing.T) {
	require := require.New(t)
	exec, s := newTestExecutor(t)

	r := &Receipt{
		ID:          ids.GenerateTestID(),
		Predecessor: alice,
		Receiver:    bob,
		Signer:      alice,
		Actions: []contract.Action{{
			Kind:   contract.ActionFunctionCall,
			Method: "echo",
			Gas:    contract.Tgas,
		}},
	}
	res, err := exec.execute(s, r, nil)
	require.NoError(err)
	require.Equal(StatusFailure, res.outcome.Status)
	require.Contains(res.outcome.Failure, ErrNoCode.Error())
	require.Empty(res.produced)
}

func TestExecuteTransfers(t *testing.T) {
	require := require.New(t)
	exec, s := newTestExecutor(t)

	r := &Receipt{
		ID:          ids.GenerateTestID(),
		Predecessor: alice,
		Receiver:    bob,
		Signer:      alice,
		Actions:     []contract.Action{transferAction(3), transferAction(4)},
	}
	res, err := exec.execute(s, r, nil)
	require.NoError(err)
	require.True(res.outcome.Succeeded())
	require.Empty(res.outcome.Value)

	acc, err := s.GetAccount(bob)
	require.NoError(err)
	expected := new(uint256.Int).Add(contract.Coins(1), uint256.NewInt(7))
	require.Equal(expected, acc.Balance)
}

func TestExecuteDeployReplacesCode(t *testing.T) {
	require := require.New(t)
	exec, s := newTestExecutor(t)

	deploy := func(code []byte) {
		r := &Receipt{
			ID:          ids.GenerateTestID(),
			Predecessor: bob,
			Receiver:    bob,
			Signer:      bob,
			Actions:     []contract.Action{{Kind: contract.ActionDeployContract, Code: code}},
		}
		res, err := exec.execute(s, r, nil)
		require.NoError(err)
		require.True(res.outcome.Succeeded(), res.outcome.Failure)
	}

	deploy([]byte("first"))
	deploy(scriptedCode)

	acc, err := s.GetAccount(bob)
	require.NoError(err)
	code, err := s.GetCode(acc.CodeHash)
	require.NoError(err)
	require.Equal(scriptedCode, code)

	inv, err := exec.view(s.Nested(), bob, "echo", []byte("hi"))
	require.NoError(err)
	require.Equal([]byte("hi"), inv.value)
}
