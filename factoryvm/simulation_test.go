// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/holiman/uint256"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/factoryvm/contract"
	"github.com/ava-labs/factoryvm/factory"
	"github.com/ava-labs/factoryvm/hello"
)

var createDeposit = contract.Coins(2)

func strPtr(s string) *string { return &s }

func setCode(t *testing.T, vm *VM, signer contract.AccountID, code []byte) *Outcome {
	txID := submit(t, vm, TxRequest{
		Signer:   signer,
		Receiver: factoryAccount,
		Method:   factory.MethodSetCode,
		Args:     code,
	})
	runUntilIdle(t, vm)
	o, err := vm.Outcome(txID)
	require.NoError(t, err)
	return o
}

func create(t *testing.T, vm *VM, signer contract.AccountID, args factory.CreateArgs) ids.ID {
	return submit(t, vm, TxRequest{
		Signer:   signer,
		Receiver: factoryAccount,
		Method:   factory.MethodCreate,
		Args:     mustJSON(t, args),
		Deposit:  createDeposit,
	})
}

func codeHash(t *testing.T, vm *VM) string {
	value, _, err := vm.View(factoryAccount, factory.MethodGetCodeHash, nil)
	require.NoError(t, err)
	return string(value)
}

func greet(t *testing.T, vm *VM, id contract.AccountID) string {
	value, _, err := vm.View(id, hello.MethodHello, nil)
	require.NoError(t, err)
	return string(value)
}

func configuredVM(t *testing.T) *VM {
	vm := newTestVM(t)
	o := setCode(t, vm, factoryAccount, hello.Code())
	require.True(t, o.Succeeded(), o.Failure)
	return vm
}

func TestFactorySetCode(t *testing.T) {
	require := require.New(t)
	vm := newTestVM(t)

	require.Equal("null", codeHash(t, vm))

	o := setCode(t, vm, factoryAccount, hello.Code())
	require.Equal(StatusSuccessValue, o.Status)
	require.Equal("true", string(o.Value))

	sum := hashing.ComputeHash256Array(hello.Code())
	expected := `"` + base58.Encode(sum[:]) + `"`
	require.Equal(expected, codeHash(t, vm))

	// The slot is write once.
	o = setCode(t, vm, factoryAccount, []byte("other code"))
	require.Equal(StatusFailure, o.Status)
	require.Contains(o.Failure, factory.ErrAlreadyConfigured.Error())
	require.Equal(expected, codeHash(t, vm))
}

func TestFactoryLargeCode(t *testing.T) {
	require := require.New(t)
	vm := newTestVM(t)

	// Larger than the codec's default slice limit.
	code := bytes.Repeat([]byte{0xab}, 300*units.KiB)
	o := setCode(t, vm, factoryAccount, code)
	require.True(o.Succeeded(), o.Failure)

	txID := create(t, vm, alice, factory.CreateArgs{Name: "big"})
	runUntilIdle(t, vm)

	o, err := vm.Outcome(txID)
	require.NoError(err)
	require.Equal("true", string(o.Value))

	big, err := vm.GetAccount("big.factory.test")
	require.NoError(err)
	require.Equal(ids.ID(hashing.ComputeHash256Array(code)), big.CodeHash)
}

func TestFactoryReservationCoversCreationSteps(t *testing.T) {
	require := require.New(t)

	for _, size := range []int{0, len(hello.Code()), 300 * units.KiB, MaxPayloadSize} {
		chain := contract.NewPromise("sub.factory.test").
			CreateAccount().
			Transfer(createDeposit).
			DeployContract(make([]byte, size)).
			FunctionCall(hello.MethodNew, nil, contract.Zero(), 0).
			Then(contract.NewPromise(factoryAccount).
				FunctionCall(factory.MethodAfterCreate, nil, contract.Zero(), 0))

		require.LessOrEqual(uint64(PromiseGas(chain)), uint64(factory.CreateReservation(size)), "code size %d", size)
	}
	require.Equal(contract.Gas(DeployByteGas), factory.CodeByteGas)
}

func TestFactorySetCodePermission(t *testing.T) {
	require := require.New(t)
	vm := newTestVM(t)

	o := setCode(t, vm, alice, hello.Code())
	require.Equal(StatusFailure, o.Status)
	require.Contains(o.Failure, factory.ErrPermissionDenied.Error())
	require.Equal("null", codeHash(t, vm))
}

func TestFactoryCreateBeforeSetCode(t *testing.T) {
	require := require.New(t)
	vm := newTestVM(t)

	txID := create(t, vm, alice, factory.CreateArgs{Name: "sub"})
	runUntilIdle(t, vm)

	o, err := vm.Outcome(txID)
	require.NoError(err)
	require.Equal(StatusFailure, o.Status)
	require.Contains(o.Failure, factory.ErrNotConfigured.Error())

	_, err = vm.GetAccount("sub.factory.test")
	require.ErrorIs(err, ErrAccountNotFound)
	require.Equal(initialUserBalance, balanceOf(t, vm, alice))
	require.Equal(initialFactoryBalance, balanceOf(t, vm, factoryAccount))
}

func TestFactoryCreateWithInit(t *testing.T) {
	require := require.New(t)
	vm := configuredVM(t)

	txID := create(t, vm, alice, factory.CreateArgs{
		Name:         "sub",
		InitFunction: strPtr(hello.MethodNew),
		InitArgs:     strPtr(`{"subject":"world"}`),
	})
	runUntilIdle(t, vm)

	o, err := vm.Outcome(txID)
	require.NoError(err)
	require.Equal(StatusSuccessValue, o.Status)
	require.Equal("true", string(o.Value))
	require.Equal([]string{"provisioned account for alice.test"}, o.Logs)

	require.Equal(`"Hello, world!"`, greet(t, vm, "sub.factory.test"))

	sub, err := vm.GetAccount("sub.factory.test")
	require.NoError(err)
	require.Equal(createDeposit, sub.Balance)
	require.Equal(ids.ID(hashing.ComputeHash256Array(hello.Code())), sub.CodeHash)

	expected := new(uint256.Int).Sub(initialUserBalance, createDeposit)
	require.Equal(expected, balanceOf(t, vm, alice))
	require.Equal(initialFactoryBalance, balanceOf(t, vm, factoryAccount))
}

func TestFactoryCreateWithoutInit(t *testing.T) {
	require := require.New(t)
	vm := configuredVM(t)

	txID := create(t, vm, alice, factory.CreateArgs{Name: "sub2"})
	runUntilIdle(t, vm)

	o, err := vm.Outcome(txID)
	require.NoError(err)
	require.Equal("true", string(o.Value))
	require.Equal(`"Hello, !"`, greet(t, vm, "sub2.factory.test"))
}

func TestFactoryCreateDuplicateName(t *testing.T) {
	require := require.New(t)
	vm := configuredVM(t)

	create(t, vm, alice, factory.CreateArgs{Name: "sub"})
	runUntilIdle(t, vm)
	aliceBalance := balanceOf(t, vm, alice)

	txID := create(t, vm, bob, factory.CreateArgs{Name: "sub"})
	runUntilIdle(t, vm)

	o, err := vm.Outcome(txID)
	require.NoError(err)
	require.Equal(StatusSuccessValue, o.Status)
	require.Equal("false", string(o.Value))

	_, outcomes, err := vm.Receipts(txID)
	require.NoError(err)
	var chainFailure string
	for _, o := range outcomes {
		if o.Receiver == "sub.factory.test" {
			chainFailure = o.Failure
		}
	}
	require.Contains(chainFailure, ErrAccountExists.Error())

	require.Equal(initialUserBalance, balanceOf(t, vm, bob))
	require.Equal(aliceBalance, balanceOf(t, vm, alice))
	require.Equal(initialFactoryBalance, balanceOf(t, vm, factoryAccount))
	require.Equal(createDeposit, balanceOf(t, vm, "sub.factory.test"))
}

func TestFactoryCreateConcurrentSameName(t *testing.T) {
	require := require.New(t)
	vm := configuredVM(t)

	first := create(t, vm, alice, factory.CreateArgs{Name: "race"})
	second := create(t, vm, bob, factory.CreateArgs{Name: "race"})
	runUntilIdle(t, vm)

	wins := 0
	for _, txID := range []ids.ID{first, second} {
		o, err := vm.Outcome(txID)
		require.NoError(err)
		if string(o.Value) == "true" {
			wins++
		}
	}
	require.Equal(1, wins)

	// Exactly one deposit landed in the new account and the other went back.
	total := new(uint256.Int).Add(balanceOf(t, vm, alice), balanceOf(t, vm, bob))
	expected := new(uint256.Int).Add(initialUserBalance, initialUserBalance)
	expected.Sub(expected, createDeposit)
	require.Equal(expected, total)
	require.Equal(createDeposit, balanceOf(t, vm, "race.factory.test"))
	require.Equal(initialFactoryBalance, balanceOf(t, vm, factoryAccount))
}

func TestFactoryCreateInitFailure(t *testing.T) {
	require := require.New(t)
	vm := configuredVM(t)

	txID := create(t, vm, alice, factory.CreateArgs{
		Name:         "broken",
		InitFunction: strPtr(hello.MethodNew),
		InitArgs:     strPtr("not json"),
	})
	runUntilIdle(t, vm)

	o, err := vm.Outcome(txID)
	require.NoError(err)
	require.Equal("false", string(o.Value))

	// The steps before the initializer stay applied.
	broken, err := vm.GetAccount("broken.factory.test")
	require.NoError(err)
	require.True(broken.HasCode())
	require.Equal(createDeposit, broken.Balance)

	// The factory made the caller whole.
	require.Equal(initialUserBalance, balanceOf(t, vm, alice))
	expected := new(uint256.Int).Sub(initialFactoryBalance, createDeposit)
	require.Equal(expected, balanceOf(t, vm, factoryAccount))
}

func TestFactoryRefundsDrainFactory(t *testing.T) {
	require := require.New(t)
	vm := configuredVM(t)

	failing := func(name string) *Outcome {
		txID := create(t, vm, alice, factory.CreateArgs{
			Name:         name,
			InitFunction: strPtr(hello.MethodNew),
			InitArgs:     strPtr("not json"),
		})
		runUntilIdle(t, vm)
		o, err := vm.Outcome(txID)
		require.NoError(err)
		return o
	}

	// Every failed initializer is refunded out of the factory's balance.
	refunds := new(uint256.Int).Div(initialFactoryBalance, createDeposit).Uint64()
	for i := uint64(0); i < refunds; i++ {
		o := failing(fmt.Sprintf("broken%d", i))
		require.Equal("false", string(o.Value))
	}
	require.True(balanceOf(t, vm, factoryAccount).IsZero())
	require.Equal(initialUserBalance, balanceOf(t, vm, alice))

	// Once it is empty the refund cannot be attached and after_create fails.
	o := failing("stranded")
	require.Equal(StatusFailure, o.Status)
	require.Contains(o.Failure, contract.ErrNotEnoughBalance.Error())
	require.True(balanceOf(t, vm, factoryAccount).IsZero())
	require.Equal(createDeposit, balanceOf(t, vm, "stranded.factory.test"))
	expected := new(uint256.Int).Sub(initialUserBalance, createDeposit)
	require.Equal(expected, balanceOf(t, vm, alice))
}

func TestFactoryCreateInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args factory.CreateArgs
		gas  contract.Gas
		err  error
	}{
		{
			name: "init function without args",
			args: factory.CreateArgs{Name: "sub", InitFunction: strPtr(hello.MethodNew)},
			err:  factory.ErrInvalidArguments,
		},
		{
			name: "init args without function",
			args: factory.CreateArgs{Name: "sub", InitArgs: strPtr(`{}`)},
			err:  factory.ErrInvalidArguments,
		},
		{
			name: "invalid name",
			args: factory.CreateArgs{Name: "Sub"},
			err:  contract.ErrInvalidAccountID,
		},
		{
			name: "not enough gas",
			args: factory.CreateArgs{Name: "sub"},
			gas:  30 * contract.Tgas,
			err:  factory.ErrInsufficientGas,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)
			vm := configuredVM(t)

			txID := submit(t, vm, TxRequest{
				Signer:   alice,
				Receiver: factoryAccount,
				Method:   factory.MethodCreate,
				Args:     mustJSON(t, test.args),
				Gas:      test.gas,
				Deposit:  createDeposit,
			})
			runUntilIdle(t, vm)

			o, err := vm.Outcome(txID)
			require.NoError(err)
			require.Equal(StatusFailure, o.Status)
			require.Contains(o.Failure, test.err.Error())
			require.Empty(o.Logs)

			_, err = vm.GetAccount("sub.factory.test")
			require.ErrorIs(err, ErrAccountNotFound)
			require.Equal(initialUserBalance, balanceOf(t, vm, alice))
		})
	}
}

func TestFactoryAfterCreateIsPrivate(t *testing.T) {
	require := require.New(t)
	vm := configuredVM(t)

	txID := submit(t, vm, TxRequest{
		Signer:   alice,
		Receiver: factoryAccount,
		Method:   factory.MethodAfterCreate,
		Args:     mustJSON(t, factory.AfterCreateArgs{Caller: alice, Amount: contract.NewAmount(createDeposit)}),
	})
	runUntilIdle(t, vm)

	o, err := vm.Outcome(txID)
	require.NoError(err)
	require.Equal(StatusFailure, o.Status)
	require.Contains(o.Failure, factory.ErrPrivateMethod.Error())
	require.Equal(initialFactoryBalance, balanceOf(t, vm, factoryAccount))
}
