// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hello

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ava-labs/factoryvm/contract"
)

// memoryHost backs a MockHost's storage with a map.
func memoryHost(t *testing.T, input []byte) (*contract.MockHost, map[string][]byte, *[]byte) {
	ctrl := gomock.NewController(t)
	host := contract.NewMockHost(ctrl)
	storage := map[string][]byte{}
	var returned []byte

	host.EXPECT().Input().Return(input).AnyTimes()
	host.EXPECT().StorageHas(gomock.Any()).DoAndReturn(func(key []byte) (bool, error) {
		_, ok := storage[string(key)]
		return ok, nil
	}).AnyTimes()
	host.EXPECT().StorageRead(gomock.Any()).DoAndReturn(func(key []byte) ([]byte, bool, error) {
		v, ok := storage[string(key)]
		return v, ok, nil
	}).AnyTimes()
	host.EXPECT().StorageWrite(gomock.Any(), gomock.Any()).DoAndReturn(func(key, value []byte) error {
		storage[string(key)] = value
		return nil
	}).AnyTimes()
	host.EXPECT().Return(gomock.Any()).Do(func(value []byte) {
		returned = value
	}).AnyTimes()
	return host, storage, &returned
}

func TestNewThenHello(t *testing.T) {
	require := require.New(t)

	host, storage, returned := memoryHost(t, []byte(`{"subject":"world"}`))
	require.NoError(Factory{}.New().Call(host, MethodNew))
	require.Contains(storage, string(stateKey))

	// A fresh instance reloads the persisted state.
	require.NoError(Factory{}.New().Call(host, MethodHello))
	require.Equal(`"Hello, world!"`, string(*returned))
}

func TestHelloUninitialized(t *testing.T) {
	require := require.New(t)

	host, _, returned := memoryHost(t, nil)
	require.NoError(Factory{}.New().Call(host, MethodHello))
	require.Equal(`"Hello, !"`, string(*returned))
}

func TestNewTwice(t *testing.T) {
	require := require.New(t)

	host, _, _ := memoryHost(t, []byte(`{"subject":"world"}`))
	c := Factory{}.New()
	require.NoError(c.Call(host, MethodNew))
	require.ErrorIs(c.Call(host, MethodNew), errAlreadyInitialized)
}

func TestNewInvalidInput(t *testing.T) {
	host, _, _ := memoryHost(t, []byte(`not json`))
	require.ErrorIs(t, Factory{}.New().Call(host, MethodNew), contract.ErrInvalidInput)
}

func TestUnknownMethod(t *testing.T) {
	host, _, _ := memoryHost(t, nil)
	require.ErrorIs(t, Factory{}.New().Call(host, "goodbye"), contract.ErrMethodNotFound)
}
