// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hello is a minimal greeting contract, used as the code a factory
// deploys to the sub-accounts it creates.
package hello

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/factoryvm/contract"
)

const (
	Name = "hello"

	MethodNew   = "new"
	MethodHello = "hello"
)

var (
	stateKey = []byte("STATE")
	code     = []byte("factoryvm/contracts/hello@v1")

	errAlreadyInitialized = errors.New("hello: the contract has already been initialized")

	_ contract.Factory  = Factory{}
	_ contract.Contract = (*Contract)(nil)
)

// Factory builds hello contracts.
type Factory struct{}

func (Factory) Name() string { return Name }

func (Factory) Code() []byte { return append([]byte(nil), code...) }

func (Factory) New() contract.Contract { return &Contract{} }

// Code returns the deployable bytes of the hello contract.
func Code() []byte { return Factory{}.Code() }

type state struct {
	Subject string `serialize:"true"`
}

// NewArgs initialize a hello contract.
type NewArgs struct {
	Subject string `json:"subject"`
}

// Contract greets its configured subject. An account that was never
// initialized greets the empty subject.
type Contract struct {
	state state
}

func (c *Contract) Call(host contract.Host, method string) error {
	switch method {
	case MethodNew:
		var args NewArgs
		if err := json.Unmarshal(host.Input(), &args); err != nil {
			return fmt.Errorf("%w: %v", contract.ErrInvalidInput, err)
		}
		exists, err := host.StorageHas(stateKey)
		if err != nil {
			return err
		}
		if exists {
			return errAlreadyInitialized
		}
		c.state = state{Subject: args.Subject}
		return c.save(host)

	case MethodHello:
		if err := c.load(host); err != nil {
			return err
		}
		greeting, err := json.Marshal(fmt.Sprintf("Hello, %s!", c.state.Subject))
		if err != nil {
			return err
		}
		host.Return(greeting)
		return nil

	default:
		return fmt.Errorf("%w: %q", contract.ErrMethodNotFound, method)
	}
}

func (c *Contract) load(host contract.Host) error {
	b, ok, err := host.StorageRead(stateKey)
	if err != nil {
		return err
	}
	if !ok {
		c.state = state{}
		return nil
	}
	if _, err := Codec.Unmarshal(b, &c.state); err != nil {
		return fmt.Errorf("couldn't parse hello state: %w", err)
	}
	return nil
}

func (c *Contract) save(host contract.Host) error {
	b, err := Codec.Marshal(codecVersion, &c.state)
	if err != nil {
		return err
	}
	return host.StorageWrite(stateKey, b)
}
