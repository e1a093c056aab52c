// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package factory implements the generic factory contract. The factory stores
// one piece of deployable code exactly once and then lets anyone provision a
// sub-account running that code, forwarding the attached deposit and
// optionally calling an initializer on the new account.
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/ava-labs/factoryvm/contract"
)

const (
	Name = "generic-factory"

	MethodSetCode     = "set_code"
	MethodGetCodeHash = "get_code_hash"
	MethodCreate      = "create"
	MethodAfterCreate = "after_create"
)

var (
	code = []byte("factoryvm/contracts/generic-factory@v1")

	_ contract.Factory  = Factory{}
	_ contract.Contract = (*Contract)(nil)
)

// Factory builds generic factory contracts.
type Factory struct{}

func (Factory) Name() string { return Name }

// Code returns the deployable bytes of the generic factory.
func (Factory) Code() []byte { return append([]byte(nil), code...) }

func (Factory) New() contract.Contract { return New() }

// Contract dispatches calls to the factory's components.
type Contract struct {
	registry    Registry
	provisioner *Provisioner
	completion  CompletionHandler
}

// New returns a generic factory contract.
func New() *Contract {
	c := &Contract{}
	c.provisioner = &Provisioner{registry: c.registry}
	return c
}

// Call implements contract.Contract.
func (c *Contract) Call(host contract.Host, method string) error {
	switch method {
	case MethodSetCode:
		if err := c.registry.SetCode(host, host.Input()); err != nil {
			return err
		}
		return returnJSON(host, true)

	case MethodGetCodeHash:
		hash, ok, err := c.registry.CodeHash(host)
		if err != nil {
			return err
		}
		if !ok {
			return returnJSON(host, nil)
		}
		return returnJSON(host, base58.Encode(hash[:]))

	case MethodCreate:
		var args CreateArgs
		if err := decodeArgs(host.Input(), &args); err != nil {
			return err
		}
		return c.provisioner.Create(host, args)

	case MethodAfterCreate:
		var args AfterCreateArgs
		if err := decodeArgs(host.Input(), &args); err != nil {
			return err
		}
		ok, err := c.completion.AfterCreate(host, args)
		if err != nil {
			return err
		}
		return returnJSON(host, ok)

	default:
		return fmt.Errorf("%w: %q", contract.ErrMethodNotFound, method)
	}
}

func decodeArgs(input []byte, v interface{}) error {
	if err := json.Unmarshal(input, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	return nil
}

func returnJSON(host contract.Host, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	host.Return(b)
	return nil
}
