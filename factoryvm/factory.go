// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ava-labs/factoryvm/contract"
	"github.com/ava-labs/factoryvm/factory"
	"github.com/ava-labs/factoryvm/hello"
)

var (
	errDuplicateContract = errors.New("contract is already registered")
	errUnknownContract   = errors.New("unknown contract")
)

// Engine links deployed code to executable contracts. Code is opaque bytes:
// the engine recognises it by its SHA-256.
type Engine struct {
	byHash map[ids.ID]contract.Factory
	byName map[string]contract.Factory
}

// NewEngine returns an engine that can run the code of [factories].
func NewEngine(factories ...contract.Factory) (*Engine, error) {
	e := &Engine{
		byHash: make(map[ids.ID]contract.Factory, len(factories)),
		byName: make(map[string]contract.Factory, len(factories)),
	}
	for _, f := range factories {
		if err := e.Register(f); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// DefaultEngine runs the generic factory and the hello contract.
func DefaultEngine() *Engine {
	e, err := NewEngine(factory.Factory{}, hello.Factory{})
	if err != nil {
		panic(err)
	}
	return e
}

// Register makes [f]'s code executable.
func (e *Engine) Register(f contract.Factory) error {
	codeHash := ids.ID(hashing.ComputeHash256Array(f.Code()))
	if _, ok := e.byHash[codeHash]; ok {
		return fmt.Errorf("%w: %s", errDuplicateContract, f.Name())
	}
	if _, ok := e.byName[f.Name()]; ok {
		return fmt.Errorf("%w: %s", errDuplicateContract, f.Name())
	}
	e.byHash[codeHash] = f
	e.byName[f.Name()] = f
	return nil
}

// Resolve returns the contract running code with hash [codeHash].
func (e *Engine) Resolve(codeHash ids.ID) (contract.Factory, bool) {
	f, ok := e.byHash[codeHash]
	return f, ok
}

// Lookup returns the contract registered as [name].
func (e *Engine) Lookup(name string) (contract.Factory, error) {
	f, ok := e.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownContract, name)
	}
	return f, nil
}
