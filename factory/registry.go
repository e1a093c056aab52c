// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import (
	"errors"
	"fmt"

	"github.com/ava-labs/factoryvm/contract"
)

// CodeKey is the storage slot holding the deployable code.
var CodeKey = []byte("code")

// Registry owns the factory's single write-once code slot.
type Registry struct{}

// SetCode stores [code] under CodeKey. Only the factory account may call it,
// and only while no code is stored; there is no way to replace or delete the
// code afterwards.
func (Registry) SetCode(host contract.Host, code []byte) error {
	if host.Predecessor() != host.CurrentAccount() {
		return fmt.Errorf("%w: called by %s", ErrPermissionDenied, host.Predecessor())
	}
	exists, err := host.StorageHas(CodeKey)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyConfigured
	}
	return host.StorageWrite(CodeKey, code)
}

// Code returns the stored code, or ErrNotConfigured.
func (Registry) Code(host contract.Host) ([]byte, error) {
	code, ok, err := host.StorageRead(CodeKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotConfigured
	}
	return code, nil
}

// CodeHash returns the SHA-256 digest of the stored code. The boolean is
// false when no code is stored.
func (r Registry) CodeHash(host contract.Host) ([32]byte, bool, error) {
	code, err := r.Code(host)
	switch {
	case errors.Is(err, ErrNotConfigured):
		return [32]byte{}, false, nil
	case err != nil:
		return [32]byte{}, false, err
	}
	hash, err := host.Sha256(code)
	if err != nil {
		return [32]byte{}, false, err
	}
	return hash, true, nil
}
