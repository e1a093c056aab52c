// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"fmt"
	"strings"
)

const (
	MinAccountIDLen = 2
	MaxAccountIDLen = 64

	accountSeparator = '.'
)

// AccountID names an account on the ledger. Sub-accounts are named
// "<name>.<parent>", e.g. "alice.factory".
type AccountID string

func (a AccountID) String() string { return string(a) }

// Validate returns nil iff [a] is a well formed account id: 2 to 64
// characters, dot separated parts of lowercase letters and digits joined by
// single '-' or '_' separators.
func (a AccountID) Validate() error {
	s := string(a)
	if len(s) < MinAccountIDLen || len(s) > MaxAccountIDLen {
		return fmt.Errorf("%w: %q has length %d", ErrInvalidAccountID, s, len(s))
	}
	lastSeparator := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			lastSeparator = false
		case c == '-' || c == '_' || c == accountSeparator:
			if lastSeparator {
				return fmt.Errorf("%w: %q has a misplaced separator at %d", ErrInvalidAccountID, s, i)
			}
			lastSeparator = true
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidAccountID, s, c)
		}
	}
	if lastSeparator {
		return fmt.Errorf("%w: %q ends with a separator", ErrInvalidAccountID, s)
	}
	return nil
}

// IsSubAccountOf reports whether [a] lives anywhere below [parent].
func (a AccountID) IsSubAccountOf(parent AccountID) bool {
	return strings.HasSuffix(string(a), string(accountSeparator)+string(parent))
}

// IsDirectSubAccountOf reports whether [a] is exactly one level below [parent].
func (a AccountID) IsDirectSubAccountOf(parent AccountID) bool {
	if !a.IsSubAccountOf(parent) {
		return false
	}
	prefix := strings.TrimSuffix(string(a), string(accountSeparator)+string(parent))
	return !strings.ContainsRune(prefix, accountSeparator)
}

// SubAccount derives "<name>.<parent>" and validates the result.
func SubAccount(name string, parent AccountID) (AccountID, error) {
	id := AccountID(name + string(accountSeparator) + string(parent))
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}
