// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
)

// Gas is the host's computational-cost unit.
type Gas uint64

const (
	Ggas Gas = 1_000_000_000
	Tgas Gas = 1_000 * Ggas
)

func (g Gas) String() string {
	if g >= Tgas && g%Tgas == 0 {
		return fmt.Sprintf("%dTgas", uint64(g/Tgas))
	}
	return fmt.Sprintf("%dgas", uint64(g))
}

// CoinDecimals is the number of smallest units in one whole coin, as a power
// of ten.
const CoinDecimals = 24

var oneCoin = new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(CoinDecimals))

// Coins returns [n] whole coins expressed in the smallest native unit.
func Coins(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), oneCoin)
}

// Zero returns a fresh zero amount.
func Zero() *uint256.Int { return new(uint256.Int) }

// ParseAmount parses a decimal amount of smallest native units. The empty
// string is zero.
func ParseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return Zero(), nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse amount %q: %w", s, err)
	}
	return v, nil
}

// Amount carries a native amount through JSON as a decimal string, since
// balances do not fit in a JSON number.
type Amount struct {
	uint256.Int
}

// NewAmount copies [v] into an Amount. A nil [v] is zero.
func NewAmount(v *uint256.Int) Amount {
	var a Amount
	if v != nil {
		a.Set(v)
	}
	return a
}

// Value returns a copy of the wrapped amount.
func (a *Amount) Value() *uint256.Int { return new(uint256.Int).Set(&a.Int) }

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Dec())
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("amount must be a decimal string: %w", err)
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	a.Set(v)
	return nil
}
