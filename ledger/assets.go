// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"
)

const (
	// Lovelace is the reserved unit for the base currency
	Lovelace Unit = "lovelace"

	policyIdHexLength = Blake2b224Size * 2
)

// Unit is the concatenation of a hex policy ID and a hex asset name, or "lovelace"
type Unit string

func NewUnit(policyId Blake2b224, assetName []byte) Unit {
	return Unit(policyId.String() + hex.EncodeToString(assetName))
}

func (u Unit) String() string {
	return string(u)
}

func (u Unit) IsLovelace() bool {
	return u == Lovelace
}

// PolicyId returns the policy ID portion of the unit
func (u Unit) PolicyId() (Blake2b224, error) {
	if u.IsLovelace() {
		return Blake2b224{}, errors.New("lovelace has no policy ID")
	}
	if len(u) < policyIdHexLength {
		return Blake2b224{}, fmt.Errorf("unit too short: %s", u)
	}
	return NewBlake2b224FromHex(string(u[:policyIdHexLength]))
}

// AssetName returns the decoded asset name portion of the unit
func (u Unit) AssetName() ([]byte, error) {
	if u.IsLovelace() {
		return nil, errors.New("lovelace has no asset name")
	}
	if len(u) < policyIdHexLength {
		return nil, fmt.Errorf("unit too short: %s", u)
	}
	return hex.DecodeString(string(u[policyIdHexLength:]))
}

// Assets maps a unit to a non-negative quantity
type Assets map[Unit]*big.Int

// Lovelace returns the base currency quantity, or zero if not present
func (a Assets) Lovelace() *big.Int {
	if v, ok := a[Lovelace]; ok && v != nil {
		return new(big.Int).Set(v)
	}
	return new(big.Int)
}

// Add adds the quantity to the specified unit
func (a Assets) Add(unit Unit, quantity *big.Int) error {
	if quantity == nil || quantity.Sign() < 0 {
		return fmt.Errorf("invalid quantity for unit %s", unit)
	}
	if existing, ok := a[unit]; ok && existing != nil {
		a[unit] = new(big.Int).Add(existing, quantity)
		return nil
	}
	a[unit] = new(big.Int).Set(quantity)
	return nil
}

// Clone returns a deep copy
func (a Assets) Clone() Assets {
	if a == nil {
		return nil
	}
	ret := make(Assets, len(a))
	for unit, quantity := range a {
		ret[unit] = new(big.Int).Set(quantity)
	}
	return ret
}

// Units returns the units contained, sorted with lovelace first
func (a Assets) Units() []Unit {
	ret := make([]Unit, 0, len(a))
	for unit := range a {
		ret = append(ret, unit)
	}
	slices.SortFunc(ret, func(x, y Unit) int {
		if x.IsLovelace() != y.IsLovelace() {
			if x.IsLovelace() {
				return -1
			}
			return 1
		}
		return strings.Compare(string(x), string(y))
	})
	return ret
}

// ParseQuantity parses a non-negative base-10 integer quantity
func ParseQuantity(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid quantity: %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative quantity: %s", s)
	}
	return v, nil
}
