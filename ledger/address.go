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
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	RewardAddressPrefixMainnet = "stake"
	RewardAddressPrefixTestnet = "stake_test"
)

// AddressOrCredential is the target of an address-scoped UTxO query. It is implemented by
// Address and Credential
type AddressOrCredential interface {
	isAddressOrCredential()
}

// Address is a bech32 (Shelley) or base58 (Byron) encoded address string
type Address string

func (Address) isAddressOrCredential() {}

func (a Address) String() string {
	return string(a)
}

// Bytes returns the raw address bytes. It detects if the string has mixed case and assumes
// it is a base58 encoded address, otherwise it assumes it is bech32 encoded
func (a Address) Bytes() ([]byte, error) {
	addr := string(a)
	if addr == "" {
		return nil, errors.New("empty address")
	}
	if strings.ToLower(addr) != addr {
		decoded := base58.Decode(addr)
		if len(decoded) == 0 {
			return nil, fmt.Errorf("invalid base58 address: %s", addr)
		}
		return decoded, nil
	}
	_, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return nil, err
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

// RewardAddress is a bech32 encoded stake address
type RewardAddress string

func (r RewardAddress) String() string {
	return string(r)
}

// Validate checks that the reward address is well-formed bech32 with a stake prefix
func (r RewardAddress) Validate() error {
	hrp, _, err := bech32.DecodeNoLimit(string(r))
	if err != nil {
		return fmt.Errorf("invalid reward address: %w", err)
	}
	if hrp != RewardAddressPrefixMainnet && hrp != RewardAddressPrefixTestnet {
		return fmt.Errorf("invalid reward address prefix: %s", hrp)
	}
	return nil
}

// NetworkId returns the network ID carried in the low 4 bits of the address header byte
func (r RewardAddress) NetworkId() (uint8, error) {
	addrBytes, err := Address(r).Bytes()
	if err != nil {
		return 0, fmt.Errorf("invalid reward address: %w", err)
	}
	if len(addrBytes) == 0 {
		return 0, errors.New("invalid reward address: empty payload")
	}
	return addrBytes[0] & 0x0f, nil
}
