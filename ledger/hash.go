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
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const (
	Blake2b256Size = 32
	Blake2b224Size = 28
)

type Blake2b256 [Blake2b256Size]byte

// TxHash identifies a transaction
type TxHash = Blake2b256

// DatumHash identifies a datum stored off-output
type DatumHash = Blake2b256

func NewBlake2b256(data []byte) Blake2b256 {
	b := Blake2b256{}
	copy(b[:], data)
	return b
}

// NewBlake2b256FromHex parses a hex-encoded 32-byte hash
func NewBlake2b256FromHex(hexData string) (Blake2b256, error) {
	tmpBytes, err := decodeFixedHex(hexData, Blake2b256Size)
	if err != nil {
		return Blake2b256{}, err
	}
	return NewBlake2b256(tmpBytes), nil
}

func (b Blake2b256) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b256) Bytes() []byte {
	return b[:]
}

func (b Blake2b256) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Blake2b256) UnmarshalJSON(data []byte) error {
	var tmpHex string
	if err := json.Unmarshal(data, &tmpHex); err != nil {
		return err
	}
	tmp, err := NewBlake2b256FromHex(tmpHex)
	if err != nil {
		return err
	}
	*b = tmp
	return nil
}

func (b Blake2b256) Bech32(prefix string) string {
	return bech32Encode(prefix, b[:])
}

// Blake2b256Hash generates a Blake2b-256 hash from the provided data
func Blake2b256Hash(data []byte) Blake2b256 {
	tmpHash, err := blake2b.New(Blake2b256Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b256(tmpHash.Sum(nil))
}

type Blake2b224 [Blake2b224Size]byte

// ScriptHash identifies a native or Plutus script
type ScriptHash = Blake2b224

// AddrKeyHash is the hash of a payment or stake verification key
type AddrKeyHash = Blake2b224

func NewBlake2b224(data []byte) Blake2b224 {
	b := Blake2b224{}
	copy(b[:], data)
	return b
}

// NewBlake2b224FromHex parses a hex-encoded 28-byte hash
func NewBlake2b224FromHex(hexData string) (Blake2b224, error) {
	tmpBytes, err := decodeFixedHex(hexData, Blake2b224Size)
	if err != nil {
		return Blake2b224{}, err
	}
	return NewBlake2b224(tmpBytes), nil
}

func (b Blake2b224) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b224) Bytes() []byte {
	return b[:]
}

func (b Blake2b224) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Blake2b224) UnmarshalJSON(data []byte) error {
	var tmpHex string
	if err := json.Unmarshal(data, &tmpHex); err != nil {
		return err
	}
	tmp, err := NewBlake2b224FromHex(tmpHex)
	if err != nil {
		return err
	}
	*b = tmp
	return nil
}

func (b Blake2b224) Bech32(prefix string) string {
	return bech32Encode(prefix, b[:])
}

// Blake2b224Hash generates a Blake2b-224 hash from the provided data
func Blake2b224Hash(data []byte) Blake2b224 {
	tmpHash, err := blake2b.New(Blake2b224Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b224(tmpHash.Sum(nil))
}

func bech32Encode(prefix string, data []byte) string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(prefix, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

func decodeFixedHex(hexData string, size int) ([]byte, error) {
	if len(hexData) != size*2 {
		return nil, fmt.Errorf(
			"invalid hash length: got %d hex characters, wanted %d",
			len(hexData),
			size*2,
		)
	}
	tmpBytes, err := hex.DecodeString(hexData)
	if err != nil {
		return nil, fmt.Errorf("invalid hash hex: %w", err)
	}
	return tmpBytes, nil
}
