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

package cbor_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/chainprovider/cbor"
)

type encodeTestDefinition struct {
	CborHex string
	Object  any
}

var encodeTests = []encodeTestDefinition{
	// Simple list of numbers
	{
		CborHex: "83010203",
		Object:  []any{1, 2, 3},
	},
	// Bytestring
	{
		CborHex: "44deadbeef",
		Object:  []byte{0xde, 0xad, 0xbe, 0xef},
	},
	// Map with keys out of order
	{
		CborHex: "a2010a020b",
		Object:  map[int]int{2: 11, 1: 10},
	},
}

func TestEncode(t *testing.T) {
	for _, test := range encodeTests {
		cborData, err := cbor.Encode(test.Object)
		if err != nil {
			t.Fatalf("failed to encode object to CBOR: %s", err)
		}
		cborHex := hex.EncodeToString(cborData)
		if cborHex != test.CborHex {
			t.Fatalf(
				"object did not encode to expected CBOR\n  got: %s\n  wanted: %s",
				cborHex,
				test.CborHex,
			)
		}
	}
}

func TestDecodeTrailingData(t *testing.T) {
	var tmp uint64
	if err := cbor.Decode([]byte{0x01, 0x02}, &tmp); err == nil {
		t.Fatalf("did not get expected error decoding CBOR with trailing data")
	}
	if err := cbor.Decode([]byte{0x01}, &tmp); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if tmp != 1 {
		t.Fatalf("did not get expected value: got %d, wanted 1", tmp)
	}
}

func TestValid(t *testing.T) {
	if !cbor.Valid([]byte{0x83, 0x01, 0x02, 0x03}) {
		t.Fatalf("expected well-formed CBOR to be valid")
	}
	if cbor.Valid([]byte{0x83, 0x01}) {
		t.Fatalf("expected truncated CBOR to be invalid")
	}
	if cbor.Valid(nil) {
		t.Fatalf("expected empty input to be invalid")
	}
}
