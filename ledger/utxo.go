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
	"fmt"
	"slices"

	"github.com/blinklabs-io/chainprovider/cbor"
	"github.com/blinklabs-io/plutigo/data"
)

// OutRef identifies a transaction output. It carries no state
type OutRef struct {
	TxHash      TxHash
	OutputIndex uint32
}

func (o OutRef) String() string {
	return fmt.Sprintf("%s#%d", o.TxHash.String(), o.OutputIndex)
}

// Utxo is an unspent transaction output as observed at query time. An inline Datum and a
// DatumHash are never both set
type Utxo struct {
	TxHash      TxHash
	OutputIndex uint32
	Address     Address
	Assets      Assets
	DatumHash   *DatumHash
	Datum       Datum
	ScriptRef   *ScriptRef
}

func (u Utxo) OutRef() OutRef {
	return OutRef{
		TxHash:      u.TxHash,
		OutputIndex: u.OutputIndex,
	}
}

// Datum is the CBOR encoding of a Plutus datum
type Datum []byte

func (d Datum) String() string {
	return hex.EncodeToString(d)
}

func (d Datum) Hash() DatumHash {
	return Blake2b256Hash(d)
}

// PlutusData decodes the datum
func (d Datum) PlutusData() (data.PlutusData, error) {
	return data.Decode(d)
}

const (
	ScriptRefTypeNativeScript = 0
	ScriptRefTypePlutusV1     = 1
	ScriptRefTypePlutusV2     = 2
	ScriptRefTypePlutusV3     = 3
)

type ScriptType uint8

const (
	ScriptTypeNative   ScriptType = ScriptRefTypeNativeScript
	ScriptTypePlutusV1 ScriptType = ScriptRefTypePlutusV1
	ScriptTypePlutusV2 ScriptType = ScriptRefTypePlutusV2
	ScriptTypePlutusV3 ScriptType = ScriptRefTypePlutusV3
)

func (t ScriptType) String() string {
	switch t {
	case ScriptTypeNative:
		return "Native"
	case ScriptTypePlutusV1:
		return "PlutusV1"
	case ScriptTypePlutusV2:
		return "PlutusV2"
	case ScriptTypePlutusV3:
		return "PlutusV3"
	default:
		return fmt.Sprintf("ScriptType(%d)", uint8(t))
	}
}

// ScriptRef is a reference script attached to an output. Script holds the double
// CBOR-encoded script body
type ScriptRef struct {
	Type   ScriptType
	Script []byte
}

// Hash computes the script hash from the script body
func (s ScriptRef) Hash() (ScriptHash, error) {
	// The hash covers the single-encoded script
	inner, err := cbor.UnwrapByteString(s.Script)
	if err != nil {
		return ScriptHash{}, err
	}
	return Blake2b224Hash(
		slices.Concat(
			[]byte{byte(s.Type)},
			inner,
		),
	), nil
}
