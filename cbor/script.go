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

package cbor

import (
	"errors"
)

// ApplyDoubleCborEncoding normalizes a Plutus script body so that it is wrapped in exactly two
// layers of CBOR bytestring. Indexers return script bodies with either one or two layers, while
// transaction witnesses and script refs expect two
func ApplyDoubleCborEncoding(script []byte) ([]byte, error) {
	if len(script) == 0 {
		return nil, errors.New("empty script")
	}
	var inner []byte
	if err := Decode(script, &inner); err == nil {
		var innerInner []byte
		if err := Decode(inner, &innerInner); err == nil {
			// Already double encoded
			ret := make([]byte, len(script))
			copy(ret, script)
			return ret, nil
		}
	}
	return Encode(script)
}

// UnwrapByteString returns the contents of a CBOR bytestring
func UnwrapByteString(cborData []byte) ([]byte, error) {
	if mt, ok := MajorType(cborData); !ok || mt != CBOR_TYPE_BYTE_STRING {
		return nil, errors.New("data is not a CBOR bytestring")
	}
	var ret []byte
	if err := Decode(cborData, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}
