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

package datum

import (
	"fmt"
	"math/big"

	"github.com/blinklabs-io/plutigo/data"
)

// Encode returns the canonical PlutusData CBOR encoding of the node
func Encode(node Node) ([]byte, error) {
	pd, err := ToPlutusData(node)
	if err != nil {
		return nil, err
	}
	return data.Encode(pd)
}

// EncodeJSON parses a JSON datum and returns its CBOR encoding
func EncodeJSON(jsonData []byte) ([]byte, error) {
	node, err := ParseJSON(jsonData)
	if err != nil {
		return nil, err
	}
	return Encode(node)
}

// ToPlutusData converts the node into PlutusData
func ToPlutusData(node Node) (data.PlutusData, error) {
	switch n := node.(type) {
	case Int:
		if n.Value == nil {
			return nil, fmt.Errorf("%w: int without value", ErrUnsupportedShape)
		}
		return data.NewInteger(new(big.Int).Set(n.Value)), nil
	case Bytes:
		return data.NewByteString([]byte(n)), nil
	case Map:
		pairs := make([][2]data.PlutusData, 0, len(n))
		for _, pair := range n {
			key, err := ToPlutusData(pair.Key)
			if err != nil {
				return nil, err
			}
			value, err := ToPlutusData(pair.Value)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, [2]data.PlutusData{key, value})
		}
		return data.NewMap(pairs), nil
	case List:
		items, err := toPlutusDataList(n)
		if err != nil {
			return nil, err
		}
		return data.NewList(items...), nil
	case Constr:
		fields, err := toPlutusDataList(n.Fields)
		if err != nil {
			return nil, err
		}
		return data.NewConstr(n.Tag, fields...), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, node)
	}
}

func toPlutusDataList(nodes []Node) ([]data.PlutusData, error) {
	ret := make([]data.PlutusData, 0, len(nodes))
	for _, node := range nodes {
		item, err := ToPlutusData(node)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}
