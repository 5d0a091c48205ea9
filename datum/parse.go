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
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"
)

// ParseJSON decodes a JSON datum, as returned by the indexer, into a Node
func ParseJSON(jsonData []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode datum JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("decode datum JSON: unexpected trailing data")
	}
	return parseNode(raw)
}

// parseNode classifies a decoded JSON value. The checks run in a fixed order (int, bytes,
// map, list, constructor) and the first match wins, so a value carrying more than one of
// these fields is classified by the earliest one
func parseNode(raw any) (Node, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %T", ErrUnsupportedShape, raw)
	}
	if v, ok := parseInteger(obj["int"]); ok {
		return Int{Value: v}, nil
	}
	if v, ok := obj["bytes"].(string); ok {
		// An empty string is a valid (empty) bytestring
		tmpBytes, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes %q: %w", v, err)
		}
		return Bytes(tmpBytes), nil
	}
	if v, ok := obj["map"].([]any); ok {
		ret := make(Map, 0, len(v))
		for idx, item := range v {
			pair, err := parsePair(item)
			if err != nil {
				return nil, fmt.Errorf("map entry %d: %w", idx, err)
			}
			ret = append(ret, pair)
		}
		return ret, nil
	}
	if v, ok := obj["list"].([]any); ok {
		ret := make(List, 0, len(v))
		for idx, item := range v {
			node, err := parseNode(item)
			if err != nil {
				return nil, fmt.Errorf("list item %d: %w", idx, err)
			}
			ret = append(ret, node)
		}
		return ret, nil
	}
	if tag, ok := parseInteger(obj["constructor"]); ok {
		fields, ok := obj["fields"].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: constructor without fields", ErrUnsupportedShape)
		}
		if tag.Sign() < 0 || !tag.IsUint64() {
			return nil, fmt.Errorf("invalid constructor tag: %s", tag.String())
		}
		ret := Constr{
			Tag:    uint(tag.Uint64()),
			Fields: make([]Node, 0, len(fields)),
		}
		for idx, item := range fields {
			node, err := parseNode(item)
			if err != nil {
				return nil, fmt.Errorf("constructor field %d: %w", idx, err)
			}
			ret.Fields = append(ret.Fields, node)
		}
		return ret, nil
	}
	return nil, fmt.Errorf("%w: fields [%s]", ErrUnsupportedShape, objectKeys(obj))
}

func parsePair(raw any) (Pair, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Pair{}, fmt.Errorf("%w: expected key/value object, got %T", ErrUnsupportedShape, raw)
	}
	rawKey, okKey := obj["k"]
	rawValue, okValue := obj["v"]
	if !okKey || !okValue {
		return Pair{}, fmt.Errorf("%w: map entry missing k or v", ErrUnsupportedShape)
	}
	key, err := parseNode(rawKey)
	if err != nil {
		return Pair{}, fmt.Errorf("key: %w", err)
	}
	value, err := parseNode(rawValue)
	if err != nil {
		return Pair{}, fmt.Errorf("value: %w", err)
	}
	return Pair{Key: key, Value: value}, nil
}

// Precision used when an integer arrives in exponent or decimal notation
const numberFloatPrec = 512

// parseInteger accepts a JSON number or a numeric string. JSON numbers written in exponent or
// decimal notation (1e3, 5.0) are accepted when their value is integral
func parseInteger(raw any) (*big.Int, bool) {
	var s string
	isNumber := false
	switch v := raw.(type) {
	case json.Number:
		s = v.String()
		isNumber = true
	case string:
		s = strings.TrimSpace(v)
	default:
		return nil, false
	}
	if ret, ok := new(big.Int).SetString(s, 10); ok {
		return ret, true
	}
	if !isNumber {
		return nil, false
	}
	f, _, err := big.ParseFloat(s, 10, numberFloatPrec, big.ToNearestEven)
	if err != nil || !f.IsInt() {
		return nil, false
	}
	ret, _ := f.Int(nil)
	return ret, true
}

func objectKeys(obj map[string]any) string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return strings.Join(keys, ", ")
}
