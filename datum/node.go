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
	"errors"
	"math/big"
)

var ErrUnsupportedShape = errors.New("unsupported datum shape")

// Node is a parsed datum. It is one of Int, Bytes, Map, List or Constr
type Node interface {
	isNode()
}

// Int is an arbitrary precision signed integer
type Int struct {
	Value *big.Int
}

func (Int) isNode() {}

func NewInt(v int64) Int {
	return Int{Value: big.NewInt(v)}
}

// Bytes is a raw bytestring
type Bytes []byte

func (Bytes) isNode() {}

// Pair is a single key/value entry of a Map
type Pair struct {
	Key   Node
	Value Node
}

// Map is an ordered list of key/value pairs. Pair order is preserved when encoding
type Map []Pair

func (Map) isNode() {}

// List is an ordered list of nodes
type List []Node

func (List) isNode() {}

// Constr is a tagged constructor with positional fields
type Constr struct {
	Tag    uint
	Fields []Node
}

func (Constr) isNode() {}
