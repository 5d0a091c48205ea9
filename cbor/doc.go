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

// Package cbor provides the small set of CBOR helpers needed when normalizing chain data
// returned by indexers.
//
// This package wraps github.com/fxamacker/cbor/v2 with cached encode/decode modes.
//
// # Scripts
//
// Indexers disagree on how many bytestring layers wrap a Plutus script body. Use
// ApplyDoubleCborEncoding before storing a script in a script ref:
//
//	script, err := cbor.ApplyDoubleCborEncoding(rawScript)
//
// # Encoding Gotchas
//
//  1. Map keys are sorted with the core deterministic rules when encoding Go maps
//  2. Decode rejects trailing data after the first item
//  3. PlutusData encoding lives in the datum package, not here
package cbor
