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

// Package datum converts the JSON datum representation returned by some indexers into the
// canonical PlutusData CBOR encoding.
//
// A JSON datum is decoded once into a Node, a closed set of five shapes (Int, Bytes, Map,
// List and Constr), which Encode then turns into CBOR. Prefer fetching the CBOR datum
// directly: the JSON form does not carry the original encoding, so the bytes produced here
// can differ from what is on chain.
package datum
