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
	"fmt"

	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

// Utxorpc converts the output into its UTxO RPC representation
func (u Utxo) Utxorpc() (*utxorpc.TxOutput, error) {
	address, err := u.Address.Bytes()
	if err != nil {
		return nil, fmt.Errorf("convert address: %w", err)
	}
	coin := u.Assets.Lovelace()
	if !coin.IsUint64() {
		return nil, fmt.Errorf("lovelace amount out of range: %s", coin.String())
	}

	var assets []*utxorpc.Multiasset
	policyIdx := map[Blake2b224]int{}
	for _, unit := range u.Assets.Units() {
		if unit.IsLovelace() {
			continue
		}
		policyId, err := unit.PolicyId()
		if err != nil {
			return nil, err
		}
		assetName, err := unit.AssetName()
		if err != nil {
			return nil, err
		}
		amount := u.Assets[unit]
		if !amount.IsUint64() {
			return nil, fmt.Errorf("asset amount out of range for unit %s", unit)
		}
		idx, ok := policyIdx[policyId]
		if !ok {
			assets = append(
				assets,
				&utxorpc.Multiasset{
					PolicyId: policyId.Bytes(),
				},
			)
			idx = len(assets) - 1
			policyIdx[policyId] = idx
		}
		assets[idx].Assets = append(
			assets[idx].Assets,
			&utxorpc.Asset{
				Name:       assetName,
				OutputCoin: amount.Uint64(),
			},
		)
	}

	var datumHash []byte
	switch {
	case u.DatumHash != nil:
		datumHash = u.DatumHash.Bytes()
	case u.Datum != nil:
		datumHash = u.Datum.Hash().Bytes()
	default:
		datumHash = []byte{}
	}

	return &utxorpc.TxOutput{
		Address: address,
		Coin:    coin.Uint64(),
		Assets:  assets,
		Datum: &utxorpc.Datum{
			Hash: datumHash,
		},
	}, nil
}
