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

package blockfrost

import (
	"context"
	"fmt"

	"github.com/blinklabs-io/chainprovider/ledger"
	"github.com/jellydator/ttlcache/v3"
	"github.com/jinzhu/copier"
)

// GetProtocolParameters returns the protocol parameters of the latest epoch
func (b *Blockfrost) GetProtocolParameters(ctx context.Context) (ledger.ProtocolParameters, error) {
	if b.protocolParamsCache != nil {
		if item := b.protocolParamsCache.Get(protocolParamsCacheKey); item != nil {
			b.logger.Debug("protocol parameters cache hit")
			return copyProtocolParameters(item.Value())
		}
	}
	var result epochParamsResult
	err := b.getJSON(
		ctx,
		"epochs_parameters",
		pathJoin("epochs", "latest", "parameters"),
		nil,
		&result,
	)
	if err != nil {
		return ledger.ProtocolParameters{}, fmt.Errorf("get protocol parameters: %w", err)
	}
	costModels, err := toCostModels(result.CostModels)
	if err != nil {
		return ledger.ProtocolParameters{}, err
	}
	ret := ledger.ProtocolParameters{
		MinFeeA:              uint64(result.MinFeeA),
		MinFeeB:              uint64(result.MinFeeB),
		MaxTxSize:            uint64(result.MaxTxSize),
		MaxValSize:           uint64(result.MaxValSize),
		KeyDeposit:           uint64(result.KeyDeposit),
		PoolDeposit:          uint64(result.PoolDeposit),
		PriceMem:             float64(result.PriceMem),
		PriceStep:            float64(result.PriceStep),
		MaxTxExMem:           uint64(result.MaxTxExMem),
		MaxTxExSteps:         uint64(result.MaxTxExSteps),
		CoinsPerUtxoByte:     uint64(result.CoinsPerUtxoSize),
		CollateralPercentage: uint64(result.CollateralPercent),
		MaxCollateralInputs:  uint64(result.MaxCollateralInputs),
		CostModels:           costModels,
	}
	if b.protocolParamsCache != nil {
		b.protocolParamsCache.Set(protocolParamsCacheKey, ret, ttlcache.DefaultTTL)
		return copyProtocolParameters(ret)
	}
	return ret, nil
}

// copyProtocolParameters returns a deep copy so callers cannot modify a cached value
func copyProtocolParameters(src ledger.ProtocolParameters) (ledger.ProtocolParameters, error) {
	var ret ledger.ProtocolParameters
	if err := copier.CopyWithOption(&ret, &src, copier.Option{DeepCopy: true}); err != nil {
		return ledger.ProtocolParameters{}, fmt.Errorf("copy protocol parameters: %w", err)
	}
	return ret, nil
}
