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

// CostModels maps a Plutus language version to its named cost model parameters
type CostModels map[string]map[string]int64

// ProtocolParameters is a snapshot of the network-wide protocol parameters at a point in time
type ProtocolParameters struct {
	MinFeeA              uint64
	MinFeeB              uint64
	MaxTxSize            uint64
	MaxValSize           uint64
	KeyDeposit           uint64
	PoolDeposit          uint64
	PriceMem             float64
	PriceStep            float64
	MaxTxExMem           uint64
	MaxTxExSteps         uint64
	CoinsPerUtxoByte     uint64
	CollateralPercentage uint64
	MaxCollateralInputs  uint64
	CostModels           CostModels
}
