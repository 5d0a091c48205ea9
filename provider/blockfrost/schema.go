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
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/blinklabs-io/chainprovider/ledger"
)

// Response payloads. Only the fields consumed by the provider are declared

type amountResult struct {
	Unit     string `json:"unit"`
	Quantity string `json:"quantity"`
}

type utxoResult struct {
	Address             string         `json:"address"`
	TxHash              string         `json:"tx_hash"`
	OutputIndex         uint32         `json:"output_index"`
	Amount              []amountResult `json:"amount"`
	DataHash            *string        `json:"data_hash"`
	InlineDatum         *string        `json:"inline_datum"`
	ReferenceScriptHash *string        `json:"reference_script_hash"`
}

type txUtxosResult struct {
	Hash    string       `json:"hash"`
	Outputs []utxoResult `json:"outputs"`
}

type assetTxResult struct {
	TxHash      string `json:"tx_hash"`
	TxIndex     uint32 `json:"tx_index"`
	BlockHeight uint64 `json:"block_height"`
	BlockTime   int64  `json:"block_time"`
}

type assetAddressResult struct {
	Address  string `json:"address"`
	Quantity string `json:"quantity"`
}

type txResult struct {
	Hash                 string         `json:"hash"`
	Block                string         `json:"block"`
	BlockHeight          uint64         `json:"block_height"`
	BlockTime            int64          `json:"block_time"`
	Slot                 uint64         `json:"slot"`
	Index                uint32         `json:"index"`
	OutputAmount         []amountResult `json:"output_amount"`
	Fees                 flexUint       `json:"fees"`
	Deposit              flexUint       `json:"deposit"`
	Size                 uint64         `json:"size"`
	InvalidBefore        *flexUint      `json:"invalid_before"`
	InvalidHereafter     *flexUint      `json:"invalid_hereafter"`
	UtxoCount            uint32         `json:"utxo_count"`
	WithdrawalCount      uint32         `json:"withdrawal_count"`
	MirCertCount         uint32         `json:"mir_cert_count"`
	DelegationCount      uint32         `json:"delegation_count"`
	StakeCertCount       uint32         `json:"stake_cert_count"`
	PoolUpdateCount      uint32         `json:"pool_update_count"`
	PoolRetireCount      uint32         `json:"pool_retire_count"`
	AssetMintOrBurnCount uint32         `json:"asset_mint_or_burn_count"`
	RedeemerCount        uint32         `json:"redeemer_count"`
	ValidContract        bool           `json:"valid_contract"`
}

type accountResult struct {
	StakeAddress       string   `json:"stake_address"`
	Active             bool     `json:"active"`
	PoolId             *string  `json:"pool_id"`
	WithdrawableAmount flexUint `json:"withdrawable_amount"`
}

type scriptResult struct {
	ScriptHash string `json:"script_hash"`
	Type       string `json:"type"`
}

type cborResult struct {
	Cbor *string `json:"cbor"`
}

type datumJsonResult struct {
	JsonValue json.RawMessage `json:"json_value"`
}

type epochParamsResult struct {
	MinFeeA             flexUint                   `json:"min_fee_a"`
	MinFeeB             flexUint                   `json:"min_fee_b"`
	MaxTxSize           flexUint                   `json:"max_tx_size"`
	MaxValSize          flexUint                   `json:"max_val_size"`
	KeyDeposit          flexUint                   `json:"key_deposit"`
	PoolDeposit         flexUint                   `json:"pool_deposit"`
	PriceMem            flexFloat                  `json:"price_mem"`
	PriceStep           flexFloat                  `json:"price_step"`
	MaxTxExMem          flexUint                   `json:"max_tx_ex_mem"`
	MaxTxExSteps        flexUint                   `json:"max_tx_ex_steps"`
	CoinsPerUtxoSize    flexUint                   `json:"coins_per_utxo_size"`
	CollateralPercent   flexUint                   `json:"collateral_percent"`
	MaxCollateralInputs flexUint                   `json:"max_collateral_inputs"`
	CostModels          map[string]json.RawMessage `json:"cost_models"`
}

// flexUint accepts a JSON number, a numeric string or null
type flexUint uint64

func (f *flexUint) UnmarshalJSON(data []byte) error {
	s, ok := flexString(data)
	if !ok {
		*f = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid unsigned integer %s: %w", data, err)
	}
	*f = flexUint(v)
	return nil
}

// flexFloat accepts a JSON number, a numeric string or null
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s, ok := flexString(data)
	if !ok {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	*f = flexFloat(v)
	return nil
}

// flexString returns the unquoted contents of a JSON scalar, or false for null and empty values
func flexString(data []byte) (string, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	return string(trimmed), true
}

func toAssets(amounts []amountResult) (ledger.Assets, error) {
	ret := make(ledger.Assets, len(amounts))
	for _, amount := range amounts {
		quantity, err := ledger.ParseQuantity(amount.Quantity)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", amount.Unit, err)
		}
		if err := ret.Add(ledger.Unit(amount.Unit), quantity); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// toCostModels converts cost models keyed by language. Each model is either an object of named
// parameters or an array of parameters, which are keyed by their index
func toCostModels(raw map[string]json.RawMessage) (ledger.CostModels, error) {
	ret := make(ledger.CostModels, len(raw))
	for language, rawModel := range raw {
		trimmed := bytes.TrimSpace(rawModel)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			continue
		}
		model := map[string]int64{}
		if trimmed[0] == '[' {
			var params []int64
			if err := json.Unmarshal(trimmed, &params); err != nil {
				return nil, fmt.Errorf("cost model %s: %w", language, err)
			}
			for idx, param := range params {
				model[strconv.Itoa(idx)] = param
			}
		} else if err := json.Unmarshal(trimmed, &model); err != nil {
			return nil, fmt.Errorf("cost model %s: %w", language, err)
		}
		ret[language] = model
	}
	return ret, nil
}
