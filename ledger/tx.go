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
	"time"
)

// TxSummary is a snapshot of a confirmed transaction's metadata. InvalidBefore and
// InvalidHereafter are nil when the transaction does not set them
type TxSummary struct {
	TxHash               TxHash
	Block                Blake2b256
	BlockHeight          uint64
	BlockTime            time.Time
	Slot                 uint64
	Index                uint32
	OutputAmount         Assets
	Fees                 uint64
	Deposit              uint64
	Size                 uint64
	InvalidBefore        *uint64
	InvalidHereafter     *uint64
	UtxoCount            uint32
	WithdrawalCount      uint32
	MirCertCount         uint32
	DelegationCount      uint32
	StakeCertCount       uint32
	PoolUpdateCount      uint32
	PoolRetireCount      uint32
	AssetMintOrBurnCount uint32
	RedeemerCount        uint32
	ValidContract        bool
}

// Delegation describes the stake pool delegation of a reward account. An empty PoolId
// means the account is not delegated
type Delegation struct {
	PoolId  string
	Rewards uint64
}

func (d Delegation) IsDelegated() bool {
	return d.PoolId != ""
}
