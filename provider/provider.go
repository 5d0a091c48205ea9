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

// Package provider defines the chain data provider contract implemented by each indexer backend
package provider

import (
	"context"
	"time"

	"github.com/blinklabs-io/chainprovider/ledger"
)

// DefaultAwaitTxCheckInterval is used by AwaitTx when no check interval is given
const DefaultAwaitTxCheckInterval = 3 * time.Second

// Provider supplies chain state to transaction building and submits signed transactions
type Provider interface {
	// GetProtocolParameters returns the current protocol parameters
	GetProtocolParameters(ctx context.Context) (ledger.ProtocolParameters, error)
	// GetUtxos returns the UTxOs at an address or payment credential
	GetUtxos(ctx context.Context, addressOrCredential ledger.AddressOrCredential) ([]ledger.Utxo, error)
	// GetUtxosWithUnit returns the UTxOs at an address or payment credential holding the unit
	GetUtxosWithUnit(
		ctx context.Context,
		addressOrCredential ledger.AddressOrCredential,
		unit ledger.Unit,
	) ([]ledger.Utxo, error)
	// GetUtxoByUnit returns the single UTxO holding the unit. It fails with ErrAmbiguousHolder
	// if the unit is held by more than one address or output
	GetUtxoByUnit(ctx context.Context, unit ledger.Unit) (ledger.Utxo, error)
	// GetUtxosByOutRef returns the outputs matching the requested references
	GetUtxosByOutRef(ctx context.Context, outRefs []ledger.OutRef) ([]ledger.Utxo, error)
	// GetDelegation returns the delegation and withdrawable rewards of a reward address
	GetDelegation(ctx context.Context, rewardAddress ledger.RewardAddress) (ledger.Delegation, error)
	// GetDatum returns the CBOR datum with the given hash
	GetDatum(ctx context.Context, datumHash ledger.DatumHash) (ledger.Datum, error)
	// AwaitTx blocks until the transaction is visible on chain, the context is done or the
	// provider's await timeout elapses. A zero checkInterval uses DefaultAwaitTxCheckInterval
	AwaitTx(ctx context.Context, txHash ledger.TxHash, checkInterval time.Duration) (bool, error)
	// SubmitTx submits a signed CBOR transaction and returns its hash
	SubmitTx(ctx context.Context, tx []byte) (ledger.TxHash, error)
}
