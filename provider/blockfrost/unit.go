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
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/blinklabs-io/chainprovider/ledger"
	"github.com/blinklabs-io/chainprovider/provider"
)

// AssetTransaction is a transaction that moved a unit
type AssetTransaction struct {
	TxHash      ledger.TxHash
	TxIndex     uint32
	BlockHeight uint64
	BlockTime   time.Time
}

// GetUtxoByUnit returns the single UTxO holding the unit
func (b *Blockfrost) GetUtxoByUnit(ctx context.Context, unit ledger.Unit) (ledger.Utxo, error) {
	var holders []assetAddressResult
	query := url.Values{}
	// Two holders are enough to detect a unit that is not unique
	query.Set("count", "2")
	err := b.getJSON(
		ctx,
		"assets_addresses",
		pathJoin("assets", unit.String(), "addresses"),
		query,
		&holders,
	)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return ledger.Utxo{}, fmt.Errorf("unit %s: %w", unit, provider.ErrNotFound)
		}
		return ledger.Utxo{}, err
	}
	if len(holders) == 0 {
		return ledger.Utxo{}, fmt.Errorf("unit %s: %w", unit, provider.ErrNotFound)
	}
	if len(holders) > 1 {
		return ledger.Utxo{}, provider.ErrAmbiguousHolder
	}
	utxos, err := b.GetUtxosWithUnit(ctx, ledger.Address(holders[0].Address), unit)
	if err != nil {
		return ledger.Utxo{}, err
	}
	switch len(utxos) {
	case 0:
		return ledger.Utxo{}, fmt.Errorf("unit %s: %w", unit, provider.ErrNotFound)
	case 1:
		return utxos[0], nil
	default:
		return ledger.Utxo{}, provider.ErrAmbiguousHolder
	}
}

// GetTxsByUnit returns the transactions that moved the unit. A pageLimit of 0 fetches every page
func (b *Blockfrost) GetTxsByUnit(
	ctx context.Context,
	unit ledger.Unit,
	order Order,
	pageLimit int,
) ([]AssetTransaction, error) {
	results, err := FetchAllPages[assetTxResult](
		ctx,
		b,
		"assets_transactions",
		pathJoin("assets", unit.String(), "transactions"),
		nil,
		order,
		pageLimit,
	)
	if err != nil {
		return nil, err
	}
	ret := make([]AssetTransaction, 0, len(results))
	for _, result := range results {
		txHash, err := ledger.NewBlake2b256FromHex(result.TxHash)
		if err != nil {
			return nil, fmt.Errorf("invalid tx hash: %w", err)
		}
		ret = append(
			ret,
			AssetTransaction{
				TxHash:      txHash,
				TxIndex:     result.TxIndex,
				BlockHeight: result.BlockHeight,
				BlockTime:   time.Unix(result.BlockTime, 0).UTC(),
			},
		)
	}
	return ret, nil
}

// GetUtxosMintByUnit returns the outputs of the first transaction that moved the unit, which
// is the transaction that minted it
func (b *Blockfrost) GetUtxosMintByUnit(ctx context.Context, unit ledger.Unit) ([]ledger.Utxo, error) {
	txs, err := b.GetTxsByUnit(ctx, unit, OrderAsc, 1)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return []ledger.Utxo{}, nil
	}
	return b.GetUtxosByHash(ctx, txs[0].TxHash)
}

// GetUtxosByUnit returns the outputs of every transaction that ever moved the unit
func (b *Blockfrost) GetUtxosByUnit(ctx context.Context, unit ledger.Unit) ([]ledger.Utxo, error) {
	txs, err := b.GetTxsByUnit(ctx, unit, OrderAsc, 0)
	if err != nil {
		return nil, err
	}
	txHashes := make([]ledger.TxHash, 0, len(txs))
	for _, tx := range txs {
		txHashes = append(txHashes, tx.TxHash)
	}
	return b.getUtxosByHashes(ctx, txHashes)
}
