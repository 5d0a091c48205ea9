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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/blinklabs-io/chainprovider/ledger"
	"github.com/blinklabs-io/chainprovider/provider"
	"golang.org/x/sync/errgroup"
)

// GetUtxosByHash returns every output of a transaction. A transaction unknown to the backend
// has no outputs
func (b *Blockfrost) GetUtxosByHash(ctx context.Context, txHash ledger.TxHash) ([]ledger.Utxo, error) {
	var result txUtxosResult
	err := b.getJSON(ctx, "txs_utxos", pathJoin("txs", txHash.String(), "utxos"), nil, &result)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return []ledger.Utxo{}, nil
		}
		return nil, err
	}
	for idx := range result.Outputs {
		result.Outputs[idx].TxHash = txHash.String()
	}
	return b.toUtxos(ctx, result.Outputs)
}

// getUtxosByHashes fetches the outputs of each distinct transaction concurrently. Results are
// merged in the order the hashes first appear
func (b *Blockfrost) getUtxosByHashes(ctx context.Context, txHashes []ledger.TxHash) ([]ledger.Utxo, error) {
	unique := make([]ledger.TxHash, 0, len(txHashes))
	seen := make(map[ledger.TxHash]struct{}, len(txHashes))
	for _, txHash := range txHashes {
		if _, ok := seen[txHash]; ok {
			continue
		}
		seen[txHash] = struct{}{}
		unique = append(unique, txHash)
	}
	results := make([][]ledger.Utxo, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.maxConcurrency)
	for idx, txHash := range unique {
		g.Go(func() error {
			utxos, err := b.GetUtxosByHash(gctx, txHash)
			if err != nil {
				return err
			}
			results[idx] = utxos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(results...), nil
}

// GetUtxosByOutRef returns the outputs matching the requested references. Each transaction is
// fetched once, regardless of how many of its outputs are requested
func (b *Blockfrost) GetUtxosByOutRef(ctx context.Context, outRefs []ledger.OutRef) ([]ledger.Utxo, error) {
	if len(outRefs) == 0 {
		return []ledger.Utxo{}, nil
	}
	wanted := make(map[ledger.OutRef]struct{}, len(outRefs))
	txHashes := make([]ledger.TxHash, 0, len(outRefs))
	for _, outRef := range outRefs {
		wanted[outRef] = struct{}{}
		txHashes = append(txHashes, outRef.TxHash)
	}
	utxos, err := b.getUtxosByHashes(ctx, txHashes)
	if err != nil {
		return nil, err
	}
	ret := make([]ledger.Utxo, 0, len(wanted))
	for _, utxo := range utxos {
		if _, ok := wanted[utxo.OutRef()]; ok {
			ret = append(ret, utxo)
		}
	}
	return ret, nil
}

// GetTxByHash returns the summary of a confirmed transaction
func (b *Blockfrost) GetTxByHash(ctx context.Context, txHash ledger.TxHash) (ledger.TxSummary, error) {
	var result txResult
	if err := b.getJSON(ctx, "txs", pathJoin("txs", txHash.String()), nil, &result); err != nil {
		return ledger.TxSummary{}, fmt.Errorf("get tx %s: %w", txHash.String(), err)
	}
	return toTxSummary(result)
}

func toTxSummary(result txResult) (ledger.TxSummary, error) {
	txHash, err := ledger.NewBlake2b256FromHex(result.Hash)
	if err != nil {
		return ledger.TxSummary{}, fmt.Errorf("invalid tx hash: %w", err)
	}
	blockHash, err := ledger.NewBlake2b256FromHex(result.Block)
	if err != nil {
		return ledger.TxSummary{}, fmt.Errorf("invalid block hash: %w", err)
	}
	outputAmount, err := toAssets(result.OutputAmount)
	if err != nil {
		return ledger.TxSummary{}, err
	}
	ret := ledger.TxSummary{
		TxHash:               txHash,
		Block:                blockHash,
		BlockHeight:          result.BlockHeight,
		BlockTime:            time.Unix(result.BlockTime, 0).UTC(),
		Slot:                 result.Slot,
		Index:                result.Index,
		OutputAmount:         outputAmount,
		Fees:                 uint64(result.Fees),
		Deposit:              uint64(result.Deposit),
		Size:                 result.Size,
		UtxoCount:            result.UtxoCount,
		WithdrawalCount:      result.WithdrawalCount,
		MirCertCount:         result.MirCertCount,
		DelegationCount:      result.DelegationCount,
		StakeCertCount:       result.StakeCertCount,
		PoolUpdateCount:      result.PoolUpdateCount,
		PoolRetireCount:      result.PoolRetireCount,
		AssetMintOrBurnCount: result.AssetMintOrBurnCount,
		RedeemerCount:        result.RedeemerCount,
		ValidContract:        result.ValidContract,
	}
	if result.InvalidBefore != nil {
		tmp := uint64(*result.InvalidBefore)
		ret.InvalidBefore = &tmp
	}
	if result.InvalidHereafter != nil {
		tmp := uint64(*result.InvalidHereafter)
		ret.InvalidHereafter = &tmp
	}
	return ret, nil
}

// AwaitTx polls for the transaction at the specified interval until it is found. It returns
// an error when the context is done or the await timeout elapses
func (b *Blockfrost) AwaitTx(
	ctx context.Context,
	txHash ledger.TxHash,
	checkInterval time.Duration,
) (bool, error) {
	if checkInterval <= 0 {
		checkInterval = provider.DefaultAwaitTxCheckInterval
	}
	if b.awaitTxTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.awaitTxTimeout)
		defer cancel()
	}
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, fmt.Errorf("await tx %s: %w", txHash.String(), ctx.Err())
		case <-ticker.C:
		}
		// Any non-error response confirms the transaction, so the body is not decoded
		_, err := b.do(
			ctx,
			request{
				endpoint: "txs",
				path:     pathJoin("txs", txHash.String()),
			},
		)
		if err == nil {
			b.logger.Debug("transaction confirmed", "tx_hash", txHash.String())
			return true, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, fmt.Errorf("await tx %s: %w", txHash.String(), ctxErr)
		}
		b.logger.Debug(
			"transaction not yet confirmed",
			"tx_hash", txHash.String(),
			"error", err,
		)
	}
}

// SubmitTx submits a signed CBOR transaction and returns its hash
func (b *Blockfrost) SubmitTx(ctx context.Context, tx []byte) (ledger.TxHash, error) {
	if len(tx) == 0 {
		return ledger.TxHash{}, fmt.Errorf("%w: empty transaction", provider.ErrSubmissionFailed)
	}
	respBody, err := b.do(
		ctx,
		request{
			endpoint:    "tx_submit",
			method:      http.MethodPost,
			path:        pathJoin("tx", "submit"),
			body:        tx,
			contentType: contentTypeCbor,
		},
	)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			return ledger.TxHash{}, provider.MalformedSubmissionError{
				Message: apiErr.Message,
			}
		}
		return ledger.TxHash{}, fmt.Errorf("%w: %w", provider.ErrSubmissionFailed, err)
	}
	var txHash ledger.TxHash
	if err := json.Unmarshal(respBody, &txHash); err != nil {
		return ledger.TxHash{}, fmt.Errorf("%w: decode response: %w", provider.ErrSubmissionFailed, err)
	}
	b.logger.Debug("submitted transaction", "tx_hash", txHash.String())
	return txHash, nil
}
