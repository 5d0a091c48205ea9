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
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/blinklabs-io/chainprovider/cbor"
	"github.com/blinklabs-io/chainprovider/ledger"
	"github.com/blinklabs-io/chainprovider/provider"
	"golang.org/x/sync/errgroup"
)

// Blockfrost expects this prefix for both key and script hash credentials, although CIP-0005
// defines "script" for the latter
const credentialQueryPrefix = "addr_vkh"

// GetUtxos returns the UTxOs at an address or payment credential
func (b *Blockfrost) GetUtxos(
	ctx context.Context,
	addressOrCredential ledger.AddressOrCredential,
) ([]ledger.Utxo, error) {
	predicate, err := queryPredicate(addressOrCredential)
	if err != nil {
		return nil, err
	}
	results, err := FetchAllPages[utxoResult](
		ctx,
		b,
		"addresses_utxos",
		pathJoin("addresses", predicate, "utxos"),
		nil,
		OrderAsc,
		0,
	)
	if err != nil {
		return nil, err
	}
	return b.toUtxos(ctx, results)
}

// GetUtxosWithUnit returns the UTxOs at an address or payment credential holding the unit
func (b *Blockfrost) GetUtxosWithUnit(
	ctx context.Context,
	addressOrCredential ledger.AddressOrCredential,
	unit ledger.Unit,
) ([]ledger.Utxo, error) {
	predicate, err := queryPredicate(addressOrCredential)
	if err != nil {
		return nil, err
	}
	results, err := FetchAllPages[utxoResult](
		ctx,
		b,
		"addresses_utxos_asset",
		pathJoin("addresses", predicate, "utxos", unit.String()),
		nil,
		OrderAsc,
		0,
	)
	if err != nil {
		return nil, err
	}
	return b.toUtxos(ctx, results)
}

// queryPredicate returns the address path segment for an address or payment credential
func queryPredicate(addressOrCredential ledger.AddressOrCredential) (string, error) {
	switch v := addressOrCredential.(type) {
	case ledger.Address:
		if v == "" {
			return "", fmt.Errorf("%w: empty address", provider.ErrInvalidCredential)
		}
		return v.String(), nil
	case *ledger.Address:
		if v == nil {
			return "", provider.ErrInvalidCredential
		}
		return queryPredicate(*v)
	case ledger.Credential:
		switch v.Type {
		case ledger.CredentialTypeKey, ledger.CredentialTypeScript:
			return v.Hash.Bech32(credentialQueryPrefix), nil
		default:
			return "", fmt.Errorf("%w: %s", provider.ErrInvalidCredential, v.Type)
		}
	case *ledger.Credential:
		if v == nil {
			return "", provider.ErrInvalidCredential
		}
		return queryPredicate(*v)
	default:
		return "", fmt.Errorf("%w: unsupported type %T", provider.ErrInvalidCredential, addressOrCredential)
	}
}

// toUtxos maps raw outputs to UTxOs, resolving reference scripts concurrently. The result keeps
// the order of the input, and the first failure aborts the whole mapping
func (b *Blockfrost) toUtxos(ctx context.Context, results []utxoResult) ([]ledger.Utxo, error) {
	ret := make([]ledger.Utxo, len(results))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.maxConcurrency)
	for idx, result := range results {
		g.Go(func() error {
			utxo, err := b.toUtxo(gctx, result)
			if err != nil {
				return fmt.Errorf("output %s#%d: %w", result.TxHash, result.OutputIndex, err)
			}
			ret[idx] = utxo
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (b *Blockfrost) toUtxo(ctx context.Context, result utxoResult) (ledger.Utxo, error) {
	txHash, err := ledger.NewBlake2b256FromHex(result.TxHash)
	if err != nil {
		return ledger.Utxo{}, fmt.Errorf("invalid tx hash: %w", err)
	}
	assets, err := toAssets(result.Amount)
	if err != nil {
		return ledger.Utxo{}, err
	}
	ret := ledger.Utxo{
		TxHash:      txHash,
		OutputIndex: result.OutputIndex,
		Address:     ledger.Address(result.Address),
		Assets:      assets,
	}
	// An inline datum takes the place of the datum hash
	if result.InlineDatum != nil && *result.InlineDatum != "" {
		datum, err := hex.DecodeString(*result.InlineDatum)
		if err != nil {
			return ledger.Utxo{}, fmt.Errorf("invalid inline datum: %w", err)
		}
		ret.Datum = datum
	} else if result.DataHash != nil && *result.DataHash != "" {
		datumHash, err := ledger.NewBlake2b256FromHex(*result.DataHash)
		if err != nil {
			return ledger.Utxo{}, fmt.Errorf("invalid datum hash: %w", err)
		}
		ret.DatumHash = &datumHash
	}
	if result.ReferenceScriptHash != nil && *result.ReferenceScriptHash != "" {
		scriptRef, err := b.getScriptRef(ctx, *result.ReferenceScriptHash)
		if err != nil {
			return ledger.Utxo{}, err
		}
		ret.ScriptRef = &scriptRef
	}
	return ret, nil
}

// getScriptRef fetches the type and body of a reference script
func (b *Blockfrost) getScriptRef(ctx context.Context, scriptHashHex string) (ledger.ScriptRef, error) {
	scriptHash, err := ledger.NewBlake2b224FromHex(scriptHashHex)
	if err != nil {
		return ledger.ScriptRef{}, fmt.Errorf("invalid script hash: %w", err)
	}
	if b.scriptCache != nil {
		if scriptRef, ok := b.scriptCache.Get(scriptHash); ok {
			b.logger.Debug("script cache hit", "script_hash", scriptHash.String())
			return cloneScriptRef(scriptRef), nil
		}
	}
	var script scriptResult
	if err := b.getJSON(ctx, "scripts", pathJoin("scripts", scriptHash.String()), nil, &script); err != nil {
		return ledger.ScriptRef{}, fmt.Errorf("get script %s: %w", scriptHash.String(), err)
	}
	scriptType, err := toScriptType(script.Type)
	if err != nil {
		return ledger.ScriptRef{}, err
	}
	var scriptCbor cborResult
	if err := b.getJSON(ctx, "scripts_cbor", pathJoin("scripts", scriptHash.String(), "cbor"), nil, &scriptCbor); err != nil {
		return ledger.ScriptRef{}, fmt.Errorf("get script %s cbor: %w", scriptHash.String(), err)
	}
	if scriptCbor.Cbor == nil || *scriptCbor.Cbor == "" {
		return ledger.ScriptRef{}, fmt.Errorf("script %s has no cbor", scriptHash.String())
	}
	scriptBytes, err := hex.DecodeString(*scriptCbor.Cbor)
	if err != nil {
		return ledger.ScriptRef{}, fmt.Errorf("invalid script cbor: %w", err)
	}
	scriptBytes, err = cbor.ApplyDoubleCborEncoding(scriptBytes)
	if err != nil {
		return ledger.ScriptRef{}, fmt.Errorf("normalize script %s: %w", scriptHash.String(), err)
	}
	ret := ledger.ScriptRef{
		Type:   scriptType,
		Script: scriptBytes,
	}
	if computed, err := ret.Hash(); err != nil || computed != scriptHash {
		b.logger.Warn(
			"reference script hash mismatch",
			"script_hash", scriptHash.String(),
			"computed", computed.String(),
		)
	}
	if b.scriptCache != nil {
		b.scriptCache.Add(scriptHash, cloneScriptRef(ret))
	}
	return ret, nil
}

func toScriptType(scriptType string) (ledger.ScriptType, error) {
	switch strings.ToLower(scriptType) {
	case "timelock", "native":
		return 0, provider.ErrNativeScriptUnsupported
	case "plutusv1":
		return ledger.ScriptTypePlutusV1, nil
	case "plutusv2":
		return ledger.ScriptTypePlutusV2, nil
	case "plutusv3":
		return ledger.ScriptTypePlutusV3, nil
	default:
		return 0, errors.New("unknown script type: " + scriptType)
	}
}

func cloneScriptRef(s ledger.ScriptRef) ledger.ScriptRef {
	return ledger.ScriptRef{
		Type:   s.Type,
		Script: slices.Clone(s.Script),
	}
}
