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
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"

	"github.com/blinklabs-io/chainprovider/cbor"
	"github.com/blinklabs-io/chainprovider/datum"
	"github.com/blinklabs-io/chainprovider/ledger"
	"github.com/blinklabs-io/chainprovider/provider"
)

// GetDatum returns the CBOR datum with the given hash
func (b *Blockfrost) GetDatum(ctx context.Context, datumHash ledger.DatumHash) (ledger.Datum, error) {
	if b.datumCache != nil {
		if cached, ok := b.datumCache.Get(datumHash); ok {
			b.logger.Debug("datum cache hit", "datum_hash", datumHash.String())
			return slices.Clone(cached), nil
		}
	}
	var result cborResult
	err := b.getJSON(
		ctx,
		"scripts_datum_cbor",
		pathJoin("scripts", "datum", datumHash.String(), "cbor"),
		nil,
		&result,
	)
	if err != nil {
		return nil, datumLookupError(datumHash, err)
	}
	if result.Cbor == nil || *result.Cbor == "" {
		return nil, fmt.Errorf("%w: %s", provider.ErrDatumNotFound, datumHash.String())
	}
	ret, err := hex.DecodeString(*result.Cbor)
	if err != nil {
		return nil, fmt.Errorf("invalid datum cbor: %w", err)
	}
	if !cbor.Valid(ret) {
		return nil, fmt.Errorf("datum %s is not well-formed CBOR", datumHash.String())
	}
	if computed := ledger.Datum(ret).Hash(); computed != datumHash {
		return nil, fmt.Errorf(
			"datum hash mismatch: requested %s, received datum hashing to %s",
			datumHash.String(),
			computed.String(),
		)
	}
	if b.datumCache != nil {
		b.datumCache.Add(datumHash, slices.Clone(ret))
	}
	return ret, nil
}

// GetDatumJson returns the datum with the given hash from its JSON representation
func (b *Blockfrost) GetDatumJson(ctx context.Context, datumHash ledger.DatumHash) (datum.Node, error) {
	var result datumJsonResult
	err := b.getJSON(
		ctx,
		"scripts_datum",
		pathJoin("scripts", "datum", datumHash.String()),
		nil,
		&result,
	)
	if err != nil {
		return nil, datumLookupError(datumHash, err)
	}
	jsonValue := bytes.TrimSpace(result.JsonValue)
	if len(jsonValue) == 0 || bytes.Equal(jsonValue, []byte("null")) {
		return nil, fmt.Errorf("%w: %s", provider.ErrDatumNotFound, datumHash.String())
	}
	return datum.ParseJSON(jsonValue)
}

// GetDatumFromJson returns the CBOR datum with the given hash, encoded from its JSON
// representation. The conversion can be ambiguous, so GetDatum should be preferred
func (b *Blockfrost) GetDatumFromJson(ctx context.Context, datumHash ledger.DatumHash) (ledger.Datum, error) {
	node, err := b.GetDatumJson(ctx, datumHash)
	if err != nil {
		return nil, err
	}
	ret, err := datum.Encode(node)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// datumLookupError maps any backend error payload to ErrDatumNotFound
func datumLookupError(datumHash ledger.DatumHash, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s: %w", provider.ErrDatumNotFound, datumHash.String(), apiErr)
	}
	return err
}
