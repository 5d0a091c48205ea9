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

package blockfrost_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/blinklabs-io/chainprovider/ledger"
	"github.com/blinklabs-io/chainprovider/provider"
	"github.com/blinklabs-io/chainprovider/provider/blockfrost"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHolderAddress2 = "addr_test1vpu5vlrf4xkxv2qpwngf6cjhtw542ayty80v8dyr49rf5egfu2p0u"

func registerHolders(t *testing.T, transport *httpmock.MockTransport, status int, body string) {
	t.Helper()
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/assets/"+testUnit+"/addresses",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "2", req.URL.Query().Get("count"))
			return httpmock.NewStringResponse(status, body), nil
		},
	)
}

func TestGetUtxoByUnit(t *testing.T) {
	b, transport := newTestBackend(t)
	registerHolders(t, transport, http.StatusOK, `[{"address":"`+testAddress+`","quantity":"1"}]`)
	registerUtxoPages(t, transport, "/addresses/"+testAddress+"/utxos/"+testUnit, utxoJson(testTxHashHex, 2, ""))
	utxo, err := b.GetUtxoByUnit(context.Background(), ledger.Unit(testUnit))
	require.NoError(t, err)
	assert.Equal(t, testTxHashHex, utxo.TxHash.String())
	assert.Equal(t, uint32(2), utxo.OutputIndex)
}

func TestGetUtxoByUnitMultipleHolders(t *testing.T) {
	b, transport := newTestBackend(t)
	registerHolders(
		t,
		transport,
		http.StatusOK,
		`[{"address":"`+testAddress+`","quantity":"1"},{"address":"`+testHolderAddress2+`","quantity":"1"}]`,
	)
	_, err := b.GetUtxoByUnit(context.Background(), ledger.Unit(testUnit))
	assert.ErrorIs(t, err, provider.ErrAmbiguousHolder)
	// The holder's outputs are never queried
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestGetUtxoByUnitMultipleUtxos(t *testing.T) {
	b, transport := newTestBackend(t)
	registerHolders(t, transport, http.StatusOK, `[{"address":"`+testAddress+`","quantity":"2"}]`)
	registerUtxoPages(
		t,
		transport,
		"/addresses/"+testAddress+"/utxos/"+testUnit,
		utxoJson(testTxHashHex, 0, ""),
		utxoJson(testTxHashHex2, 0, ""),
	)
	_, err := b.GetUtxoByUnit(context.Background(), ledger.Unit(testUnit))
	assert.ErrorIs(t, err, provider.ErrAmbiguousHolder)
}

func TestGetUtxoByUnitNotFound(t *testing.T) {
	testDefs := []struct {
		name   string
		status int
		body   string
	}{
		{name: "not found", status: http.StatusNotFound, body: notFoundBody},
		{name: "no holders", status: http.StatusOK, body: "[]"},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			b, transport := newTestBackend(t)
			registerHolders(t, transport, testDef.status, testDef.body)
			_, err := b.GetUtxoByUnit(context.Background(), ledger.Unit(testUnit))
			assert.ErrorIs(t, err, provider.ErrNotFound)
			assert.NotErrorIs(t, err, provider.ErrAmbiguousHolder)
		})
	}
}

func TestGetUtxoByUnitBackendError(t *testing.T) {
	b, transport := newTestBackend(t)
	registerHolders(t, transport, http.StatusInternalServerError, serverErrorBody)
	_, err := b.GetUtxoByUnit(context.Background(), ledger.Unit(testUnit))
	assert.ErrorIs(t, err, provider.ErrBackendUnavailable)
	assert.NotErrorIs(t, err, provider.ErrNotFound)
}

func TestGetTxsByUnit(t *testing.T) {
	b, transport := newTestBackend(t)
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/assets/"+testUnit+"/transactions",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "desc", req.URL.Query().Get("order"))
			if req.URL.Query().Get("page") != "1" {
				return httpmock.NewStringResponse(http.StatusOK, "[]"), nil
			}
			return httpmock.NewStringResponse(
				http.StatusOK,
				`[{"tx_hash":"`+testTxHashHex+`","tx_index":6,"block_height":69,"block_time":1635505891}]`,
			), nil
		},
	)
	txs, err := b.GetTxsByUnit(context.Background(), ledger.Unit(testUnit), blockfrost.OrderDesc, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, testTxHashHex, txs[0].TxHash.String())
	assert.Equal(t, uint32(6), txs[0].TxIndex)
	assert.Equal(t, uint64(69), txs[0].BlockHeight)
	assert.Equal(t, int64(1635505891), txs[0].BlockTime.Unix())
}

func TestGetUtxosMintByUnit(t *testing.T) {
	b, transport := newTestBackend(t)
	var txsCalls atomic.Int32
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/assets/"+testUnit+"/transactions",
		countingResponder(
			&txsCalls,
			func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "asc", req.URL.Query().Get("order"))
				assert.Equal(t, "1", req.URL.Query().Get("page"))
				return httpmock.NewStringResponse(
					http.StatusOK,
					`[{"tx_hash":"`+testTxHashHex+`","tx_index":0,"block_height":1,"block_time":1},`+
						`{"tx_hash":"`+testTxHashHex2+`","tx_index":0,"block_height":2,"block_time":2}]`,
				), nil
			},
		),
	)
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex+"/utxos",
		httpmock.NewStringResponder(
			http.StatusOK,
			txUtxosJson(testTxHashHex, utxoJson("", 0, ""), utxoJson("", 1, "")),
		),
	)
	utxos, err := b.GetUtxosMintByUnit(context.Background(), ledger.Unit(testUnit))
	require.NoError(t, err)
	require.Len(t, utxos, 2)
	for _, utxo := range utxos {
		assert.Equal(t, testTxHashHex, utxo.TxHash.String())
	}
	assert.Equal(t, int32(1), txsCalls.Load())
}

func TestGetUtxosMintByUnitNoTransactions(t *testing.T) {
	b, transport := newTestBackend(t)
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/assets/"+testUnit+"/transactions",
		httpmock.NewStringResponder(http.StatusNotFound, notFoundBody),
	)
	utxos, err := b.GetUtxosMintByUnit(context.Background(), ledger.Unit(testUnit))
	require.NoError(t, err)
	assert.Empty(t, utxos)
}

func TestGetUtxosByUnit(t *testing.T) {
	b, transport := newTestBackend(t)
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/assets/"+testUnit+"/transactions",
		func(req *http.Request) (*http.Response, error) {
			if req.URL.Query().Get("page") != "1" {
				return httpmock.NewStringResponse(http.StatusOK, "[]"), nil
			}
			return httpmock.NewStringResponse(
				http.StatusOK,
				`[{"tx_hash":"`+testTxHashHex+`","tx_index":0,"block_height":1,"block_time":1},`+
					`{"tx_hash":"`+testTxHashHex2+`","tx_index":0,"block_height":2,"block_time":2},`+
					`{"tx_hash":"`+testTxHashHex+`","tx_index":0,"block_height":1,"block_time":1}]`,
			), nil
		},
	)
	var tx1Calls, tx2Calls atomic.Int32
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex+"/utxos",
		countingResponder(
			&tx1Calls,
			httpmock.NewStringResponder(http.StatusOK, txUtxosJson(testTxHashHex, utxoJson("", 0, ""))),
		),
	)
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex2+"/utxos",
		countingResponder(
			&tx2Calls,
			httpmock.NewStringResponder(
				http.StatusOK,
				txUtxosJson(testTxHashHex2, utxoJson("", 0, ""), utxoJson("", 1, "")),
			),
		),
	)
	utxos, err := b.GetUtxosByUnit(context.Background(), ledger.Unit(testUnit))
	require.NoError(t, err)
	require.Len(t, utxos, 3)
	assert.Equal(t, int32(1), tx1Calls.Load())
	assert.Equal(t, int32(1), tx2Calls.Load())
	// Merged in the order the transactions were listed
	assert.Equal(t, testTxHashHex, utxos[0].TxHash.String())
	assert.Equal(t, testTxHashHex2, utxos[1].TxHash.String())
	assert.Equal(t, testTxHashHex2, utxos[2].TxHash.String())
}
