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
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blinklabs-io/chainprovider/internal/test"
	"github.com/blinklabs-io/chainprovider/ledger"
	"github.com/blinklabs-io/chainprovider/provider"
	"github.com/blinklabs-io/chainprovider/provider/blockfrost"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func mustTxHash(t *testing.T, hashHex string) ledger.TxHash {
	t.Helper()
	ret, err := ledger.NewBlake2b256FromHex(hashHex)
	require.NoError(t, err)
	return ret
}

func TestGetUtxosByHash(t *testing.T) {
	b, transport := newTestBackend(t)
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex+"/utxos",
		httpmock.NewStringResponder(
			http.StatusOK,
			txUtxosJson(testTxHashHex, utxoJson("", 0, ""), utxoJson("", 1, "")),
		),
	)
	utxos, err := b.GetUtxosByHash(context.Background(), mustTxHash(t, testTxHashHex))
	require.NoError(t, err)
	require.Len(t, utxos, 2)
	for idx, utxo := range utxos {
		assert.Equal(t, testTxHashHex, utxo.TxHash.String())
		assert.Equal(t, uint32(idx), utxo.OutputIndex)
	}
}

func TestGetUtxosByHashErrors(t *testing.T) {
	b, transport := newTestBackend(t)
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex+"/utxos",
		httpmock.NewStringResponder(http.StatusNotFound, notFoundBody),
	)
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex2+"/utxos",
		httpmock.NewStringResponder(http.StatusInternalServerError, serverErrorBody),
	)
	utxos, err := b.GetUtxosByHash(context.Background(), mustTxHash(t, testTxHashHex))
	require.NoError(t, err)
	assert.Empty(t, utxos)
	_, err = b.GetUtxosByHash(context.Background(), mustTxHash(t, testTxHashHex2))
	assert.ErrorIs(t, err, provider.ErrBackendUnavailable)
}

func TestGetUtxosByOutRef(t *testing.T) {
	b, transport := newTestBackend(t)
	var tx1Calls, tx2Calls atomic.Int32
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex+"/utxos",
		countingResponder(
			&tx1Calls,
			httpmock.NewStringResponder(
				http.StatusOK,
				txUtxosJson(testTxHashHex, utxoJson("", 0, ""), utxoJson("", 1, ""), utxoJson("", 2, "")),
			),
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
	txHash1 := mustTxHash(t, testTxHashHex)
	txHash2 := mustTxHash(t, testTxHashHex2)
	outRefs := []ledger.OutRef{
		{TxHash: txHash1, OutputIndex: 0},
		{TxHash: txHash2, OutputIndex: 1},
		{TxHash: txHash1, OutputIndex: 2},
		{TxHash: txHash1, OutputIndex: 2},
		// Not an output of the transaction
		{TxHash: txHash2, OutputIndex: 5},
	}
	utxos, err := b.GetUtxosByOutRef(context.Background(), outRefs)
	require.NoError(t, err)
	assert.Equal(t, int32(1), tx1Calls.Load())
	assert.Equal(t, int32(1), tx2Calls.Load())
	assert.Equal(t, 2, transport.GetTotalCallCount())
	got := make([]ledger.OutRef, 0, len(utxos))
	for _, utxo := range utxos {
		got = append(got, utxo.OutRef())
	}
	assert.Equal(
		t,
		[]ledger.OutRef{
			{TxHash: txHash1, OutputIndex: 0},
			{TxHash: txHash1, OutputIndex: 2},
			{TxHash: txHash2, OutputIndex: 1},
		},
		got,
	)
}

func TestGetUtxosByOutRefEmpty(t *testing.T) {
	b, transport := newTestBackend(t)
	utxos, err := b.GetUtxosByOutRef(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, utxos)
	assert.Equal(t, 0, transport.GetTotalCallCount())
}

func TestGetUtxosByOutRefError(t *testing.T) {
	b, transport := newTestBackend(t, blockfrost.WithMaxConcurrency(1))
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex+"/utxos",
		httpmock.NewStringResponder(http.StatusOK, txUtxosJson(testTxHashHex, utxoJson("", 0, ""))),
	)
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex2+"/utxos",
		httpmock.NewStringResponder(http.StatusTooManyRequests, `{"status_code":429,"error":"Project Over Limit","message":"Usage is over limit."}`),
	)
	utxos, err := b.GetUtxosByOutRef(
		context.Background(),
		[]ledger.OutRef{
			{TxHash: mustTxHash(t, testTxHashHex)},
			{TxHash: mustTxHash(t, testTxHashHex2)},
		},
	)
	assert.ErrorIs(t, err, provider.ErrBackendUnavailable)
	assert.Nil(t, utxos)
}

func TestGetTxByHash(t *testing.T) {
	b, transport := newTestBackend(t)
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex,
		httpmock.NewBytesResponder(http.StatusOK, test.ReadTestdata("blockfrost/tx.json")),
	)
	tx, err := b.GetTxByHash(context.Background(), mustTxHash(t, testTxHashHex))
	require.NoError(t, err)
	assert.Equal(t, testTxHashHex, tx.TxHash.String())
	assert.Equal(t, "356b7d7dbb696ccd12775c016941057a9dc70898d87a63fc752271bb46856940", tx.Block.String())
	assert.Equal(t, uint64(123456), tx.BlockHeight)
	assert.Equal(t, int64(1635505891), tx.BlockTime.Unix())
	assert.Equal(t, uint64(42000000), tx.Slot)
	assert.Equal(t, uint32(1), tx.Index)
	assert.Equal(t, "42000000", tx.OutputAmount.Lovelace().String())
	assert.Equal(t, "12", tx.OutputAmount[ledger.Unit(testUnit)].String())
	assert.Equal(t, uint64(182485), tx.Fees)
	assert.Equal(t, uint64(0), tx.Deposit)
	assert.Equal(t, uint64(433), tx.Size)
	assert.Nil(t, tx.InvalidBefore)
	require.NotNil(t, tx.InvalidHereafter)
	assert.Equal(t, uint64(13885913), *tx.InvalidHereafter)
	assert.Equal(t, uint32(4), tx.UtxoCount)
	assert.True(t, tx.ValidContract)
}

func TestGetTxByHashNotFound(t *testing.T) {
	b, transport := newTestBackend(t)
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex,
		httpmock.NewStringResponder(http.StatusNotFound, notFoundBody),
	)
	_, err := b.GetTxByHash(context.Background(), mustTxHash(t, testTxHashHex))
	assert.ErrorIs(t, err, provider.ErrNotFound)
}

func TestAwaitTx(t *testing.T) {
	defer goleak.VerifyNone(t)
	b, transport := newTestBackend(t)
	var calls atomic.Int32
	txBody := test.ReadTestdata("blockfrost/tx.json")
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex,
		func(req *http.Request) (*http.Response, error) {
			if calls.Add(1) < 3 {
				return httpmock.NewStringResponse(http.StatusNotFound, notFoundBody), nil
			}
			return httpmock.NewBytesResponse(http.StatusOK, txBody), nil
		},
	)
	ok, err := b.AwaitTx(context.Background(), mustTxHash(t, testTxHashHex), 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(3), calls.Load())
	// No further requests are issued once confirmed
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAwaitTxUnexpectedBody(t *testing.T) {
	defer goleak.VerifyNone(t)
	b, transport := newTestBackend(t, blockfrost.WithAwaitTxTimeout(time.Second))
	var calls atomic.Int32
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex,
		countingResponder(
			&calls,
			httpmock.NewStringResponder(http.StatusOK, `{"hash": 12345, "block_height": "unknown"}`),
		),
	)
	ok, err := b.AwaitTx(context.Background(), mustTxHash(t, testTxHashHex), 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAwaitTxTimeout(t *testing.T) {
	defer goleak.VerifyNone(t)
	b, transport := newTestBackend(t, blockfrost.WithAwaitTxTimeout(50*time.Millisecond))
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex,
		httpmock.NewStringResponder(http.StatusNotFound, notFoundBody),
	)
	ok, err := b.AwaitTx(context.Background(), mustTxHash(t, testTxHashHex), 10*time.Millisecond)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAwaitTxCancel(t *testing.T) {
	defer goleak.VerifyNone(t)
	b, transport := newTestBackend(t, blockfrost.WithAwaitTxTimeout(0))
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/txs/"+testTxHashHex,
		httpmock.NewStringResponder(http.StatusNotFound, notFoundBody),
	)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)
	ok, err := b.AwaitTx(ctx, mustTxHash(t, testTxHashHex), 10*time.Millisecond)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitTx(t *testing.T) {
	b, transport := newTestBackend(t)
	testTx := test.DecodeHexString("84a300818258200000")
	transport.RegisterResponder(
		http.MethodPost,
		testBaseUrl+"/tx/submit",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "application/cbor", req.Header.Get("Content-Type"))
			assert.Equal(t, testProjectId, req.Header.Get("project_id"))
			body, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			assert.Equal(t, testTx, body)
			return httpmock.NewStringResponse(http.StatusOK, `"`+testTxHashHex+`"`), nil
		},
	)
	txHash, err := b.SubmitTx(context.Background(), testTx)
	require.NoError(t, err)
	assert.Equal(t, testTxHashHex, txHash.String())
}

func TestSubmitTxErrors(t *testing.T) {
	testDefs := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{
			name:      "malformed",
			status:    http.StatusBadRequest,
			body:      `{"status_code":400,"error":"Bad Request","message":"transaction submit error ShelleyTxValidationError"}`,
			malformed: true,
		},
		{
			name:   "mempool full",
			status: http.StatusTooEarly,
			body:   `{"status_code":425,"error":"Mempool Full","message":"Mempool is full."}`,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   serverErrorBody,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			b, transport := newTestBackend(t)
			transport.RegisterResponder(
				http.MethodPost,
				testBaseUrl+"/tx/submit",
				httpmock.NewStringResponder(testDef.status, testDef.body),
			)
			_, err := b.SubmitTx(context.Background(), []byte{0x84})
			require.Error(t, err)
			assert.ErrorIs(t, err, provider.ErrSubmissionFailed)
			var malformedErr provider.MalformedSubmissionError
			if testDef.malformed {
				require.ErrorAs(t, err, &malformedErr)
				assert.Equal(t, "transaction submit error ShelleyTxValidationError", malformedErr.Message)
			} else {
				assert.False(t, errors.As(err, &malformedErr))
			}
		})
	}
}

func TestSubmitTxEmpty(t *testing.T) {
	b, transport := newTestBackend(t)
	_, err := b.SubmitTx(context.Background(), nil)
	assert.ErrorIs(t, err, provider.ErrSubmissionFailed)
	assert.Equal(t, 0, transport.GetTotalCallCount())
}
