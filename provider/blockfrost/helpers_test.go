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
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/blinklabs-io/chainprovider/provider/blockfrost"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"
)

const (
	testBaseUrl   = "https://blockfrost.test/api/v0"
	testProjectId = "previewTestProjectId"
	testAddress   = "addr_test1vz2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzers66hrl8"

	testTxHashHex  = "1e043f100dce12d107f679685acd2fc0610e10f72a92d412794c9773d11d8477"
	testTxHashHex2 = "8562f37a1a8e4cd0ea32f6ecc5b6df8b4fa8c2c0fa5f3f1c1ab8e1e3e2d4c6b1"

	testUnit = "b0d07d45fe9514f80213f4020e5a61241458be626841cde717cb38a76e7574636f696e"

	notFoundBody    = `{"status_code":404,"error":"Not Found","message":"The requested component has not been found."}`
	serverErrorBody = `{"status_code":500,"error":"Internal Server Error","message":"An unexpected response was received from the backend."}`
)

func newTestBackend(t *testing.T, opts ...blockfrost.OptionFunc) (*blockfrost.Blockfrost, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	transport.RegisterNoResponder(
		func(req *http.Request) (*http.Response, error) {
			return nil, fmt.Errorf("unexpected request: %s %s", req.Method, req.URL.String())
		},
	)
	allOpts := []blockfrost.OptionFunc{
		blockfrost.WithBaseUrl(testBaseUrl),
		blockfrost.WithProjectId(testProjectId),
		blockfrost.WithHttpClient(&http.Client{Transport: transport}),
		blockfrost.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	allOpts = append(allOpts, opts...)
	b, err := blockfrost.New(allOpts...)
	require.NoError(t, err)
	return b, transport
}

// countingResponder wraps a responder and counts the requests it serves
func countingResponder(counter *atomic.Int32, responder httpmock.Responder) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		counter.Add(1)
		return responder(req)
	}
}

func utxoJson(txHashHex string, outputIndex int, extra string) string {
	fields := []string{
		fmt.Sprintf(`"address":%q`, testAddress),
		fmt.Sprintf(`"tx_hash":%q`, txHashHex),
		fmt.Sprintf(`"output_index":%d`, outputIndex),
		`"amount":[{"unit":"lovelace","quantity":"42000000"}]`,
	}
	if extra != "" {
		fields = append(fields, extra)
	}
	return "{" + strings.Join(fields, ",") + "}"
}

func txUtxosJson(txHashHex string, outputs ...string) string {
	return fmt.Sprintf(`{"hash":%q,"inputs":[],"outputs":[%s]}`, txHashHex, strings.Join(outputs, ","))
}
