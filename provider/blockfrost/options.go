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
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// OptionFunc is a type that represents functions that modify the Blockfrost config
type OptionFunc func(*Blockfrost)

// WithNetwork specifies a predefined network, which determines the base URL and the network ID
// expected in reward addresses
func WithNetwork(network Network) OptionFunc {
	return func(b *Blockfrost) {
		b.network = network
		b.baseUrl = network.BaseUrl
	}
}

// WithBaseUrl specifies the API base URL, such as a self-hosted Blockfrost instance. This
// overrides WithNetwork when specified after it
func WithBaseUrl(baseUrl string) OptionFunc {
	return func(b *Blockfrost) {
		b.baseUrl = baseUrl
	}
}

// WithProjectId specifies the project ID sent with every request
func WithProjectId(projectId string) OptionFunc {
	return func(b *Blockfrost) {
		b.projectId = projectId
	}
}

// WithClientVersion specifies the client version reported in the User-Agent header
func WithClientVersion(version string) OptionFunc {
	return func(b *Blockfrost) {
		b.clientVersion = version
	}
}

// WithHttpClient specifies the HTTP client to use. If none is provided, one with a
// DefaultHttpTimeout timeout is created
func WithHttpClient(client *http.Client) OptionFunc {
	return func(b *Blockfrost) {
		b.httpClient = client
	}
}

// WithLogger specifies the logger to use. If none is provided, slog.Default() is used
func WithLogger(logger *slog.Logger) OptionFunc {
	return func(b *Blockfrost) {
		b.logger = logger
	}
}

// WithRateLimit limits outgoing requests to the specified rate with the specified burst.
// Requests are unlimited by default
func WithRateLimit(requestsPerSecond float64, burst int) OptionFunc {
	return func(b *Blockfrost) {
		if requestsPerSecond <= 0 {
			b.rateLimiter = nil
			return
		}
		b.rateLimiter = rate.NewLimiter(rate.Limit(requestsPerSecond), max(burst, 1))
	}
}

// WithMaxConcurrency specifies the maximum number of concurrent requests issued by a single
// fan-out lookup, such as GetUtxosByOutRef
func WithMaxConcurrency(maxConcurrency int) OptionFunc {
	return func(b *Blockfrost) {
		b.maxConcurrency = maxConcurrency
	}
}

// WithAwaitTxTimeout specifies how long AwaitTx polls before giving up. A value of 0 disables
// the timeout, leaving cancellation to the caller's context
func WithAwaitTxTimeout(timeout time.Duration) OptionFunc {
	return func(b *Blockfrost) {
		b.awaitTxTimeout = timeout
	}
}

// WithProtocolParamsCacheTTL enables caching of protocol parameters for the specified duration.
// Caching is disabled by default
func WithProtocolParamsCacheTTL(ttl time.Duration) OptionFunc {
	return func(b *Blockfrost) {
		b.protocolParamsTTL = ttl
	}
}

// WithScriptCacheSize specifies the number of reference scripts and datums to keep in memory.
// A value of 0 disables the caches
func WithScriptCacheSize(size int) OptionFunc {
	return func(b *Blockfrost) {
		b.scriptCacheSize = size
	}
}

// WithPrometheusRegistry specifies a registerer for request metrics. Metrics are not
// registered by default
func WithPrometheusRegistry(registry prometheus.Registerer) OptionFunc {
	return func(b *Blockfrost) {
		b.promRegistry = registry
	}
}
