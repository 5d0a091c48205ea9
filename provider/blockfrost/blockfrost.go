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

// Package blockfrost implements the chain data provider contract on top of the Blockfrost REST API
package blockfrost

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blinklabs-io/chainprovider/ledger"
	"github.com/blinklabs-io/chainprovider/provider"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jellydator/ttlcache/v3"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const (
	DefaultMaxConcurrency  = 10
	DefaultScriptCacheSize = 256
	DefaultAwaitTxTimeout  = 10 * time.Minute
	DefaultHttpTimeout     = 30 * time.Second

	userAgentName = "chainprovider"

	protocolParamsCacheKey = "latest"
)

// Compile-time check that Blockfrost implements the provider contract
var _ provider.Provider = (*Blockfrost)(nil)

// Blockfrost is a provider backed by the Blockfrost API. It holds no chain state beyond
// optional caches of content-addressed data
type Blockfrost struct {
	baseUrl             string
	projectId           string
	clientVersion       string
	network             Network
	httpClient          *http.Client
	logger              *slog.Logger
	rateLimiter         *rate.Limiter
	maxConcurrency      int
	awaitTxTimeout      time.Duration
	protocolParamsTTL   time.Duration
	protocolParamsCache *ttlcache.Cache[string, ledger.ProtocolParameters]
	scriptCacheSize     int
	scriptCache         *lru.Cache[ledger.ScriptHash, ledger.ScriptRef]
	datumCache          *lru.Cache[ledger.DatumHash, ledger.Datum]
	promRegistry        prometheus.Registerer
	metrics             *metrics
}

// New returns a Blockfrost provider configured with the specified options. A network or base
// URL must be provided, either directly or through a network-prefixed project ID
func New(opts ...OptionFunc) (*Blockfrost, error) {
	b := &Blockfrost{
		maxConcurrency:  DefaultMaxConcurrency,
		scriptCacheSize: DefaultScriptCacheSize,
		awaitTxTimeout:  DefaultAwaitTxTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.network == (Network{}) && b.projectId != "" {
		if network := NetworkByProjectId(b.projectId); network != NetworkInvalid {
			b.network = network
			if b.baseUrl == "" {
				b.baseUrl = network.BaseUrl
			}
		}
	}
	if b.baseUrl == "" {
		return nil, errors.New("no base URL or network specified")
	}
	b.baseUrl = strings.TrimRight(b.baseUrl, "/")
	if _, err := url.ParseRequestURI(b.baseUrl); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if b.httpClient == nil {
		b.httpClient = &http.Client{
			Timeout: DefaultHttpTimeout,
		}
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.logger = b.logger.With("component", "blockfrost")
	if b.maxConcurrency <= 0 {
		b.maxConcurrency = DefaultMaxConcurrency
	}
	if b.scriptCacheSize > 0 {
		scriptCache, err := lru.New[ledger.ScriptHash, ledger.ScriptRef](b.scriptCacheSize)
		if err != nil {
			return nil, fmt.Errorf("create script cache: %w", err)
		}
		b.scriptCache = scriptCache
		datumCache, err := lru.New[ledger.DatumHash, ledger.Datum](b.scriptCacheSize)
		if err != nil {
			return nil, fmt.Errorf("create datum cache: %w", err)
		}
		b.datumCache = datumCache
	}
	if b.protocolParamsTTL > 0 {
		b.protocolParamsCache = ttlcache.New[string, ledger.ProtocolParameters](
			ttlcache.WithTTL[string, ledger.ProtocolParameters](b.protocolParamsTTL),
			ttlcache.WithDisableTouchOnHit[string, ledger.ProtocolParameters](),
		)
	}
	b.metrics = newMetrics(b.promRegistry)
	return b, nil
}

// BaseUrl returns the API base URL requests are sent to
func (b *Blockfrost) BaseUrl() string {
	return b.baseUrl
}

// Network returns the configured network, or the zero Network when it could not be determined
func (b *Blockfrost) Network() Network {
	return b.network
}

func (b *Blockfrost) userAgent() string {
	if b.clientVersion == "" {
		return userAgentName
	}
	return userAgentName + "/" + b.clientVersion
}
