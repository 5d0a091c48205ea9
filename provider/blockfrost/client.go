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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/blinklabs-io/chainprovider/provider"
)

const (
	headerProjectId = "project_id"

	contentTypeCbor = "application/cbor"
)

// APIError is an error payload returned by the Blockfrost API
type APIError struct {
	StatusCode int    `json:"status_code"`
	Err        string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("blockfrost: %d %s", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("blockfrost: %d %s: %s", e.StatusCode, e.Err, e.Message)
}

// Is allows matching an APIError against provider.ErrNotFound and provider.ErrBackendUnavailable
func (e *APIError) Is(target error) bool {
	switch target {
	case provider.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case provider.ErrBackendUnavailable:
		switch e.StatusCode {
		case http.StatusPaymentRequired, http.StatusTeapot, http.StatusTooEarly, http.StatusTooManyRequests:
			// Usage limit reached, auto-banned, mempool full and rate limited
			return true
		}
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// parseAPIError decodes an error payload from a response. It returns nil for a successful
// response
func parseAPIError(statusCode int, body []byte) *APIError {
	trimmed := bytes.TrimSpace(body)
	if statusCode >= http.StatusBadRequest {
		apiErr := &APIError{}
		if err := json.Unmarshal(trimmed, apiErr); err != nil || apiErr.Err == "" {
			apiErr = &APIError{
				Err:     http.StatusText(statusCode),
				Message: string(trimmed),
			}
		}
		if apiErr.StatusCode == 0 {
			apiErr.StatusCode = statusCode
		}
		return apiErr
	}
	// Some error payloads arrive with a 2xx status
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var apiErr APIError
		if err := json.Unmarshal(trimmed, &apiErr); err == nil && apiErr.Err != "" {
			if apiErr.StatusCode == 0 {
				apiErr.StatusCode = statusCode
			}
			return &apiErr
		}
	}
	return nil
}

type request struct {
	endpoint    string
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

// do performs a request and returns the response body. Backend error payloads are returned as
// *APIError and transport failures wrap provider.ErrBackendUnavailable
func (b *Blockfrost) do(ctx context.Context, r request) ([]byte, error) {
	if b.rateLimiter != nil {
		if err := b.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	reqUrl := b.baseUrl + r.path
	if len(r.query) > 0 {
		reqUrl += "?" + r.query.Encode()
	}
	method := r.method
	if method == "" {
		method = http.MethodGet
	}
	var bodyReader io.Reader
	if r.body != nil {
		bodyReader = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqUrl, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(headerProjectId, b.projectId)
	req.Header.Set("User-Agent", b.userAgent())
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	startTime := time.Now()
	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.metrics.observe(r.endpoint, "error", time.Since(startTime))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", provider.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	b.metrics.observe(r.endpoint, strconv.Itoa(resp.StatusCode), time.Since(startTime))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", provider.ErrBackendUnavailable, err)
	}
	if apiErr := parseAPIError(resp.StatusCode, respBody); apiErr != nil {
		b.logger.Debug(
			"received error response",
			"endpoint", r.endpoint,
			"status_code", apiErr.StatusCode,
			"error", apiErr.Err,
		)
		return nil, apiErr
	}
	return respBody, nil
}

// getJSON performs a GET request and decodes the successful response into dest
func (b *Blockfrost) getJSON(
	ctx context.Context,
	endpoint string,
	path string,
	query url.Values,
	dest any,
) error {
	respBody, err := b.do(
		ctx,
		request{
			endpoint: endpoint,
			path:     path,
			query:    query,
		},
	)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func pathJoin(parts ...string) string {
	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString("/")
		sb.WriteString(url.PathEscape(part))
	}
	return sb.String()
}
