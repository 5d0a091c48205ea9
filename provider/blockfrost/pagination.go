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
	"net/url"
	"strconv"

	"github.com/blinklabs-io/chainprovider/provider"
)

// Order is the sort order of a paginated query
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// FetchAllPages walks the numbered pages of a list endpoint starting at page 1 and returns
// the accumulated items. It stops at the first empty page or once pageLimit pages have been
// fetched (0 means no limit). A not found response on any page yields an empty result without
// an error, while any other error response aborts the walk. In both cases the items fetched
// from earlier pages are discarded
func FetchAllPages[T any](
	ctx context.Context,
	b *Blockfrost,
	endpoint string,
	path string,
	query url.Values,
	order Order,
	pageLimit int,
) ([]T, error) {
	if order == "" {
		order = OrderAsc
	}
	ret := []T{}
	for page := 1; ; page++ {
		pageQuery := url.Values{}
		for k, v := range query {
			pageQuery[k] = append([]string(nil), v...)
		}
		pageQuery.Set("order", string(order))
		pageQuery.Set("page", strconv.Itoa(page))
		var items []T
		if err := b.getJSON(ctx, endpoint, path, pageQuery, &items); err != nil {
			if errors.Is(err, provider.ErrNotFound) {
				return []T{}, nil
			}
			return nil, err
		}
		b.logger.Debug(
			"fetched page",
			"endpoint", endpoint,
			"page", page,
			"items", len(items),
		)
		ret = append(ret, items...)
		if len(items) == 0 || (pageLimit > 0 && page >= pageLimit) {
			break
		}
	}
	return ret, nil
}
