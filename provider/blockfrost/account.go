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
	"fmt"

	"github.com/blinklabs-io/chainprovider/ledger"
	"github.com/blinklabs-io/chainprovider/provider"
)

// GetDelegation returns the delegation and withdrawable rewards of a reward address. An
// account the backend reports an error for, such as one that was never registered, is treated
// as undelegated with no rewards
func (b *Blockfrost) GetDelegation(
	ctx context.Context,
	rewardAddress ledger.RewardAddress,
) (ledger.Delegation, error) {
	if err := rewardAddress.Validate(); err != nil {
		return ledger.Delegation{}, fmt.Errorf("%w: %w", provider.ErrInvalidCredential, err)
	}
	if b.network != (Network{}) {
		networkId, err := rewardAddress.NetworkId()
		if err != nil {
			return ledger.Delegation{}, fmt.Errorf("%w: %w", provider.ErrInvalidCredential, err)
		}
		if networkId != b.network.Id {
			return ledger.Delegation{}, fmt.Errorf(
				"%w: reward address network ID %d does not match %s (%d)",
				provider.ErrInvalidCredential,
				networkId,
				b.network.Name,
				b.network.Id,
			)
		}
	}
	var result accountResult
	err := b.getJSON(ctx, "accounts", pathJoin("accounts", rewardAddress.String()), nil, &result)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			b.logger.Warn(
				"account lookup failed, assuming no delegation",
				"reward_address", rewardAddress.String(),
				"status_code", apiErr.StatusCode,
				"error", apiErr.Err,
			)
			return ledger.Delegation{}, nil
		}
		return ledger.Delegation{}, err
	}
	ret := ledger.Delegation{
		Rewards: uint64(result.WithdrawableAmount),
	}
	if result.PoolId != nil {
		ret.PoolId = *result.PoolId
	}
	return ret, nil
}
