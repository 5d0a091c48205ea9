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
	"strings"
)

// Network definitions
var (
	NetworkMainnet = Network{
		Id:      1,
		Name:    "mainnet",
		BaseUrl: "https://cardano-mainnet.blockfrost.io/api/v0",
	}
	NetworkPreprod = Network{
		Id:      0,
		Name:    "preprod",
		BaseUrl: "https://cardano-preprod.blockfrost.io/api/v0",
	}
	NetworkPreview = Network{
		Id:      0,
		Name:    "preview",
		BaseUrl: "https://cardano-preview.blockfrost.io/api/v0",
	}

	NetworkInvalid = Network{
		Id:   0,
		Name: "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkPreprod,
	NetworkPreview,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByProjectId returns the predefined network matching the prefix of a project ID
func NetworkByProjectId(projectId string) Network {
	for _, network := range networks {
		if strings.HasPrefix(projectId, network.Name) {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents a Cardano network served by Blockfrost
type Network struct {
	Id      uint8 // network ID used for addresses
	Name    string
	BaseUrl string
}

func (n Network) String() string {
	return n.Name
}
