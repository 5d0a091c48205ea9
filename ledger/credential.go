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

package ledger

import (
	"fmt"
)

type CredentialType uint8

const (
	CredentialTypeKey    CredentialType = 0
	CredentialTypeScript CredentialType = 1
)

func (t CredentialType) String() string {
	switch t {
	case CredentialTypeKey:
		return "Key"
	case CredentialTypeScript:
		return "Script"
	default:
		return fmt.Sprintf("CredentialType(%d)", uint8(t))
	}
}

// Credential is a key hash or script hash identifying a payment or stake entity
type Credential struct {
	Type CredentialType
	Hash Blake2b224
}

func (Credential) isAddressOrCredential() {}

// NewKeyCredential returns a key-hash credential from a hex-encoded key hash
func NewKeyCredential(hashHex string) (Credential, error) {
	return newCredential(CredentialTypeKey, hashHex)
}

// NewScriptCredential returns a script-hash credential from a hex-encoded script hash
func NewScriptCredential(hashHex string) (Credential, error) {
	return newCredential(CredentialTypeScript, hashHex)
}

func newCredential(credType CredentialType, hashHex string) (Credential, error) {
	hash, err := NewBlake2b224FromHex(hashHex)
	if err != nil {
		return Credential{}, fmt.Errorf("invalid %s credential: %w", credType, err)
	}
	return Credential{
		Type: credType,
		Hash: hash,
	}, nil
}

func (c Credential) String() string {
	return fmt.Sprintf("%s:%s", c.Type, c.Hash)
}
