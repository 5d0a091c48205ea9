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

package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable is returned when the backend cannot be reached or is overloaded
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrNotFound is returned when the backend reports that the entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousHolder is returned when a unit expected to have a single holder has several
	ErrAmbiguousHolder = errors.New("unit needs to be an NFT or only held by one address")
	// ErrNativeScriptUnsupported is returned when an output references a native script
	ErrNativeScriptUnsupported = errors.New("native script ref not supported")
	// ErrDatumNotFound is returned when no datum exists for the requested hash
	ErrDatumNotFound = fmt.Errorf("datum %w", ErrNotFound)
	// ErrSubmissionFailed is returned when a transaction could not be submitted
	ErrSubmissionFailed = errors.New("could not submit transaction")
	// ErrInvalidCredential is returned for an address or credential that cannot be queried
	ErrInvalidCredential = errors.New("invalid address or credential")
)

// MalformedSubmissionError is returned when the backend rejects a submitted transaction as
// invalid. Message is the backend's diagnostic, unmodified
type MalformedSubmissionError struct {
	Message string
}

func (e MalformedSubmissionError) Error() string {
	return "transaction rejected: " + e.Message
}

func (e MalformedSubmissionError) Is(target error) bool {
	return target == ErrSubmissionFailed
}
