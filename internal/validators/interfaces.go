// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks account requests (registration and login
// payloads) before the account service touches the store.
package validators

import "context"

// Validator validates a request value. When field names are passed only
// those fields are checked; an unknown name yields [ErrUnknownField].
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
