// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the account service REST API.
//
// [ServerAdapter] hides the HTTP transport from the command-line client.
// Non-2xx responses are mapped by mapHTTPError to the sentinels in errors.go
// so that callers can use [errors.Is] (e.g. [ErrConflict] for 409,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-user-service/models"
)

// ServerAdapter talks to the account service. The session token received
// from login (or a profile email change) is kept by the adapter and sent as
// the "token" cookie on protected calls.
type ServerAdapter interface {
	// SetToken stores the session token used by Profile and UpdateProfile.
	SetToken(token string)

	// Token returns the current session token, or "" when there is none.
	Token() string

	// Health calls GET / and returns the body.
	Health(ctx context.Context) (string, error)

	// Register creates an account. It does not start a session.
	Register(ctx context.Context, req models.RegisterRequest) (models.AccountResponse, error)

	// Login authenticates and stores the session token set by the server.
	Login(ctx context.Context, req models.LoginRequest) (models.AccountResponse, error)

	// Profile returns the caller's record.
	Profile(ctx context.Context) (models.User, error)

	// UpdateProfile applies a partial update. A rotated session token is
	// stored automatically.
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.AccountResponse, error)
}
