// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when reading the
// session cookie. Callers can match against them with [errors.Is].
var (
	// ErrNoSessionCookie is returned when the request carries no "token"
	// cookie or the cookie value is empty.
	ErrNoSessionCookie = errors.New("no session cookie")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)

// Plain-text bodies of error responses.
const (
	msgAccessDenied       = "Access denied. No token."
	msgInvalidToken       = "Invalid or expired token."
	msgAllInputRequired   = "All input is required"
	msgUserAlreadyExists  = "User already exists"
	msgSendAllData        = "Send all data"
	msgUserNotFound       = "User not found"
	msgInvalidCredentials = "Invalid credentials"
	msgEmailAlreadyInUse  = "Email is already in use"
	msgServerError        = "Server error"
)

// Success messages of the account envelopes.
const (
	msgRegistered     = "User registered successfully"
	msgLoggedIn       = "User logged in successfully"
	msgProfileUpdated = "Profile updated"
)
