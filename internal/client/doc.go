// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the account service.
//
// Each invocation runs one subcommand against a running server. The session
// token received on login is kept in a file between invocations.
package client
