// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrNoUserID is returned when a protected handler runs without an
	// authenticated user in the request context.
	ErrNoUserID = errors.New("no user ID was given")
)
