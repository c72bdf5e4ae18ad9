// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is a Go client for the repertoire-sync HTTP API.
//
// [SyncClient] wraps every sync endpoint. Error responses are mapped back to
// the sentinel values in errors.go so that callers can branch with
// [errors.Is] (for example [ErrConflict] on 409 or [ErrUnauthorized] on 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/repertoire-sync/models"
)

// SyncClient talks to a repertoire-sync server on behalf of one user.
type SyncClient interface {
	// SetToken stores the bearer token attached to every authenticated request.
	SetToken(token string)

	// Token returns the bearer token currently held, or "".
	Token() string

	// Version returns the server build information.
	Version(ctx context.Context) (models.AppBuildInfo, error)

	// PullBasic returns the basic-channel data changed after since.
	// The result is nil when the server holds nothing for the user.
	PullBasic(ctx context.Context, since int64) (*models.BasicData, error)

	// PushBasic merges openings, chapters, settings and tombstones.
	PushBasic(ctx context.Context, data models.BasicData) (models.PushResponse, error)

	// PullFull returns the whole dataset changed after since, or nil.
	PullFull(ctx context.Context, since int64) (*models.Snapshot, error)

	// PushFull merges a complete snapshot delta.
	PushFull(ctx context.Context, delta models.Snapshot) (models.PushResponse, error)

	// PullVariants returns one page of variant records.
	PullVariants(ctx context.Context, req models.VariantPullRequest) (models.VariantPage, error)

	// PullAllVariants follows last_batch_id until the server reports no more
	// pages and returns every record changed after since.
	PullAllVariants(ctx context.Context, since int64, batchSize int) ([]models.VariantRecord, error)

	// PushVariants merges variants together with their moves.
	PushVariants(ctx context.Context, variants []models.VariantSync) (models.SuccessResponse, error)

	// DeleteAccount erases every record of the user.
	DeleteAccount(ctx context.Context) (models.SuccessResponse, error)
}
