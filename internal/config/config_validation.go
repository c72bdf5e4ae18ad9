// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] can start the
// server.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: dsn is required for driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	s := cfg.Services
	if s.DefaultBatchSize < 1 || s.MaxBatchSize < s.DefaultBatchSize {
		return fmt.Errorf("%w: batch sizes default=%d max=%d", ErrInvalidServicesConfigs, s.DefaultBatchSize, s.MaxBatchSize)
	}
	if s.SyncTimeout <= 0 || s.WriteRetries == 0 || s.RetryBaseDelay <= 0 {
		return fmt.Errorf("%w: sync timeout, write retries and retry delay must be positive", ErrInvalidServicesConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidServerConfigs)
	}

	if cfg.Workers.RetentionInterval < 0 {
		return fmt.Errorf("%w: negative retention interval", ErrInvalidWorkerConfigs)
	}

	return nil
}
