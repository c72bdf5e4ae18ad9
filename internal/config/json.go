package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		Version      string `json:"version"`
		LogLevel     string `json:"log_level"`
	} `json:"app,omitempty"`

	Services struct {
		SyncTimeout        Duration `json:"sync_timeout"`
		TombstoneRetention Duration `json:"tombstone_retention"`
		DefaultBatchSize   int      `json:"default_batch_size"`
		MaxBatchSize       int      `json:"max_batch_size"`
		WriteRetries       uint64   `json:"write_retries"`
		RetryBaseDelay     Duration `json:"retry_base_delay"`
	} `json:"services,omitempty"`

	Storage struct {
		DB struct {
			Driver       string `json:"driver"`
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		RetentionInterval Duration `json:"retention_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			Version:      jsonCfg.App.Version,
			LogLevel:     jsonCfg.App.LogLevel,
		},
		Services: Services{
			SyncTimeout:        time.Duration(jsonCfg.Services.SyncTimeout),
			TombstoneRetention: time.Duration(jsonCfg.Services.TombstoneRetention),
			DefaultBatchSize:   jsonCfg.Services.DefaultBatchSize,
			MaxBatchSize:       jsonCfg.Services.MaxBatchSize,
			WriteRetries:       jsonCfg.Services.WriteRetries,
			RetryBaseDelay:     time.Duration(jsonCfg.Services.RetryBaseDelay),
		},
		Storage: Storage{
			DB: DB{
				Driver:       jsonCfg.Storage.DB.Driver,
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Workers: Workers{
			RetentionInterval: time.Duration(jsonCfg.Workers.RetentionInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
