package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Cloud struct {
		BaseURL        string   `json:"base_url"`
		Token          string   `json:"token"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"cloud,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Sync struct {
		RetryBudget   int      `json:"retry_budget"`
		HistoryLimit  int      `json:"history_limit"`
		HistoryMaxAge Duration `json:"history_max_age"`
	} `json:"sync,omitempty"`

	Validation struct {
		Level      string `json:"level"`
		AutoRepair bool   `json:"auto_repair"`
		Scheduled  bool   `json:"scheduled"`
	} `json:"validation,omitempty"`

	Batch struct {
		Enabled          bool `json:"enabled"`
		DynamicBatchSize bool `json:"dynamic_size"`
		AdaptiveDelay    bool `json:"adaptive_delay"`
		NetworkAware     bool `json:"network_aware"`
	} `json:"batch,omitempty"`

	Workers struct {
		ValidationInterval  Duration `json:"validation_interval"`
		CleanupInterval     Duration `json:"cleanup_interval"`
		HealthCheckInterval Duration `json:"health_check_interval"`
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
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Cloud: Cloud{
			BaseURL:        jsonCfg.Cloud.BaseURL,
			Token:          jsonCfg.Cloud.Token,
			RequestTimeout: time.Duration(jsonCfg.Cloud.RequestTimeout),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Sync: Sync{
			RetryBudget:   jsonCfg.Sync.RetryBudget,
			HistoryLimit:  jsonCfg.Sync.HistoryLimit,
			HistoryMaxAge: time.Duration(jsonCfg.Sync.HistoryMaxAge),
		},
		Validation: Validation{
			Level:      jsonCfg.Validation.Level,
			AutoRepair: jsonCfg.Validation.AutoRepair,
			Scheduled:  jsonCfg.Validation.Scheduled,
		},
		Batch: Batch{
			Enabled:          jsonCfg.Batch.Enabled,
			DynamicBatchSize: jsonCfg.Batch.DynamicBatchSize,
			AdaptiveDelay:    jsonCfg.Batch.AdaptiveDelay,
			NetworkAware:     jsonCfg.Batch.NetworkAware,
		},
		Workers: Workers{
			ValidationInterval:  time.Duration(jsonCfg.Workers.ValidationInterval),
			CleanupInterval:     time.Duration(jsonCfg.Workers.CleanupInterval),
			HealthCheckInterval: time.Duration(jsonCfg.Workers.HealthCheckInterval),
		},
		JSONFilePath: "",
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
