// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name string
		addr NetAddress
		want string
	}{
		{name: "empty address", addr: NetAddress{}, want: ""},
		{name: "host and port", addr: NetAddress{Host: "localhost", Port: 8484}, want: "localhost:8484"},
		{name: "ip and port", addr: NetAddress{Host: "127.0.0.1", Port: 3000}, want: "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    NetAddress
	}{
		{name: "localhost", input: "localhost:8484", want: NetAddress{Host: "localhost", Port: 8484}},
		{name: "ip address", input: "127.0.0.1:3000", want: NetAddress{Host: "127.0.0.1", Port: 3000}},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "non numeric port", input: "localhost:abc", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "bad host", input: "not-an-ip:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
		})
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-a", "localhost:8484",
				"-d", "/var/lib/cardsync/local.db",
				"-cloud-url", "https://sync.example.com",
				"-cloud-token", "bearer-token",
				"-cloud-timeout", "15s",
				"-c", "/path/to/config.json",
				"-validation-level", "strict",
				"-auto-repair",
				"-retry-budget", "5",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "localhost:8484", cfg.Server.HTTPAddress)
				assert.Equal(t, "/var/lib/cardsync/local.db", cfg.Storage.DB.DSN)
				assert.Equal(t, "https://sync.example.com", cfg.Cloud.BaseURL)
				assert.Equal(t, "bearer-token", cfg.Cloud.Token)
				assert.Equal(t, 15*time.Second, cfg.Cloud.RequestTimeout)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
				assert.Equal(t, "strict", cfg.Validation.Level)
				assert.True(t, cfg.Validation.AutoRepair)
				assert.Equal(t, 5, cfg.Sync.RetryBudget)
			},
		},
		{
			name: "config alias flag",
			args: []string{
				"-config", "/path/to/config.json",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "partial flags",
			args: []string{
				"-a", "127.0.0.1:3000",
				"-d", "/tmp/local.db",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "127.0.0.1:3000", cfg.Server.HTTPAddress)
				assert.Equal(t, "/tmp/local.db", cfg.Storage.DB.DSN)
				assert.Empty(t, cfg.Cloud.BaseURL)
				assert.Empty(t, cfg.Validation.Level)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Empty(t, cfg.Server.HTTPAddress)
				assert.Empty(t, cfg.Storage.DB.DSN)
				assert.Empty(t, cfg.Cloud.BaseURL)
				assert.Empty(t, cfg.JSONFilePath)
				assert.Zero(t, cfg.Sync.RetryBudget)
				assert.False(t, cfg.Validation.AutoRepair)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flag.CommandLine for each test
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

			oldArgs := os.Args
			os.Args = append([]string{"cmd"}, tt.args...)
			defer func() { os.Args = oldArgs }()

			cfg := ParseFlags()
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}
