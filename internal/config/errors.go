package config

import "errors"

var (
	ErrInvalidStorageConfigs    = errors.New("invalid storage configs: local SQLite DSN is required")
	ErrInvalidCloudConfigs      = errors.New("invalid cloud configs: base URL is required")
	ErrInvalidValidationConfigs = errors.New("invalid validation configs: level must be basic, relaxed or strict")
)
