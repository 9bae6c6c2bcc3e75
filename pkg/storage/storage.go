package storage

import (
	"context"
	"io"
)

// Storage defines the interface for temporary file storage operations.
type Storage interface {
	// Put writes data from a reader to storage.
	// size may be -1 when the length is not known up front (streamed uploads).
	// Options can set the key, prefix, content type and validation rules.
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// Get retrieves a file from storage.
	// The caller is responsible for closing the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file from storage.
	// Deleting a key that does not exist is not an error.
	Delete(ctx context.Context, key string) error
}

// FileInfo contains metadata about a stored file.
type FileInfo struct {
	// Key is the storage key (path) for the file.
	Key string

	// ContentType is the declared or detected MIME type.
	ContentType string

	// Size is the file size in bytes.
	Size int64
}

// Config holds S3-compatible storage configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `env:"BUCKET"`

	// AccessKey is the AWS access key ID (required).
	AccessKey string `env:"ACCESS_KEY"`

	// SecretKey is the AWS secret access key (required).
	SecretKey string `env:"SECRET_KEY"`

	// Endpoint is the custom S3 endpoint URL (optional, for MinIO or other S3-compatible services).
	Endpoint string `env:"ENDPOINT"`

	// Region is the AWS region (default: us-east-1).
	Region string `env:"REGION" envDefault:"us-east-1"`

	// Prefix is prepended to every key written by this store (optional).
	Prefix string `env:"PREFIX" envDefault:"uploads"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"PATH_STYLE"`
}

// Default configuration values.
const (
	DefaultRegion   = "us-east-1"
	DefaultDirPerm  = 0o755
	DefaultFilePerm = 0o600
)

// applyDefaults fills in default values for empty config fields.
func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

// validate checks that required configuration fields are set.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return ErrInvalidConfig
	}
	if c.AccessKey == "" {
		return ErrInvalidConfig
	}
	if c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
