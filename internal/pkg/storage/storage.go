package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Storage is the subset of object storage the media endpoints need.
type Storage interface {
	// Delete removes an object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a stored key.
	GetURL(key string) string
}

// Config selects and configures a backend
type Config struct {
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	LocalPath    string
	LocalBaseURL string
}

func (c Config) s3Configured() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// NewFromConfig returns S3 storage when credentials are present, local disk otherwise
func NewFromConfig(ctx context.Context, cfg Config) (Storage, error) {
	if cfg.s3Configured() {
		s, err := NewS3Storage(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("init s3 storage: %w", err)
		}
		log.Info().Str("bucket", cfg.S3Bucket).Str("endpoint", cfg.S3Endpoint).Msg("Using S3 media storage")
		return s, nil
	}

	s, err := NewLocalStorage(cfg.LocalPath, cfg.LocalBaseURL)
	if err != nil {
		return nil, fmt.Errorf("init local storage: %w", err)
	}
	log.Warn().Str("path", cfg.LocalPath).Msg("S3 not configured, using local media storage")
	return s, nil
}
