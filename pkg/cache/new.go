package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [New].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string // file, redis or none
	Dir      string // FileCache directory
	RedisURL string // RedisCache address
	Prefix   string // RedisCache key prefix
}

// New opens the backend named by opts.Backend.
func New(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile, "":
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache needs a directory")
		}
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, opts.RedisURL, opts.Prefix)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
