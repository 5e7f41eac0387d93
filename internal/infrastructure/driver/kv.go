package driver

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound the requested key does not exist
var ErrKeyNotFound = errors.New("key not found")

// KeyValueDB define a key-value storage interface
//
// a zero expiration means the key never expires
type KeyValueDB interface {
	SetEX(ctx context.Context, key string, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// KVConfig key-value backend options
type KVConfig struct {
	Driver   string // redis or memory
	Host     string
	Port     int
	Password string
	DB       int
}

// GetKeyValueDB create a KeyValueDB from given config
func GetKeyValueDB(cfg *KVConfig) (KeyValueDB, error) {
	switch cfg.Driver {
	case "redis", "":
		return NewRedisClient(cfg.Host, cfg.Port, cfg.Password, cfg.DB), nil
	case "memory":
		return NewMemoryKV(), nil
	}
	return nil, errors.New("unsupported kv driver: " + cfg.Driver)
}
