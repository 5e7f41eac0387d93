package auth

import (
	"context"
	"time"

	"github.com/pot-code/skillspark/internal/infrastructure/driver"
)

const blacklistPrefix = "token_blacklist:"

// TokenBlacklist revoked tokens kept in a KeyValueDB until they expire
type TokenBlacklist struct {
	kv driver.KeyValueDB
}

// NewTokenBlacklist .
func NewTokenBlacklist(kv driver.KeyValueDB) *TokenBlacklist {
	return &TokenBlacklist{kv}
}

// Revoke blacklist tokenStr for ttl, tokens that already expired are ignored
func (tb *TokenBlacklist) Revoke(ctx context.Context, tokenStr string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return tb.kv.SetEX(ctx, blacklistPrefix+tokenStr, "1", ttl)
}

// Contains tokenStr has been revoked
func (tb *TokenBlacklist) Contains(ctx context.Context, tokenStr string) (bool, error) {
	return tb.kv.Exists(ctx, blacklistPrefix+tokenStr)
}
