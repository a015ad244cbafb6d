// Package rediscache caches wallet reads in Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/monetra/internal/core/domain"
	portsrepo "github.com/SscSPs/monetra/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "monetra:wallet:"

// tombstone marks a recently invalidated wallet. Fills are refused until it expires.
const (
	tombstone    = "-"
	tombstoneTTL = 10 * time.Second
)

// Commands is the part of redis.Cmdable the cache needs.
type Commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// WalletCache stores wallets as JSON under monetra:wallet:<id>.
type WalletCache struct {
	client Commands
	ttl    time.Duration
}

var _ portsrepo.WalletCache = (*WalletCache)(nil)

// NewWalletCache creates a cache whose entries expire after ttl.
func NewWalletCache(client Commands, ttl time.Duration) *WalletCache {
	return &WalletCache{client: client, ttl: ttl}
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func walletKey(walletID string) string {
	return keyPrefix + walletID
}

func (c *WalletCache) GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error) {
	val, err := c.client.Get(ctx, walletKey(walletID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached wallet %s: %w", walletID, err)
	}
	if string(val) == tombstone {
		return nil, nil
	}

	var wallet domain.Wallet
	if err := json.Unmarshal(val, &wallet); err != nil {
		return nil, fmt.Errorf("failed to decode cached wallet %s: %w", walletID, err)
	}
	return &wallet, nil
}

func (c *WalletCache) SetWallet(ctx context.Context, wallet domain.Wallet) error {
	data, err := json.Marshal(wallet)
	if err != nil {
		return fmt.Errorf("failed to encode wallet %s: %w", wallet.WalletID, err)
	}
	// Never overwrites: a tombstone or an earlier fill wins.
	return c.client.SetNX(ctx, walletKey(wallet.WalletID), data, c.ttl).Err()
}

func (c *WalletCache) InvalidateWallets(ctx context.Context, walletIDs ...string) error {
	var errs []error
	for _, id := range walletIDs {
		if err := c.client.Set(ctx, walletKey(id), tombstone, tombstoneTTL).Err(); err != nil {
			errs = append(errs, fmt.Errorf("failed to invalidate cached wallet %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
