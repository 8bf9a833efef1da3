package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tradecheck/tradecheck/internal/domain"
)

// CachedDecoder caches decoded VINs under "vin:<VIN>". Cache failures fall
// through to the wrapped decoder.
type CachedDecoder struct {
	next   domain.VINDecoder
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedDecoder(next domain.VINDecoder, store Store, ttl time.Duration, logger *zap.Logger) *CachedDecoder {
	return &CachedDecoder{next: next, store: store, ttl: ttl, logger: logger}
}

func VINKey(vin string) string {
	return "vin:" + strings.ToUpper(strings.TrimSpace(vin))
}

func (c *CachedDecoder) Decode(ctx context.Context, vin string) (*domain.VehicleIdentity, error) {
	key := VINKey(vin)

	var id domain.VehicleIdentity
	hit, err := getJSON(ctx, c.store, key, &id)
	if err != nil {
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return &id, nil
	}

	decoded, err := c.next.Decode(ctx, vin)
	if err != nil {
		return nil, err
	}
	if err := setJSON(ctx, c.store, key, decoded, c.ttl); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return decoded, nil
}

// CachedMarket caches comparables under "comps:<year>:<make>:<model>".
// Subject mileage is not part of the key; comparables do not depend on it.
type CachedMarket struct {
	next   domain.MarketLookup
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedMarket(next domain.MarketLookup, store Store, ttl time.Duration, logger *zap.Logger) *CachedMarket {
	return &CachedMarket{next: next, store: store, ttl: ttl, logger: logger}
}

func CompsKey(q domain.MarketQuery) string {
	return fmt.Sprintf("comps:%d:%s:%s", q.Year,
		strings.ToLower(strings.TrimSpace(q.Make)),
		strings.ToLower(strings.TrimSpace(q.Model)))
}

func (c *CachedMarket) Comparables(ctx context.Context, q domain.MarketQuery) ([]domain.Listing, error) {
	key := CompsKey(q)

	var listings []domain.Listing
	hit, err := getJSON(ctx, c.store, key, &listings)
	if err != nil {
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return listings, nil
	}

	fresh, err := c.next.Comparables(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := setJSON(ctx, c.store, key, fresh, c.ttl); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return fresh, nil
}
