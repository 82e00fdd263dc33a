// Package redis caches catalog reads. Orders and notifications are never cached.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"ordertrack/internal/core/domain/model/catalog"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/ports"
)

var _ ports.CatalogReader = (*CatalogCache)(nil)

const (
	CatalogKey        = "ordertrack:catalog:v1"
	DefaultCatalogTTL = 5 * time.Minute
)

// CatalogCache is a read-through cache in front of a CatalogReader. A redis failure falls
// back to the source; it is never returned to the caller.
type CatalogCache struct {
	source ports.CatalogReader
	client goredis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCatalogCache(source ports.CatalogReader, client goredis.Cmdable, ttl time.Duration, logger *slog.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{
		source: source,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "catalog_cache"),
	}
}

func (c *CatalogCache) GetCatalogItems(ctx context.Context) ([]*catalog.Item, error) {
	raw, err := c.client.Get(ctx, CatalogKey).Bytes()
	switch {
	case err == nil:
		items, decodeErr := decode(raw)
		if decodeErr == nil {
			return items, nil
		}
		c.logger.WarnContext(ctx, "cached catalog is unreadable", "error", decodeErr)
	case !errors.Is(err, goredis.Nil):
		c.logger.WarnContext(ctx, "catalog cache read failed", "error", err)
	}

	items, err := c.source.GetCatalogItems(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, encodeErr := encode(items); encodeErr == nil {
		if setErr := c.client.Set(ctx, CatalogKey, encoded, c.ttl).Err(); setErr != nil {
			c.logger.WarnContext(ctx, "catalog cache write failed", "error", setErr)
		}
	}
	return items, nil
}

// Invalidate drops the cached catalog.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, CatalogKey).Err()
}

type cachedTier struct {
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

type cachedItem struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	BasePrice          decimal.Decimal `json:"base_price"`
	Active             bool            `json:"active"`
	QuantitySelectable bool            `json:"quantity_selectable"`
	Tiers              []cachedTier    `json:"tiers,omitempty"`
}

func encode(items []*catalog.Item) ([]byte, error) {
	cached := make([]cachedItem, 0, len(items))
	for _, item := range items {
		c := cachedItem{
			ID:                 item.ID(),
			Name:               item.Name(),
			BasePrice:          item.BasePrice().Decimal(),
			Active:             item.IsActive(),
			QuantitySelectable: item.IsQuantitySelectable(),
		}
		for _, t := range item.Tiers() {
			c.Tiers = append(c.Tiers, cachedTier{Label: t.Label, Price: t.Price.Decimal()})
		}
		cached = append(cached, c)
	}
	return json.Marshal(cached)
}

func decode(raw []byte) ([]*catalog.Item, error) {
	var cached []cachedItem
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, err
	}

	items := make([]*catalog.Item, 0, len(cached))
	for _, c := range cached {
		base, err := kernel.NewMoney(c.BasePrice)
		if err != nil {
			return nil, err
		}

		tiers := make([]catalog.AreaTier, 0, len(c.Tiers))
		for _, t := range c.Tiers {
			price, err := kernel.NewMoney(t.Price)
			if err != nil {
				return nil, err
			}
			tiers = append(tiers, catalog.AreaTier{Label: t.Label, Price: price})
		}

		item, err := catalog.NewItem(catalog.Params{
			ID:                 c.ID,
			Name:               c.Name,
			BasePrice:          base,
			Active:             c.Active,
			QuantitySelectable: c.QuantitySelectable,
			Tiers:              tiers,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
