package stores

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"garupa/db"
	"garupa/models"
	"garupa/utils"
)

const (
	RulesCacheKeyPrefix   = "rules:cache:"
	PricingCacheKeyPrefix = "pricing:cache:"
	ConfigUpdateChannel   = "config_updates"
)

// CachedRuleStore puts a short-lived Redis cache in front of RuleStore.
// Reads fail open: any Redis problem falls back to Postgres, so the
// cache can never make a region look unavailable on its own. Admin
// mutations publish ConfigUpdateEvent which both drops the affected keys
// and feeds the realtime socket gateway.
type CachedRuleStore struct {
	store *RuleStore
	ttl   time.Duration
}

func NewCachedRuleStore(store *RuleStore, ttl time.Duration) *CachedRuleStore {
	return &CachedRuleStore{store: store, ttl: ttl}
}

func rulesKey(serviceType, region string) string {
	return RulesCacheKeyPrefix + serviceType + ":" + region
}

func pricingKey(serviceType string) string {
	return PricingCacheKeyPrefix + serviceType
}

func (c *CachedRuleStore) ActiveRules(ctx context.Context, serviceType, region string) ([]models.AvailabilityRule, error) {
	key := rulesKey(serviceType, region)
	if db.RedisClient != nil {
		if val, err := db.RedisClient.Get(ctx, key).Result(); err == nil {
			var rules []models.AvailabilityRule
			if json.Unmarshal([]byte(val), &rules) == nil {
				return rules, nil
			}
		}
	}

	rules, err := c.store.ActiveRules(ctx, serviceType, region)
	if err != nil {
		return nil, err
	}

	if db.RedisClient != nil {
		if val, err := json.Marshal(rules); err == nil {
			db.RedisClient.Set(ctx, key, val, c.ttl)
		}
	}
	return rules, nil
}

func (c *CachedRuleStore) Settings(ctx context.Context, serviceType string) (models.PricingSettings, error) {
	key := pricingKey(serviceType)
	if db.RedisClient != nil {
		if val, err := db.RedisClient.Get(ctx, key).Result(); err == nil {
			var p models.PricingSettings
			if json.Unmarshal([]byte(val), &p) == nil {
				return p, nil
			}
		}
	}

	p, err := c.store.Settings(ctx, serviceType)
	if err != nil {
		return models.PricingSettings{}, err
	}

	if db.RedisClient != nil {
		if val, err := json.Marshal(p); err == nil {
			db.RedisClient.Set(ctx, key, val, c.ttl)
		}
	}
	return p, nil
}

// ConfigUpdateEvent describes an administrative change to availability
// rules or pricing settings. Region is empty for pricing changes, which
// are region-independent.
type ConfigUpdateEvent struct {
	Entity      string `json:"entity"` // "rule" or "pricing"
	ServiceType string `json:"serviceType"`
	Region      string `json:"region,omitempty"`
	Action      string `json:"action"` // "create", "update", "delete"
}

// PublishConfigUpdate drops the cache keys touched by the event and
// notifies subscribers (socket gateway, other instances).
func PublishConfigUpdate(ctx context.Context, event ConfigUpdateEvent) error {
	if db.RedisClient == nil {
		return nil
	}

	switch event.Entity {
	case "rule":
		db.RedisClient.Del(ctx, rulesKey(event.ServiceType, event.Region))
	case "pricing":
		db.RedisClient.Del(ctx, pricingKey(event.ServiceType))
	}

	val, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := db.RedisClient.Publish(ctx, ConfigUpdateChannel, val).Err(); err != nil {
		utils.Logger.Error("Failed to publish config update", zap.Error(err))
		return err
	}
	return nil
}

// SubscribeConfigUpdates returns the pub/sub feed of config changes.
func SubscribeConfigUpdates(ctx context.Context) *redis.PubSub {
	return db.RedisClient.Subscribe(ctx, ConfigUpdateChannel)
}
