package memory

import (
	"time"

	"emoticore-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const activePlansKey = "plans:active"

// PlanCache keeps the public plan catalogue in process memory.
type PlanCache struct {
	cache *cache.Cache
}

func NewPlanCache(ttl time.Duration) *PlanCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PlanCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *PlanCache) SaveActive(plans []*entity.SubscriptionPlan) {
	r.cache.Set(activePlansKey, plans, cache.DefaultExpiration)
}

func (r *PlanCache) GetActive() ([]*entity.SubscriptionPlan, bool) {
	if x, found := r.cache.Get(activePlansKey); found {
		return x.([]*entity.SubscriptionPlan), true
	}
	return nil, false
}

func (r *PlanCache) Invalidate() {
	r.cache.Delete(activePlansKey)
}
