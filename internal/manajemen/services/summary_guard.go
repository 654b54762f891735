package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/c14220110/poliklinik-dashboard/internal/manajemen/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/c14220110/poliklinik-dashboard/pkg/storage/cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// SummaryProvider is what the guard wraps; DashboardService satisfies it.
type SummaryProvider interface {
	GetFinancialSummary(ctx context.Context, anchor caldate.Date) (models.FinancialSummary, error)
}

// SummaryGuard is the call-site fetch-once guard: concurrent requests for the
// same anchor share one aggregation, and the result is cached for ttl.
//
// Each key carries a generation that Refresh bumps. A flight only writes the
// cache if the generation it started under is still current, so an
// aggregation overtaken by a refresh cannot overwrite the newer summary.
type SummaryGuard struct {
	provider SummaryProvider
	kv       cache.KVStore
	ttl      time.Duration
	group    singleflight.Group
	log      zerolog.Logger

	mu  sync.Mutex
	gen map[string]uint64
}

func NewSummaryGuard(provider SummaryProvider, kv cache.KVStore, ttl time.Duration, log zerolog.Logger) *SummaryGuard {
	return &SummaryGuard{provider: provider, kv: kv, ttl: ttl, log: log, gen: make(map[string]uint64)}
}

func summaryKey(anchor caldate.Date) string {
	return "dashboard:financial-summary:" + anchor.String()
}

// Get serves from cache when possible, otherwise joins or starts one
// aggregation for anchor.
func (g *SummaryGuard) Get(ctx context.Context, anchor caldate.Date) (models.FinancialSummary, error) {
	key := summaryKey(anchor)
	if sum, ok := g.cached(ctx, key); ok {
		return sum, nil
	}
	return g.load(ctx, anchor, key)
}

// Refresh drops the cached value and aggregates again.
func (g *SummaryGuard) Refresh(ctx context.Context, anchor caldate.Date) (models.FinancialSummary, error) {
	key := summaryKey(anchor)
	g.mu.Lock()
	g.gen[key]++
	g.mu.Unlock()
	if err := g.kv.Del(ctx, key); err != nil {
		g.log.Warn().Err(err).Str("key", key).Msg("cache delete failed")
	}
	g.group.Forget(key)
	return g.load(ctx, anchor, key)
}

func (g *SummaryGuard) cached(ctx context.Context, key string) (models.FinancialSummary, bool) {
	raw, err := g.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			g.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return models.FinancialSummary{}, false
	}
	var sum models.FinancialSummary
	if err := json.Unmarshal([]byte(raw), &sum); err != nil {
		g.log.Warn().Err(err).Str("key", key).Msg("cached summary unreadable")
		return models.FinancialSummary{}, false
	}
	return sum, true
}

func (g *SummaryGuard) load(ctx context.Context, anchor caldate.Date, key string) (models.FinancialSummary, error) {
	// the shared call must outlive whichever request happened to start it
	shared := context.WithoutCancel(ctx)
	v, err, _ := g.group.Do(key, func() (interface{}, error) {
		g.mu.Lock()
		startGen := g.gen[key]
		g.mu.Unlock()

		sum, err := g.provider.GetFinancialSummary(shared, anchor)
		if err != nil {
			return nil, err
		}
		g.store(shared, key, startGen, sum)
		return sum, nil
	})
	if err != nil {
		return models.FinancialSummary{}, err
	}
	return v.(models.FinancialSummary), nil
}

// store writes sum unless a Refresh happened since the flight started. The
// lock is held across Set so a Refresh cannot slip between check and write.
func (g *SummaryGuard) store(ctx context.Context, key string, startGen uint64, sum models.FinancialSummary) {
	b, err := json.Marshal(sum)
	if err != nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gen[key] != startGen {
		g.log.Debug().Str("key", key).Msg("stale summary not cached")
		return
	}
	if err := g.kv.Set(ctx, key, string(b), g.ttl); err != nil {
		g.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
