package commands

import (
	"context"
	"fmt"

	"github.com/wonny/aurum/internal/external/fred"
	"github.com/wonny/aurum/internal/external/kgx"
	"github.com/wonny/aurum/internal/external/yahoo"
	"github.com/wonny/aurum/internal/pipeline"
	"github.com/wonny/aurum/internal/store"
	"github.com/wonny/aurum/pkg/config"
	"github.com/wonny/aurum/pkg/httputil"
	"github.com/wonny/aurum/pkg/logger"
	"github.com/wonny/aurum/pkg/redis"
)

// deps bundles the shared dependency graph of every subcommand:
// config, logger, persistence gateway, repositories, Redis.
type deps struct {
	cfg   *config.Config
	log   *logger.Logger
	gw    *store.Gateway
	redis *redis.Client

	raw      *store.MacroRawRepository
	domestic *store.DomesticRepository
	derived  *store.DerivedRepository
	premium  *store.PremiumRepository
}

// initDeps loads config and connects the persistence gateway.
// The fallback state is reported once here so every command surfaces it.
func initDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	gw, err := store.Connect(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect persistence: %w", err)
	}
	if gw.InFallback() {
		PrintWarning("Primary database unreachable - running on the embedded fallback store")
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		gw.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &deps{
		cfg:      cfg,
		log:      log,
		gw:       gw,
		redis:    redisClient,
		raw:      store.NewMacroRawRepository(gw),
		domestic: store.NewDomesticRepository(gw),
		derived:  store.NewDerivedRepository(gw),
		premium:  store.NewPremiumRepository(gw),
	}, nil
}

// Close releases the gateway and Redis connections
func (d *deps) Close() {
	d.gw.Close()
	d.redis.Close()
}

// newIngestor wires the upstream collectors into an ingestor. The quote
// and macro clients share the retrying HTTP client; Redis-side rate
// limits apply when Redis is enabled.
func (d *deps) newIngestor() *pipeline.Ingestor {
	limiter := redis.NewRateLimiter(d.redis, "aurum")

	quoteHTTP := httputil.New(d.log).WithRateLimiter(limiter, redis.QuoteRateLimit)
	macroHTTP := httputil.New(d.log).WithRateLimiter(limiter, redis.FREDRateLimit)
	kgxHTTP := httputil.New(d.log).WithRateLimiter(limiter, redis.KGXRateLimit)

	return pipeline.NewIngestor(d.raw, d.domestic, d.log).
		AddSource(yahoo.NewClient(quoteHTTP, d.cfg.Quote.BaseURL, d.log)).
		AddSource(fred.NewClient(macroHTTP, d.cfg.FRED.BaseURL, d.cfg.FRED.APIKey, d.log)).
		AddDomesticSource(kgx.NewClient(kgxHTTP, d.cfg.KGX, d.log))
}
