package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tradecheck/tradecheck/internal/adapters/outbound/cache"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/config"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/gitinfo"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/history"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/httpapi"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/logging"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/marketcheck"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/mysql"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/nhtsa"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/photos"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/settings"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/vision"
	"github.com/tradecheck/tradecheck/internal/application"
	"github.com/tradecheck/tradecheck/internal/domain"
)

// runtime holds the settings, logger and open clients of one command run.
type runtime struct {
	settings *settings.Settings
	logger   *zap.Logger
	closers  []func() error
}

func (o *rootOptions) load() (*runtime, error) {
	s, err := settings.Load(o.settingsPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		s.LogLevel = o.logLevel
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	logger, err := logging.New(s.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return &runtime{settings: s, logger: logger}, nil
}

// Close releases clients in reverse order of opening.
func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			r.logger.Warn("closing client", zap.Error(err))
		}
	}
	_ = r.logger.Sync()
}

func (r *runtime) fileStore() *history.FileStore {
	return history.New(r.settings.StoreDir)
}

// submissionService wires the live adapters. Redis and MySQL are used only
// when configured; the market lookup only when an API key is present.
func (r *runtime) submissionService(ctx context.Context, profileDir string) (*application.SubmissionService, error) {
	s := r.settings
	if err := s.RequireGemini(); err != nil {
		return nil, err
	}

	profile, _, err := application.NewScoreService(config.New()).LoadProfile(profileDir)
	if err != nil {
		return nil, err
	}

	interpreter, err := vision.NewGemini(ctx, vision.Config{
		APIKey:     s.Gemini.APIKey,
		Model:      s.Gemini.Model,
		Endpoint:   s.Gemini.Endpoint,
		APIVersion: s.Gemini.APIVersion,
		Timeout:    s.Gemini.Timeout,
		RPS:        s.Gemini.RPS,
	}, r.logger)
	if err != nil {
		return nil, err
	}

	var decoder domain.VINDecoder = nhtsa.New(s.NHTSA.Endpoint, s.NHTSA.Timeout)
	var market domain.MarketLookup
	if s.MarketEnabled() {
		market = marketcheck.New(s.Market.Endpoint, s.Market.APIKey, s.Market.Rows, s.Market.Timeout)
	}

	if s.RedisEnabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     s.Redis.Addr,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
		})
		r.closers = append(r.closers, client.Close)
		store := cache.NewRedisStore(client)
		decoder = cache.NewCachedDecoder(decoder, store, s.Redis.VINTTL, r.logger)
		if market != nil {
			market = cache.NewCachedMarket(market, store, s.Redis.CompsTTL, r.logger)
		}
	}

	files := r.fileStore()
	var reports domain.ReportStore = files
	if s.MySQLEnabled() {
		db, err := mysql.Open(s.MySQL.DSN)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, db.Close)
		if err := db.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrating mysql: %w", err)
		}
		reports = db
	}

	return application.NewSubmissionService(application.SubmissionDeps{
		Photos:   photos.New(s.Photos.BaseDir, s.Photos.Timeout),
		Decoder:  decoder,
		Market:   market,
		Assessor: application.NewAssessService(interpreter, profile, r.logger),
		Store:    reports,
		History:  files,
		Retry: application.RetryOptions{
			Attempts:    s.Retry.Attempts,
			InitialWait: s.Retry.InitialWait,
			Factor:      2,
			MaxWait:     s.Retry.MaxWait,
			ShouldRetry: httpapi.Retryable,
		},
		Logger:          r.logger,
		ProfileRevision: gitinfo.New().ProfileRevision(profileDir),
	}), nil
}
