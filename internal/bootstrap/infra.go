package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Domenick1991/hackportal/config"
	"github.com/Domenick1991/hackportal/internal/cache"
	"github.com/Domenick1991/hackportal/internal/kafka"
	"github.com/Domenick1991/hackportal/internal/repository"
	"github.com/Domenick1991/hackportal/internal/service/hacks"
	"github.com/Domenick1991/hackportal/internal/service/transportation"
)

// Infra holds the connections shared by the binaries. Redis and Producer are
// nil when their config section is empty.
type Infra struct {
	Pool     *pgxpool.Pool
	Redis    *redis.Client
	Producer *kafka.Producer
}

// Connect opens postgres, applies migrations and sets up the optional redis
// client and kafka producer.
func Connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := repository.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	infra := &Infra{Pool: pool}

	if cfg.Redis.Addr != "" {
		infra.Redis = cache.NewClient(cfg.Redis)
		if err := infra.Redis.Ping(ctx).Err(); err != nil {
			infra.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
	} else {
		logger.Warn("Redis not configured, hack list cache disabled and imports lock in-process only")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		infra.Producer = kafka.NewProducer(cfg.Kafka.Brokers, logger)
	}

	return infra, nil
}

func (i *Infra) Close() {
	if i.Producer != nil {
		i.Producer.Close()
	}
	if i.Redis != nil {
		i.Redis.Close()
	}
	if i.Pool != nil {
		i.Pool.Close()
	}
}

func (i *Infra) HackService(cfg *config.Config, logger *zap.Logger) *hacks.HackService {
	var opts []hacks.HackServiceOption
	if i.Redis != nil {
		opts = append(opts,
			hacks.WithCache(cache.NewRedisCache(i.Redis, cfg.Hacks.ListCacheTTL())),
			hacks.WithLocker(cache.NewRedisLock(i.Redis, cache.LockOptions{
				Expiry: cfg.Hacks.ImportLockExpiry(),
				Tries:  cfg.Hacks.ImportLockTries,
			}, logger)),
		)
	}
	if i.Producer != nil {
		opts = append(opts, hacks.WithEvents(i.Producer, cfg.Kafka.EventsTopic))
	}

	return hacks.NewHackService(
		repository.NewHackRepository(i.Pool),
		hacks.NewCredentialSet(cfg.Admin.Credentials),
		logger,
		opts...,
	)
}

func (i *Infra) TransportationService(cfg *config.Config, logger *zap.Logger) *transportation.TransportationService {
	var opts []transportation.TransportationServiceOption
	if i.Producer != nil {
		opts = append(opts, transportation.WithEvents(i.Producer, cfg.Kafka.EventsTopic))
	}

	return transportation.NewTransportationService(
		repository.NewParticipantRepository(i.Pool),
		cfg.Transportation.RouteTable(),
		logger,
		opts...,
	)
}
