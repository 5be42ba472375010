package cli

import (
	"database/sql"
	"fmt"

	"aquascape/internal/config"
	"aquascape/internal/lock"
	"aquascape/internal/logger"
	"aquascape/internal/repository"
	"aquascape/internal/repository/db"
	"aquascape/internal/service"

	"github.com/go-redis/redis/v8"
)

// app is the wiring shared by the subcommands that touch the store.
type app struct {
	cfg   config.Config
	log   *logger.Logger
	db    *sql.DB
	repos *repository.Repository

	closers []func() error
}

func loadConfig(path string) (config.Config, *logger.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format), nil
}

// openApp loads the config and opens the store.
func openApp(path string) (*app, error) {
	cfg, log, err := loadConfig(path)
	if err != nil {
		return nil, err
	}

	conn, dialect, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	log.Infow("store_opened", "driver", cfg.DB.Driver)

	a := &app{
		cfg:   cfg,
		log:   log,
		db:    conn,
		repos: repository.NewRepository(conn, dialect),
	}
	a.closers = append(a.closers, conn.Close)
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warnw("close_failed", "err", err)
		}
	}
	_ = a.log.Sync()
}

func openStore(cfg config.Config) (*sql.DB, repository.Dialect, error) {
	pool := db.PoolOptions{MaxOpenConns: cfg.DB.MaxOpenConns, MaxIdleConns: cfg.DB.MaxIdleConns}
	switch cfg.DB.Driver {
	case db.DriverPostgres:
		conn, err := db.Open(db.DriverPostgres, cfg.DB.DSN, pool)
		return conn, repository.DialectPostgres, err
	default:
		conn, err := db.Open(db.DriverSQLite, cfg.DB.Path, pool)
		return conn, repository.DialectSQLite, err
	}
}

// buildLocker picks the scheduler lock backend. "auto" uses the postgres
// advisory lock when the store is postgres, redis when an address is set
// and an in-process mutex otherwise.
func (a *app) buildLocker() (lock.Locker, error) {
	backend := a.cfg.Scheduler.Lock.Backend
	if backend == config.LockAuto {
		switch {
		case a.cfg.DB.Driver == db.DriverPostgres:
			backend = config.LockPostgres
		case a.cfg.Redis.Addr != "":
			backend = config.LockRedis
		default:
			backend = config.LockLocal
		}
	}

	var l lock.Locker
	switch backend {
	case config.LockPostgres:
		l = lock.NewPostgres(a.db)
	case config.LockRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		a.closers = append(a.closers, client.Close)
		l = lock.NewRedis(client, a.cfg.Scheduler.Lock.TTL)
	case config.LockLocal:
		l = lock.NewLocal()
	case config.LockNone:
		l = lock.Noop{}
	default:
		return nil, fmt.Errorf("unsupported lock backend %q", backend)
	}
	a.log.Infow("scheduler_lock", "backend", backend, "lock_id", a.cfg.Scheduler.Lock.ID)
	return l, nil
}

func (a *app) services() (*service.Service, error) {
	locker, err := a.buildLocker()
	if err != nil {
		return nil, err
	}
	if a.cfg.DefaultSigningKey() {
		a.log.Warnw("auth_default_signing_key", "hint", "set auth.signing_key or AQUASCAPE_AUTH_SIGNING_KEY")
	}

	return service.NewService(a.repos, service.Options{
		Auth: service.AuthConfig{
			Keys:     service.NewKeyCache(service.StaticKeys(a.cfg.Auth.SigningKey), a.cfg.Auth.KeyCacheTTL),
			TokenTTL: a.cfg.Auth.TokenTTL,
		},
		Scheduler: service.SchedulerConfig{
			Locker:         locker,
			LockID:         a.cfg.Scheduler.Lock.ID,
			StorageTimeout: a.cfg.Storage.Timeout,
			Location:       a.cfg.Location(),
		},
		Log: a.log,
	}), nil
}
