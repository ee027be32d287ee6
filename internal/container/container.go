// Package container builds the application's dependencies once at startup
// and hands them to the router as one explicit bundle.
package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-accounts/config"
	"github.com/oksasatya/go-user-accounts/internal/application"
	"github.com/oksasatya/go-user-accounts/internal/domain/repository"
	"github.com/oksasatya/go-user-accounts/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-user-accounts/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-accounts/internal/infrastructure/search"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
	"github.com/oksasatya/go-user-accounts/pkg/mailer"
)

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Pool    *pgxpool.Pool // nil with the memory store
	Redis   *redis.Client // nil disables rate limiting
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
	Codes   repository.EmailCodeRepository
	Mailer  application.Mailer
	Service *application.Service
	Checks  map[string]Check

	closers []func()
}

// New connects every configured backend and assembles the account service.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if !cfg.IsDevelopment() && (cfg.TokenSecret == "" || cfg.TokenSecret == config.DefaultTokenSecret) {
		return nil, fmt.Errorf("TOKEN_SECRET must be set when APP_ENV=%s", cfg.Env)
	}

	c := &Container{Config: cfg, Logger: logger, Checks: map[string]Check{}}
	ok := false
	defer func() {
		if !ok {
			c.Close()
		}
	}()

	if err := c.initStore(ctx); err != nil {
		return nil, err
	}

	c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	c.onClose(func() { _ = c.Redis.Close() })
	c.Checks["redis"] = func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() }

	mail, err := c.initMailer()
	if err != nil {
		return nil, err
	}
	c.Mailer = mail
	c.JWT = helpers.NewJWTManager(cfg.TokenSecret, cfg.TokenTTL)
	c.Service = c.newService()

	if err := c.initSearch(ctx); err != nil {
		return nil, err
	}
	if err := c.initStorage(ctx); err != nil {
		return nil, err
	}

	ok = true
	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	cfg := c.Config
	switch cfg.StoreDriver {
	case "memory":
		users := memory.NewUserRepository()
		c.Users = users
		c.Codes = memory.NewEmailCodeRepository(users)
		c.Logger.Warn("using in-memory store; data is lost on restart")
		return nil
	case "postgres", "":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	c.Pool = pool
	c.onClose(pool.Close)

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, c.Logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	c.Users = pginfra.NewUserRepository(pool)
	c.Codes = pginfra.NewEmailCodeRepository(pool)
	c.Checks["postgres"] = pool.Ping
	return nil
}

func (c *Container) initMailer() (application.Mailer, error) {
	cfg := c.Config
	if !cfg.MailSendEnabled {
		c.Logger.Info("MAIL_SEND_ENABLED=false; emails are logged, not sent")
		return mailer.NewLogMailer(c.Logger), nil
	}

	switch cfg.MailTransport {
	case "direct":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			return nil, fmt.Errorf("mailgun not configured")
		}
		return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender), nil
	case "queue", "":
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		c.onClose(pub.Close)
		return mailer.NewQueueMailer(pub), nil
	default:
		return nil, fmt.Errorf("unknown MAIL_TRANSPORT %q", cfg.MailTransport)
	}
}

func (c *Container) newService() *application.Service {
	svc := application.NewService(c.Users, c.Codes, c.Mailer, c.JWT, c.Logger)
	svc.HashCost = c.Config.BcryptCost
	svc.AppName = c.Config.AppName
	svc.FrontBaseURL = c.Config.FrontBaseURL
	return svc
}

func (c *Container) initSearch(ctx context.Context) error {
	cfg := c.Config
	addrs := cfg.ESAddrs()
	if len(addrs) == 0 {
		return nil
	}
	es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		return fmt.Errorf("elasticsearch client: %w", err)
	}
	idx := search.NewUserIndex(es, cfg.ESUsersIndex)
	if err := idx.EnsureIndex(ctx); err != nil {
		c.Logger.WithError(err).Warn("es index not ensured; search may fail until the cluster is up")
	}
	c.Service.Index = idx
	c.Checks["elasticsearch"] = func(ctx context.Context) error { return helpers.PingES(ctx, es) }
	return nil
}

func (c *Container) initStorage(ctx context.Context) error {
	cfg := c.Config
	if cfg.GCSBucket == "" {
		return nil
	}
	client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		return fmt.Errorf("gcs client: %w", err)
	}
	c.onClose(func() { _ = client.Close() })
	c.Service.Storage = helpers.NewGCSStorage(client, cfg.GCSBucket)
	return nil
}

func (c *Container) onClose(fn func()) {
	c.closers = append(c.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
