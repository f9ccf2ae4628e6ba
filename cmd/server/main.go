// @title         jobboard API
// @version       1.0
// @description   Доска вакансий: соискатели откликаются на вакансии, рекрутеры публикуют вакансии и принимают решения по откликам.
// @BasePath      /api
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	swagger "github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	_ "github.com/artem13815/jobboard/docs"

	// internal imports
	"github.com/artem13815/jobboard/api/http"
	"github.com/artem13815/jobboard/api/http/handlers"
	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/config"
	"github.com/artem13815/jobboard/pkg/events"
	"github.com/artem13815/jobboard/pkg/health"
	"github.com/artem13815/jobboard/pkg/health/checkers"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/logger"
	"github.com/artem13815/jobboard/pkg/metrics"
	"github.com/artem13815/jobboard/pkg/notification"
	"github.com/artem13815/jobboard/pkg/repository/memory"
	pgrepo "github.com/artem13815/jobboard/pkg/repository/postgres"
	"github.com/artem13815/jobboard/pkg/repository/rediscache"
	"github.com/artem13815/jobboard/pkg/security/jwt"
	"github.com/artem13815/jobboard/pkg/storage/postgres"
	"github.com/artem13815/jobboard/pkg/storage/redis"
)

type repositories struct {
	users         auth.UserRepository
	jobs          job.Repository
	applications  application.Repository
	notifications notification.Repository
}

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		repos    repositories
		checks   []health.Checker
		shutdown []func()
	)
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		log.Warn("STORAGE_DRIVER=memory: data is kept in process memory and lost on restart")
		store := memory.NewStore()
		repos = repositories{store.Users(), store.Jobs(), store.Applications(), store.Notifications()}
	default:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Fatalf("postgres connect: %v", err)
		}
		shutdown = append(shutdown, pool.Close)
		schema, err := postgres.NewSchema(pool)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Fatalf("migrations: %v", err)
		}
		if cfg.MigrateOnStart {
			if err := schema.Up(ctx); err != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Fatalf("migrate: %v", err)
			}
		}
		repos = repositories{
			users:         pgrepo.NewUserRepository(pool),
			jobs:          pgrepo.NewJobRepository(pool),
			applications:  pgrepo.NewApplicationRepository(pool),
			notifications: pgrepo.NewNotificationRepository(pool),
		}
		checks = append(checks, checkers.NewPostgresChecker(pool, schema))
	}

	bus := events.NewBus()
	if err := events.SubscribeObservers(bus); err != nil {
		log.Fatalf("subscribe observers: %v", err)
	}

	// Job list cache is optional: without REDIS_URL reads go straight to the store.
	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Fatalf("redis connect: %v", err)
		}
		shutdown = append(shutdown, func() { _ = client.Close() })
		cached := rediscache.NewCachedJobs(repos.jobs, client, cfg.JobsCacheTTL)
		if err := cached.Subscribe(bus); err != nil {
			log.Fatalf("subscribe cache: %v", err)
		}
		repos.jobs = cached
		checks = append(checks, checkers.NewRedisChecker(client))
	}

	// Token generator
	tokens := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	app := http.NewApp(http.Handlers{
		Auth:          handlers.NewAuthHandler(auth.NewAuthService(repos.users, tokens)),
		Jobs:          handlers.NewJobHandler(job.NewService(repos.jobs, bus)),
		Applications:  handlers.NewApplicationHandler(application.NewService(repos.applications, repos.jobs, repos.users, bus)),
		Notifications: handlers.NewNotificationHandler(notification.NewService(repos.notifications)),
		Health:        handlers.NewHealthHandler(health.NewService(checks...)),
	}, jwt.NewAuthMiddleware(tokens), cfg.AllowedOrigins())

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	// Start server
	log.Infof("HTTP server listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Errorf("server stopped: %v", err)
	}
	for i := len(shutdown) - 1; i >= 0; i-- {
		shutdown[i]()
	}
}
