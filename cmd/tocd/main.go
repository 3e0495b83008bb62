package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/s4084228/toc-backend/internal/application/auth"
	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/application/project"
	"github.com/s4084228/toc-backend/internal/application/retention"
	"github.com/s4084228/toc-backend/internal/application/subscription"
	"github.com/s4084228/toc-backend/internal/application/user"
	"github.com/s4084228/toc-backend/internal/config"
	infraauth "github.com/s4084228/toc-backend/internal/infrastructure/auth"
	httprouter "github.com/s4084228/toc-backend/internal/infrastructure/http"
	"github.com/s4084228/toc-backend/internal/infrastructure/http/handlers"
	"github.com/s4084228/toc-backend/internal/infrastructure/http/middleware"
	"github.com/s4084228/toc-backend/internal/infrastructure/lockout"
	"github.com/s4084228/toc-backend/internal/infrastructure/persistence/mongodb"
	"github.com/s4084228/toc-backend/internal/infrastructure/persistence/postgres"
	"github.com/s4084228/toc-backend/internal/infrastructure/queue"
	"github.com/s4084228/toc-backend/internal/infrastructure/security"
	"github.com/s4084228/toc-backend/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to postgres")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping postgres")
	}

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongodb")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, mongoClient, redisClient)

	userRepo := postgres.NewUserRepository(pool)
	tokenStore := postgres.NewTokenStore(pool)
	passwordResetStore := postgres.NewPasswordResetRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	projectStore := mongodb.NewProjectStore(mongoClient, cfg.Mongo.Database, "projects")

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewNoopEnqueuer()
	}

	var emitter ports.WebhookEmitter
	if cfg.WebhookURL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.WebhookURL)
	} else {
		emitter = webhook.NewNoopEmitter()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	pemBytes, err := cfg.LoadJWTPrivateKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	privateKey, err := infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT private key")
	}
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	lockoutStore := lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSeconds)

	registerUC := auth.NewRegisterUser(userRepo, hasher, taskEnqueuer)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, tokenStore, lockoutStore, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	refreshUC := auth.NewRefresh(userRepo, issuer, tokenStore, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	logoutUC := auth.NewLogout(tokenStore)
	resetTTL := time.Duration(cfg.PasswordReset.ExpirySecs) * time.Second
	forgotPasswordUC := auth.NewForgotPassword(passwordResetStore, userRepo, taskEnqueuer, resetTTL, log)
	resetPasswordUC := auth.NewResetPassword(passwordResetStore, userRepo, hasher)

	createProjectUC := project.NewCreateProject(projectStore)
	updateProjectUC := project.NewUpdateProject(projectStore)
	getProjectUC := project.NewGetProject(projectStore)
	listProjectsUC := project.NewListProjects(projectStore)
	deleteProjectUC := project.NewDeleteProject(projectStore)

	getProfileUC := user.NewGetProfile(userRepo)
	updateProfileUC := user.NewUpdateProfile(userRepo)

	subscribeUC := subscription.NewSubscribe(subscriptionRepo)
	getSubscriptionUC := subscription.NewGetSubscription(subscriptionRepo)
	cancelSubscriptionUC := subscription.NewCancelSubscription(subscriptionRepo)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	userLimit, err := middleware.NewUserRateLimiter(cfg.RateLimit.RatePerUser)
	if err != nil {
		log.Fatal().Err(err).Msg("create user rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, refreshUC, logoutUC, forgotPasswordUC, resetPasswordUC, emitter, log)
	projectsHandler := handlers.NewProjectsHandler(createProjectUC, updateProjectUC, getProjectUC, listProjectsUC, deleteProjectUC, emitter, log)
	usersHandler := handlers.NewUsersHandler(getProfileUC, updateProfileUC, log)
	subscriptionsHandler := handlers.NewSubscriptionsHandler(subscribeUC, getSubscriptionUC, cancelSubscriptionUC, log)
	requireJWT := middleware.NewAuthValidator(issuer).Handler
	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:          authHandler,
		HealthHandler:        healthHandler,
		ProjectsHandler:      projectsHandler,
		UsersHandler:         usersHandler,
		SubscriptionsHandler: subscriptionsHandler,
		RequireJWT:           requireJWT,
		Log:                  log,
		Secure:               secureMiddleware,
		CORS:                 corsMiddleware,
		IPRateLimit:          ipLimit,
		UserRateLimit:        userLimit,
		APIVersion:           "v1",
		Metrics:              true,
	})

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if cfg.Retention.SweepIntervalSecs > 0 {
		interval := time.Duration(cfg.Retention.SweepIntervalSecs) * time.Second
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-sweepCtx.Done():
					return
				case <-ticker.C:
					purged, err := retention.RunPurgeExpiredResetCodes(sweepCtx, passwordResetStore)
					if err != nil {
						log.Warn().Err(err).Msg("reset code sweep failed")
					} else if purged > 0 {
						log.Info().Int64("purged", purged).Msg("expired reset codes purged")
					}
				}
			}
		}()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	stopSweep()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
