package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/espd/espd-web/backend/go-services/handlers"
	"github.com/espd/espd-web/backend/go-services/internal/cache"
	"github.com/espd/espd-web/backend/go-services/internal/config"
	"github.com/espd/espd-web/backend/go-services/internal/database"
	"github.com/espd/espd-web/backend/go-services/internal/espd/handler"
	"github.com/espd/espd-web/backend/go-services/internal/espd/repository"
	"github.com/espd/espd-web/backend/go-services/internal/espd/service"
	"github.com/espd/espd-web/backend/go-services/internal/export"
	"github.com/espd/espd-web/backend/go-services/internal/oidc"
	"github.com/espd/espd-web/backend/go-services/internal/storage"
	"github.com/espd/espd-web/backend/go-services/internal/tokens"
	"github.com/espd/espd-web/backend/go-services/pkg/logger"
	"github.com/espd/espd-web/backend/go-services/pkg/metrics"
	"github.com/espd/espd-web/backend/go-services/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: keycloak=%v mongo=%v redis=%v minio=%v", cfg.Keycloak.URL != "", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors())

	// Redis backs the shared cache layer and the distributed rate limiter.
	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
		} else {
			logger.Infof("connected to Redis at %s", addr)
		}
	}

	var mongoClient *mongo.Client
	var repo repository.Repository = repository.NewMemoryRepo()
	var exportRecords export.Store = export.NewMemoryStore()
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, time.Second)
		if err != nil {
			logger.Warnf("using in-memory repository: %v", err)
		} else {
			mongoClient = client
			defer func() { _ = client.Disconnect(context.Background()) }()
			db := client.Database(cfg.MongoDB.Database)
			mrepo, err := repository.NewMongoRepo(ctx, db.Collection(cfg.MongoDB.Collection))
			if err != nil {
				logger.Fatalf("failed to prepare document collection: %v", err)
			}
			repo = mrepo
			exportRecords = export.NewMongoStore(db.Collection("exports"))
			logger.Infof("using MongoDB repository %s.%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
		}
	}

	svc := service.New(repo, newCache(cfg, rdb), cfg.Cache.TTL)

	var opts handler.Options
	if verifier := newVerifier(ctx, cfg); verifier != nil {
		opts.Protect = append(opts.Protect, middleware.AuthMiddleware(verifier))
	} else {
		logger.Warnf("no token verifier configured; mutating routes are open")
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			opts.Protect = append(opts.Protect, middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			opts.Protect = append(opts.Protect, middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}
	if cfg.MinIO.Endpoint != "" {
		objects, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("exports disabled: %v", err)
		} else {
			opts.Exporter = export.NewExporter(objects, exportRecords, cfg.MinIO.URLExpiry)
		}
	}

	handler.RegisterRoutes(r, svc, opts)
	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", func(c *gin.Context) {
		deps := gin.H{}
		ready := true
		if cfg.MongoDB.URI != "" {
			ok := mongoClient != nil && mongoClient.Ping(c.Request.Context(), nil) == nil
			deps["mongo"] = ok
			ready = ready && ok
		}
		if rdb != nil {
			ok := rdb.Ping(c.Request.Context()).Err() == nil
			deps["redis"] = ok
			ready = ready && ok
		}
		deps["exports"] = opts.Exporter != nil
		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting espd service on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

func newCache(cfg *config.Config, rdb *redis.Client) cache.Cache {
	if !cfg.Cache.Enabled {
		return cache.Noop{}
	}
	local := cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	if rdb == nil {
		return local
	}
	return cache.NewLayeredCache(local, cache.NewRedisCache(rdb, ""))
}

// newVerifier prefers Keycloak and falls back to the shared HS256 secret.
func newVerifier(ctx context.Context, cfg *config.Config) middleware.Verifier {
	if cfg.Keycloak.URL != "" && cfg.Keycloak.ClientID != "" {
		issuer := oidc.IssuerURL(cfg.Keycloak.URL, cfg.Keycloak.Realm)
		ver, err := oidc.NewVerifier(ctx, issuer, cfg.Keycloak.ClientID)
		if err == nil {
			logger.Infof("verifying Keycloak tokens issued by %s", issuer)
			return ver
		}
		logger.Warnf("failed to initialize OIDC verifier: %v", err)
	}
	if cfg.JWT.Secret != "" {
		return tokens.NewHMACVerifier(cfg.JWT.Secret)
	}
	return nil
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		h.Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
