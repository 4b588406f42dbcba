package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/payment-instructions/internal/api"
	"github.com/example/payment-instructions/internal/auth"
	"github.com/example/payment-instructions/internal/config"
	"github.com/example/payment-instructions/internal/security"
	"github.com/example/payment-instructions/pkg/audit"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	allowlist, err := security.ParseCIDRAllowlist(cfg.IPAllowlist)
	if err != nil {
		logger.Error("invalid IP_ALLOWLIST", "error", err)
		os.Exit(1)
	}

	deps := api.Dependencies{
		Logger:       logger,
		Auditor:      audit.NewChainLogger(),
		IPAllowlist:  allowlist,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}

	if cfg.OAuthClients != "" {
		store, err := auth.ParseClients(cfg.OAuthClients)
		if err != nil {
			logger.Error("invalid OAUTH_CLIENTS", "error", err)
			os.Exit(1)
		}

		keySet, err := auth.NewKeySet()
		if err != nil {
			logger.Error("failed to create keyset", "error", err)
			os.Exit(1)
		}

		deps.OAuth = &auth.OAuthServer{
			Store:          store,
			Keys:           keySet,
			Issuer:         "payment-instructions",
			AccessTokenTTL: 15 * time.Minute,
		}
		deps.JWTValidator = &auth.JWTValidator{KeySet: keySet, Issuer: "payment-instructions"}
		logger.Info("oauth enabled", "clients", store.Len())
	} else {
		logger.Warn("no OAuth clients configured, instruction endpoint runs open")
	}

	if cfg.RateLimitCapacity > 0 {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()

		deps.RateLimiter = &security.RedisTokenBucket{
			Redis:      redisClient,
			Prefix:     "instruction_api",
			Capacity:   cfg.RateLimitCapacity,
			RefillRate: cfg.RateLimitRefillRate,
		}
	}

	router, err := api.NewRouter(deps)
	if err != nil {
		logger.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		logger.Error("failed to listen", "error", err)
		os.Exit(1)
	}

	if cfg.TLSCertFile != "" {
		if err := security.VerifyTLSFiles(cfg.TLSCertFile, cfg.TLSKeyFile, cfg.TLSCAFile); err != nil {
			logger.Error("TLS files missing", "error", err)
			os.Exit(1)
		}

		tlsCfg, err := security.LoadServerTLSConfig(security.TLSConfig{
			CertFile:          cfg.TLSCertFile,
			KeyFile:           cfg.TLSKeyFile,
			CAFile:            cfg.TLSCAFile,
			RequireClientAuth: cfg.RequireClientCerts,
		})
		if err != nil {
			logger.Error("failed to load TLS config", "error", err)
			os.Exit(1)
		}

		srv.TLSConfig = tlsCfg
		ln = tls.NewListener(ln, tlsCfg)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	logger.Info("payment instruction api listening", "addr", cfg.ListenAddr, "env", cfg.Environment, "tls", cfg.TLSCertFile != "")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
