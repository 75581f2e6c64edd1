package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campushub/user-gateway/internal/bootstrap"
	"github.com/campushub/user-gateway/internal/config"
	domain "github.com/campushub/user-gateway/internal/domain/user"
	"github.com/campushub/user-gateway/internal/infrastructure/auth0"
	"github.com/campushub/user-gateway/internal/infrastructure/db"
	"github.com/campushub/user-gateway/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	gormDB, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zlog.Fatal("failed to connect database", zap.Error(err))
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to create pgx pool", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	directory := auth0.NewManagement(auth0.Credentials{
		Domain:       cfg.Auth0.Domain,
		ClientID:     cfg.Auth0.Management.ClientID,
		ClientSecret: cfg.Auth0.Management.ClientSecret,
		Audience:     cfg.Auth0.Management.Audience,
	}, map[domain.Role]string{
		domain.RoleStaff:   cfg.RoleID.Staff,
		domain.RoleTeacher: cfg.RoleID.Teacher,
		domain.RoleStudent: cfg.RoleID.Student,
	}, zlog)

	verifier, err := auth0.NewVerifier(cfg.Auth0.Domain, cfg.Auth0.Audience)
	if err != nil {
		zlog.Fatal("failed to build token verifier", zap.Error(err))
	}

	tokens := &auth0.TokenClient{Credentials: auth0.Credentials{
		Domain:       cfg.Auth0.Domain,
		ClientID:     cfg.Auth0.ClientID,
		ClientSecret: cfg.Auth0.ClientSecret,
		Audience:     cfg.Auth0.Audience,
	}}

	server := bootstrap.NewHTTPServer(bootstrap.Dependencies{
		Config:    cfg,
		Log:       zlog,
		DB:        gormDB,
		Pool:      pool,
		Directory: directory,
		Tokens:    tokens,
		Verifier:  verifier,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()
	zlog.Info("server started", zap.Int("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Fatal("graceful shutdown failed", zap.Error(err))
	}
	zlog.Info("server stopped")
}
