package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/car-registry/backend/internal/config"
	"github.com/car-registry/backend/internal/db"
	"github.com/car-registry/backend/internal/handler"
	"github.com/car-registry/backend/internal/logging"
	"github.com/car-registry/backend/internal/service"
	"github.com/car-registry/backend/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(slogger)
	log := logging.NewSlog(slogger)

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		slogger.Error("postgres init failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := db.New(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		slogger.Error("schema init failed", "error", err)
		os.Exit(1)
	}

	tokens, err := service.NewTokenService(cfg.Auth)
	if err != nil {
		slogger.Error("token service init failed", "error", err)
		os.Exit(1)
	}

	workers, err := strconv.Atoi(cfg.Pool.Workers)
	if err != nil {
		slogger.Error("invalid POOL_WORKERS", "value", cfg.Pool.Workers)
		os.Exit(1)
	}
	queue, err := strconv.Atoi(cfg.Pool.Queue)
	if err != nil {
		slogger.Error("invalid POOL_QUEUE", "value", cfg.Pool.Queue)
		os.Exit(1)
	}
	taskPool, err := worker.New(workers, queue)
	if err != nil {
		slogger.Error("worker pool init failed", "error", err)
		os.Exit(1)
	}
	defer taskPool.Close()

	authSvc := service.NewAuthService(repo, tokens, log)
	userSvc := service.NewUserService(repo, log)
	brandSvc := service.NewBrandService(repo, taskPool, log)
	carSvc := service.NewCarService(repo, taskPool, log)

	middlewares := []gin.HandlerFunc{handler.RequestID()}
	if cfg.Server.CORSOrigins != "" {
		middlewares = append(middlewares,
			handler.CORSMiddleware(strings.Split(cfg.Server.CORSOrigins, ",")))
	}
	middlewares = append(middlewares, handler.Identity(tokens, repo))

	router := handler.NewRouter(handler.Handlers{
		Auth:  handler.NewAuthHandler(authSvc),
		User:  handler.NewUserHandler(userSvc),
		Brand: handler.NewBrandHandler(brandSvc),
		Car:   handler.NewCarHandler(carSvc),
	}, middlewares...)

	addr := ":" + cfg.Server.Port
	slogger.Info("car registry listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		slogger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
