package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/api"
	"github.com/Cheertaboi/qr-menu-pricing-service/internal/cache"
	"github.com/Cheertaboi/qr-menu-pricing-service/internal/config"
	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
	"github.com/Cheertaboi/qr-menu-pricing-service/internal/repository"
	"github.com/Cheertaboi/qr-menu-pricing-service/internal/service"
	"github.com/Cheertaboi/qr-menu-pricing-service/pkg/db"
	"github.com/Cheertaboi/qr-menu-pricing-service/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logg.Sync()

	dbCfg, err := db.LoadPostgresConfig()
	if err != nil {
		logg.Fatal("load db config", zap.Error(err))
	}
	conn, err := db.NewPostgresConnection(context.Background(), dbCfg)
	if err != nil {
		logg.Fatal("db connect", zap.Error(err))
	}
	defer conn.Close()

	validate := models.NewValidator()
	loader := service.NewPromotionLoader(repository.NewPromotionRepo(conn), validate, logg)

	// promotions are cached per business; redis is shared between instances
	var promotions service.PromotionSource
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		promotions = cache.NewRedisPromotionCache(rdb, loader, cfg.PromotionCacheTTL, logg)
		logg.Info("using redis promotion cache", zap.String("addr", cfg.RedisAddr))
	} else {
		promotions = cache.NewPromotionCache(loader, cfg.PromotionCacheTTL)
	}

	svc := service.NewMenuService(repository.NewProductRepo(conn), promotions, validate, logg, service.Options{
		Location:      cfg.Location,
		Workers:       cfg.PricingWorkers,
		PublicMenuURL: cfg.PublicMenuBaseURL,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.NewRouter(svc, logg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logg.Error("http server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	logg.Info("starting menu-pricing", zap.String("addr", cfg.HTTPAddr), zap.String("timezone", cfg.Location.String()))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal("listen", zap.Error(err))
	}

	<-idleConnsClosed
	logg.Info("server stopped")
}
