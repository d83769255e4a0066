package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/config"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/db"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/logging"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/models"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/server"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("mongo connect")
	}
	log.WithField("db", cfg.MongoDB).Info("connected to MongoDB")

	st := store.New(client.Database(cfg.MongoDB), cfg.OpTimeout(), log)
	if err := st.Users.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Fatal("ensure indexes")
	}
	for _, email := range cfg.BootstrapAdmins {
		if err := st.Users.EnsureRole(ctx, email, models.RoleAdmin); err != nil {
			log.WithError(err).WithField("email", email).Fatal("bootstrap admin")
		}
		log.WithField("email", email).Info("admin ensured")
	}

	hub := realtime.NewHub(log)
	go hub.Run(ctx)

	var events realtime.Publisher = hub
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("redis ping")
		}
		relay := realtime.NewRedisRelay(rdb, hub, log)
		go relay.Run(ctx)
		events = relay
		log.WithField("addr", cfg.RedisAddr).Info("events relayed through Redis")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	app := server.New(server.Deps{
		Users:       st.Users,
		TourGuides:  st.TourGuides,
		Bookings:    st.Bookings,
		Hub:         hub,
		Events:      events,
		Limiter:     limiter,
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL(),
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
	})

	go func() {
		log.WithField("port", cfg.AppPort).Info("tour guide server listening")
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			log.WithError(err).Fatal("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}

	cancel()
	limiter.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := db.Disconnect(client); err != nil {
		log.WithError(err).Warn("mongo disconnect")
	}
}
