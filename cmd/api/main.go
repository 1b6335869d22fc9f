package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "krysselista-backend/internal/adapter/http"
	"krysselista-backend/internal/adapter/middleware"
	"krysselista-backend/internal/adapter/pubsub"
	"krysselista-backend/internal/adapter/repository/mysql"
	"krysselista-backend/internal/auth"
	"krysselista-backend/internal/config"
	"krysselista-backend/internal/i18n"
	"krysselista-backend/internal/infrastructure/cache"
	"krysselista-backend/internal/infrastructure/db"
	"krysselista-backend/internal/jobs"
	"krysselista-backend/internal/logging"
	"krysselista-backend/internal/observability"
	"krysselista-backend/internal/usecase/account"
	"krysselista-backend/internal/usecase/admin"
	"krysselista-backend/internal/usecase/attendance"
	"krysselista-backend/internal/usecase/authorized"
	"krysselista-backend/internal/usecase/chat"
	"krysselista-backend/internal/usecase/pickup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Closer()
	logger := lg.Base

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, cfg.Release)
	if err != nil {
		logger.Warn("sentry disabled", zap.Error(err))
	}
	defer flush()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		observability.CaptureErr(err)
		flush()
		lg.Closer()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err := db.Migrate(sqlDB); err != nil {
		return err
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	cat, err := i18n.New()
	if err != nil {
		return err
	}
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	changes := pubsub.NewRedisFeed(rdb, cfg.FeedChannel)

	// repositories
	pickups := mysql.NewPickupRepository(gdb)
	profiles := mysql.NewProfileRepository(gdb)
	children := mysql.NewChildRepository(gdb)
	entries := mysql.NewAuthorizedRepository(gdb)
	visits := mysql.NewAttendanceRepository(gdb)
	messages := mysql.NewChatRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	// usecases
	pickupUC := pickup.NewUsecase(pickups, tx, changes, logger.Named("pickup"))
	board := pickup.NewBoard(pickupUC, changes, logger.Named("board"))
	board.Start(ctx)
	defer board.Close()

	chatUC := chat.NewUsecase(messages, children, changes, logger.Named("chat"))

	runner := jobs.New(ctx, logger.Named("jobs"))
	runner.Every(cfg.ChatPurgeEvery, "chat_purge", jobs.ChatPurge(chatUC, logger))
	defer runner.Wait()

	base := httpadp.NewHandler(cat, httpadp.NewValidator(), logger.Named("http"))
	events := httpadp.NewEventsHandler(base, changes, children)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadHeaderTimeout = 10 * time.Second
	// Shutdown waits for idle connections, so open streams must end first
	e.Server.RegisterOnShutdown(events.Shutdown)
	e.Use(echomw.Recover(), middleware.RequestLogger(logger.Named("access")))

	httpadp.RegisterRoutes(e, httpadp.Routes{
		Base:       base,
		Tokens:     tokens,
		Redis:      rdb,
		IdempTTL:   time.Duration(cfg.IdempTTLSecs) * time.Second,
		Pickups:    httpadp.NewPickupHandler(base, pickupUC, board),
		Events:     events,
		Accounts:   httpadp.NewAccountHandler(base, account.NewUsecase(profiles, tokens)),
		Authorized: httpadp.NewAuthorizedHandler(base, authorized.NewUsecase(entries, children)),
		Attendance: httpadp.NewAttendanceHandler(base, attendance.NewUsecase(visits, children, changes, cfg.Location(), logger.Named("attendance"))),
		Chat:       httpadp.NewChatHandler(base, chatUC),
		Admin:      httpadp.NewAdminHandler(base, admin.NewUsecase(profiles, tx)),
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		stop()
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown incomplete", zap.Error(err))
		_ = e.Close()
	}
	return nil
}
