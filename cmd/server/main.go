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

	"github.com/coursify/coursify/internal/auth"
	"github.com/coursify/coursify/internal/config"
	"github.com/coursify/coursify/internal/events"
	"github.com/coursify/coursify/internal/handlers"
	"github.com/coursify/coursify/internal/logging"
	"github.com/coursify/coursify/internal/mail"
	"github.com/coursify/coursify/internal/middleware"
	"github.com/coursify/coursify/internal/otp"
	"github.com/coursify/coursify/internal/repo"
	"github.com/coursify/coursify/internal/tokens"
	httpserver "github.com/coursify/coursify/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	mailer, err := mail.NewSMTPSender(cfg.SMTP_HOST, cfg.SMTP_PORT, cfg.SMTP_USER, cfg.SMTP_PASS, cfg.SMTP_FROM)
	if err != nil {
		log.Fatalf("smtp init error: %v", err)
	}

	var brokers []string
	if cfg.KAFKA_ADDRESS != "" {
		brokers = []string{cfg.KAFKA_ADDRESS}
	}
	producer := events.NewProducer(brokers)

	tokenSvc := tokens.NewService(
		[]byte(cfg.JWT_SECRET),
		[]byte(cfg.REFRESH_SECRET),
		cfg.ACCESS_TOKEN_TTL,
		cfg.REFRESH_TOKEN_TTL,
	)

	pending := &repo.PendingRepo{DB: db, TTL: cfg.OTP_TTL}
	issuer := &otp.Issuer{Pending: pending, Mail: mailer}

	userSvc := &auth.Service{
		Store:   &repo.UserRepo{DB: db},
		Pending: pending,
		OTP:     issuer,
		Tokens:  tokenSvc,
		Role:    "user",
		Label:   "User",
	}
	adminSvc := &auth.Service{
		Store:   &repo.AdminRepo{DB: db},
		Pending: pending,
		OTP:     issuer,
		Tokens:  tokenSvc,
		Role:    "admin",
		Label:   "Admin",
	}

	userRepo := &repo.UserRepo{DB: db}
	courseRepo := &repo.CourseRepo{DB: db}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.CLIENT_URL},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestLogger(logger))
	e.HTTPErrorHandler = httpserver.NewHTTPErrorHandler(logger)

	httpserver.Register(e, &httpserver.Deps{
		UserAuth:    &handlers.AuthHandler{Svc: userSvc, Events: producer},
		AdminAuth:   &handlers.AuthHandler{Svc: adminSvc, Events: producer},
		Courses:     &handlers.CourseHandler{Courses: courseRepo, Events: producer},
		Enrollments: &handlers.EnrollmentHandler{Users: userRepo, Courses: courseRepo, Events: producer},
		Gate:        middleware.NewGate(tokenSvc),
	})

	sweepCtx, stopSweep := context.WithCancel(logging.IntoContext(context.Background(), logger))
	sweeper := &otp.Sweeper{Pending: pending, Interval: 30 * time.Second}
	go sweeper.Run(sweepCtx)

	srv := &http.Server{
		Addr:         ":" + cfg.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	logger.Info("server started", "port", cfg.PORT)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
