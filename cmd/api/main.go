package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dental-portal/internal/config"
	"dental-portal/internal/handler"
	authHandler "dental-portal/internal/handler/auth"
	bookingHandler "dental-portal/internal/handler/booking"
	"dental-portal/internal/middleware"
	"dental-portal/internal/repository/sqlite"
	"dental-portal/internal/router"
	authService "dental-portal/internal/service/auth"
	bookingService "dental-portal/internal/service/booking"
	"dental-portal/internal/session"
	"dental-portal/pkg/logger"
	"dental-portal/pkg/security"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := sqlite.NewDB(cfg.Database.Path)
	if err != nil {
		log.Fatal(err, "failed to open database")
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	appointmentRepo := sqlite.NewAppointmentRepository(db)

	sessions, err := session.NewManager(time.Duration(cfg.Session.TTLMinutes) * time.Minute)
	if err != nil {
		log.Fatal(err, "failed to initialize session manager")
	}

	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	authSvc := authService.NewService(userRepo, hasher)
	bookingSvc := bookingService.NewService(appointmentRepo)

	gate := middleware.NewSessionGate(sessions)

	h := handler.NewHandler(sessions)
	authH := authHandler.NewHandler(authSvc, sessions)
	bookingH := bookingHandler.NewHandler(bookingSvc)

	r := router.NewRouter(gate, h, authH, bookingH)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited")
}
