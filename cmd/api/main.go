package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hairdo-backend/internal/auth"
	"hairdo-backend/internal/cache"
	"hairdo-backend/internal/config"
	"hairdo-backend/internal/db"
	"hairdo-backend/internal/handlers"
	"hairdo-backend/internal/middleware"
	"hairdo-backend/internal/notifications"
	"hairdo-backend/internal/reminder"
	"hairdo-backend/internal/store"
	"hairdo-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected", slog.String("addr", cfg.RedisAddr))
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "hairdo-backend",
		}
	}

	mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSandbox)
	if mailer == nil {
		logger.Info("brevo mailer disabled")
	} else {
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
	}

	appointments := store.NewAppointmentRepository(cols.Appointments, cfg.Timezone)
	settings := store.NewSettingsRepository(cols.Settings, cols.StoreHours, cfg.Timezone)
	catalog := store.NewCatalogRepository(cols.Services, cols.Employees, cfg.Timezone)
	users := store.NewUserRepository(cols.Users, cfg.Timezone)

	server := &handlers.Server{
		Cfg:          cfg,
		Val:          validation.New(),
		Log:          logger,
		Cache:        cacheStore,
		Appointments: appointments,
		Settings:     settings,
		Catalog:      catalog,
		Users:        users,
	}
	if mailer != nil {
		server.Mailer = mailer
	}

	var reminders *reminder.Scheduler
	if mailer != nil {
		reminders = reminder.NewScheduler(appointments, settings, catalog, mailer, cfg.Timezone, logger)
		if err := reminders.Start(); err != nil {
			logger.Error("reminder scheduler failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer reminders.Stop()
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	bookingLimiter := middleware.NewRateLimiter(cfg.RateLimitAppointments, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/services", server.GetServices)
		api.Get("/employees", server.GetEmployees)
		api.Get("/availability", server.GetAvailability)
		api.Get("/availability/next", server.GetNextSlot)
		api.With(bookingLimiter.Middleware).Post("/appointments", server.CreateAppointment)
		api.Get("/appointments", server.ListAppointments)
		api.Get("/appointments/{id}", server.GetAppointment)
		api.Post("/appointments/{id}/cancel", server.CancelAppointment)
		api.Post("/payments/intent", server.CreateDepositIntent)

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/register", server.AdminRegister)
			admin.Post("/login", server.AdminLogin)
			admin.Post("/refresh", server.AdminRefresh)
			admin.Post("/logout", server.AdminLogout)

			// chi requires middlewares before routes, so the protected
			// surface lives on a sub-router and login stays public.
			admin.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(cfg.AdminAPIKey, jwtManager))
				protected.Get("/timeline", server.AdminGetTimeline)
				protected.Patch("/appointments/{id}/status", server.AdminUpdateAppointmentStatus)
				protected.Patch("/appointments/{id}", server.AdminRescheduleAppointment)
				protected.Get("/policy", server.AdminGetPolicy)
				protected.Put("/policy", server.AdminUpdatePolicy)
				protected.Get("/store-hours", server.AdminGetStoreHours)
				protected.Put("/store-hours", server.AdminUpdateStoreHours)
				protected.Post("/services", server.AdminCreateService)
				protected.Put("/services/{id}", server.AdminUpdateService)
				protected.Delete("/services/{id}", server.AdminDeleteService)
				protected.Post("/employees", server.AdminCreateEmployee)
				protected.Post("/users", server.AdminCreateUser)
				protected.Patch("/users/{id}/password", server.AdminUpdateUserPassword)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
