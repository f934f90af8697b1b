package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quikka/config"
	"quikka/cron"
	"quikka/database"
	availabilityRepoPkg "quikka/database/repository/availability"
	bookingRepoPkg "quikka/database/repository/booking"
	stylistRepoPkg "quikka/database/repository/stylist"
	"quikka/handlers"
	"quikka/routes"
	bookingSvc "quikka/services/booking"
	"quikka/services/notification"
	stylistSvc "quikka/services/stylist"
	"quikka/services/tasks"
	"quikka/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	location, err := time.LoadLocation(config.AppConfig.BookingTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid booking timezone %q: %v", config.AppConfig.BookingTimezone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	availRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	ledgerRepo := bookingRepoPkg.NewMongoBookingRepo()
	stylistRepo := stylistRepoPkg.NewMongoStylistRepo()

	// services.
	notificationService := &notification.DefaultNotificationService{}

	queueOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	reminderScheduler := tasks.NewReminderScheduler(
		queueOpt,
		time.Duration(config.AppConfig.ReminderLeadMin)*time.Minute,
		location,
	)
	defer reminderScheduler.Close()

	stylistService := &stylistSvc.DefaultStylistService{
		Repo:         stylistRepo,
		Availability: availRepo,
	}

	bookingEngine := &bookingSvc.DefaultBookingEngine{
		Availability: availRepo,
		Ledger:       ledgerRepo,
		LockClient:   utils.GetCacheClient(),
		Cache:        utils.GetCacheClient(),
		Notifier:     notificationService,
		Reminders:    reminderScheduler,
		Granularity:  config.AppConfig.SlotGranularityMin,
		MinLeadTime:  config.AppConfig.MinLeadTimeMin,
		AutoConfirm:  config.AppConfig.AutoConfirmBookings,
		Location:     location,
	}

	bookingHandler := &handlers.BookingHandler{
		Engine:   bookingEngine,
		Stylists: stylistService,
	}
	stylistHandler := &handlers.StylistHandler{
		Service: stylistService,
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(bookingHandler, stylistHandler, stylistRepo)
	routes.RegisterRoutes(router, handlerBundle)

	// The reminder worker runs in the background.
	cron.InitReminderWorker(notificationService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
