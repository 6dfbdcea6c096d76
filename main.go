// File: hrbridge/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrbridge/config"
	"hrbridge/cron"
	"hrbridge/database"
	assessmentRepoPkg "hrbridge/database/repository/assessment"
	slotRepoPkg "hrbridge/database/repository/slot"
	userRepoPkg "hrbridge/database/repository/user"
	"hrbridge/handlers"
	"hrbridge/middleware"
	"hrbridge/routes"
	"hrbridge/services/assessment"
	"hrbridge/services/availability"
	"hrbridge/services/booking"
	"hrbridge/services/notification"
	"hrbridge/services/user"
	"hrbridge/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	assessmentRepo := assessmentRepoPkg.NewMongoAssessmentRepo()

	// notification pipeline: booked/unbooked events are queued on Redis and
	// delivered over SMTP by the background worker.
	dispatcher := &notification.AsynqDispatcher{
		Client: notification.NewAsynqClient(),
		Users:  userRepo,
		Logger: logger,
	}
	mailer := notification.NewMailer(logger)
	cron.InitMailWorker(mailer)

	// services.
	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Logger: logger,
	}

	bookingEngine := &booking.DefaultBookingEngine{
		Slots:       slotRepo,
		Users:       userRepo,
		Assessments: assessmentRepo,
		Notifier:    dispatcher,
		Logger:      logger,
	}

	availabilityService := &availability.DefaultService{
		Slots:       slotRepo,
		Users:       userRepo,
		Assessments: assessmentRepo,
		Notifier:    dispatcher,
		Logger:      logger,
	}

	assessmentService := &assessment.DefaultService{
		Repo:   assessmentRepo,
		Logger: logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:      userRepo,
		Auth:          handlers.NewAuthHandler(userService),
		AdminSlots:    handlers.NewAdminSlotHandler(availabilityService, userRepo),
		EmployeeSlots: handlers.NewEmployeeSlotHandler(bookingEngine, userRepo),
		Assessments:   handlers.NewAssessmentHandler(assessmentService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(map[string]*redis.Client{
		"auth": utils.GetAuthCacheClient(),
	}, database.MongoClient)

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
