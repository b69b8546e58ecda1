package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glimra/config"
	"glimra/cron"
	"glimra/database"
	bookingRepoPkg "glimra/database/repository/booking"
	catalogRepoPkg "glimra/database/repository/catalog"
	fleetRepoPkg "glimra/database/repository/fleet"
	paymentRepoPkg "glimra/database/repository/payment"
	profileRepoPkg "glimra/database/repository/profile"
	vehicleRepoPkg "glimra/database/repository/vehicle"
	"glimra/handlers"
	"glimra/middleware"
	"glimra/routes"
	"glimra/services/fleet"
	"glimra/services/notification"
	"glimra/services/payment"
	"glimra/services/pricing"
	"glimra/services/tasks"
	"glimra/services/wizard"
	"glimra/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionCacheClient(), utils.GetPaymentCacheClient()},
		database.MongoClient,
	)

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	vehicleRepo := vehicleRepoPkg.NewMongoVehicleRepo()
	fleetRepo := fleetRepoPkg.NewMongoFleetRepo()
	profileRepo := profileRepoPkg.NewMongoProfileRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()

	// services.
	notificationService := &notification.FCMNotificationService{
		Client:   utils.GetFCMClient(),
		Profiles: profileRepo,
	}

	flagStore := &wizard.RedisFlagStore{Client: utils.GetPaymentCacheClient()}
	sessionStore := wizard.NewSessionStore(
		utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute,
	)

	wizardService := &wizard.DefaultWizardService{
		Catalog:  catalogRepo,
		Vehicles: vehicleRepo,
		Bookings: bookingRepo,
		Fleet:    fleetRepo,
		Profiles: profileRepo,
		Notifier: notificationService,
		Calc: pricing.Calculator{
			SUVSurchargeRate:  config.AppConfig.SUVSurchargeRate,
			ExpressServiceFee: config.AppConfig.ExpressServiceFee,
		},
		Sessions:           sessionStore,
		Flags:              flagStore,
		DefaultGranularity: config.AppConfig.SlotGranularityMinutes,
	}

	paymentService := &payment.DefaultPaymentService{
		Intents:      &payment.StripeIntentClient{},
		Repo:         paymentRepo,
		Flags:        flagStore,
		Enqueuer:     tasks.NewAsynqEnqueuer(),
		PollInterval: time.Duration(config.AppConfig.ConfirmPollIntervalMS) * time.Millisecond,
		MaxWait:      time.Duration(config.AppConfig.ConfirmMaxWaitSeconds) * time.Second,
		Currency:     config.AppConfig.Currency,
	}

	fleetService := &fleet.DefaultFleetService{
		Repo:       fleetRepo,
		PaymentSvc: paymentService,
		Plans:      catalogRepo,
	}

	// Background worker for timed-out payment reconciliation.
	cron.InitReconcileWorker(paymentService, notificationService)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	routes.RegisterHealthRoute(router)
	routes.RegisterCatalogRoutes(router, handlers.NewCatalogHandler(catalogRepo))
	routes.RegisterVehicleRoutes(router, handlers.NewVehicleHandler(vehicleRepo, logger))
	routes.RegisterWizardRoutes(router, handlers.NewWizardHandler(wizardService, logger))
	routes.RegisterBookingRoutes(router, handlers.NewBookingHandler(bookingRepo, logger))
	routes.RegisterPaymentRoutes(router, handlers.NewPaymentHandler(paymentService, logger))
	routes.RegisterFleetRoutes(router, handlers.NewFleetHandler(fleetService, logger))

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
