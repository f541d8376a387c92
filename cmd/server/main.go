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

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/api"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/config"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/db"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/logging"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/services"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/web"
)

func main() {
	// Ensure all log output goes to stdout
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Retail Supply Chain starting (GIT_SHA=%s BUILD_TIME=%s)", os.Getenv("GIT_SHA"), os.Getenv("BUILD_TIME"))

	// Initialize database connection (non-fatal to allow liveness health checks)
	var store api.Store
	database, err := db.NewDatabase(cfg.Database)
	if err != nil {
		log.Printf("[WARN] Database initialization failed at startup: %v", err)
	}
	if database != nil {
		defer database.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.InitSchema(ctx, cfg.App.SchemaFile); err != nil {
			log.Printf("[WARN] Failed to initialize schema: %v", err)
		}
		cancel()
		store = database
	} else {
		log.Println("[WARN] Database unavailable at startup; readiness will report accordingly")
	}

	emailService, notifyService := initNotifications(cfg.AWS)

	handler := api.NewHandler(store, cfg.Auth, emailService, notifyService)

	router, err := setupRouter(handler, cfg.App)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[WARN] Server shutdown: %v", err)
	}
}

// initNotifications loads separate AWS configs for SES (email) and SNS (order events).
// Either service is nil when unconfigured or when its config fails to load.
func initNotifications(cfg config.AWSConfig) (*services.EmailService, *services.NotifyService) {
	var emailService *services.EmailService
	if cfg.SESFromEmail != "" {
		sesCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.SESRegion))
		if err != nil {
			log.Printf("[WARN] SES AWS config load failed: %v", err)
		} else {
			emailService = services.NewEmailService(sesCfg, cfg.SESFromEmail)
		}
	}

	var notifyService *services.NotifyService
	if cfg.OrderEventsTopicARN != "" {
		snsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.SNSRegion))
		if err != nil {
			log.Printf("[WARN] SNS AWS config load failed: %v", err)
		} else {
			notifyService = services.NewNotifyService(snsCfg, cfg.OrderEventsTopicARN)
		}
	}
	return emailService, notifyService
}

func setupRouter(handler *api.Handler, app config.AppConfig) (*gin.Engine, error) {
	// Set Gin mode based on environment
	if app.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(app.GinMode)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// Add middleware
	router.Use(logging.JSONLogger())
	router.Use(handler.Sessions())
	router.Use(handler.Recovery())
	router.Use(cors.New(corsConfig(app.CORSAllowedOrigin)))
	router.Use(handler.LoadSession())

	// Health and readiness endpoints
	router.GET("/live", handler.Live)
	router.GET("/health", handler.Live)
	router.GET("/ready", handler.Ready)

	// Pages
	pages := router.Group("/")
	pages.Use(handler.RequireStore())
	{
		pages.GET("/", handler.Index)
		pages.GET("/shop", handler.Shop)
		pages.POST("/shop", handler.ShopAction)
		pages.GET("/tracking", handler.Tracking)
		pages.GET("/forecast", handler.Forecast)
		pages.GET("/customer", handler.Customer)
		pages.POST("/customer", handler.SubmitCustomerFeedback)
		pages.GET("/login", handler.LoginPage)
		pages.POST("/login", handler.LoginSubmit)
		pages.GET("/signup", handler.SignupPage)
		pages.POST("/signup", handler.SignupSubmit)
	}
	router.GET("/logout", handler.Logout)

	// API routes
	v1 := router.Group("/api")
	v1.Use(handler.RequireStore())
	{
		v1.GET("/products", handler.GetProducts)
		v1.GET("/products/:id", handler.GetProduct)
		v1.POST("/products", handler.CreateProduct)
		v1.GET("/categories", handler.GetCategories)

		v1.GET("/orders", handler.GetOrders)
		v1.GET("/orders/:id", handler.GetOrder)
		v1.POST("/orders", handler.CreateOrder)
		v1.PUT("/orders/:id/status", handler.UpdateOrderStatus)

		v1.GET("/forecasts", handler.GetForecasts)

		v1.GET("/feedback", handler.GetFeedback)
		v1.POST("/feedback", handler.SubmitFeedback)

		v1.GET("/dashboard/metrics", handler.GetDashboardMetrics)

		v1.POST("/auth/login", handler.Login)
		v1.GET("/auth/me", handler.AuthMiddleware(), handler.Me)
	}

	router.NoRoute(handler.NotFound)

	return router, nil
}

// corsConfig restricts CORS to one origin when configured
func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if origin != "" {
		cfg.AllowOrigins = []string{origin}
		cfg.AllowCredentials = true
	} else {
		cfg.AllowAllOrigins = true
	}
	return cfg
}
