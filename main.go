package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"dashboard-service/internal/browseruse"
	"dashboard-service/internal/config"
	"dashboard-service/internal/domain"
	"dashboard-service/internal/publisher"
	"dashboard-service/internal/repository"
	"dashboard-service/internal/server"
	"dashboard-service/internal/service"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)

	if err := godotenv.Load(); err != nil {
		log.Warn("Could not load .env file.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithField("error", err).Fatal("Could not load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.WithField("error", err).Fatal("Could not connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		log.WithField("error", err).Fatal("Could not ping MongoDB")
	}
	log.Info("Successfully connected to MongoDB.")

	db := client.Database(cfg.Mongo.Database)

	// Create repositories
	eventRepository := repository.NewMongoEventRepository(db)
	workflowRepository := repository.NewMongoWorkflowRepository(db)
	walletRepository := repository.NewMongoWalletRepository(db)

	log.Info("Ensuring history indexes (including TTL expiry)...")
	if err := eventRepository.EnsureIndexes(ctx); err != nil {
		log.WithField("error", err).Fatal("Could not create indexes")
	}

	// Optional Kafka mirror of the audit trail
	var mirror service.EventMirror
	if cfg.Kafka.BootstrapServers != "" {
		auditPublisher, err := publisher.NewAuditPublisher(cfg.Kafka.BootstrapServers, cfg.Kafka.AuditTopic)
		if err != nil {
			log.WithField("error", err).Fatal("Could not create Kafka producer")
		}
		defer auditPublisher.Close()
		mirror = auditPublisher
	} else {
		log.Warn("KAFKA_BOOTSTRAP_SERVERS not set, history events will not be mirrored")
	}

	actor := domain.Actor{ID: cfg.DefaultUserID, Name: cfg.DefaultUserName}

	// Create services
	historyService := service.NewHistoryService(eventRepository, mirror, cfg.History.EventTTL)
	recorder := service.NewRecorder(historyService)
	analyticsService := service.NewAnalyticsService(workflowRepository, eventRepository)
	alertsService := service.NewAlertsService(eventRepository)
	workflowService := service.NewWorkflowService(workflowRepository, recorder)
	walletService := service.NewWalletService(walletRepository, recorder)
	automationClient := browseruse.New(cfg.BrowserUse.BaseURL, cfg.BrowserUse.APIKey)
	taskService := service.NewTaskService(automationClient, workflowRepository, recorder)

	// Create servers
	srv := server.NewServer(client)
	historySrv := server.NewHistoryServer(historyService, actor)
	dashboardSrv := server.NewDashboardServer(analyticsService, alertsService)
	workflowSrv := server.NewWorkflowServer(workflowService, actor)
	walletSrv := server.NewWalletServer(walletService, actor)
	taskSrv := server.NewTaskServer(taskService, actor)
	webhookSrv := server.NewWebhookServer(cfg.BrowserUse.WebhookSecret, taskService, actor)

	// Setup Echo
	e := echo.New()

	// Health check
	e.GET("/health", srv.HealthCheck)

	api := e.Group("/api")

	history := api.Group("/history")
	history.POST("", historySrv.CreateEvent)
	history.GET("", historySrv.ListEvents)
	history.GET("/:id", historySrv.GetEvent)

	dashboard := api.Group("/dashboard")
	dashboard.GET("/stats", dashboardSrv.GetWorkflowStats)
	dashboard.GET("/alerts", dashboardSrv.GetAlerts)

	workflows := api.Group("/workflows")
	workflows.POST("", workflowSrv.CreateWorkflow)
	workflows.GET("", workflowSrv.ListWorkflows)
	workflows.GET("/:id", workflowSrv.GetWorkflow)
	workflows.PUT("/:id", workflowSrv.UpdateWorkflow)
	workflows.DELETE("/:id", workflowSrv.DeleteWorkflow)

	wallets := api.Group("/wallets")
	wallets.POST("", walletSrv.CreateEntry)
	wallets.GET("", walletSrv.ListEntries)
	wallets.GET("/:id", walletSrv.GetEntry)
	wallets.PUT("/:id", walletSrv.UpdateEntry)
	wallets.DELETE("/:id", walletSrv.DeleteEntry)

	tasks := api.Group("/tasks")
	tasks.POST("/run", taskSrv.RunTask)
	tasks.GET("/:id", taskSrv.GetTask)
	tasks.PUT("/:id/stop", taskSrv.StopTask)
	tasks.PUT("/:id/pause", taskSrv.PauseTask)
	tasks.PUT("/:id/resume", taskSrv.ResumeTask)

	api.POST("/webhooks/browser-use", webhookSrv.HandleBrowserUse)

	log.WithField("port", cfg.Port).Info("Dashboard service is starting with Echo")

	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.WithField("error", err).Fatal("Echo server failed to start")
	}
}
