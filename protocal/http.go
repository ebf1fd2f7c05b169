package protocal

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-relay/configs"
	httpAdapter "chat-relay/internal/adapters/input/http"
	lineAdapter "chat-relay/internal/adapters/output/line"
	"chat-relay/internal/adapters/output/memory"
	"chat-relay/internal/adapters/output/noop"
	"chat-relay/internal/adapters/output/postgres"
	"chat-relay/internal/adapters/output/workflow"
	"chat-relay/internal/application"
	"chat-relay/internal/ports/output"
	"chat-relay/pkg/database_driver/gorm"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()

	if err := configs.InitViper("./configs", cfg.ENV); err != nil {
		return err
	}
	appConfig := configs.GetViper()
	if err := appConfig.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	if appConfig.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Info(appConfig.App.Env)
	configs.WatchConfig()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	// Wire up the hexagonal architecture layers
	// Output adapters
	sessionStore := memory.NewMemorySessionStore(appConfig.Session.IdleTimeout)
	logrus.Infof("Session idle timeout: %v", sessionStore.GetIdleTimeout())
	workflowClient, err := workflow.NewWorkflowClientAdapter(appConfig.Workflow)
	if err != nil {
		return err
	}

	var (
		archive output.TranscriptArchive = noop.NewTranscriptArchive()
		dbConn  *gorm.DB
	)
	if appConfig.Postgres.Enabled {
		dbConn, err = gorm.ConnectToPostgreSQL(
			appConfig.Postgres.Host,
			appConfig.Postgres.Port,
			appConfig.Postgres.Username,
			appConfig.Postgres.Password,
			appConfig.Postgres.DbName,
			appConfig.Postgres.SSLMode,
		)
		if err != nil {
			return err
		}
		repo, err := postgres.NewTranscriptRepository(dbConn.Postgres)
		if err != nil {
			return err
		}
		archive = repo
	}

	// Application service (use case)
	srv := application.NewConversationService(sessionStore, workflowClient, archive)
	// Input adapter (HTTP handler)
	hdl := httpAdapter.New(srv)

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)
	hdl.Register(app.Group("/v1/api"))

	if appConfig.Line.Enabled {
		// Output adapter (LINE client)
		lineClient, err := lineAdapter.NewLineClientAdapter(appConfig.Line.ChannelToken)
		if err != nil {
			logrus.Fatalf("Failed to create LINE client: %v", err)
		}
		// Application service (LINE webhook use case)
		lineWebhookSrv := application.NewLineWebhookService(lineClient, srv)
		// Input adapter (LINE webhook handler)
		lineWebhookHdl := httpAdapter.NewLineWebhookHandler(lineWebhookSrv, appConfig.Line.ChannelSecret)

		webhook := app.Group("/webhook")
		{
			webhook.Post("/line", lineWebhookHdl.HandleWebhook)
		}
		logrus.Info("LINE channel enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, sessionStore, appConfig.Session.SweepInterval)

	go func() {
		<-ctx.Done()
		logrus.Println("Gracefull shut down ...")
		if err := app.ShutdownWithTimeout(shutdownGrace(appConfig.Workflow.Timeout)); err != nil {
			logrus.Println("Error when shutdown server: ", err)
		}
		if dbConn != nil {
			gorm.DisconnectPostgres(dbConn.Postgres)
		}
	}()

	logrus.Println("Listening on port: ", appConfig.App.Port)
	return app.Listen(":" + appConfig.App.Port)
}

// sweepSessions evicts idle sessions until ctx is done
func sweepSessions(ctx context.Context, store *memory.MemorySessionStore, interval time.Duration) {
	if interval <= 0 {
		interval = configs.DefaultSessionSweepPeriod
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := store.Sweep(); removed > 0 {
				logrus.Infof("Evicted %d idle session(s), %d active", removed, store.Len())
			}
		}
	}
}

// shutdownGrace lets an in-flight dispatch run to its workflow timeout before the server stops
func shutdownGrace(workflowTimeout time.Duration) time.Duration {
	if workflowTimeout <= 0 {
		workflowTimeout = configs.DefaultWorkflowTimeout
	}
	return workflowTimeout + 5*time.Second
}
