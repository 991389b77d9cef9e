package main

import (
	"context"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin"
	crypt "github.com/estafette/estafette-ci-crypt"
	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/estafette/estafette-ci-issues/pkg/clients/database"
	"github.com/estafette/estafette-ci-issues/pkg/clients/githubapi"
	"github.com/estafette/estafette-ci-issues/pkg/services/issues"
	"github.com/estafette/estafette-ci-issues/pkg/services/notifier"
	"github.com/estafette/estafette-ci-issues/pkg/services/queue"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerprom "github.com/uber/jaeger-lib/metrics/prometheus"
	"golang.org/x/sync/errgroup"
)

const appName = "estafette-ci-issues"

var (
	version   string
	branch    string
	revision  string
	buildDate string
	goVersion = runtime.Version()
)

var (
	// flags
	prometheusMetricsAddress = kingpin.Flag("metrics-listen-address", "The address to listen on for Prometheus metrics requests.").Default(":9001").String()
	prometheusMetricsPath    = kingpin.Flag("metrics-path", "The path to listen for Prometheus metrics requests.").Default("/metrics").String()

	apiAddress = kingpin.Flag("api-listen-address", "The address to listen on for api HTTP requests.").Default(":5000").String()

	configFilePath      = kingpin.Flag("config-file-path", "The path to yaml config file configuring this application.").Default("/configs/config.yaml").OverrideDefaultFromEnvar("CONFIG_FILE_PATH").String()
	secretDecryptionKey = kingpin.Flag("secret-decryption-key", "The AES-256 key used to decrypt secrets that have been encrypted with it.").Envar("SECRET_DECRYPTION_KEY").String()
	watchConfigFile     = kingpin.Flag("watch-config-file", "Reload the config file when it changes.").Default("true").Envar("WATCH_CONFIG_FILE").Bool()
)

func main() {

	// parse command line parameters
	kingpin.Parse()

	// configure json logging
	initLogging()

	// configure tracing
	closer := initJaeger()
	defer closer.Close()

	// define channels to gracefully shutdown the application
	sigs := make(chan os.Signal, 1)                                    // Create channel to receive OS signals
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGINT) // Register the sigs channel to receieve SIGTERM

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start prometheus
	go startPrometheus()

	configReader := api.NewConfigReader(crypt.NewSecretHelper(*secretDecryptionKey, false))
	config, err := configReader.ReadConfigFromFile(*configFilePath, true)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed reading configuration")
	}
	configStore := api.NewConfigStore(config)

	if *watchConfigFile {
		if err := api.WatchConfigFile(ctx, configReader, *configFilePath, configStore); err != nil {
			log.Warn().Err(err).Msgf("Failed watching config file %v, changes require a restart", *configFilePath)
		}
	}

	databaseClient, queueService, notifierService := configureServices(config, configStore)

	if err := initInfrastructure(ctx, config, databaseClient, queueService, notifierService); err != nil {
		log.Fatal().Err(err).Msg("Failed initializing infrastructure")
	}

	router := configureGinGonic(config, notifier.NewHandler(notifierService))

	srv := &http.Server{
		Addr:    *apiAddress,
		Handler: router,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info().Msgf("Listening on %v...", *apiAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// wait for a signal or for the server to fail
	select {
	case <-sigs:
	case <-groupCtx.Done():
	}
	log.Debug().Msg("Shutting down...")

	// shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful server shutdown failed")
	}

	log.Debug().Msg("Stopping goroutines...")
	cancel()
	if config.Queue.Enable {
		queueService.CloseConnection(shutdownCtx)
	}

	if err := group.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}

	log.Info().Msg("Server gracefully stopped")
}

func startPrometheus() {
	log.Debug().
		Str("port", *prometheusMetricsAddress).
		Str("path", *prometheusMetricsPath).
		Msg("Serving Prometheus metrics...")

	http.Handle(*prometheusMetricsPath, promhttp.Handler())

	if err := http.ListenAndServe(*prometheusMetricsAddress, nil); err != nil {
		log.Fatal().Err(err).Msg("Starting Prometheus listener failed")
	}
}

func initLogging() {

	// log as severity for stackdriver logging to recognize the level
	zerolog.LevelFieldName = "severity"

	// set some default fields added to all logs
	log.Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("app", appName).
		Str("version", version).
		Logger()

	// use zerolog for any logs sent via standard log library
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)

	// log startup message
	log.Info().
		Str("branch", branch).
		Str("revision", revision).
		Str("buildDate", buildDate).
		Str("goVersion", goVersion).
		Msgf("Starting %v...", appName)
}

// initJaeger configures the global tracer from the JAEGER_* environment variables
func initJaeger() io.Closer {

	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger config from environment variables failed")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = appName
	}

	tracer, closer, err := cfg.NewTracer(jaegercfg.Metrics(jaegerprom.New()))
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger tracer failed")
	}

	opentracing.SetGlobalTracer(tracer)

	return closer
}

func configureServices(config *api.APIConfig, configStore *api.ConfigStore) (databaseClient database.Client, queueService queue.Service, notifierService notifier.Service) {

	log.Debug().Msg("Configuring services...")

	// clients
	githubapiClient := githubapi.NewClient(config)
	githubapiClient = githubapi.NewTracingClient(githubapiClient)
	githubapiClient = githubapi.NewLoggingClient(githubapiClient)
	githubapiClient = githubapi.NewMetricsClient(githubapiClient, api.NewRequestCounter("githubapi_client"), api.NewRequestHistogram("githubapi_client"))

	databaseClient = database.NewClient(config)
	databaseClient = database.NewTracingClient(databaseClient)
	databaseClient = database.NewLoggingClient(databaseClient)
	databaseClient = database.NewMetricsClient(databaseClient, api.NewRequestCounter("database_client"), api.NewRequestHistogram("database_client"))

	// services
	queueService = queue.NewService(config)

	issuesService := issues.NewService(githubapiClient, issues.NewTokenFormatter(), issues.JobProjectURL)
	issuesService = issues.NewTracingService(issuesService)
	issuesService = issues.NewLoggingService(issuesService)
	issuesService = issues.NewMetricsService(issuesService, api.NewRequestCounter("issues_service"), api.NewRequestHistogram("issues_service"), api.NewDecisionCounter())

	notifierService = notifier.NewService(configStore, issuesService, databaseClient, queueService)
	notifierService = notifier.NewTracingService(notifierService)
	notifierService = notifier.NewLoggingService(notifierService)
	notifierService = notifier.NewMetricsService(notifierService, api.NewRequestCounter("notifier_service"), api.NewRequestHistogram("notifier_service"))

	return
}

// initInfrastructure connects the database and the queue side by side
func initInfrastructure(ctx context.Context, config *api.APIConfig, databaseClient database.Client, queueService queue.Service, notifierService notifier.Service) error {

	group, groupCtx := errgroup.WithContext(ctx)

	if config.Database.Enable {
		group.Go(func() error {
			if err := databaseClient.Connect(groupCtx); err != nil {
				return err
			}
			if err := databaseClient.AwaitDatabaseReadiness(groupCtx); err != nil {
				return err
			}
			return databaseClient.MigrateSchema(groupCtx)
		})
	}

	if config.Queue.Enable {
		group.Go(func() error {
			if err := queueService.CreateConnection(groupCtx); err != nil {
				return err
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if config.Queue.Enable {
		// subscribe only once the database is ready to store records
		return queueService.InitSubscriptions(ctx, func(ctx context.Context, event api.BuildCompletedEvent) error {
			_, err := notifierService.HandleBuildCompleted(ctx, event)
			return err
		})
	}

	return nil
}

func configureGinGonic(config *api.APIConfig, notifierHandler notifier.Handler) *gin.Engine {

	// run gin in release mode and other defaults
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = log.Logger
	gin.DisableConsoleColor()

	// Creates a router without any middleware by default
	router := gin.New()

	// Request id middleware
	router.Use(api.RequestIDMiddleware())

	// Opentracing middleware
	router.Use(api.OpenTracingMiddleware())

	// Logging middleware
	router.Use(api.ZeroLogMiddleware())

	// Recovery middleware recovers from any panics and writes a 500 if there was one.
	router.Use(gin.Recovery())

	// Gzip middleware
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// liveness and readiness
	router.GET("/liveness", func(c *gin.Context) {
		c.String(200, "I'm alive!")
	})
	router.GET("/readiness", func(c *gin.Context) {
		c.String(200, "I'm ready!")
	})

	apiKey := ""
	if config.APIServer != nil {
		apiKey = config.APIServer.APIKey
	}

	routes := router.Group("/api")
	{
		routes.POST("/builds/completed", api.APIKeyMiddleware(apiKey), notifierHandler.PostBuildCompleted)
		routes.GET("/jobs/:job/issue", notifierHandler.GetTrackedIssue)
	}

	return router
}
