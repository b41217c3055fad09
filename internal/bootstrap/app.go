package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/objectdoc/internal/config"
	"github.com/locvowork/objectdoc/internal/database"
	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/locvowork/objectdoc/internal/generator"
	"github.com/locvowork/objectdoc/internal/handler"
	"github.com/locvowork/objectdoc/internal/logger"
	"github.com/locvowork/objectdoc/internal/repository"
	"github.com/locvowork/objectdoc/internal/selector"
	"github.com/locvowork/objectdoc/internal/service"
	"github.com/locvowork/objectdoc/internal/sfclient"
)

// Options are the command line inputs.
type Options struct {
	ConfigPath string
	EnvFiles   []string
}

type App struct {
	Echo    *echo.Echo
	DB      *sql.DB
	Client  domain.PlatformClient
	Config  *config.DocumentConfig
	Service service.DocumentService
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context, opts Options) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(opts.EnvFiles...); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	env := config.DefaultEnvConfig

	// Initialize logging
	logger.InitLogging(env.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	if err := env.ValidateCredentials(); err != nil {
		return err
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	docCfg, err := config.LoadDocumentConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load document config: %w", err)
	}
	a.Config = docCfg
	logger.InfoLog(ctx, "Loaded %s: %d columns, picklist format %s", configPath, len(docCfg.Columns), docCfg.PicklistFormat)

	client, err := sfclient.Login(ctx, sfclient.Credentials{
		Username:      env.SF_USERNAME,
		Password:      env.SF_PASSWORD,
		SecurityToken: env.SF_SECURITY_TOKEN,
		LoginURL:      env.SF_LOGIN_URL,
	},
		sfclient.WithAPIVersion(env.SF_API_VERSION),
		sfclient.WithRetry(2, sfclient.ExponentialBackoff(500*time.Millisecond)),
	)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	a.Client = client

	repo, err := a.initRepository(ctx, env)
	if err != nil {
		return err
	}

	outputDir := docCfg.Output.Dir
	if outputDir == "" {
		outputDir = env.OUTPUT_DIR
	}
	a.Service = service.NewDocumentService(generator.Deps{
		Client:    client,
		Config:    docCfg,
		OutputDir: outputDir,
	}, repo)

	a.RegisterMiddlewares()
	a.RegisterRoutes(handler.NewDocumentHandler(a.Service))
	return nil
}

// initRepository connects to Postgres when DB_HOST is set. Without it the
// history is not kept.
func (a *App) initRepository(ctx context.Context, env config.EnvConfig) (domain.DocumentRepository, error) {
	if !env.DatabaseEnabled() {
		logger.InfoLog(ctx, "DB_HOST not set, generation history disabled")
		return repository.NoopDocumentRepository{}, nil
	}

	dbConfig := database.Config{
		Host:            env.DB_HOST,
		Port:            env.DB_PORT,
		User:            env.DB_USER,
		Password:        env.DB_PASSWORD,
		DBName:          env.DB_NAME,
		SSLMode:         env.DB_SSL_MODE,
		MaxOpenConns:    env.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    env.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: env.DB_CONN_MAX_LIFETIME,
	}
	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	a.DB = db
	return repository.NewDocumentRepository(db), nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(docHandler *handler.DocumentHandler) {
	a.Echo.GET("/objects", docHandler.ListObjectsHandler)

	docGroup := a.Echo.Group("/documents")
	docGroup.POST("", docHandler.GenerateHandler)
	docGroup.GET("/history", docHandler.HistoryHandler)
	docGroup.GET("/:object/download", docHandler.DownloadHandler)
}

// RunBatch generates documents for the configured targets, or for objects
// picked through prompter when the config names none.
func (a *App) RunBatch(ctx context.Context, prompter selector.Prompter) (generator.BatchResult, error) {
	targets, err := ResolveTargets(ctx, a.Client, a.Config, prompter)
	if err != nil {
		return generator.BatchResult{}, err
	}
	logger.InfoLog(ctx, "Generating %d documents: %v", len(targets), targets)
	return a.Service.Generate(ctx, targets)
}

func ResolveTargets(ctx context.Context, client domain.PlatformClient, cfg *config.DocumentConfig, prompter selector.Prompter) ([]string, error) {
	if targets := cfg.Targets(); len(targets) > 0 {
		return targets, nil
	}
	if prompter == nil {
		return nil, fmt.Errorf("no target objects configured")
	}

	logger.InfoLog(ctx, "No target objects configured, fetching object list")
	global, err := client.DescribeGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	objects := selector.FilterObjects(global)
	logger.InfoLog(ctx, "%d objects available", len(objects))
	return selector.SelectInteractively(ctx, prompter, objects)
}

func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
	if err := logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
	}
}
