package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thesminc/POCkit-sub000/internal/capability"
	"github.com/thesminc/POCkit-sub000/internal/feasibility"
	"github.com/thesminc/POCkit-sub000/internal/knowledge"
	"github.com/thesminc/POCkit-sub000/internal/requirements"
	"github.com/thesminc/POCkit-sub000/internal/scoring"
	"github.com/thesminc/POCkit-sub000/internal/shared/config"
	"github.com/thesminc/POCkit-sub000/internal/shared/server"
	"github.com/thesminc/POCkit-sub000/internal/shared/storage/db"
	"github.com/thesminc/POCkit-sub000/internal/shared/storage/object"
	localstore "github.com/thesminc/POCkit-sub000/internal/shared/storage/object/local"
	s3store "github.com/thesminc/POCkit-sub000/internal/shared/storage/object/s3"
)

// App holds shared dependencies wired by Build.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	KnowledgeRepo    knowledge.Repo
	KnowledgeService *knowledge.Service
	Index            *capability.Index
	Scorer           *scoring.Scorer
	Evaluator        *feasibility.Evaluator

	KnowledgeHandler    *knowledge.Handler
	RequirementsHandler *requirements.Handler
	CapabilityHandler   *capability.Handler
	ScoringHandler      *scoring.Handler
	FeasibilityHandler  *feasibility.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		KnowledgeHandler:    app.KnowledgeHandler,
		RequirementsHandler: app.RequirementsHandler,
		CapabilityHandler:   app.CapabilityHandler,
		ScoringHandler:      app.ScoringHandler,
		FeasibilityHandler:  app.FeasibilityHandler,
	})

	return app, nil
}

// buildDB connects to Postgres when configured. The connection is only
// required for the postgres backend; the other backends leave it nil.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.StoreBackend != "postgres" {
		return nil, nil
	}

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(ctx context.Context, app *App) error {
	repo, err := buildKnowledgeRepo(app)
	if err != nil {
		return err
	}

	svc := &knowledge.Service{Repo: repo, Store: app.Store}

	if app.Config.SeedKnowledgeDir {
		count, err := svc.IngestDir(ctx, app.Config.KnowledgeDir)
		if err != nil {
			return fmt.Errorf("seed knowledge base from %s: %w", app.Config.KnowledgeDir, err)
		}
		log.Printf("bootstrap: seeded %d documents from %s", count, app.Config.KnowledgeDir)
	}

	maturity, err := buildMaturityConfig(app.Config)
	if err != nil {
		return err
	}

	index := capability.NewIndex(svc.Source(), app.Config.SearchWorkers)

	app.KnowledgeRepo = repo
	app.KnowledgeService = svc
	app.Index = index
	app.Scorer = scoring.NewScorer(index, maturity, svc)
	app.Evaluator = feasibility.NewEvaluator(index)

	app.KnowledgeHandler = knowledge.NewHandler(svc)
	app.RequirementsHandler = requirements.NewHandler()
	app.CapabilityHandler = capability.NewHandler(index)
	app.ScoringHandler = scoring.NewHandler(app.Scorer)
	app.FeasibilityHandler = feasibility.NewHandler(app.Evaluator)

	return nil
}

// buildKnowledgeRepo selects the catalog backend. The dir backend keeps the
// catalog in memory; Build seeds it from KnowledgeDir afterwards.
func buildKnowledgeRepo(app *App) (knowledge.Repo, error) {
	switch app.Config.StoreBackend {
	case "postgres":
		if app.DB != nil {
			return &knowledge.PGRepo{DB: app.DB}, nil
		}
		return knowledge.NewMemoryRepo(), nil
	case "sqlite":
		repo, err := knowledge.NewSQLiteRepo(app.Config.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite catalog: %w", err)
		}
		return repo, nil
	default:
		return knowledge.NewMemoryRepo(), nil
	}
}

func buildMaturityConfig(cfg config.Config) (scoring.MaturityConfig, error) {
	if strings.TrimSpace(cfg.MaturityConfig) == "" {
		return scoring.DefaultMaturityConfig(), nil
	}
	maturity, err := scoring.LoadMaturityConfig(cfg.MaturityConfig)
	if err != nil {
		return scoring.MaturityConfig{}, err
	}
	return maturity, nil
}
