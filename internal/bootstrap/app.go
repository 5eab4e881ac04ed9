package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/documents"
	"docvault-backend/internal/owners"
	"docvault-backend/internal/shared/config"
	"docvault-backend/internal/shared/server"
	"docvault-backend/internal/shared/storage/db"
	"docvault-backend/internal/shared/storage/object"
	localstore "docvault-backend/internal/shared/storage/object/local"
	s3store "docvault-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store

	OwnersRepo    owners.Repo
	DocumentsRepo documents.Repo

	OwnersService    *owners.Service
	DocumentsService *documents.Service

	OwnersHandler    *owners.Handler
	DocumentsHandler *documents.Handler
}

// Build prepares shared dependencies and the router.
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
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    app.Config,
		Owners:    app.OwnersHandler,
		Documents: app.DocumentsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var ownersRepo owners.Repo
	var docsRepo documents.Repo

	if app.DB != nil {
		ownersRepo = &owners.PGRepo{DB: app.DB}
		docsRepo = &documents.PGRepo{DB: app.DB}
	} else {
		ownersRepo = owners.NewMemoryRepo()
		docsRepo = documents.NewMemoryRepo()
	}

	docsSvc := &documents.Service{
		Store:          app.Store,
		Repo:           docsRepo,
		Owners:         ownersRepo,
		MaxUploadBytes: app.Config.MaxUploadBytes,
	}
	ownersSvc := owners.NewService(ownersRepo, documentSource{repo: docsRepo})

	app.OwnersRepo = ownersRepo
	app.DocumentsRepo = docsRepo
	app.OwnersService = ownersSvc
	app.DocumentsService = docsSvc
	app.OwnersHandler = owners.NewHandler(ownersSvc)
	app.DocumentsHandler = documents.NewHandler(docsSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

// documentSource adapts the documents repository to the owners package's
// resolve-on-read interface.
type documentSource struct {
	repo documents.Repo
}

func (a documentSource) ListByIDs(ctx context.Context, ids []string) ([]owners.DocumentRecord, error) {
	docs, err := a.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]owners.DocumentRecord, 0, len(docs))
	for _, doc := range docs {
		out = append(out, owners.DocumentRecord{
			ID:           doc.ID,
			StoredName:   doc.StoredName,
			OriginalName: doc.OriginalName,
			ContentType:  doc.ContentType,
			SizeBytes:    doc.SizeBytes,
			PageCount:    doc.PageCount,
			CreatedAt:    doc.CreatedAt,
		})
	}
	return out, nil
}
