package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"hkcatalog_api/config"
	"hkcatalog_api/internal/catalog/app/web"
	"hkcatalog_api/internal/catalog/app/web/handlers"
	"hkcatalog_api/internal/catalog/internal/business"
	"hkcatalog_api/internal/catalog/internal/storage"
	"hkcatalog_api/pkg/dbconnect"
	"hkcatalog_api/pkg/dbconnect/migration"
)

// CatalogServer owns the catalog API lifecycle: migrations, feed imports
// and the HTTP listener.
type CatalogServer struct {
	connector dbconnect.DbConnector
	cfg       *config.AppConfig
	logger    *zap.Logger
}

func NewCatalogServer(connector dbconnect.DbConnector, cfg *config.AppConfig, logger *zap.Logger) *CatalogServer {
	return &CatalogServer{connector: connector, cfg: cfg, logger: logger}
}

func (s *CatalogServer) Run(ctx context.Context) error {
	db, err := s.connector.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	migrationApply := []migration.MigrationInterface{
		&storage.MigrationsSchema{},
		&storage.CatalogSchema{},
		&storage.ShardedCatalogTables{},
		&storage.PlatformCategoryTables{},
		&storage.FeedMetadata{},
	}
	for _, m := range migrationApply {
		if err := m.UpMigration(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	s.logger.Info("catalog migrations applied")

	for _, feed := range s.cfg.Feeds {
		updater := storage.NewFeedUpdater(db, feed.SiteID, storage.FeedSource{
			InfURL:      feed.InfURL,
			CSVURL:      feed.CSVURL,
			MetadataKey: feed.MetadataKey,
		})
		if err := updater.Update(ctx); err != nil {
			// Feed failures keep the API up; stock converges on the next run.
			s.logger.Warn("feed import failed",
				zap.Int64("site_id", feed.SiteID),
				zap.String("metadata_key", feed.MetadataKey),
				zap.Error(err),
			)
		}
	}

	productService := business.NewProductService(db, s.logger)
	specService := business.NewSpecService(db, s.logger)
	categoryService := business.NewCategoryService(db, s.logger)
	mediaService := business.NewMediaService(db, s.logger)

	mux := http.NewServeMux()
	web.RegisterRoutes(mux,
		handlers.NewProductHandler(productService, s.logger),
		handlers.NewSpecHandler(specService, s.logger),
		handlers.NewCategoryHandler(categoryService, s.logger),
		handlers.NewMediaHandler(mediaService, s.logger),
	)

	server := &http.Server{Addr: s.cfg.Server.Address, Handler: mux}
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	s.logger.Info("catalog api listening", zap.String("address", s.cfg.Server.Address))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
