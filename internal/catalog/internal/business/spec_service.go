package business

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"hkcatalog_api/internal/catalog/internal/models"
	"hkcatalog_api/internal/catalog/internal/storage"
	"hkcatalog_api/metrics"
)

// SpecService manages the two specification levels under a product: main
// specs directly on the product and sub specs under a main spec.
type SpecService struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSpecService(db *sql.DB, logger *zap.Logger) *SpecService {
	return &SpecService{db: db, logger: logger}
}

func (s *SpecService) CreateMainSpec(siteID int64, spec *models.MainSpec) (int64, error) {
	start := time.Now()
	id, err := storage.NewMainSpecRepository(s.db).CreateMainSpec(siteID, spec)
	metrics.RecordQuery("spec_service", "create_main_spec", err, time.Since(start))
	return id, err
}

func (s *SpecService) GetMainSpec(siteID, mainSpecID int64) (*models.MainSpec, error) {
	start := time.Now()
	spec, err := storage.NewMainSpecRepository(s.db).GetMainSpecByID(siteID, mainSpecID)
	metrics.RecordQuery("spec_service", "get_main_spec", err, time.Since(start))
	return spec, err
}

func (s *SpecService) ListMainSpecsByProduct(siteID, productID int64, page, pageSize int) ([]models.MainSpec, error) {
	start := time.Now()
	specs, err := storage.NewMainSpecRepository(s.db).ListMainSpecsByProduct(siteID, productID, page, pageSize)
	metrics.RecordQuery("spec_service", "list_main_specs", err, time.Since(start))
	return specs, err
}

func (s *SpecService) UpdateMainSpec(siteID int64, spec *models.MainSpec) error {
	start := time.Now()
	err := storage.NewMainSpecRepository(s.db).UpdateMainSpec(siteID, spec)
	metrics.RecordQuery("spec_service", "update_main_spec", err, time.Since(start))
	return err
}

// DeleteMainSpec soft-deletes a main spec together with its live sub specs
// in one transaction.
func (s *SpecService) DeleteMainSpec(siteID, mainSpecID, actor int64) error {
	start := time.Now()
	err := s.deleteMainSpec(siteID, mainSpecID, actor)
	metrics.RecordQuery("spec_service", "delete_main_spec", err, time.Since(start))
	return err
}

func (s *SpecService) deleteMainSpec(siteID, mainSpecID, actor int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	subRepo := storage.NewSubSpecRepository(tx)
	for {
		subs, err := subRepo.ListSubSpecsByMainSpec(siteID, mainSpecID, 1, deleteBatchSize)
		if err != nil {
			return err
		}
		for _, sub := range subs {
			if err := subRepo.DeleteSubSpec(siteID, sub.ID, actor); err != nil {
				return err
			}
		}
		if len(subs) < deleteBatchSize {
			break
		}
	}

	if err := storage.NewMainSpecRepository(tx).DeleteMainSpec(siteID, mainSpecID, actor); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("main spec deleted",
		zap.Int64("site_id", siteID),
		zap.Int64("main_spec_id", mainSpecID),
		zap.Int64("actor", actor),
	)
	return nil
}

func (s *SpecService) CreateSubSpec(siteID int64, spec *models.SubSpec) (int64, error) {
	start := time.Now()
	id, err := storage.NewSubSpecRepository(s.db).CreateSubSpec(siteID, spec)
	metrics.RecordQuery("spec_service", "create_sub_spec", err, time.Since(start))
	return id, err
}

func (s *SpecService) GetSubSpec(siteID, subSpecID int64) (*models.SubSpec, error) {
	start := time.Now()
	spec, err := storage.NewSubSpecRepository(s.db).GetSubSpecByID(siteID, subSpecID)
	metrics.RecordQuery("spec_service", "get_sub_spec", err, time.Since(start))
	return spec, err
}

func (s *SpecService) ListSubSpecsByMainSpec(siteID, mainSpecID int64, page, pageSize int) ([]models.SubSpec, error) {
	start := time.Now()
	specs, err := storage.NewSubSpecRepository(s.db).ListSubSpecsByMainSpec(siteID, mainSpecID, page, pageSize)
	metrics.RecordQuery("spec_service", "list_sub_specs", err, time.Since(start))
	return specs, err
}

func (s *SpecService) UpdateSubSpec(siteID int64, spec *models.SubSpec) error {
	start := time.Now()
	err := storage.NewSubSpecRepository(s.db).UpdateSubSpec(siteID, spec)
	metrics.RecordQuery("spec_service", "update_sub_spec", err, time.Since(start))
	return err
}

func (s *SpecService) DeleteSubSpec(siteID, subSpecID, actor int64) error {
	start := time.Now()
	err := storage.NewSubSpecRepository(s.db).DeleteSubSpec(siteID, subSpecID, actor)
	metrics.RecordQuery("spec_service", "delete_sub_spec", err, time.Since(start))
	return err
}
