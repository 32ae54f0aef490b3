package business

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"hkcatalog_api/internal/catalog/internal/models"
	"hkcatalog_api/internal/catalog/internal/storage"
	"hkcatalog_api/metrics"
)

// CategoryService covers both category kinds: per-site categories living on
// the site's shard, and the unsharded platform-wide taxonomy.
type CategoryService struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewCategoryService(db *sql.DB, logger *zap.Logger) *CategoryService {
	return &CategoryService{db: db, logger: logger}
}

func (s *CategoryService) CreateCategory(c *models.Category) (int64, error) {
	start := time.Now()
	id, err := storage.NewCategoryRepository(s.db).CreateCategory(c)
	metrics.RecordQuery("category_service", "create_category", err, time.Since(start))
	if err == nil {
		s.logger.Info("site category created",
			zap.Int64("site_id", c.SiteID), zap.Int64("category_id", id))
	}
	return id, err
}

func (s *CategoryService) GetCategory(siteID, categoryID int64) (*models.Category, error) {
	start := time.Now()
	c, err := storage.NewCategoryRepository(s.db).GetCategoryByID(siteID, categoryID)
	metrics.RecordQuery("category_service", "get_category", err, time.Since(start))
	return c, err
}

func (s *CategoryService) ListCategories(siteID int64, page, pageSize int) ([]models.Category, error) {
	start := time.Now()
	categories, err := storage.NewCategoryRepository(s.db).ListCategoriesBySite(siteID, page, pageSize)
	metrics.RecordQuery("category_service", "list_categories", err, time.Since(start))
	return categories, err
}

func (s *CategoryService) UpdateCategory(c *models.Category) error {
	start := time.Now()
	err := storage.NewCategoryRepository(s.db).UpdateCategory(c)
	metrics.RecordQuery("category_service", "update_category", err, time.Since(start))
	return err
}

func (s *CategoryService) DeleteCategory(siteID, categoryID, actor int64) error {
	start := time.Now()
	err := storage.NewCategoryRepository(s.db).DeleteCategory(siteID, categoryID, actor)
	metrics.RecordQuery("category_service", "delete_category", err, time.Since(start))
	return err
}

func (s *CategoryService) CreatePlatformCategory(c *models.PlatformCategory) (int64, error) {
	start := time.Now()
	id, err := storage.NewPlatformCategoryRepository(s.db).CreateCategory(c)
	metrics.RecordQuery("category_service", "create_platform_category", err, time.Since(start))
	if err == nil {
		s.logger.Info("platform category created", zap.Int64("category_id", id))
	}
	return id, err
}

func (s *CategoryService) GetPlatformCategory(categoryID int64) (*models.PlatformCategory, error) {
	start := time.Now()
	c, err := storage.NewPlatformCategoryRepository(s.db).GetCategoryByID(categoryID)
	metrics.RecordQuery("category_service", "get_platform_category", err, time.Since(start))
	return c, err
}

// GetPlatformCategories returns the whole live platform taxonomy; it is
// small enough to serve unpaged.
func (s *CategoryService) GetPlatformCategories() ([]models.PlatformCategory, error) {
	start := time.Now()
	categories, err := storage.NewPlatformCategoryRepository(s.db).GetCategories()
	metrics.RecordQuery("category_service", "get_platform_categories", err, time.Since(start))
	return categories, err
}

func (s *CategoryService) UpdatePlatformCategory(c *models.PlatformCategory) error {
	start := time.Now()
	err := storage.NewPlatformCategoryRepository(s.db).UpdateCategory(c)
	metrics.RecordQuery("category_service", "update_platform_category", err, time.Since(start))
	return err
}

func (s *CategoryService) DeletePlatformCategory(categoryID, actor int64) error {
	start := time.Now()
	err := storage.NewPlatformCategoryRepository(s.db).DeleteCategory(categoryID, actor)
	metrics.RecordQuery("category_service", "delete_platform_category", err, time.Since(start))
	return err
}

func (s *CategoryService) AssignProductToCategory(siteID int64, link models.CategoryLink) error {
	start := time.Now()
	err := storage.NewCategoryLinkRepository(s.db).AssignProductToCategory(siteID, link)
	metrics.RecordQuery("category_service", "assign_product", err, time.Since(start))
	return err
}

func (s *CategoryService) RemoveProductFromCategory(siteID, productID, categoryID int64) error {
	start := time.Now()
	err := storage.NewCategoryLinkRepository(s.db).RemoveProductFromCategory(siteID, productID, categoryID)
	metrics.RecordQuery("category_service", "remove_product", err, time.Since(start))
	return err
}

func (s *CategoryService) GetCategoryIDsByProduct(siteID, productID int64) ([]int64, error) {
	start := time.Now()
	ids, err := storage.NewCategoryLinkRepository(s.db).GetCategoryIDsByProduct(siteID, productID)
	metrics.RecordQuery("category_service", "categories_by_product", err, time.Since(start))
	return ids, err
}

func (s *CategoryService) GetProductIDsByCategory(siteID, categoryID int64) ([]int64, error) {
	start := time.Now()
	ids, err := storage.NewCategoryLinkRepository(s.db).GetProductIDsByCategory(siteID, categoryID)
	metrics.RecordQuery("category_service", "products_by_category", err, time.Since(start))
	return ids, err
}

func (s *CategoryService) GetCategoryIDsByProducts(siteID int64, productIDs []int64) (map[int64][]int64, error) {
	start := time.Now()
	ids, err := storage.NewCategoryLinkRepository(s.db).GetCategoryIDsByProducts(siteID, productIDs)
	metrics.RecordQuery("category_service", "categories_by_products", err, time.Since(start))
	return ids, err
}
