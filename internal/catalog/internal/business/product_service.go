package business

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hkcatalog_api/internal/catalog/internal/models"
	"hkcatalog_api/internal/catalog/internal/storage"
	"hkcatalog_api/metrics"
	"hkcatalog_api/pkg/textutil"
)

// maxDescriptionLength bounds stored product descriptions.
const maxDescriptionLength = 5000

// ProductService coordinates product writes that span several tables of one
// shard. Single-table reads and writes delegate straight to the repositories;
// composite writes run inside a transaction built here, so a failed spec or
// image insert rolls the product row back too.
type ProductService struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewProductService(db *sql.DB, logger *zap.Logger) *ProductService {
	return &ProductService{db: db, logger: logger}
}

// ProductDraft is everything needed to publish a product in one call.
type ProductDraft struct {
	Product     models.Product
	MainSpecs   []models.MainSpec
	Images      []models.ProductImage
	CategoryIDs []int64
}

// CreateProduct inserts the product with its specs, images and category
// links in one transaction on the site's shard. All child rows are stamped
// with the product's creator.
func (s *ProductService) CreateProduct(draft *ProductDraft) (int64, error) {
	start := time.Now()
	productID, err := s.createProduct(draft)
	metrics.RecordQuery("product_service", "create_product", err, time.Since(start))
	return productID, err
}

func (s *ProductService) createProduct(draft *ProductDraft) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin product transaction: %w", err)
	}
	defer tx.Rollback()

	siteID := draft.Product.SiteID
	actor := draft.Product.CreatedBy
	draft.Product.Description = textutil.CleanDescription(draft.Product.Description, maxDescriptionLength)

	productRepo := storage.NewProductRepository(tx)
	productID, err := productRepo.CreateProduct(&draft.Product)
	if err != nil {
		return 0, err
	}

	mainSpecRepo := storage.NewMainSpecRepository(tx)
	for i := range draft.MainSpecs {
		spec := draft.MainSpecs[i]
		spec.ProductID = productID
		spec.CreatedBy = actor
		if _, err := mainSpecRepo.CreateMainSpec(siteID, &spec); err != nil {
			return 0, err
		}
	}

	imageRepo := storage.NewImageRepository(tx)
	for i := range draft.Images {
		img := draft.Images[i]
		img.ProductID = productID
		img.CreatedBy = actor
		if _, err := imageRepo.CreateProductImage(siteID, &img); err != nil {
			return 0, err
		}
	}

	linkRepo := storage.NewCategoryLinkRepository(tx)
	for _, categoryID := range draft.CategoryIDs {
		link := models.CategoryLink{ProductID: productID, CategoryID: categoryID}
		if err := linkRepo.AssignProductToCategory(siteID, link); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit product transaction: %w", err)
	}

	coding, _ := storage.ProductCoding(productID, storage.ShardSuffix(siteID))
	s.logger.Info("product created",
		zap.Int64("site_id", siteID),
		zap.Int64("product_id", productID),
		zap.String("coding", coding),
		zap.Int64("actor", actor),
	)
	return productID, nil
}

func (s *ProductService) GetProduct(siteID, productID int64) (*models.Product, error) {
	start := time.Now()
	product, err := storage.NewProductRepository(s.db).GetProductByID(siteID, productID)
	metrics.RecordQuery("product_service", "get_product", err, time.Since(start))
	return product, err
}

func (s *ProductService) ListProducts(siteID int64, filter models.ProductFilter, page, pageSize int) ([]models.Product, error) {
	start := time.Now()
	products, err := storage.NewProductRepository(s.db).ListProducts(siteID, filter, page, pageSize)
	metrics.RecordQuery("product_service", "list_products", err, time.Since(start))
	return products, err
}

func (s *ProductService) UpdateProduct(product *models.Product) error {
	start := time.Now()
	product.Description = textutil.CleanDescription(product.Description, maxDescriptionLength)
	err := storage.NewProductRepository(s.db).UpdateProduct(product)
	metrics.RecordQuery("product_service", "update_product", err, time.Since(start))
	return err
}

// DeleteProduct soft-deletes the product row and its live specs, images,
// videos and category links in one transaction, so a deleted product keeps
// no live children behind.
func (s *ProductService) DeleteProduct(siteID, productID, actor int64) error {
	start := time.Now()
	err := s.deleteProduct(siteID, productID, actor)
	metrics.RecordQuery("product_service", "delete_product", err, time.Since(start))
	return err
}

func (s *ProductService) deleteProduct(siteID, productID, actor int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if err := storage.NewProductRepository(tx).DeleteProduct(siteID, productID, actor); err != nil {
		return err
	}

	// Deleting shrinks the live set, so every pass reads the first page.
	mainSpecRepo := storage.NewMainSpecRepository(tx)
	subSpecRepo := storage.NewSubSpecRepository(tx)
	for {
		specs, err := mainSpecRepo.ListMainSpecsByProduct(siteID, productID, 1, deleteBatchSize)
		if err != nil {
			return err
		}
		for _, spec := range specs {
			if err := s.deleteSubSpecs(subSpecRepo, siteID, spec.ID, actor); err != nil {
				return err
			}
			if err := mainSpecRepo.DeleteMainSpec(siteID, spec.ID, actor); err != nil {
				return err
			}
		}
		if len(specs) < deleteBatchSize {
			break
		}
	}

	imageRepo := storage.NewImageRepository(tx)
	for {
		images, err := imageRepo.ListImagesByProduct(siteID, productID, 1, deleteBatchSize)
		if err != nil {
			return err
		}
		for _, img := range images {
			if err := imageRepo.DeleteProductImage(siteID, img.ID, actor); err != nil {
				return err
			}
		}
		if len(images) < deleteBatchSize {
			break
		}
	}

	videoRepo := storage.NewVideoRepository(tx)
	for {
		videos, err := videoRepo.ListVideosByProduct(siteID, productID, 1, deleteBatchSize)
		if err != nil {
			return err
		}
		for _, video := range videos {
			if err := videoRepo.DeleteProductVideo(siteID, video.ID, actor); err != nil {
				return err
			}
		}
		if len(videos) < deleteBatchSize {
			break
		}
	}

	linkRepo := storage.NewCategoryLinkRepository(tx)
	categoryIDs, err := linkRepo.GetCategoryIDsByProduct(siteID, productID)
	if err != nil {
		return err
	}
	for _, categoryID := range categoryIDs {
		if err := linkRepo.RemoveProductFromCategory(siteID, productID, categoryID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}

	s.logger.Info("product deleted",
		zap.Int64("site_id", siteID),
		zap.Int64("product_id", productID),
		zap.Int64("actor", actor),
	)
	return nil
}

const deleteBatchSize = 200

func (s *ProductService) deleteSubSpecs(repo *storage.SubSpecRepository, siteID, mainSpecID, actor int64) error {
	for {
		subs, err := repo.ListSubSpecsByMainSpec(siteID, mainSpecID, 1, deleteBatchSize)
		if err != nil {
			return err
		}
		for _, sub := range subs {
			if err := repo.DeleteSubSpec(siteID, sub.ID, actor); err != nil {
				return err
			}
		}
		if len(subs) < deleteBatchSize {
			return nil
		}
	}
}

// SetInventory writes an absolute stock level on a product, main spec or
// sub spec row.
func (s *ProductService) SetInventory(target storage.InventoryTarget, value int, actor int64) error {
	start := time.Now()
	err := storage.NewInventoryRepository(s.db).SetInventory(target, value, actor)
	metrics.RecordQuery("product_service", "set_inventory", err, time.Since(start))
	return err
}

// DecrementInventory reserves stock for an order. ErrInsufficientStock means
// the row is live but does not carry enough units.
func (s *ProductService) DecrementInventory(target storage.InventoryTarget, delta int, actor int64) error {
	start := time.Now()
	err := storage.NewInventoryRepository(s.db).DecrementInventory(target, delta, actor)
	metrics.RecordQuery("product_service", "decrement_inventory", err, time.Since(start))
	return err
}

// IncrementInventory returns stock, e.g. on a cancelled order.
func (s *ProductService) IncrementInventory(target storage.InventoryTarget, delta int, actor int64) error {
	start := time.Now()
	err := storage.NewInventoryRepository(s.db).IncrementInventory(target, delta, actor)
	metrics.RecordQuery("product_service", "increment_inventory", err, time.Since(start))
	return err
}

// ReconcileProductInventory rewrites the product's denormalized stock from
// the sum of its live main specs and returns the new total.
func (s *ProductService) ReconcileProductInventory(siteID, productID, actor int64) (int, error) {
	start := time.Now()
	total, err := storage.NewInventoryRepository(s.db).ReconcileProductInventory(siteID, productID, actor)
	metrics.RecordQuery("product_service", "reconcile_inventory", err, time.Since(start))
	if err == nil {
		s.logger.Info("product inventory reconciled",
			zap.Int64("site_id", siteID),
			zap.Int64("product_id", productID),
			zap.Int("total", total),
		)
	}
	return total, err
}
