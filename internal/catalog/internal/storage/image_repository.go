package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"hkcatalog_api/internal/catalog/internal/models"
)

const imageColumns = `id, product_id, img_url, cover_pic, created_at, updated_at, created_by, updated_by`

// ImageRepository manages product image rows on the product's shard.
type ImageRepository struct {
	db Queryer
}

func NewImageRepository(db Queryer) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) CreateProductImage(siteID int64, img *models.ProductImage) (int64, error) {
	if img.ProductID <= 0 {
		return 0, &ValidationError{Field: "product_id", Reason: "must be positive"}
	}
	if img.ImgURL == "" {
		return 0, &ValidationError{Field: "img_url", Reason: "is required"}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s
		(product_id, img_url, cover_pic, created_at, updated_at, created_by, updated_by)
		VALUES
		($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, $4, $4)
		RETURNING id`, tableFor(FamilyImages, siteID))

	var id int64
	err := r.db.QueryRow(query, img.ProductID, img.ImgURL, img.CoverPic, img.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create product image: %w", err)
	}
	return id, nil
}

func (r *ImageRepository) GetProductImageByID(siteID, imageID int64) (*models.ProductImage, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND deleted_at IS NULL`,
		imageColumns, tableFor(FamilyImages, siteID))

	var img models.ProductImage
	err := r.db.QueryRow(query, imageID).Scan(
		&img.ID, &img.ProductID, &img.ImgURL, &img.CoverPic,
		&img.CreatedAt, &img.UpdatedAt, &img.CreatedBy, &img.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product image: %w", err)
	}
	return &img, nil
}

// ListImagesByProduct pages a product's live images, cover picture first.
func (r *ImageRepository) ListImagesByProduct(siteID, productID int64, page, pageSize int) ([]models.ProductImage, error) {
	offset, err := pageOffset(page, pageSize)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE product_id = $1 AND deleted_at IS NULL
		ORDER BY cover_pic DESC, id ASC LIMIT $2 OFFSET $3`,
		imageColumns, tableFor(FamilyImages, siteID))

	rows, err := r.db.Query(query, productID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list product images: %w", err)
	}
	defer rows.Close()

	var images []models.ProductImage
	for rows.Next() {
		var img models.ProductImage
		if err := rows.Scan(
			&img.ID, &img.ProductID, &img.ImgURL, &img.CoverPic,
			&img.CreatedAt, &img.UpdatedAt, &img.CreatedBy, &img.UpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product image row: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product image rows: %w", err)
	}
	return images, nil
}

func (r *ImageRepository) UpdateProductImage(siteID int64, img *models.ProductImage) error {
	if img.ImgURL == "" {
		return &ValidationError{Field: "img_url", Reason: "is required"}
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET img_url = $1, cover_pic = $2, updated_at = CURRENT_TIMESTAMP, updated_by = $3
		WHERE id = $4 AND deleted_at IS NULL`, tableFor(FamilyImages, siteID))

	res, err := r.db.Exec(query, img.ImgURL, img.CoverPic, img.UpdatedBy, img.ID)
	if err != nil {
		return fmt.Errorf("failed to update product image: %w", err)
	}
	return requireLiveRow(res)
}

func (r *ImageRepository) DeleteProductImage(siteID, imageID, actor int64) error {
	return softDelete(r.db, tableFor(FamilyImages, siteID), "id", imageID, actor)
}
