package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"hkcatalog_api/internal/catalog/internal/models"
)

const videoColumns = `id, product_id, video_url, created_at, updated_at, created_by, updated_by`

// VideoRepository manages product video rows on the product's shard.
type VideoRepository struct {
	db Queryer
}

func NewVideoRepository(db Queryer) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) CreateProductVideo(siteID int64, video *models.ProductVideo) (int64, error) {
	if video.ProductID <= 0 {
		return 0, &ValidationError{Field: "product_id", Reason: "must be positive"}
	}
	if video.VideoURL == "" {
		return 0, &ValidationError{Field: "video_url", Reason: "is required"}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s
		(product_id, video_url, created_at, updated_at, created_by, updated_by)
		VALUES
		($1, $2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, $3, $3)
		RETURNING id`, tableFor(FamilyVideos, siteID))

	var id int64
	err := r.db.QueryRow(query, video.ProductID, video.VideoURL, video.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create product video: %w", err)
	}
	return id, nil
}

func (r *VideoRepository) GetProductVideoByID(siteID, videoID int64) (*models.ProductVideo, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND deleted_at IS NULL`,
		videoColumns, tableFor(FamilyVideos, siteID))

	var video models.ProductVideo
	err := r.db.QueryRow(query, videoID).Scan(
		&video.ID, &video.ProductID, &video.VideoURL,
		&video.CreatedAt, &video.UpdatedAt, &video.CreatedBy, &video.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product video: %w", err)
	}
	return &video, nil
}

func (r *VideoRepository) ListVideosByProduct(siteID, productID int64, page, pageSize int) ([]models.ProductVideo, error) {
	offset, err := pageOffset(page, pageSize)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE product_id = $1 AND deleted_at IS NULL
		ORDER BY id ASC LIMIT $2 OFFSET $3`,
		videoColumns, tableFor(FamilyVideos, siteID))

	rows, err := r.db.Query(query, productID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list product videos: %w", err)
	}
	defer rows.Close()

	var videos []models.ProductVideo
	for rows.Next() {
		var video models.ProductVideo
		if err := rows.Scan(
			&video.ID, &video.ProductID, &video.VideoURL,
			&video.CreatedAt, &video.UpdatedAt, &video.CreatedBy, &video.UpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product video row: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product video rows: %w", err)
	}
	return videos, nil
}

func (r *VideoRepository) UpdateProductVideo(siteID int64, video *models.ProductVideo) error {
	if video.VideoURL == "" {
		return &ValidationError{Field: "video_url", Reason: "is required"}
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET video_url = $1, updated_at = CURRENT_TIMESTAMP, updated_by = $2
		WHERE id = $3 AND deleted_at IS NULL`, tableFor(FamilyVideos, siteID))

	res, err := r.db.Exec(query, video.VideoURL, video.UpdatedBy, video.ID)
	if err != nil {
		return fmt.Errorf("failed to update product video: %w", err)
	}
	return requireLiveRow(res)
}

func (r *VideoRepository) DeleteProductVideo(siteID, videoID, actor int64) error {
	return softDelete(r.db, tableFor(FamilyVideos, siteID), "id", videoID, actor)
}
