package business

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"hkcatalog_api/internal/catalog/internal/models"
	"hkcatalog_api/internal/catalog/internal/storage"
	"hkcatalog_api/metrics"
)

// MediaService manages product images and videos.
type MediaService struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewMediaService(db *sql.DB, logger *zap.Logger) *MediaService {
	return &MediaService{db: db, logger: logger}
}

func (s *MediaService) CreateImage(siteID int64, img *models.ProductImage) (int64, error) {
	start := time.Now()
	id, err := storage.NewImageRepository(s.db).CreateProductImage(siteID, img)
	metrics.RecordQuery("media_service", "create_image", err, time.Since(start))
	return id, err
}

func (s *MediaService) GetImage(siteID, imageID int64) (*models.ProductImage, error) {
	start := time.Now()
	img, err := storage.NewImageRepository(s.db).GetProductImageByID(siteID, imageID)
	metrics.RecordQuery("media_service", "get_image", err, time.Since(start))
	return img, err
}

func (s *MediaService) ListImagesByProduct(siteID, productID int64, page, pageSize int) ([]models.ProductImage, error) {
	start := time.Now()
	images, err := storage.NewImageRepository(s.db).ListImagesByProduct(siteID, productID, page, pageSize)
	metrics.RecordQuery("media_service", "list_images", err, time.Since(start))
	return images, err
}

func (s *MediaService) UpdateImage(siteID int64, img *models.ProductImage) error {
	start := time.Now()
	err := storage.NewImageRepository(s.db).UpdateProductImage(siteID, img)
	metrics.RecordQuery("media_service", "update_image", err, time.Since(start))
	return err
}

func (s *MediaService) DeleteImage(siteID, imageID, actor int64) error {
	start := time.Now()
	err := storage.NewImageRepository(s.db).DeleteProductImage(siteID, imageID, actor)
	metrics.RecordQuery("media_service", "delete_image", err, time.Since(start))
	return err
}

// SetCoverImage marks one image as the cover and clears the flag on the
// product's other live images, inside a transaction.
func (s *MediaService) SetCoverImage(siteID, productID, imageID, actor int64) error {
	start := time.Now()
	err := s.setCoverImage(siteID, productID, imageID, actor)
	metrics.RecordQuery("media_service", "set_cover_image", err, time.Since(start))
	return err
}

func (s *MediaService) setCoverImage(siteID, productID, imageID, actor int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	repo := storage.NewImageRepository(tx)
	images, err := repo.ListImagesByProduct(siteID, productID, 1, deleteBatchSize)
	if err != nil {
		return err
	}

	found := false
	for i := range images {
		img := images[i]
		want := img.ID == imageID
		if want {
			found = true
		}
		if img.CoverPic == want {
			continue
		}
		img.CoverPic = want
		img.UpdatedBy = actor
		if err := repo.UpdateProductImage(siteID, &img); err != nil {
			return err
		}
	}
	if !found {
		return storage.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("cover image set",
		zap.Int64("site_id", siteID),
		zap.Int64("product_id", productID),
		zap.Int64("image_id", imageID),
	)
	return nil
}

func (s *MediaService) CreateVideo(siteID int64, video *models.ProductVideo) (int64, error) {
	start := time.Now()
	id, err := storage.NewVideoRepository(s.db).CreateProductVideo(siteID, video)
	metrics.RecordQuery("media_service", "create_video", err, time.Since(start))
	return id, err
}

func (s *MediaService) GetVideo(siteID, videoID int64) (*models.ProductVideo, error) {
	start := time.Now()
	video, err := storage.NewVideoRepository(s.db).GetProductVideoByID(siteID, videoID)
	metrics.RecordQuery("media_service", "get_video", err, time.Since(start))
	return video, err
}

func (s *MediaService) ListVideosByProduct(siteID, productID int64, page, pageSize int) ([]models.ProductVideo, error) {
	start := time.Now()
	videos, err := storage.NewVideoRepository(s.db).ListVideosByProduct(siteID, productID, page, pageSize)
	metrics.RecordQuery("media_service", "list_videos", err, time.Since(start))
	return videos, err
}

func (s *MediaService) UpdateVideo(siteID int64, video *models.ProductVideo) error {
	start := time.Now()
	err := storage.NewVideoRepository(s.db).UpdateProductVideo(siteID, video)
	metrics.RecordQuery("media_service", "update_video", err, time.Since(start))
	return err
}

func (s *MediaService) DeleteVideo(siteID, videoID, actor int64) error {
	start := time.Now()
	err := storage.NewVideoRepository(s.db).DeleteProductVideo(siteID, videoID, actor)
	metrics.RecordQuery("media_service", "delete_video", err, time.Since(start))
	return err
}
