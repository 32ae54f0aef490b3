package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"hkcatalog_api/internal/catalog/internal/models"
)

const platformCategoryColumns = `category_id, parent_id, name, retail, inquiry, is_sensitive, sensitive_type,
	created_at, updated_at, created_by, updated_by`

// PlatformCategoryRepository manages the platform-wide category tree. The
// table is shared across sites and not sharded.
type PlatformCategoryRepository struct {
	db Queryer
}

func NewPlatformCategoryRepository(db Queryer) *PlatformCategoryRepository {
	return &PlatformCategoryRepository{db: db}
}

func (r *PlatformCategoryRepository) CreateCategory(c *models.PlatformCategory) (int64, error) {
	if c.Name == "" {
		return 0, &ValidationError{Field: "name", Reason: "is required"}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s
		(parent_id, name, retail, inquiry, is_sensitive, sensitive_type, created_at, updated_at, created_by, updated_by)
		VALUES
		($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, $7, $7)
		RETURNING category_id`, PlatformCategoryTable)

	var id int64
	err := r.db.QueryRow(query,
		c.ParentID, c.Name, c.Retail, c.Inquiry, c.IsSensitive, c.SensitiveType, c.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create platform category: %w", err)
	}
	return id, nil
}

func (r *PlatformCategoryRepository) GetCategoryByID(categoryID int64) (*models.PlatformCategory, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE category_id = $1 AND deleted_at IS NULL`,
		platformCategoryColumns, PlatformCategoryTable)

	var c models.PlatformCategory
	err := r.db.QueryRow(query, categoryID).Scan(
		&c.ID, &c.ParentID, &c.Name, &c.Retail, &c.Inquiry, &c.IsSensitive, &c.SensitiveType,
		&c.CreatedAt, &c.UpdatedAt, &c.CreatedBy, &c.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get platform category: %w", err)
	}
	return &c, nil
}

// GetCategories returns every live platform category in ascending id order.
func (r *PlatformCategoryRepository) GetCategories() ([]models.PlatformCategory, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE deleted_at IS NULL ORDER BY category_id ASC`,
		platformCategoryColumns, PlatformCategoryTable)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list platform categories: %w", err)
	}
	defer rows.Close()

	var categories []models.PlatformCategory
	for rows.Next() {
		var c models.PlatformCategory
		if err := rows.Scan(
			&c.ID, &c.ParentID, &c.Name, &c.Retail, &c.Inquiry, &c.IsSensitive, &c.SensitiveType,
			&c.CreatedAt, &c.UpdatedAt, &c.CreatedBy, &c.UpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan platform category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate platform category rows: %w", err)
	}
	return categories, nil
}

func (r *PlatformCategoryRepository) UpdateCategory(c *models.PlatformCategory) error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, name = $2, retail = $3, inquiry = $4, is_sensitive = $5, sensitive_type = $6,
		updated_at = CURRENT_TIMESTAMP, updated_by = $7
		WHERE category_id = $8 AND deleted_at IS NULL`, PlatformCategoryTable)

	res, err := r.db.Exec(query,
		c.ParentID, c.Name, c.Retail, c.Inquiry, c.IsSensitive, c.SensitiveType, c.UpdatedBy, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update platform category: %w", err)
	}
	return requireLiveRow(res)
}

func (r *PlatformCategoryRepository) DeleteCategory(categoryID, actor int64) error {
	return softDelete(r.db, PlatformCategoryTable, "category_id", categoryID, actor)
}
