package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"hkcatalog_api/internal/catalog/internal/models"
)

const categoryColumns = `category_id, parent_id, site_id, name, created_at, updated_at, created_by, updated_by`

// CategoryRepository manages the site-scoped category tree, sharded with
// its site.
type CategoryRepository struct {
	db Queryer
}

func NewCategoryRepository(db Queryer) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) CreateCategory(c *models.Category) (int64, error) {
	if err := validateCategory(c); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s
		(parent_id, site_id, name, created_at, updated_at, created_by, updated_by)
		VALUES
		($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, $4, $4)
		RETURNING category_id`, tableFor(FamilyCategories, c.SiteID))

	var id int64
	err := r.db.QueryRow(query, c.ParentID, c.SiteID, c.Name, c.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create category: %w", err)
	}
	return id, nil
}

func (r *CategoryRepository) GetCategoryByID(siteID, categoryID int64) (*models.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE category_id = $1 AND deleted_at IS NULL`,
		categoryColumns, tableFor(FamilyCategories, siteID))

	var c models.Category
	err := r.db.QueryRow(query, categoryID).Scan(
		&c.ID, &c.ParentID, &c.SiteID, &c.Name, &c.CreatedAt, &c.UpdatedAt, &c.CreatedBy, &c.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

// ListCategoriesBySite pages a site's live categories in ascending id order.
func (r *CategoryRepository) ListCategoriesBySite(siteID int64, page, pageSize int) ([]models.Category, error) {
	offset, err := pageOffset(page, pageSize)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE site_id = $1 AND deleted_at IS NULL
		ORDER BY category_id ASC LIMIT $2 OFFSET $3`,
		categoryColumns, tableFor(FamilyCategories, siteID))

	rows, err := r.db.Query(query, siteID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(
			&c.ID, &c.ParentID, &c.SiteID, &c.Name, &c.CreatedAt, &c.UpdatedAt, &c.CreatedBy, &c.UpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category rows: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) UpdateCategory(c *models.Category) error {
	if err := validateCategory(c); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, name = $2, updated_at = CURRENT_TIMESTAMP, updated_by = $3
		WHERE category_id = $4 AND deleted_at IS NULL`, tableFor(FamilyCategories, c.SiteID))

	res, err := r.db.Exec(query, c.ParentID, c.Name, c.UpdatedBy, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return requireLiveRow(res)
}

func (r *CategoryRepository) DeleteCategory(siteID, categoryID, actor int64) error {
	return softDelete(r.db, tableFor(FamilyCategories, siteID), "category_id", categoryID, actor)
}

func validateCategory(c *models.Category) error {
	if c.SiteID <= 0 {
		return &ValidationError{Field: "site_id", Reason: "must be positive"}
	}
	if c.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	return nil
}
