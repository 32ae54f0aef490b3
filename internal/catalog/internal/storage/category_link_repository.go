package storage

import (
	"fmt"

	"github.com/lib/pq"

	"hkcatalog_api/internal/catalog/internal/models"
)

// CategoryLinkRepository manages the product/category association table on
// the product's shard. The link carries no audit columns; unassigning is a
// hard delete of the association only.
type CategoryLinkRepository struct {
	db Queryer
}

func NewCategoryLinkRepository(db Queryer) *CategoryLinkRepository {
	return &CategoryLinkRepository{db: db}
}

// AssignProductToCategory links a product to a site category. Assigning an
// existing pair again is a no-op.
func (r *CategoryLinkRepository) AssignProductToCategory(siteID int64, link models.CategoryLink) error {
	if link.ProductID <= 0 {
		return &ValidationError{Field: "product_id", Reason: "must be positive"}
	}
	if link.CategoryID <= 0 {
		return &ValidationError{Field: "category_id", Reason: "must be positive"}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (product_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT (product_id, category_id) DO NOTHING`, tableFor(FamilyCategoryLinks, siteID))

	if _, err := r.db.Exec(query, link.ProductID, link.CategoryID); err != nil {
		return fmt.Errorf("failed to assign product to category: %w", err)
	}
	return nil
}

// RemoveProductFromCategory deletes one association row.
func (r *CategoryLinkRepository) RemoveProductFromCategory(siteID, productID, categoryID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE product_id = $1 AND category_id = $2`,
		tableFor(FamilyCategoryLinks, siteID))

	res, err := r.db.Exec(query, productID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to remove product from category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCategoryIDsByProduct returns the category ids a product is assigned to.
func (r *CategoryLinkRepository) GetCategoryIDsByProduct(siteID, productID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT category_id FROM %s WHERE product_id = $1 ORDER BY category_id ASC`,
		tableFor(FamilyCategoryLinks, siteID))
	return r.queryIDs(query, productID)
}

// GetProductIDsByCategory returns the product ids assigned to a category.
func (r *CategoryLinkRepository) GetProductIDsByCategory(siteID, categoryID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT product_id FROM %s WHERE category_id = $1 ORDER BY product_id ASC`,
		tableFor(FamilyCategoryLinks, siteID))
	return r.queryIDs(query, categoryID)
}

// GetCategoryIDsByProducts resolves the assignments of several products in
// one statement.
func (r *CategoryLinkRepository) GetCategoryIDsByProducts(siteID int64, productIDs []int64) (map[int64][]int64, error) {
	query := fmt.Sprintf(`SELECT product_id, category_id FROM %s WHERE product_id = ANY($1) ORDER BY product_id, category_id`,
		tableFor(FamilyCategoryLinks, siteID))

	rows, err := r.db.Query(query, pq.Array(productIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query category links: %w", err)
	}
	defer rows.Close()

	links := make(map[int64][]int64)
	for rows.Next() {
		var productID, categoryID int64
		if err := rows.Scan(&productID, &categoryID); err != nil {
			return nil, fmt.Errorf("failed to scan category link row: %w", err)
		}
		links[productID] = append(links[productID], categoryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category link rows: %w", err)
	}
	return links, nil
}

func (r *CategoryLinkRepository) queryIDs(query string, arg any) ([]int64, error) {
	rows, err := r.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query category links: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan category link id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category link rows: %w", err)
	}
	return ids, nil
}
