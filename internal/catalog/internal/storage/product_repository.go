package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hkcatalog_api/internal/catalog/internal/models"
)

const productColumns = `product_id, site_id, platform_category_id, name, description, type, price, member_price,
	supply_status, inventory, scheduled_release_time, scheduled_offshelf_time, auto_offshelf_soldout,
	only_member, status, created_at, updated_at, created_by, updated_by`

type ProductRepository struct {
	db Queryer
}

func NewProductRepository(db Queryer) *ProductRepository {
	return &ProductRepository{db: db}
}

// CreateProduct inserts a product into its site's shard table and returns
// the generated product id. The creating actor is stamped on both audit
// columns.
func (r *ProductRepository) CreateProduct(p *models.Product) (int64, error) {
	if err := validateProduct(p); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s
		(site_id, platform_category_id, name, description, type, price, member_price,
		supply_status, inventory, scheduled_release_time, scheduled_offshelf_time, auto_offshelf_soldout,
		only_member, status, created_at, updated_at, created_by, updated_by)
		VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, $15, $15)
		RETURNING product_id`, tableFor(FamilyProducts, p.SiteID))

	var id int64
	err := r.db.QueryRow(query,
		p.SiteID, p.PlatformCategoryID, p.Name, p.Description, p.Type, p.Price, p.MemberPrice,
		p.SupplyStatus, p.Inventory, p.ScheduledReleaseTime, p.ScheduledOffshelfTime, p.AutoOffshelfSoldout,
		p.OnlyMember, p.Status, p.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return id, nil
}

// GetProductByID returns a live product or ErrNotFound.
func (r *ProductRepository) GetProductByID(siteID, productID int64) (*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE product_id = $1 AND deleted_at IS NULL`,
		productColumns, tableFor(FamilyProducts, siteID))

	var p models.Product
	err := r.db.QueryRow(query, productID).Scan(
		&p.ID, &p.SiteID, &p.PlatformCategoryID, &p.Name, &p.Description, &p.Type, &p.Price, &p.MemberPrice,
		&p.SupplyStatus, &p.Inventory, &p.ScheduledReleaseTime, &p.ScheduledOffshelfTime, &p.AutoOffshelfSoldout,
		&p.OnlyMember, &p.Status, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// ListProducts pages through a site's live products, newest id first.
// Every filter clause targets the same shard as the product table itself.
func (r *ProductRepository) ListProducts(siteID int64, filter models.ProductFilter, page, pageSize int) ([]models.Product, error) {
	offset, err := pageOffset(page, pageSize)
	if err != nil {
		return nil, err
	}

	productTable := tableFor(FamilyProducts, siteID)
	linkTable := tableFor(FamilyCategoryLinks, siteID)
	mainSpecTable := tableFor(FamilyMainSpecs, siteID)

	var sb strings.Builder
	fmt.Fprintf(&sb, `SELECT %s FROM %s WHERE deleted_at IS NULL`, productColumns, productTable)

	var args []any
	if filter.NameLike != "" {
		args = append(args, filter.NameLike)
		fmt.Fprintf(&sb, ` AND name LIKE '%%' || $%d || '%%'`, len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		fmt.Fprintf(&sb, ` AND status = $%d`, len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		fmt.Fprintf(&sb, ` AND product_id IN (SELECT product_id FROM %s WHERE category_id = $%d)`, linkTable, len(args))
	}

	switch filter.InventoryStatus {
	case models.InventoryAny:
	case models.InventoryNormal:
		sb.WriteString(` AND inventory > 0`)
	case models.InventoryNone:
		sb.WriteString(` AND inventory <= 0`)
	case models.InventoryPartial:
		fmt.Fprintf(&sb, ` AND inventory > 0 AND EXISTS (SELECT 1 FROM %s ms
			WHERE ms.product_id = %s.product_id AND ms.deleted_at IS NULL AND ms.inventory = 0)`,
			mainSpecTable, productTable)
	default:
		return nil, &ValidationError{Field: "inventory_status", Reason: fmt.Sprintf("unknown value %q", filter.InventoryStatus)}
	}

	args = append(args, pageSize, offset)
	fmt.Fprintf(&sb, ` ORDER BY product_id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.SiteID, &p.PlatformCategoryID, &p.Name, &p.Description, &p.Type, &p.Price, &p.MemberPrice,
			&p.SupplyStatus, &p.Inventory, &p.ScheduledReleaseTime, &p.ScheduledOffshelfTime, &p.AutoOffshelfSoldout,
			&p.OnlyMember, &p.Status, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product rows: %w", err)
	}
	return products, nil
}

// UpdateProduct rewrites the mutable columns of a live product. The site id
// is deliberately not updatable: it pins the row to its shard.
func (r *ProductRepository) UpdateProduct(p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET platform_category_id = $1, name = $2, description = $3, type = $4, price = $5, member_price = $6,
		supply_status = $7, inventory = $8, scheduled_release_time = $9, scheduled_offshelf_time = $10,
		auto_offshelf_soldout = $11, only_member = $12, status = $13, updated_at = CURRENT_TIMESTAMP, updated_by = $14
		WHERE product_id = $15 AND deleted_at IS NULL`, tableFor(FamilyProducts, p.SiteID))

	res, err := r.db.Exec(query,
		p.PlatformCategoryID, p.Name, p.Description, p.Type, p.Price, p.MemberPrice,
		p.SupplyStatus, p.Inventory, p.ScheduledReleaseTime, p.ScheduledOffshelfTime,
		p.AutoOffshelfSoldout, p.OnlyMember, p.Status, p.UpdatedBy, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireLiveRow(res)
}

// DeleteProduct soft-deletes a product, stamping the acting operator.
// Deleting an already-deleted product is a no-op.
func (r *ProductRepository) DeleteProduct(siteID, productID, actor int64) error {
	return softDelete(r.db, tableFor(FamilyProducts, siteID), "product_id", productID, actor)
}

func validateProduct(p *models.Product) error {
	if p.SiteID <= 0 {
		return &ValidationError{Field: "site_id", Reason: "must be positive"}
	}
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if p.Inventory < 0 {
		return &ValidationError{Field: "inventory", Reason: "must not be negative"}
	}
	return nil
}
