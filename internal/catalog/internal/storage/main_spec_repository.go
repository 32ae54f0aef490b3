package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"hkcatalog_api/internal/catalog/internal/models"
)

const mainSpecColumns = `main_spec_id, product_id, name, img_url, price, member_price, supply_status, inventory,
	created_at, updated_at, created_by, updated_by`

// MainSpecRepository manages the first variant level under a product.
// Every row lives on the shard of the product's site.
type MainSpecRepository struct {
	db Queryer
}

func NewMainSpecRepository(db Queryer) *MainSpecRepository {
	return &MainSpecRepository{db: db}
}

func (r *MainSpecRepository) CreateMainSpec(siteID int64, spec *models.MainSpec) (int64, error) {
	if err := validateMainSpec(spec); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s
		(product_id, name, img_url, price, member_price, supply_status, inventory, created_at, updated_at, created_by, updated_by)
		VALUES
		($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, $8, $8)
		RETURNING main_spec_id`, tableFor(FamilyMainSpecs, siteID))

	var id int64
	err := r.db.QueryRow(query,
		spec.ProductID, spec.Name, spec.ImgURL, spec.Price, spec.MemberPrice,
		spec.SupplyStatus, spec.Inventory, spec.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create main spec: %w", err)
	}
	return id, nil
}

func (r *MainSpecRepository) GetMainSpecByID(siteID, mainSpecID int64) (*models.MainSpec, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE main_spec_id = $1 AND deleted_at IS NULL`,
		mainSpecColumns, tableFor(FamilyMainSpecs, siteID))

	var spec models.MainSpec
	err := r.db.QueryRow(query, mainSpecID).Scan(
		&spec.ID, &spec.ProductID, &spec.Name, &spec.ImgURL, &spec.Price, &spec.MemberPrice,
		&spec.SupplyStatus, &spec.Inventory, &spec.CreatedAt, &spec.UpdatedAt, &spec.CreatedBy, &spec.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get main spec: %w", err)
	}
	return &spec, nil
}

// ListMainSpecsByProduct pages the live main specs of one product in
// ascending id order.
func (r *MainSpecRepository) ListMainSpecsByProduct(siteID, productID int64, page, pageSize int) ([]models.MainSpec, error) {
	offset, err := pageOffset(page, pageSize)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE product_id = $1 AND deleted_at IS NULL
		ORDER BY main_spec_id ASC LIMIT $2 OFFSET $3`,
		mainSpecColumns, tableFor(FamilyMainSpecs, siteID))

	rows, err := r.db.Query(query, productID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list main specs: %w", err)
	}
	defer rows.Close()

	var specs []models.MainSpec
	for rows.Next() {
		var spec models.MainSpec
		if err := rows.Scan(
			&spec.ID, &spec.ProductID, &spec.Name, &spec.ImgURL, &spec.Price, &spec.MemberPrice,
			&spec.SupplyStatus, &spec.Inventory, &spec.CreatedAt, &spec.UpdatedAt, &spec.CreatedBy, &spec.UpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan main spec row: %w", err)
		}
		specs = append(specs, spec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate main spec rows: %w", err)
	}
	return specs, nil
}

func (r *MainSpecRepository) UpdateMainSpec(siteID int64, spec *models.MainSpec) error {
	if err := validateMainSpec(spec); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, img_url = $2, price = $3, member_price = $4, supply_status = $5, inventory = $6,
		updated_at = CURRENT_TIMESTAMP, updated_by = $7
		WHERE main_spec_id = $8 AND deleted_at IS NULL`, tableFor(FamilyMainSpecs, siteID))

	res, err := r.db.Exec(query,
		spec.Name, spec.ImgURL, spec.Price, spec.MemberPrice, spec.SupplyStatus, spec.Inventory,
		spec.UpdatedBy, spec.ID)
	if err != nil {
		return fmt.Errorf("failed to update main spec: %w", err)
	}
	return requireLiveRow(res)
}

func (r *MainSpecRepository) DeleteMainSpec(siteID, mainSpecID, actor int64) error {
	return softDelete(r.db, tableFor(FamilyMainSpecs, siteID), "main_spec_id", mainSpecID, actor)
}

func validateMainSpec(spec *models.MainSpec) error {
	if spec.ProductID <= 0 {
		return &ValidationError{Field: "product_id", Reason: "must be positive"}
	}
	if spec.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if spec.Inventory < 0 {
		return &ValidationError{Field: "inventory", Reason: "must not be negative"}
	}
	return nil
}
