package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"hkcatalog_api/internal/catalog/internal/models"
)

const subSpecColumns = `sub_spec_id, main_spec_id, name, price, member_price, supply_status, inventory,
	created_at, updated_at, created_by, updated_by`

// SubSpecRepository manages the second variant level, keyed by main spec.
type SubSpecRepository struct {
	db Queryer
}

func NewSubSpecRepository(db Queryer) *SubSpecRepository {
	return &SubSpecRepository{db: db}
}

func (r *SubSpecRepository) CreateSubSpec(siteID int64, spec *models.SubSpec) (int64, error) {
	if err := validateSubSpec(spec); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s
		(main_spec_id, name, price, member_price, supply_status, inventory, created_at, updated_at, created_by, updated_by)
		VALUES
		($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, $7, $7)
		RETURNING sub_spec_id`, tableFor(FamilySubSpecs, siteID))

	var id int64
	err := r.db.QueryRow(query,
		spec.MainSpecID, spec.Name, spec.Price, spec.MemberPrice,
		spec.SupplyStatus, spec.Inventory, spec.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create sub spec: %w", err)
	}
	return id, nil
}

func (r *SubSpecRepository) GetSubSpecByID(siteID, subSpecID int64) (*models.SubSpec, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE sub_spec_id = $1 AND deleted_at IS NULL`,
		subSpecColumns, tableFor(FamilySubSpecs, siteID))

	var spec models.SubSpec
	err := r.db.QueryRow(query, subSpecID).Scan(
		&spec.ID, &spec.MainSpecID, &spec.Name, &spec.Price, &spec.MemberPrice,
		&spec.SupplyStatus, &spec.Inventory, &spec.CreatedAt, &spec.UpdatedAt, &spec.CreatedBy, &spec.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sub spec: %w", err)
	}
	return &spec, nil
}

func (r *SubSpecRepository) ListSubSpecsByMainSpec(siteID, mainSpecID int64, page, pageSize int) ([]models.SubSpec, error) {
	offset, err := pageOffset(page, pageSize)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE main_spec_id = $1 AND deleted_at IS NULL
		ORDER BY sub_spec_id ASC LIMIT $2 OFFSET $3`,
		subSpecColumns, tableFor(FamilySubSpecs, siteID))

	rows, err := r.db.Query(query, mainSpecID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub specs: %w", err)
	}
	defer rows.Close()

	var specs []models.SubSpec
	for rows.Next() {
		var spec models.SubSpec
		if err := rows.Scan(
			&spec.ID, &spec.MainSpecID, &spec.Name, &spec.Price, &spec.MemberPrice,
			&spec.SupplyStatus, &spec.Inventory, &spec.CreatedAt, &spec.UpdatedAt, &spec.CreatedBy, &spec.UpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sub spec row: %w", err)
		}
		specs = append(specs, spec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sub spec rows: %w", err)
	}
	return specs, nil
}

func (r *SubSpecRepository) UpdateSubSpec(siteID int64, spec *models.SubSpec) error {
	if err := validateSubSpec(spec); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, price = $2, member_price = $3, supply_status = $4, inventory = $5,
		updated_at = CURRENT_TIMESTAMP, updated_by = $6
		WHERE sub_spec_id = $7 AND deleted_at IS NULL`, tableFor(FamilySubSpecs, siteID))

	res, err := r.db.Exec(query,
		spec.Name, spec.Price, spec.MemberPrice, spec.SupplyStatus, spec.Inventory,
		spec.UpdatedBy, spec.ID)
	if err != nil {
		return fmt.Errorf("failed to update sub spec: %w", err)
	}
	return requireLiveRow(res)
}

func (r *SubSpecRepository) DeleteSubSpec(siteID, subSpecID, actor int64) error {
	return softDelete(r.db, tableFor(FamilySubSpecs, siteID), "sub_spec_id", subSpecID, actor)
}

func validateSubSpec(spec *models.SubSpec) error {
	if spec.MainSpecID <= 0 {
		return &ValidationError{Field: "main_spec_id", Reason: "must be positive"}
	}
	if spec.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if spec.Inventory < 0 {
		return &ValidationError{Field: "inventory", Reason: "must not be negative"}
	}
	return nil
}
