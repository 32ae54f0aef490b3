package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// InventoryTarget identifies one stock-carrying row by its shard-qualified
// key. Only the three families with an inventory column are valid targets.
type InventoryTarget struct {
	Family TableFamily
	SiteID int64
	ID     int64
}

var inventoryIDColumns = map[TableFamily]string{
	FamilyProducts:  "product_id",
	FamilyMainSpecs: "main_spec_id",
	FamilySubSpecs:  "sub_spec_id",
}

// InventoryRepository is the only write path for stock levels. Every change
// carries an actor: models.SystemActor for automatic changes, an operator id
// otherwise. Stock is adjusted with single conditional statements so that
// concurrent callers cannot lose updates or drive a count negative.
type InventoryRepository struct {
	db Queryer
}

func NewInventoryRepository(db Queryer) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// SetInventory writes an absolute stock level. Negative values are rejected
// before any statement is issued.
func (r *InventoryRepository) SetInventory(target InventoryTarget, newValue int, actor int64) error {
	table, idColumn, err := resolveInventoryTarget(target)
	if err != nil {
		return err
	}
	if newValue < 0 {
		return &ValidationError{Field: "inventory", Reason: "must not be negative"}
	}

	query := fmt.Sprintf(`
		UPDATE %s SET inventory = $1, updated_at = CURRENT_TIMESTAMP, updated_by = $2
		WHERE %s = $3 AND deleted_at IS NULL`, table, idColumn)

	res, err := r.db.Exec(query, newValue, actor, target.ID)
	if err != nil {
		return fmt.Errorf("failed to set inventory on %s: %w", table, err)
	}
	return requireLiveRow(res)
}

// DecrementInventory atomically subtracts delta from the current stock. The
// guard inventory >= delta runs inside the statement: when remaining stock
// is insufficient nothing is written and ErrInsufficientStock is returned,
// so concurrent decrements can never overdraw the row.
func (r *InventoryRepository) DecrementInventory(target InventoryTarget, delta int, actor int64) error {
	table, idColumn, err := resolveInventoryTarget(target)
	if err != nil {
		return err
	}
	if delta <= 0 {
		return &ValidationError{Field: "delta", Reason: "must be positive"}
	}

	query := fmt.Sprintf(`
		UPDATE %s SET inventory = inventory - $1, updated_at = CURRENT_TIMESTAMP, updated_by = $2
		WHERE %s = $3 AND deleted_at IS NULL AND inventory >= $1`, table, idColumn)

	res, err := r.db.Exec(query, delta, actor, target.ID)
	if err != nil {
		return fmt.Errorf("failed to decrement inventory on %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s: %w", table, err)
	}
	if affected > 0 {
		return nil
	}

	// Zero rows: either the row is gone or the guard rejected the delta.
	live, err := liveRowExists(r.db, table, idColumn, target.ID)
	if err != nil {
		return err
	}
	if !live {
		return ErrNotFound
	}
	return ErrInsufficientStock
}

// IncrementInventory atomically adds delta to the current stock, e.g. on a
// cancelled order returning units.
func (r *InventoryRepository) IncrementInventory(target InventoryTarget, delta int, actor int64) error {
	table, idColumn, err := resolveInventoryTarget(target)
	if err != nil {
		return err
	}
	if delta <= 0 {
		return &ValidationError{Field: "delta", Reason: "must be positive"}
	}

	query := fmt.Sprintf(`
		UPDATE %s SET inventory = inventory + $1, updated_at = CURRENT_TIMESTAMP, updated_by = $2
		WHERE %s = $3 AND deleted_at IS NULL`, table, idColumn)

	res, err := r.db.Exec(query, delta, actor, target.ID)
	if err != nil {
		return fmt.Errorf("failed to increment inventory on %s: %w", table, err)
	}
	return requireLiveRow(res)
}

// ReconcileProductInventory rewrites a product's denormalized inventory
// from the sum of its live main specs and returns the new total. The two
// counts are otherwise allowed to diverge; callers decide when to converge
// them. Run inside a transaction when consistency with concurrent spec
// writes matters.
func (r *InventoryRepository) ReconcileProductInventory(siteID, productID, actor int64) (int, error) {
	productTable := tableFor(FamilyProducts, siteID)
	mainSpecTable := tableFor(FamilyMainSpecs, siteID)

	query := fmt.Sprintf(`
		UPDATE %s SET inventory = (
			SELECT COALESCE(SUM(inventory), 0) FROM %s WHERE product_id = $1 AND deleted_at IS NULL
		), updated_at = CURRENT_TIMESTAMP, updated_by = $2
		WHERE product_id = $1 AND deleted_at IS NULL
		RETURNING inventory`, productTable, mainSpecTable)

	var total int
	if err := r.db.QueryRow(query, productID, actor).Scan(&total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to reconcile product inventory: %w", err)
	}
	return total, nil
}

func resolveInventoryTarget(target InventoryTarget) (table, idColumn string, err error) {
	idColumn, ok := inventoryIDColumns[target.Family]
	if !ok {
		return "", "", &ValidationError{Field: "family", Reason: fmt.Sprintf("%q does not carry inventory", target.Family)}
	}
	if target.ID <= 0 {
		return "", "", &ValidationError{Field: "id", Reason: "must be positive"}
	}
	return tableFor(target.Family, target.SiteID), idColumn, nil
}
