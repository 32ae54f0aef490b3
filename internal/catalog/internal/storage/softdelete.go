package storage

import (
	"database/sql"
	"fmt"
)

// Soft-delete policy shared by every audited entity family: deletion writes
// deleted_at plus the acting operator and never removes the row. Read paths
// all filter on deleted_at IS NULL.

// softDelete marks one row deleted. Marking an already-deleted row again is
// an idempotent success; a row that never existed is ErrNotFound.
func softDelete(db Queryer, table, idColumn string, id, actor int64) error {
	query := fmt.Sprintf(
		`UPDATE %s SET deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP, updated_by = $1
		WHERE %s = $2 AND deleted_at IS NULL`, table, idColumn)

	res, err := db.Exec(query, actor, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s: %w", table, err)
	}
	if affected > 0 {
		return nil
	}

	exists, err := rowExists(db, table, idColumn, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

// rowExists checks for the row regardless of deletion state.
func rowExists(db Queryer, table, idColumn string, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, table, idColumn)
	var exists bool
	if err := db.QueryRow(query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check row existence in %s: %w", table, err)
	}
	return exists, nil
}

// liveRowExists checks for a non-deleted row.
func liveRowExists(db Queryer, table, idColumn string, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND deleted_at IS NULL)`, table, idColumn)
	var exists bool
	if err := db.QueryRow(query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check live row in %s: %w", table, err)
	}
	return exists, nil
}

// requireLiveRow converts a zero-row UPDATE against a live row into
// ErrNotFound.
func requireLiveRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
