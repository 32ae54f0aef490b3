package storage

import "database/sql"

// Queryer is satisfied by both *sql.DB and *sql.Tx so that repositories can
// take part in a caller-owned transaction. Handles are always passed in
// explicitly; nothing in this package keeps global connection state.
type Queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// pageOffset converts 1-based pagination into a statement offset.
func pageOffset(page, pageSize int) (int, error) {
	if page < 1 {
		return 0, &ValidationError{Field: "page", Reason: "must be >= 1"}
	}
	if pageSize < 1 {
		return 0, &ValidationError{Field: "page_size", Reason: "must be >= 1"}
	}
	return (page - 1) * pageSize, nil
}
