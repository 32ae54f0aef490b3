package models

import (
	"database/sql"
	"time"
)

// Category is a site-scoped product category, sharded with its site.
type Category struct {
	ID        int64         `json:"category_id"`
	ParentID  sql.NullInt64 `json:"parent_id"`
	SiteID    int64         `json:"site_id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	CreatedBy int64         `json:"created_by"`
	UpdatedBy int64         `json:"updated_by"`
	DeletedAt sql.NullTime  `json:"deleted_at,omitempty"`
}

// PlatformCategory is platform-wide and lives in a single unsharded table.
type PlatformCategory struct {
	ID            int64         `json:"category_id"`
	ParentID      sql.NullInt64 `json:"parent_id"`
	Name          string        `json:"name"`
	Retail        bool          `json:"retail"`
	Inquiry       bool          `json:"inquiry"`
	IsSensitive   bool          `json:"is_sensitive"`
	SensitiveType int           `json:"sensitive_type"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CreatedBy     int64         `json:"created_by"`
	UpdatedBy     int64         `json:"updated_by"`
	DeletedAt     sql.NullTime  `json:"deleted_at,omitempty"`
}

// CategoryLink is one row of the product/category association table.
type CategoryLink struct {
	ProductID  int64 `json:"product_id"`
	CategoryID int64 `json:"category_id"`
}
