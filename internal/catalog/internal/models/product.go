package models

import (
	"database/sql"
	"time"
)

// Product status values stored in site_products_<x>.status.
const (
	ProductStatusInactive = 0
	ProductStatusActive   = 1
)

// SystemActor is the updated_by value for changes not initiated by an operator.
const SystemActor int64 = 0

type Product struct {
	ID                    int64        `json:"product_id"`
	SiteID                int64        `json:"site_id"`
	PlatformCategoryID    int64        `json:"platform_category_id"`
	Name                  string       `json:"name"`
	Description           string       `json:"description"`
	Type                  string       `json:"type"`
	Price                 float64      `json:"price"`
	MemberPrice           float64      `json:"member_price"`
	SupplyStatus          int          `json:"supply_status"`
	Inventory             int          `json:"inventory"`
	ScheduledReleaseTime  sql.NullTime `json:"scheduled_release_time"`
	ScheduledOffshelfTime sql.NullTime `json:"scheduled_offshelf_time"`
	AutoOffshelfSoldout   bool         `json:"auto_offshelf_soldout"`
	OnlyMember            bool         `json:"only_member"`
	Status                int          `json:"status"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
	CreatedBy             int64        `json:"created_by"`
	UpdatedBy             int64        `json:"updated_by"`
	DeletedAt             sql.NullTime `json:"deleted_at,omitempty"`
}

// InventoryStatus is the stock-level facet of the product listing.
type InventoryStatus string

const (
	// InventoryAny applies no stock filter.
	InventoryAny InventoryStatus = ""
	// InventoryNormal matches products with positive denormalized inventory.
	InventoryNormal InventoryStatus = "normal"
	// InventoryNone matches products with inventory <= 0.
	InventoryNone InventoryStatus = "none"
	// InventoryPartial matches sellable products with at least one live
	// main spec at zero inventory.
	InventoryPartial InventoryStatus = "partial"
)

// ProductFilter narrows the product listing. Zero values mean "no filter".
type ProductFilter struct {
	NameLike        string
	Status          *int
	CategoryID      *int64
	InventoryStatus InventoryStatus
}
