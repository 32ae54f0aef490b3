package models

import (
	"database/sql"
	"time"
)

// MainSpec is a purchasable variant group of a product (e.g. a colour).
// It lives on the same shard as its owning product.
type MainSpec struct {
	ID           int64        `json:"main_spec_id"`
	ProductID    int64        `json:"product_id"`
	Name         string       `json:"name"`
	ImgURL       string       `json:"img_url"`
	Price        float64      `json:"price"`
	MemberPrice  float64      `json:"member_price"`
	SupplyStatus int          `json:"supply_status"`
	Inventory    int          `json:"inventory"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	CreatedBy    int64        `json:"created_by"`
	UpdatedBy    int64        `json:"updated_by"`
	DeletedAt    sql.NullTime `json:"deleted_at,omitempty"`
}

// SubSpec is the finer variant level under a main spec (e.g. a size).
type SubSpec struct {
	ID           int64        `json:"sub_spec_id"`
	MainSpecID   int64        `json:"main_spec_id"`
	Name         string       `json:"name"`
	Price        float64      `json:"price"`
	MemberPrice  float64      `json:"member_price"`
	SupplyStatus int          `json:"supply_status"`
	Inventory    int          `json:"inventory"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	CreatedBy    int64        `json:"created_by"`
	UpdatedBy    int64        `json:"updated_by"`
	DeletedAt    sql.NullTime `json:"deleted_at,omitempty"`
}
