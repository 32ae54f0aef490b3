package models

import (
	"database/sql"
	"time"
)

type ProductImage struct {
	ID        int64        `json:"id"`
	ProductID int64        `json:"product_id"`
	ImgURL    string       `json:"img_url"`
	CoverPic  bool         `json:"cover_pic"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	CreatedBy int64        `json:"created_by"`
	UpdatedBy int64        `json:"updated_by"`
	DeletedAt sql.NullTime `json:"deleted_at,omitempty"`
}

type ProductVideo struct {
	ID        int64        `json:"id"`
	ProductID int64        `json:"product_id"`
	VideoURL  string       `json:"video_url"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	CreatedBy int64        `json:"created_by"`
	UpdatedBy int64        `json:"updated_by"`
	DeletedAt sql.NullTime `json:"deleted_at,omitempty"`
}
