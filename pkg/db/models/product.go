package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the read-only collaborator used for price/name display. Catalog
// management lives outside this service.
type Product struct {
	ID            uint             `gorm:"column:product_id;primaryKey;autoIncrement" json:"productID"`
	NameEn        string           `gorm:"column:product_en_name;size:255;not null" json:"productEnName"`
	NameBn        string           `gorm:"column:product_bn_name;size:255" json:"productBnName"`
	Unit          string           `gorm:"column:product_unit;size:32" json:"productUnit"`
	RegularPrice  decimal.Decimal  `gorm:"column:regular_price;type:decimal(12,2);not null" json:"regularPrice"`
	DiscountPrice *decimal.Decimal `gorm:"column:discount_price;type:decimal(12,2)" json:"discountPrice"`
	Category      string           `gorm:"column:product_category;size:64" json:"productCategory"`
	SearchTag     string           `gorm:"column:search_tag;size:255" json:"searchTag"`
	Status        string           `gorm:"column:product_status;size:16;not null;default:'Active'" json:"productStatus"`
	ImageURL      string           `gorm:"column:image_url;size:255" json:"imageUrl"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName maps Product onto the legacy product_list table.
func (Product) TableName() string {
	return "product_list"
}
