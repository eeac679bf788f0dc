package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aromacraft/storefront-backend/pkg/enums"
)

// Product is one storefront catalog entry, coffee or equipment. Name is
// unique; the cart keys its lines on it.
type Product struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string                `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description  string                `gorm:"column:description;not null;default:''" json:"description"`
	Price        decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Image        string                `gorm:"column:image;not null;default:''" json:"image"`
	Category     enums.ProductCategory `gorm:"column:category;not null" json:"category"`
	RoastLevel   *enums.RoastLevel     `gorm:"column:roast_level" json:"roast_level,omitempty"`
	Origin       *string               `gorm:"column:origin" json:"origin,omitempty"`
	TastingNotes string                `gorm:"column:tasting_notes;not null;default:''" json:"tasting_notes"`
	BrewMethods  string                `gorm:"column:brew_methods;not null;default:''" json:"brew_methods"`
	RatingCount  int                   `gorm:"column:rating_count;not null;default:0" json:"rating_count"`
	Recommended  bool                  `gorm:"column:recommended;not null;default:false" json:"recommended"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the table name for gorm.
func (Product) TableName() string {
	return "products"
}
