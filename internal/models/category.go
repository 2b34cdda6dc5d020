package models

import "time"

const (
	MenuTypeDining    = "dining"
	MenuTypeBeverages = "beverages"
)

func ValidMenuType(t string) bool {
	return t == MenuTypeDining || t == MenuTypeBeverages
}

type Category struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RestaurantID uint `gorm:"uniqueIndex:uq_category_restaurant_name;not null" json:"restaurant_id"`

	Name      string `gorm:"size:120;uniqueIndex:uq_category_restaurant_name;not null" json:"name"`
	MenuType  string `gorm:"size:20;default:'dining'" json:"menu_type"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`

	Items []MenuItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
