package models

import "time"

type Restaurant struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:200;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Tagline string `gorm:"size:300" json:"tagline"`

	BrandColor    string `gorm:"size:20;default:'#c9a84c'" json:"brand_color"`
	BrandColorDim string `gorm:"size:20;default:'#a68939'" json:"brand_color_dim"`

	Categories []Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"categories,omitempty"`
	Users      []User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
