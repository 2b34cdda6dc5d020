package models

import (
	"fmt"
	"time"
)

type MenuItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CategoryID uint `gorm:"not null" json:"category_id"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Nil means the price is not shown on the menu.
	PriceCents *int64 `json:"price_cents"`

	// No column default: a false here must survive Create as-is, so the
	// flag is always set explicitly by whoever builds the struct.
	Available bool `json:"available"`
	SortOrder int  `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PriceDisplay renders the price as "$1,234.50", or "" when unset.
func (m *MenuItem) PriceDisplay() string {
	if m.PriceCents == nil {
		return ""
	}
	cents := *m.PriceCents
	whole := cents / 100
	frac := cents % 100
	return fmt.Sprintf("$%s.%02d", groupThousands(whole), frac)
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
