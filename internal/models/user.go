package models

import "time"

const (
	RoleOwner      = "owner"
	RoleSuperadmin = "superadmin"
)

type User struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	RestaurantID *uint `json:"restaurant_id"`

	Email        string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsSuperadmin() bool {
	return u.Role == RoleSuperadmin
}
