package models

import "time"

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleBrfAdmin   Role = "brf_admin"
	RoleBrfUser    Role = "brf_user"
)

// UserRole is a flat (user, role) assignment, interpreted against the
// organization on the user's profile.
type UserRole struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"index:idx_user_roles_user_role,unique;not null" json:"user_id"`
	Role      Role      `gorm:"type:varchar(20);index:idx_user_roles_user_role,unique;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
