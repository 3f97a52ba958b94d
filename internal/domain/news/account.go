package news

import "time"

// Role is the account's authorization level.
type Role int

const (
	// RoleLecturer is the administrative role: the seeded admin account
	// carries it and account deletion refuses it.
	RoleLecturer Role = 0
	RoleStaff    Role = 1
)

func (r Role) Valid() bool { return r == RoleLecturer || r == RoleStaff }

// Administrative reports whether the role manages accounts.
func (r Role) Administrative() bool { return r == RoleLecturer }

// Deletable reports whether an account holding this role may be removed.
func (r Role) Deletable() bool { return r != RoleLecturer }

func (r Role) String() string {
	switch r {
	case RoleLecturer:
		return "lecturer"
	case RoleStaff:
		return "staff"
	default:
		return "unknown"
	}
}

type Account struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	Name         string    `gorm:"size:100;not null;column:name" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null;column:email" json:"email"`
	Role         Role      `gorm:"not null;column:role" json:"role"`
	IsActive     bool      `gorm:"not null;column:is_active" json:"is_active"`
	PasswordHash string    `gorm:"not null;column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
}

func (Account) TableName() string { return "account" }
