package models

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleRecruiter UserRole = "recruiter"
)

// User is an HR actor on the admin side; candidates never log in.
type User struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:text" json:"-"`
	FullName     string    `gorm:"column:full_name;type:text" json:"full_name"`
	Role         UserRole  `gorm:"column:role;type:text" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (User) TableName() string { return "users" }
