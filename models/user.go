package models

import "time"

// User and Role back the local session-token auth scheme. They live in the
// relational database, unlike the document collections above.

type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(50);unique;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
}

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string     `gorm:"type:varchar(255)" json:"full_name"`
	Phone        string     `gorm:"type:varchar(50)" json:"phone"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	RoleID       uint       `gorm:"index" json:"role_id"`
	Role         Role       `gorm:"foreignKey:RoleID" json:"role"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (u *User) RoleName() string {
	if u.Role.Name == "" {
		return "staff"
	}
	return u.Role.Name
}
