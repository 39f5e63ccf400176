package models

import "time"

// User is an account able to authenticate and own leave/overtime records.
type User struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;size:50;not null;uniqueIndex:uq_users_name"`
	Email        string    `gorm:"column:email;size:120;not null;uniqueIndex:uq_users_email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

// TableName pins the table name.
func (User) TableName() string {
	return "users"
}
