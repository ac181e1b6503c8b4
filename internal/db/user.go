package db

import "time"

// User 是拥有一张证明页的账号。
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:320;uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
