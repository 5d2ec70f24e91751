package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Username     string    `gorm:"column:username;type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"column:email;type:text;uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"column:first_name;type:varchar(150);not null;default:''" json:"first_name"`
	LastName     string    `gorm:"column:last_name;type:varchar(150);not null;default:''" json:"last_name"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName is the display name used on profile pages, falling back to the
// username when the user never filled in their name.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}
