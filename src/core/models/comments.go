package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment belongs to a post and an author. The post reference is nullable,
// removing a post sweeps its comments away with it.
type Comment struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	PostID   *uuid.UUID `gorm:"column:post_id;type:uuid;index" json:"post_id,omitempty"`
	Post     *Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID uuid.UUID  `gorm:"column:author_id;type:uuid;not null" json:"author_id"`
	Author   User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Text     string     `gorm:"column:text;type:text;not null" json:"text"`
	Created  time.Time  `gorm:"column:created;not null;autoCreateTime" json:"created"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
