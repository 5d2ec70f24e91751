package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post struct represents a post in the system. Deleting the author removes
// their posts, deleting a group only detaches the posts filed under it.
type Post struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Text     string    `gorm:"column:text;type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"column:pub_date;not null;index;autoCreateTime" json:"pub_date"`
	AuthorID uuid.UUID `gorm:"column:author_id;type:uuid;not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	GroupID  *uint     `gorm:"column:group_id" json:"group_id,omitempty"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	Image    string    `gorm:"column:image;type:text;not null;default:''" json:"image,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
