package models

// Group is a topical board posts can optionally be filed under.
type Group struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Slug        string `gorm:"column:slug;type:varchar(200);uniqueIndex;not null" json:"slug"`
	Description string `gorm:"column:description;type:text;not null;default:''" json:"description"`
}

func (Group) TableName() string {
	return "groups"
}
