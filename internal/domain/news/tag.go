package news

import "strings"

type Tag struct {
	ID   uint   `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"size:100;not null;column:name" json:"name"`
	Note string `gorm:"size:500;column:note" json:"note"`
}

func (Tag) TableName() string { return "tag" }

// NormalizeTagName is the stored form of a tag name.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
