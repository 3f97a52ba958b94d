package news

type Category struct {
	ID          uint   `gorm:"primaryKey;column:id" json:"id"`
	Name        string `gorm:"size:100;not null;column:name" json:"name"`
	Description string `gorm:"size:500;column:description" json:"description"`
	ParentID    *uint  `gorm:"index;column:parent_id" json:"parent_id,omitempty"`
	IsActive    bool   `gorm:"not null;column:is_active" json:"is_active"`

	// Filled by the repository at query time; never written.
	ArticleCount     int64 `gorm:"->;-:migration;column:article_count" json:"article_count"`
	SubCategoryCount int64 `gorm:"->;-:migration;column:sub_category_count" json:"sub_category_count"`
}

func (Category) TableName() string { return "category" }
