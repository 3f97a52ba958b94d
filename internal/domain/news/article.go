package news

import "time"

type Article struct {
	ID          uint       `gorm:"primaryKey;column:id" json:"id"`
	Title       string     `gorm:"size:255;not null;column:title" json:"title"`
	Headline    string     `gorm:"size:1000;column:headline" json:"headline"`
	Content     string     `gorm:"type:text;not null;column:content" json:"content"`
	Source      string     `gorm:"size:255;column:source" json:"source"`
	CategoryID  uint       `gorm:"index;not null;column:category_id" json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedByID uint       `gorm:"index;not null;column:created_by_id" json:"created_by_id"`
	CreatedBy   *Account   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	UpdatedByID *uint      `gorm:"column:updated_by_id" json:"updated_by_id,omitempty"`
	UpdatedBy   *Account   `gorm:"foreignKey:UpdatedByID" json:"updated_by,omitempty"`
	Views       int64      `gorm:"not null;default:0;column:views" json:"views"`
	Published   bool       `gorm:"not null;column:published" json:"published"`
	CreatedAt   time.Time  `gorm:"not null;column:created_at" json:"created_at"`
	ModifiedAt  *time.Time `gorm:"column:modified_at" json:"modified_at,omitempty"`
	Tags        []*Tag     `gorm:"many2many:news_article_tag;joinForeignKey:ArticleID;joinReferences:TagID" json:"tags"`
}

func (Article) TableName() string { return "news_article" }

// ArticleFilter narrows List results. The zero value matches every article.
type ArticleFilter struct {
	Published   *bool
	CategoryID  *uint
	CreatedByID *uint
	TagName     string
	Query       string
}
