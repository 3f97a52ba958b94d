package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/newsroom-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.Models()...)
}

// EnsureIndexes creates the case-insensitive unique indexes that back the
// name-uniqueness checks in the category and tag services.
func EnsureIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_category_name_lower", `CREATE UNIQUE INDEX IF NOT EXISTS idx_category_name_lower ON category (LOWER(name));`},
		{"idx_tag_name_lower", `CREATE UNIQUE INDEX IF NOT EXISTS idx_tag_name_lower ON tag (LOWER(name));`},
		{"idx_news_article_tag_tag_id", `CREATE INDEX IF NOT EXISTS idx_news_article_tag_tag_id ON news_article_tag (tag_id);`},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}
