package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/newsroom-backend/internal/domain"
)

func SeedAccount(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, role types.Role) *types.Account {
	tb.Helper()
	a := &types.Account{
		Name:         "Seeded " + role.String(),
		Email:        email,
		Role:         role,
		IsActive:     true,
		PasswordHash: "pw",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed account: %v", err)
	}
	return a
}

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, parentID *uint) *types.Category {
	tb.Helper()
	c := &types.Category{
		Name:        name,
		Description: name + " news",
		ParentID:    parentID,
		IsActive:    true,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedTag(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Tag {
	tb.Helper()
	t := &types.Tag{Name: types.NormalizeTagName(name)}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	return t
}

func SeedArticle(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, categoryID, authorID uint, published bool, tags ...*types.Tag) *types.Article {
	tb.Helper()
	a := &types.Article{
		Title:       title,
		Headline:    title + " headline",
		Content:     "body of " + title,
		CategoryID:  categoryID,
		CreatedByID: authorID,
		Published:   published,
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(a).Error; err != nil {
		tb.Fatalf("seed article: %v", err)
	}
	if len(tags) > 0 {
		if err := tx.WithContext(ctx).Model(a).Association("Tags").Append(tags); err != nil {
			tb.Fatalf("seed article tags: %v", err)
		}
	}
	return a
}
