package news

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/platform/dbctx"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
)

type CategoryRepo interface {
	List(dbc dbctx.Context, activeOnly bool) ([]*types.Category, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Category, error)
	GetByName(dbc dbctx.Context, name string) (*types.Category, error)
	ParentOf(dbc dbctx.Context, id uint) (*uint, error)
	Create(dbc dbctx.Context, category *types.Category) error
	Update(dbc dbctx.Context, category *types.Category) error
	Delete(dbc dbctx.Context, id uint) error
	Exists(dbc dbctx.Context, id uint) (bool, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

const categoryWithCounts = `category.*,
	(SELECT COUNT(*) FROM news_article a WHERE a.category_id = category.id) AS article_count,
	(SELECT COUNT(*) FROM category c WHERE c.parent_id = category.id) AS sub_category_count`

func (r *categoryRepo) withCounts(dbc dbctx.Context) *gorm.DB {
	return dbc.DB(r.db).Model(&types.Category{}).Select(categoryWithCounts)
}

func (r *categoryRepo) List(dbc dbctx.Context, activeOnly bool) ([]*types.Category, error) {
	q := r.withCounts(dbc)
	if activeOnly {
		q = q.Where("category.is_active = ?", true)
	}
	var rows []*types.Category
	if err := q.Order("category.id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *categoryRepo) GetByID(dbc dbctx.Context, id uint) (*types.Category, error) {
	if id == 0 {
		return nil, nil
	}
	var row types.Category
	if err := r.withCounts(dbc).Where("category.id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *categoryRepo) GetByName(dbc dbctx.Context, name string) (*types.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var row types.Category
	if err := dbc.DB(r.db).Where("LOWER(name) = LOWER(?)", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ParentOf returns the parent id of a category; nil for roots and unknown ids.
func (r *categoryRepo) ParentOf(dbc dbctx.Context, id uint) (*uint, error) {
	var row types.Category
	err := dbc.DB(r.db).Select("id", "parent_id").Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.ParentID, nil
}

func (r *categoryRepo) Create(dbc dbctx.Context, category *types.Category) error {
	return dbc.DB(r.db).Create(category).Error
}

func (r *categoryRepo) Update(dbc dbctx.Context, category *types.Category) error {
	return dbc.DB(r.db).
		Model(&types.Category{ID: category.ID}).
		Select("name", "description", "parent_id", "is_active").
		Updates(category).Error
}

func (r *categoryRepo) Delete(dbc dbctx.Context, id uint) error {
	return dbc.DB(r.db).Delete(&types.Category{}, id).Error
}

func (r *categoryRepo) Exists(dbc dbctx.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	if err := dbc.DB(r.db).Model(&types.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
