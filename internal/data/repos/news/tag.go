package news

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/platform/dbctx"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
)

type TagRepo interface {
	List(dbc dbctx.Context) ([]*types.Tag, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Tag, error)
	GetByName(dbc dbctx.Context, name string) (*types.Tag, error)
	Create(dbc dbctx.Context, tag *types.Tag) error
	Update(dbc dbctx.Context, tag *types.Tag) error
	Delete(dbc dbctx.Context, id uint) error
	Exists(dbc dbctx.Context, id uint) (bool, error)
	ArticleCount(dbc dbctx.Context, id uint) (int64, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (r *tagRepo) List(dbc dbctx.Context) ([]*types.Tag, error) {
	var rows []*types.Tag
	if err := dbc.DB(r.db).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tagRepo) GetByID(dbc dbctx.Context, id uint) (*types.Tag, error) {
	if id == 0 {
		return nil, nil
	}
	var row types.Tag
	if err := dbc.DB(r.db).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetByName looks up the normalized form of name.
func (r *tagRepo) GetByName(dbc dbctx.Context, name string) (*types.Tag, error) {
	name = types.NormalizeTagName(name)
	if name == "" {
		return nil, nil
	}
	var row types.Tag
	if err := dbc.DB(r.db).Where("LOWER(name) = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *tagRepo) Create(dbc dbctx.Context, tag *types.Tag) error {
	return dbc.DB(r.db).Create(tag).Error
}

func (r *tagRepo) Update(dbc dbctx.Context, tag *types.Tag) error {
	return dbc.DB(r.db).Model(&types.Tag{ID: tag.ID}).Select("name", "note").Updates(tag).Error
}

func (r *tagRepo) Delete(dbc dbctx.Context, id uint) error {
	return dbc.DB(r.db).Delete(&types.Tag{}, id).Error
}

func (r *tagRepo) Exists(dbc dbctx.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	if err := dbc.DB(r.db).Model(&types.Tag{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tagRepo) ArticleCount(dbc dbctx.Context, id uint) (int64, error) {
	var count int64
	err := dbc.DB(r.db).Table("news_article_tag").Where("tag_id = ?", id).Count(&count).Error
	return count, err
}
