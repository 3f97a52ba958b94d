package news

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/platform/dbctx"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
)

type ArticleRepo interface {
	List(dbc dbctx.Context, filter types.ArticleFilter) ([]*types.Article, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Article, error)
	GetByIDForUpdate(dbc dbctx.Context, id uint) (*types.Article, error)
	IncrementViews(dbc dbctx.Context, id uint) error
	Create(dbc dbctx.Context, article *types.Article) error
	Update(dbc dbctx.Context, article *types.Article) error
	Delete(dbc dbctx.Context, id uint) error
	CountByCreator(dbc dbctx.Context, accountID uint) (int64, error)
	ClearUpdater(dbc dbctx.Context, accountID uint) (int64, error)
}

type articleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArticleRepo(db *gorm.DB, baseLog *logger.Logger) ArticleRepo {
	return &articleRepo{db: db, log: baseLog.With("repo", "ArticleRepo")}
}

func (r *articleRepo) preloaded(dbc dbctx.Context) *gorm.DB {
	return dbc.DB(r.db).
		Preload("Category").
		Preload("CreatedBy").
		Preload("UpdatedBy").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tag.name ASC") })
}

func (r *articleRepo) List(dbc dbctx.Context, filter types.ArticleFilter) ([]*types.Article, error) {
	q := r.preloaded(dbc).Model(&types.Article{})
	if filter.Published != nil {
		q = q.Where("news_article.published = ?", *filter.Published)
	}
	if filter.CategoryID != nil {
		q = q.Where("news_article.category_id = ?", *filter.CategoryID)
	}
	if filter.CreatedByID != nil {
		q = q.Where("news_article.created_by_id = ?", *filter.CreatedByID)
	}
	if name := types.NormalizeTagName(filter.TagName); name != "" {
		q = q.Where(`EXISTS (SELECT 1 FROM news_article_tag nat
			JOIN tag t ON t.id = nat.tag_id
			WHERE nat.article_id = news_article.id AND t.name = ?)`, name)
	}
	if query := strings.ToLower(strings.TrimSpace(filter.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("(LOWER(news_article.title) LIKE ? OR LOWER(news_article.headline) LIKE ?)", like, like)
	}
	var rows []*types.Article
	if err := q.Order("news_article.created_at DESC").Order("news_article.id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *articleRepo) GetByID(dbc dbctx.Context, id uint) (*types.Article, error) {
	if id == 0 {
		return nil, nil
	}
	var row types.Article
	if err := r.preloaded(dbc).Where("news_article.id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetByIDForUpdate loads the bare row with its tags, locking it on drivers that support it.
func (r *articleRepo) GetByIDForUpdate(dbc dbctx.Context, id uint) (*types.Article, error) {
	if id == 0 {
		return nil, nil
	}
	q := dbc.DB(r.db).Preload("Tags")
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row types.Article
	if err := q.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *articleRepo) IncrementViews(dbc dbctx.Context, id uint) error {
	return dbc.DB(r.db).
		Model(&types.Article{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// Create inserts the article and links the given tags; tags must already exist.
func (r *articleRepo) Create(dbc dbctx.Context, article *types.Article) error {
	tx := dbc.DB(r.db)
	tags := article.Tags
	article.Tags = nil
	if err := tx.Omit(clause.Associations).Create(article).Error; err != nil {
		article.Tags = tags
		return err
	}
	article.Tags = tags
	if len(tags) == 0 {
		return nil
	}
	return tx.Model(article).Association("Tags").Append(tags)
}

// Update writes the scalar columns and replaces the tag set.
func (r *articleRepo) Update(dbc dbctx.Context, article *types.Article) error {
	tx := dbc.DB(r.db)
	tags := article.Tags
	if err := tx.Omit(clause.Associations).Save(article).Error; err != nil {
		return err
	}
	// Clear resets article.Tags.
	if err := tx.Model(article).Association("Tags").Clear(); err != nil {
		return err
	}
	article.Tags = nil
	if len(tags) == 0 {
		return nil
	}
	return tx.Model(article).Association("Tags").Append(tags)
}

func (r *articleRepo) Delete(dbc dbctx.Context, id uint) error {
	tx := dbc.DB(r.db)
	if err := tx.Model(&types.Article{ID: id}).Association("Tags").Clear(); err != nil {
		return err
	}
	return tx.Delete(&types.Article{}, id).Error
}

func (r *articleRepo) CountByCreator(dbc dbctx.Context, accountID uint) (int64, error) {
	var count int64
	err := dbc.DB(r.db).Model(&types.Article{}).Where("created_by_id = ?", accountID).Count(&count).Error
	return count, err
}

// ClearUpdater drops accountID from updated_by_id on every article it last
// edited. Modification times are left alone.
func (r *articleRepo) ClearUpdater(dbc dbctx.Context, accountID uint) (int64, error) {
	res := dbc.DB(r.db).Model(&types.Article{}).
		Where("updated_by_id = ?", accountID).
		UpdateColumn("updated_by_id", nil)
	return res.RowsAffected, res.Error
}
