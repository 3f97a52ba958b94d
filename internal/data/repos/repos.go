package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/newsroom-backend/internal/data/repos/news"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
)

type AccountRepo = news.AccountRepo
type CategoryRepo = news.CategoryRepo
type ArticleRepo = news.ArticleRepo
type TagRepo = news.TagRepo

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	return news.NewAccountRepo(db, baseLog)
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return news.NewCategoryRepo(db, baseLog)
}

func NewArticleRepo(db *gorm.DB, baseLog *logger.Logger) ArticleRepo {
	return news.NewArticleRepo(db, baseLog)
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return news.NewTagRepo(db, baseLog)
}
