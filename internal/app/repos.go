package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/newsroom-backend/internal/data/repos"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
)

type Repos struct {
	Account  repos.AccountRepo
	Category repos.CategoryRepo
	Article  repos.ArticleRepo
	Tag      repos.TagRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Account:  repos.NewAccountRepo(db, log),
		Category: repos.NewCategoryRepo(db, log),
		Article:  repos.NewArticleRepo(db, log),
		Tag:      repos.NewTagRepo(db, log),
	}
}
