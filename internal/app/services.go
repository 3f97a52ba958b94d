package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/newsroom-backend/internal/platform/logger"
	"github.com/yungbote/newsroom-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Account  services.AccountService
	Category services.CategoryService
	Article  services.ArticleService
	Tag      services.TagService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")
	tag := services.NewTagService(db, log, repos.Tag, repos.Article)
	return Services{
		Auth:     services.NewAuthService(db, log, repos.Account, clients.Revoker, cfg.AuthConfig(), 0),
		Account:  services.NewAccountService(db, log, repos.Account, repos.Article, 0),
		Category: services.NewCategoryService(db, log, repos.Category),
		Article:  services.NewArticleService(db, log, repos.Article, repos.Category, repos.Account, repos.Tag, tag),
		Tag:      tag,
	}
}
