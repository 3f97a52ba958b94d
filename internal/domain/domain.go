package domain

import (
	"github.com/yungbote/newsroom-backend/internal/domain/news"
)

type Role = news.Role

const (
	RoleLecturer = news.RoleLecturer
	RoleStaff    = news.RoleStaff
)

type Account = news.Account
type Category = news.Category
type Article = news.Article
type ArticleFilter = news.ArticleFilter
type Tag = news.Tag

var NormalizeTagName = news.NormalizeTagName

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{
		&news.Account{},
		&news.Category{},
		&news.Tag{},
		&news.Article{},
	}
}
