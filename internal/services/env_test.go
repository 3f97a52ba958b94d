package services

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/newsroom-backend/internal/data/repos"
	"github.com/yungbote/newsroom-backend/internal/data/repos/testutil"
	types "github.com/yungbote/newsroom-backend/internal/domain"
)

type testEnv struct {
	db       *gorm.DB
	ctx      context.Context
	accounts AccountService
	cats     CategoryService
	tags     TagService
	articles ArticleService
	auth     AuthService
	revoker  TokenRevoker

	accountRepo repos.AccountRepo
	articleRepo repos.ArticleRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	accountRepo := repos.NewAccountRepo(db, log)
	categoryRepo := repos.NewCategoryRepo(db, log)
	articleRepo := repos.NewArticleRepo(db, log)
	tagRepo := repos.NewTagRepo(db, log)

	tags := NewTagService(db, log, tagRepo, articleRepo)
	revoker := NewMemoryRevoker()
	return &testEnv{
		db:       db,
		ctx:      context.Background(),
		accounts: NewAccountService(db, log, accountRepo, articleRepo, bcrypt.MinCost),
		cats:     NewCategoryService(db, log, categoryRepo),
		tags:     tags,
		articles: NewArticleService(db, log, articleRepo, categoryRepo, accountRepo, tagRepo, tags),
		auth: NewAuthService(db, log, accountRepo, revoker, AuthConfig{
			SecretKey: "test-secret-key-with-enough-length",
			Issuer:    "newsroom-test",
			Audience:  "newsroom-clients",
		}, bcrypt.MinCost),
		revoker:     revoker,
		accountRepo: accountRepo,
		articleRepo: articleRepo,
	}
}

func rolePtr(r types.Role) *types.Role { return &r }

func boolPtr(b bool) *bool { return &b }

func (e *testEnv) staff(t *testing.T, email string) *AccountDTO {
	t.Helper()
	a, err := e.accounts.Create(e.ctx, AccountInput{
		Name:     "Staff " + email,
		Email:    email,
		Password: "s3cret-pass",
		Role:     rolePtr(types.RoleStaff),
	})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
	return a
}

func (e *testEnv) category(t *testing.T, name string, parentID *uint) *CategoryDTO {
	t.Helper()
	c, err := e.cats.Create(e.ctx, CategoryInput{Name: name, ParentID: parentID, IsActive: true})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

func (e *testEnv) article(t *testing.T, callerID, categoryID uint, title string, published bool, tags ...string) *ArticleDTO {
	t.Helper()
	in := ArticleInput{Title: title, Content: "content of " + title, CategoryID: categoryID, Published: published}
	for _, name := range tags {
		in.Tags = append(in.Tags, TagInput{Name: name})
	}
	a, err := e.articles.Create(e.ctx, callerID, in)
	if err != nil {
		t.Fatalf("create article %q: %v", title, err)
	}
	return a
}
