package services

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/yungbote/newsroom-backend/internal/data/repos"
	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/observability"
	"github.com/yungbote/newsroom-backend/internal/platform/apierr"
	"github.com/yungbote/newsroom-backend/internal/platform/dbctx"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
	"github.com/yungbote/newsroom-backend/internal/platform/validate"
)

type ArticleInput struct {
	Title      string     `json:"title" validate:"notblank,max=255"`
	Headline   string     `json:"headline" validate:"max=1000"`
	Content    string     `json:"content" validate:"notblank"`
	Source     string     `json:"source" validate:"max=255"`
	CategoryID uint       `json:"category_id" validate:"required"`
	Published  bool       `json:"published"`
	Tags       []TagInput `json:"tags" validate:"dive"`
}

type ArticleService interface {
	List(ctx context.Context, filter types.ArticleFilter) ([]*ArticleDTO, error)
	ListByAuthor(ctx context.Context, callerID uint) ([]*ArticleDTO, error)
	// GetByID counts a view and returns the article with the new total.
	GetByID(ctx context.Context, id uint) (*ArticleDTO, error)
	Create(ctx context.Context, callerID uint, in ArticleInput) (*ArticleDTO, error)
	Update(ctx context.Context, callerID, id uint, in ArticleInput) (*ArticleDTO, error)
	Delete(ctx context.Context, id uint) error
}

type articleService struct {
	db           *gorm.DB
	log          *logger.Logger
	articleRepo  repos.ArticleRepo
	categoryRepo repos.CategoryRepo
	accountRepo  repos.AccountRepo
	tagRepo      repos.TagRepo
	tags         TagService
	now          func() time.Time
}

func NewArticleService(
	db *gorm.DB,
	log *logger.Logger,
	articleRepo repos.ArticleRepo,
	categoryRepo repos.CategoryRepo,
	accountRepo repos.AccountRepo,
	tagRepo repos.TagRepo,
	tags TagService,
) ArticleService {
	return &articleService{
		db:           db,
		log:          log.With("service", "ArticleService"),
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		accountRepo:  accountRepo,
		tagRepo:      tagRepo,
		tags:         tags,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *articleService) List(ctx context.Context, filter types.ArticleFilter) ([]*ArticleDTO, error) {
	rows, err := s.articleRepo.List(dbctx.Context{Ctx: ctx}, filter)
	if err != nil {
		return nil, storeErr("list articles", err)
	}
	return toArticleDTOs(rows), nil
}

func (s *articleService) ListByAuthor(ctx context.Context, callerID uint) ([]*ArticleDTO, error) {
	if callerID == 0 {
		return nil, apierr.Unauthorized("unauthenticated", "caller identity is required")
	}
	rows, err := s.articleRepo.List(dbctx.Context{Ctx: ctx}, types.ArticleFilter{CreatedByID: &callerID})
	if err != nil {
		return nil, storeErr("list author articles", err)
	}
	return toArticleDTOs(rows), nil
}

func (s *articleService) GetByID(ctx context.Context, id uint) (*ArticleDTO, error) {
	var out *ArticleDTO
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.articleRepo.IncrementViews(dbc, id); err != nil {
			return storeErr("increment views", err)
		}
		row, err := s.articleRepo.GetByID(dbc, id)
		if err != nil {
			return storeErr("get article", err)
		}
		if row == nil {
			return apierr.NotFound("article_not_found", "article %d not found", id)
		}
		out = toArticleDTO(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.Current().IncArticleView()
	return out, nil
}

func (s *articleService) Create(ctx context.Context, callerID uint, in ArticleInput) (*ArticleDTO, error) {
	in = normalizeArticleInput(in)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var out *ArticleDTO
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.requireCaller(dbc, callerID); err != nil {
			return err
		}
		if err := s.requireCategory(dbc, in.CategoryID); err != nil {
			return err
		}
		tags, err := s.resolveTags(dbc, in.Tags)
		if err != nil {
			return err
		}

		row := &types.Article{
			Title:       in.Title,
			Headline:    in.Headline,
			Content:     in.Content,
			Source:      in.Source,
			CategoryID:  in.CategoryID,
			CreatedByID: callerID,
			Views:       0,
			Published:   in.Published,
			CreatedAt:   s.now(),
			Tags:        tags,
		}
		if err := s.articleRepo.Create(dbc, row); err != nil {
			return storeErr("create article", err)
		}
		created, err := s.articleRepo.GetByID(dbc, row.ID)
		if err != nil {
			return storeErr("reload article", err)
		}
		out = toArticleDTO(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Article created", "article_id", out.ID, "caller_id", callerID)
	return out, nil
}

func (s *articleService) Update(ctx context.Context, callerID, id uint, in ArticleInput) (*ArticleDTO, error) {
	in = normalizeArticleInput(in)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var out *ArticleDTO
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.requireCaller(dbc, callerID); err != nil {
			return err
		}
		row, err := s.articleRepo.GetByIDForUpdate(dbc, id)
		if err != nil {
			return storeErr("get article", err)
		}
		if row == nil {
			return apierr.NotFound("article_not_found", "article %d not found", id)
		}
		if row.CategoryID != in.CategoryID {
			if err := s.requireCategory(dbc, in.CategoryID); err != nil {
				return err
			}
		}
		tags, err := s.resolveTags(dbc, in.Tags)
		if err != nil {
			return err
		}

		now := s.now()
		row.Title = in.Title
		row.Headline = in.Headline
		row.Content = in.Content
		row.Source = in.Source
		row.CategoryID = in.CategoryID
		row.Published = in.Published
		row.ModifiedAt = &now
		row.UpdatedByID = &callerID
		row.Tags = tags
		if err := s.articleRepo.Update(dbc, row); err != nil {
			return storeErr("update article", err)
		}
		updated, err := s.articleRepo.GetByID(dbc, id)
		if err != nil {
			return storeErr("reload article", err)
		}
		out = toArticleDTO(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *articleService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		row, err := s.articleRepo.GetByIDForUpdate(dbc, id)
		if err != nil {
			return storeErr("get article", err)
		}
		if row == nil {
			return apierr.NotFound("article_not_found", "article %d not found", id)
		}
		if row.Published {
			return apierr.Conflict("article_published", "article %d is published; unpublish it first", id)
		}
		if err := s.articleRepo.Delete(dbc, id); err != nil {
			return storeErr("delete article", err)
		}
		return nil
	})
}

func (s *articleService) requireCaller(dbc dbctx.Context, callerID uint) error {
	if callerID == 0 {
		return apierr.Unauthorized("unauthenticated", "caller identity is required")
	}
	ok, err := s.accountRepo.Exists(dbc, callerID)
	if err != nil {
		return storeErr("lookup caller", err)
	}
	if !ok {
		return apierr.Unauthorized("unknown_caller", "caller %d is not a known account", callerID)
	}
	return nil
}

func (s *articleService) requireCategory(dbc dbctx.Context, categoryID uint) error {
	ok, err := s.categoryRepo.Exists(dbc, categoryID)
	if err != nil {
		return storeErr("lookup category", err)
	}
	if !ok {
		return apierr.Invalid("category_not_found", "category %d does not exist", categoryID)
	}
	return nil
}

// resolveTags maps the input to stored tags, persisting any new ones.
func (s *articleService) resolveTags(dbc dbctx.Context, in []TagInput) ([]*types.Tag, error) {
	tags, err := s.tags.ResolveAll(dbc, in)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		if t.ID != 0 {
			continue
		}
		if err := s.tagRepo.Create(dbc, t); err != nil {
			return nil, storeErr("create tag", err)
		}
	}
	return tags, nil
}

// contentPolicy strips every element from article bodies. Bodies are plain
// text; readers escape them on output. A Policy is safe for concurrent use.
var contentPolicy = bluemonday.StrictPolicy()

// plainContent removes markup and returns the remaining text unescaped, so
// "R&D < 5%" is stored as written.
func plainContent(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(html.UnescapeString(contentPolicy.Sanitize(s)))
}

func normalizeArticleInput(in ArticleInput) ArticleInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = plainContent(in.Content)
	in.Headline = strings.TrimSpace(in.Headline)
	in.Source = strings.TrimSpace(in.Source)
	if len(in.Tags) > 0 {
		tags := make([]TagInput, len(in.Tags))
		for i, t := range in.Tags {
			tags[i] = normalizeTagInput(t)
		}
		in.Tags = tags
	}
	return in
}
