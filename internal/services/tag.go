package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/newsroom-backend/internal/data/repos"
	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/platform/apierr"
	"github.com/yungbote/newsroom-backend/internal/platform/dbctx"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
	"github.com/yungbote/newsroom-backend/internal/platform/validate"
)

type TagInput struct {
	Name string `json:"name" validate:"notblank,max=100"`
	Note string `json:"note" validate:"max=500"`
}

type TagService interface {
	List(ctx context.Context) ([]*TagDTO, error)
	GetByID(ctx context.Context, id uint) (*TagDTO, error)
	Create(ctx context.Context, in TagInput) (*TagDTO, error)
	Update(ctx context.Context, id uint, in TagInput) (*TagDTO, error)
	Delete(ctx context.Context, id uint) error
	ListArticles(ctx context.Context, id uint) ([]*ArticleDTO, error)

	// Resolve returns the stored tag matching name, or an unsaved tag
	// carrying the normalized name and note. The note of an existing tag is
	// left untouched.
	Resolve(dbc dbctx.Context, name, note string) (*types.Tag, error)
	// ResolveAll resolves every input, collapsing names that normalize to
	// the same value. Order of first appearance is kept.
	ResolveAll(dbc dbctx.Context, in []TagInput) ([]*types.Tag, error)
}

type tagService struct {
	db          *gorm.DB
	log         *logger.Logger
	tagRepo     repos.TagRepo
	articleRepo repos.ArticleRepo
}

func NewTagService(db *gorm.DB, log *logger.Logger, tagRepo repos.TagRepo, articleRepo repos.ArticleRepo) TagService {
	return &tagService{
		db:          db,
		log:         log.With("service", "TagService"),
		tagRepo:     tagRepo,
		articleRepo: articleRepo,
	}
}

func (s *tagService) List(ctx context.Context) ([]*TagDTO, error) {
	rows, err := s.tagRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, storeErr("list tags", err)
	}
	return toTagDTOs(rows), nil
}

func (s *tagService) GetByID(ctx context.Context, id uint) (*TagDTO, error) {
	row, err := s.tagRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, storeErr("get tag", err)
	}
	if row == nil {
		return nil, apierr.NotFound("tag_not_found", "tag %d not found", id)
	}
	return toTagDTO(row), nil
}

func (s *tagService) Create(ctx context.Context, in TagInput) (*TagDTO, error) {
	in = normalizeTagInput(in)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var out *TagDTO
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := s.tagRepo.GetByName(dbc, in.Name)
		if err != nil {
			return storeErr("lookup tag name", err)
		}
		if existing != nil {
			return apierr.Conflict("tag_exists", "tag %q already exists", in.Name)
		}
		row := &types.Tag{Name: in.Name, Note: in.Note}
		if err := s.tagRepo.Create(dbc, row); err != nil {
			return storeErr("create tag", err)
		}
		out = toTagDTO(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *tagService) Update(ctx context.Context, id uint, in TagInput) (*TagDTO, error) {
	in = normalizeTagInput(in)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var out *TagDTO
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		row, err := s.tagRepo.GetByID(dbc, id)
		if err != nil {
			return storeErr("get tag", err)
		}
		if row == nil {
			return apierr.NotFound("tag_not_found", "tag %d not found", id)
		}
		other, err := s.tagRepo.GetByName(dbc, in.Name)
		if err != nil {
			return storeErr("lookup tag name", err)
		}
		if other != nil && other.ID != id {
			return apierr.Conflict("tag_exists", "tag %q already exists", in.Name)
		}
		row.Name = in.Name
		row.Note = in.Note
		if err := s.tagRepo.Update(dbc, row); err != nil {
			return storeErr("update tag", err)
		}
		out = toTagDTO(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *tagService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		ok, err := s.tagRepo.Exists(dbc, id)
		if err != nil {
			return storeErr("lookup tag", err)
		}
		if !ok {
			return apierr.NotFound("tag_not_found", "tag %d not found", id)
		}
		n, err := s.tagRepo.ArticleCount(dbc, id)
		if err != nil {
			return storeErr("count tag articles", err)
		}
		if n > 0 {
			return apierr.Conflict("tag_in_use", "tag %d is used by %d articles", id, n)
		}
		if err := s.tagRepo.Delete(dbc, id); err != nil {
			return storeErr("delete tag", err)
		}
		return nil
	})
}

func (s *tagService) ListArticles(ctx context.Context, id uint) ([]*ArticleDTO, error) {
	dbc := dbctx.Context{Ctx: ctx}
	tag, err := s.tagRepo.GetByID(dbc, id)
	if err != nil {
		return nil, storeErr("get tag", err)
	}
	if tag == nil {
		return nil, apierr.NotFound("tag_not_found", "tag %d not found", id)
	}
	rows, err := s.articleRepo.List(dbc, types.ArticleFilter{TagName: tag.Name})
	if err != nil {
		return nil, storeErr("list tag articles", err)
	}
	return toArticleDTOs(rows), nil
}

func (s *tagService) Resolve(dbc dbctx.Context, name, note string) (*types.Tag, error) {
	name = types.NormalizeTagName(name)
	if name == "" {
		return nil, apierr.Invalid("invalid_tag", "tag name is required")
	}
	existing, err := s.tagRepo.GetByName(dbc, name)
	if err != nil {
		return nil, storeErr("lookup tag name", err)
	}
	if existing != nil {
		return existing, nil
	}
	return &types.Tag{Name: name, Note: strings.TrimSpace(note)}, nil
}

func (s *tagService) ResolveAll(dbc dbctx.Context, in []TagInput) ([]*types.Tag, error) {
	out := make([]*types.Tag, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, ti := range in {
		name := types.NormalizeTagName(ti.Name)
		if seen[name] {
			continue
		}
		tag, err := s.Resolve(dbc, name, ti.Note)
		if err != nil {
			return nil, err
		}
		seen[name] = true
		out = append(out, tag)
	}
	return out, nil
}

func normalizeTagInput(in TagInput) TagInput {
	in.Name = types.NormalizeTagName(in.Name)
	in.Note = strings.TrimSpace(in.Note)
	return in
}
