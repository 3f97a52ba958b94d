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

type CategoryInput struct {
	Name        string `json:"name" validate:"notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	ParentID    *uint  `json:"parent_id"`
	IsActive    bool   `json:"is_active"`
}

type CategoryService interface {
	List(ctx context.Context, activeOnly bool) ([]*CategoryDTO, error)
	GetByID(ctx context.Context, id uint) (*CategoryDTO, error)
	Create(ctx context.Context, in CategoryInput) (*CategoryDTO, error)
	Update(ctx context.Context, id uint, in CategoryInput) (*CategoryDTO, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
}

func NewCategoryService(db *gorm.DB, log *logger.Logger, categoryRepo repos.CategoryRepo) CategoryService {
	return &categoryService{
		db:           db,
		log:          log.With("service", "CategoryService"),
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) List(ctx context.Context, activeOnly bool) ([]*CategoryDTO, error) {
	rows, err := s.categoryRepo.List(dbctx.Context{Ctx: ctx}, activeOnly)
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	return toCategoryDTOs(rows), nil
}

func (s *categoryService) GetByID(ctx context.Context, id uint) (*CategoryDTO, error) {
	row, err := s.categoryRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, storeErr("get category", err)
	}
	if row == nil {
		return nil, apierr.NotFound("category_not_found", "category %d not found", id)
	}
	return toCategoryDTO(row), nil
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*CategoryDTO, error) {
	in = normalizeCategoryInput(in)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var out *CategoryDTO
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := s.categoryRepo.GetByName(dbc, in.Name)
		if err != nil {
			return storeErr("lookup category name", err)
		}
		if existing != nil {
			return apierr.Conflict("category_exists", "category %q already exists", in.Name)
		}
		if in.ParentID != nil {
			ok, err := s.categoryRepo.Exists(dbc, *in.ParentID)
			if err != nil {
				return storeErr("lookup parent category", err)
			}
			if !ok {
				return apierr.Invalid("parent_not_found", "parent category %d does not exist", *in.ParentID)
			}
		}

		row := &types.Category{
			Name:        in.Name,
			Description: in.Description,
			ParentID:    in.ParentID,
			IsActive:    in.IsActive,
		}
		if err := s.categoryRepo.Create(dbc, row); err != nil {
			return storeErr("create category", err)
		}
		created, err := s.categoryRepo.GetByID(dbc, row.ID)
		if err != nil {
			return storeErr("reload category", err)
		}
		out = toCategoryDTO(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Category created", "category_id", out.ID)
	return out, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, in CategoryInput) (*CategoryDTO, error) {
	in = normalizeCategoryInput(in)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var out *CategoryDTO
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		row, err := s.categoryRepo.GetByID(dbc, id)
		if err != nil {
			return storeErr("get category", err)
		}
		if row == nil {
			return apierr.NotFound("category_not_found", "category %d not found", id)
		}

		if !strings.EqualFold(row.Name, in.Name) {
			other, err := s.categoryRepo.GetByName(dbc, in.Name)
			if err != nil {
				return storeErr("lookup category name", err)
			}
			if other != nil && other.ID != id {
				return apierr.Conflict("category_exists", "category %q already exists", in.Name)
			}
		}
		if err := s.checkParent(dbc, id, in.ParentID); err != nil {
			return err
		}

		row.Name = in.Name
		row.Description = in.Description
		row.ParentID = in.ParentID
		row.IsActive = in.IsActive
		if err := s.categoryRepo.Update(dbc, row); err != nil {
			return storeErr("update category", err)
		}
		updated, err := s.categoryRepo.GetByID(dbc, id)
		if err != nil {
			return storeErr("reload category", err)
		}
		out = toCategoryDTO(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		row, err := s.categoryRepo.GetByID(dbc, id)
		if err != nil {
			return storeErr("get category", err)
		}
		if row == nil {
			return apierr.NotFound("category_not_found", "category %d not found", id)
		}
		if row.ArticleCount > 0 {
			return apierr.Conflict("category_in_use", "category %d still has %d articles", id, row.ArticleCount)
		}
		if row.SubCategoryCount > 0 {
			return apierr.Conflict("category_in_use", "category %d still has %d subcategories", id, row.SubCategoryCount)
		}
		if err := s.categoryRepo.Delete(dbc, id); err != nil {
			return storeErr("delete category", err)
		}
		return nil
	})
}

// checkParent rejects a parent that is missing, the category itself, or one
// of its descendants.
func (s *categoryService) checkParent(dbc dbctx.Context, id uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if *parentID == id {
		return apierr.Invalid("invalid_parent", "category %d cannot be its own parent", id)
	}
	ok, err := s.categoryRepo.Exists(dbc, *parentID)
	if err != nil {
		return storeErr("lookup parent category", err)
	}
	if !ok {
		return apierr.Invalid("parent_not_found", "parent category %d does not exist", *parentID)
	}

	seen := map[uint]bool{*parentID: true}
	cur := *parentID
	for {
		next, err := s.categoryRepo.ParentOf(dbc, cur)
		if err != nil {
			return storeErr("walk category tree", err)
		}
		if next == nil {
			return nil
		}
		if *next == id {
			return apierr.Invalid("invalid_parent", "category %d cannot be moved under its descendant %d", id, *parentID)
		}
		if seen[*next] {
			return nil
		}
		seen[*next] = true
		cur = *next
	}
}

func normalizeCategoryInput(in CategoryInput) CategoryInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.ParentID != nil && *in.ParentID == 0 {
		in.ParentID = nil
	}
	return in
}
