package services

import (
	"time"

	types "github.com/yungbote/newsroom-backend/internal/domain"
)

type CategoryDTO struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ParentID         *uint  `json:"parent_id"`
	IsActive         bool   `json:"is_active"`
	ArticleCount     int64  `json:"article_count"`
	SubCategoryCount int64  `json:"sub_category_count"`
}

type TagDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Note string `json:"note"`
}

type ArticleDTO struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Headline      string     `json:"headline"`
	Content       string     `json:"content"`
	Source        string     `json:"source"`
	CategoryID    uint       `json:"category_id"`
	CategoryName  string     `json:"category_name"`
	CreatedByID   uint       `json:"created_by_id"`
	CreatedByName string     `json:"created_by_name"`
	UpdatedByID   *uint      `json:"updated_by_id"`
	UpdatedByName string     `json:"updated_by_name,omitempty"`
	Views         int64      `json:"views"`
	Published     bool       `json:"published"`
	CreatedAt     time.Time  `json:"created_at"`
	ModifiedAt    *time.Time `json:"modified_at"`
	Tags          []TagDTO   `json:"tags"`
}

// AccountDTO never carries credentials.
type AccountDTO struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      types.Role `json:"role"`
	RoleName  string     `json:"role_name"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func toCategoryDTO(c *types.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		ParentID:         c.ParentID,
		IsActive:         c.IsActive,
		ArticleCount:     c.ArticleCount,
		SubCategoryCount: c.SubCategoryCount,
	}
}

func toCategoryDTOs(rows []*types.Category) []*CategoryDTO {
	out := make([]*CategoryDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, toCategoryDTO(c))
	}
	return out
}

func toTagDTO(t *types.Tag) *TagDTO {
	if t == nil {
		return nil
	}
	return &TagDTO{ID: t.ID, Name: t.Name, Note: t.Note}
}

func toTagDTOs(rows []*types.Tag) []*TagDTO {
	out := make([]*TagDTO, 0, len(rows))
	for _, t := range rows {
		out = append(out, toTagDTO(t))
	}
	return out
}

func toArticleDTO(a *types.Article) *ArticleDTO {
	if a == nil {
		return nil
	}
	dto := &ArticleDTO{
		ID:          a.ID,
		Title:       a.Title,
		Headline:    a.Headline,
		Content:     a.Content,
		Source:      a.Source,
		CategoryID:  a.CategoryID,
		CreatedByID: a.CreatedByID,
		UpdatedByID: a.UpdatedByID,
		Views:       a.Views,
		Published:   a.Published,
		CreatedAt:   a.CreatedAt,
		ModifiedAt:  a.ModifiedAt,
		Tags:        make([]TagDTO, 0, len(a.Tags)),
	}
	if a.Category != nil {
		dto.CategoryName = a.Category.Name
	}
	if a.CreatedBy != nil {
		dto.CreatedByName = a.CreatedBy.Name
	}
	if a.UpdatedBy != nil {
		dto.UpdatedByName = a.UpdatedBy.Name
	}
	for _, t := range a.Tags {
		if t == nil {
			continue
		}
		dto.Tags = append(dto.Tags, TagDTO{ID: t.ID, Name: t.Name, Note: t.Note})
	}
	return dto
}

func toArticleDTOs(rows []*types.Article) []*ArticleDTO {
	out := make([]*ArticleDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, toArticleDTO(a))
	}
	return out
}

func toAccountDTO(a *types.Account) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		RoleName:  a.Role.String(),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAccountDTOs(rows []*types.Account) []*AccountDTO {
	out := make([]*AccountDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, toAccountDTO(a))
	}
	return out
}
