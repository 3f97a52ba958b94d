package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/newsroom-backend/internal/platform/apierr"
)

func TestCategoryCreateDuplicateNameAnyCase(t *testing.T) {
	env := newTestEnv(t)
	env.category(t, "Tech", nil)

	_, err := env.cats.Create(env.ctx, CategoryInput{Name: "tech"})
	require.Error(t, err)
	assert.True(t, apierr.IsConflict(err), "want conflict, got %v", err)

	_, err = env.cats.Create(env.ctx, CategoryInput{Name: "  TECH  "})
	assert.True(t, apierr.IsConflict(err), "want conflict, got %v", err)
}

func TestCategoryCreateNormalizesParent(t *testing.T) {
	env := newTestEnv(t)
	zero := uint(0)
	c, err := env.cats.Create(env.ctx, CategoryInput{Name: "Root", ParentID: &zero, IsActive: true})
	require.NoError(t, err)
	assert.Nil(t, c.ParentID)

	missing := uint(999)
	_, err = env.cats.Create(env.ctx, CategoryInput{Name: "Orphan", ParentID: &missing})
	assert.True(t, apierr.IsInvalid(err), "want invalid, got %v", err)

	_, err = env.cats.Create(env.ctx, CategoryInput{Name: "   "})
	assert.True(t, apierr.IsInvalid(err), "want invalid, got %v", err)
}

func TestCategoryDeleteBlockedByArticleAndChild(t *testing.T) {
	env := newTestEnv(t)
	author := env.staff(t, "cat-author@news.test")
	parent := env.category(t, "World", nil)
	child := env.category(t, "Asia", &parent.ID)
	art := env.article(t, author.ID, parent.ID, "Report", false)

	got, err := env.cats.GetByID(env.ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ArticleCount)
	assert.Equal(t, int64(1), got.SubCategoryCount)

	err = env.cats.Delete(env.ctx, parent.ID)
	assert.True(t, apierr.IsConflict(err), "want conflict, got %v", err)

	require.NoError(t, env.articles.Delete(env.ctx, art.ID))
	err = env.cats.Delete(env.ctx, parent.ID)
	assert.True(t, apierr.IsConflict(err), "want conflict while child exists, got %v", err)

	require.NoError(t, env.cats.Delete(env.ctx, child.ID))
	require.NoError(t, env.cats.Delete(env.ctx, parent.ID))

	_, err = env.cats.GetByID(env.ctx, parent.ID)
	assert.True(t, apierr.IsNotFound(err), "want not found, got %v", err)
	assert.True(t, apierr.IsNotFound(env.cats.Delete(env.ctx, parent.ID)))
}

func TestCategoryUpdate(t *testing.T) {
	env := newTestEnv(t)
	a := env.category(t, "Alpha", nil)
	b := env.category(t, "Beta", &a.ID)
	c := env.category(t, "Gamma", &b.ID)

	_, err := env.cats.Update(env.ctx, 12345, CategoryInput{Name: "Nope"})
	assert.True(t, apierr.IsNotFound(err), "want not found, got %v", err)

	_, err = env.cats.Update(env.ctx, b.ID, CategoryInput{Name: "alpha"})
	assert.True(t, apierr.IsConflict(err), "want conflict, got %v", err)

	_, err = env.cats.Update(env.ctx, a.ID, CategoryInput{Name: "Alpha", ParentID: &a.ID})
	assert.True(t, apierr.IsInvalid(err), "self parent: want invalid, got %v", err)

	_, err = env.cats.Update(env.ctx, a.ID, CategoryInput{Name: "Alpha", ParentID: &c.ID})
	assert.True(t, apierr.IsInvalid(err), "cycle: want invalid, got %v", err)

	// Renaming to a different case of its own name is allowed.
	got, err := env.cats.Update(env.ctx, b.ID, CategoryInput{Name: "BETA", Description: "second", IsActive: false})
	require.NoError(t, err)
	assert.Equal(t, "BETA", got.Name)
	assert.Equal(t, "second", got.Description)
	assert.Nil(t, got.ParentID)
	assert.False(t, got.IsActive)
	assert.Equal(t, int64(1), got.SubCategoryCount)

	active, err := env.cats.List(env.ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 2)
	all, err := env.cats.List(env.ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
