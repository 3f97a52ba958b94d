package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/newsroom-backend/internal/platform/apierr"
	"github.com/yungbote/newsroom-backend/internal/platform/dbctx"
)

func TestTagNormalizedAndResolved(t *testing.T) {
	env := newTestEnv(t)
	tag, err := env.tags.Create(env.ctx, TagInput{Name: " AI ", Note: "artificial intelligence"})
	require.NoError(t, err)
	assert.Equal(t, "ai", tag.Name)

	resolved, err := env.tags.Resolve(dbctx.Context{Ctx: env.ctx}, "AI", "ignored")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, resolved.ID)
	assert.Equal(t, "artificial intelligence", resolved.Note)

	fresh, err := env.tags.Resolve(dbctx.Context{Ctx: env.ctx}, " Space ", "rockets")
	require.NoError(t, err)
	assert.Zero(t, fresh.ID)
	assert.Equal(t, "space", fresh.Name)
	assert.Equal(t, "rockets", fresh.Note)

	_, err = env.tags.Create(env.ctx, TagInput{Name: "ai"})
	assert.True(t, apierr.IsConflict(err), "want conflict, got %v", err)
	_, err = env.tags.Create(env.ctx, TagInput{Name: "  "})
	assert.True(t, apierr.IsInvalid(err), "want invalid, got %v", err)
}

func TestTagResolveAllCollapsesDuplicates(t *testing.T) {
	env := newTestEnv(t)
	got, err := env.tags.ResolveAll(dbctx.Context{Ctx: env.ctx}, []TagInput{{Name: "Go"}, {Name: " go "}, {Name: "Rust"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "go", got[0].Name)
	assert.Equal(t, "rust", got[1].Name)
}

func TestTagDeleteBlockedWhileInUse(t *testing.T) {
	env := newTestEnv(t)
	author := env.staff(t, "tagger@news.test")
	cat := env.category(t, "Science", nil)
	art := env.article(t, author.ID, cat.ID, "Mars", false, "space")

	tags, err := env.tags.List(env.ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	spaceID := tags[0].ID

	articles, err := env.tags.ListArticles(env.ctx, spaceID)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, art.ID, articles[0].ID)

	err = env.tags.Delete(env.ctx, spaceID)
	assert.True(t, apierr.IsConflict(err), "want conflict, got %v", err)

	unused, err := env.tags.Create(env.ctx, TagInput{Name: "unused"})
	require.NoError(t, err)
	require.NoError(t, env.tags.Delete(env.ctx, unused.ID))

	_, err = env.tags.GetByID(env.ctx, unused.ID)
	assert.True(t, apierr.IsNotFound(err), "want not found, got %v", err)
	assert.True(t, apierr.IsNotFound(env.tags.Delete(env.ctx, unused.ID)))
}

func TestTagUpdate(t *testing.T) {
	env := newTestEnv(t)
	a, err := env.tags.Create(env.ctx, TagInput{Name: "one"})
	require.NoError(t, err)
	_, err = env.tags.Create(env.ctx, TagInput{Name: "two"})
	require.NoError(t, err)

	_, err = env.tags.Update(env.ctx, a.ID, TagInput{Name: "TWO"})
	assert.True(t, apierr.IsConflict(err), "want conflict, got %v", err)

	got, err := env.tags.Update(env.ctx, a.ID, TagInput{Name: " One ", Note: "first"})
	require.NoError(t, err)
	assert.Equal(t, "one", got.Name)
	assert.Equal(t, "first", got.Note)

	_, err = env.tags.Update(env.ctx, 9999, TagInput{Name: "x"})
	assert.True(t, apierr.IsNotFound(err), "want not found, got %v", err)
}
