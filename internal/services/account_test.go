package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/platform/apierr"
	"github.com/yungbote/newsroom-backend/internal/platform/dbctx"
)

func TestAccountCreateRules(t *testing.T) {
	env := newTestEnv(t)
	a, err := env.accounts.Create(env.ctx, AccountInput{
		Name:     "Grace",
		Email:    " Grace@News.Test ",
		Password: "hopper-1906",
		Role:     rolePtr(types.RoleStaff),
	})
	require.NoError(t, err)
	assert.Equal(t, "grace@news.test", a.Email)
	assert.True(t, a.IsActive)
	assert.Equal(t, "staff", a.RoleName)

	stored, err := env.accountRepo.GetByID(dbctx.Context{Ctx: env.ctx}, a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "hopper-1906", stored.PasswordHash)

	_, err = env.accounts.Create(env.ctx, AccountInput{Name: "Other", Email: "GRACE@news.test", Password: "x", Role: rolePtr(types.RoleStaff)})
	assert.True(t, apierr.IsConflict(err), "want conflict, got %v", err)

	_, err = env.accounts.Create(env.ctx, AccountInput{Name: "NoPw", Email: "nopw@news.test", Password: "  ", Role: rolePtr(types.RoleStaff)})
	assert.True(t, apierr.IsInvalid(err), "want invalid, got %v", err)

	_, err = env.accounts.Create(env.ctx, AccountInput{Name: "Bad", Email: "not-an-email", Password: "x", Role: rolePtr(types.RoleStaff)})
	assert.True(t, apierr.IsInvalid(err), "want invalid, got %v", err)

	_, err = env.accounts.Create(env.ctx, AccountInput{Name: "NoRole", Email: "norole@news.test", Password: "x"})
	assert.True(t, apierr.IsInvalid(err), "want invalid, got %v", err)

	_, err = env.accounts.Create(env.ctx, AccountInput{Name: "BadRole", Email: "badrole@news.test", Password: "x", Role: rolePtr(types.Role(5))})
	assert.True(t, apierr.IsInvalid(err), "want invalid, got %v", err)
}

func TestAccountUpdateKeepsPasswordWhenBlank(t *testing.T) {
	env := newTestEnv(t)
	a := env.staff(t, "keep@news.test")
	before, err := env.accountRepo.GetByID(dbctx.Context{Ctx: env.ctx}, a.ID)
	require.NoError(t, err)

	updated, err := env.accounts.Update(env.ctx, a.ID, AccountInput{
		Name:     "Renamed",
		Email:    "keep@news.test",
		Role:     rolePtr(types.RoleStaff),
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.False(t, updated.IsActive)

	after, err := env.accountRepo.GetByID(dbctx.Context{Ctx: env.ctx}, a.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	_, err = env.accounts.Update(env.ctx, a.ID, AccountInput{Name: "R", Email: "keep@news.test", Password: "changed-pass", Role: rolePtr(types.RoleStaff)})
	require.NoError(t, err)
	changed, err := env.accountRepo.GetByID(dbctx.Context{Ctx: env.ctx}, a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordHash, changed.PasswordHash)

	other := env.staff(t, "other@news.test")
	_, err = env.accounts.Update(env.ctx, other.ID, AccountInput{Name: "O", Email: "KEEP@news.test", Role: rolePtr(types.RoleStaff)})
	assert.True(t, apierr.IsConflict(err), "want conflict, got %v", err)

	_, err = env.accounts.Update(env.ctx, 8888, AccountInput{Name: "O", Email: "x@news.test", Role: rolePtr(types.RoleStaff)})
	assert.True(t, apierr.IsNotFound(err), "want not found, got %v", err)
}

func TestAccountDeleteGuards(t *testing.T) {
	env := newTestEnv(t)
	admin, err := env.accounts.Create(env.ctx, AccountInput{Name: "Admin", Email: "admin@news.test", Password: "pw", Role: rolePtr(types.RoleLecturer)})
	require.NoError(t, err)
	err = env.accounts.Delete(env.ctx, admin.ID)
	assert.True(t, apierr.IsConflict(err), "administrative role: want conflict, got %v", err)

	author := env.staff(t, "author@news.test")
	cat := env.category(t, "Opinion", nil)
	env.article(t, author.ID, cat.ID, "Column", false)
	err = env.accounts.Delete(env.ctx, author.ID)
	assert.True(t, apierr.IsConflict(err), "author: want conflict, got %v", err)

	idle := env.staff(t, "idle@news.test")
	require.NoError(t, env.accounts.Delete(env.ctx, idle.ID))
	_, err = env.accounts.GetByID(env.ctx, idle.ID)
	assert.True(t, apierr.IsNotFound(err), "want not found, got %v", err)
	assert.True(t, apierr.IsNotFound(env.accounts.Delete(env.ctx, idle.ID)))

	list, err := env.accounts.List(env.ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAccountDeleteClearsLastEditor(t *testing.T) {
	env := newTestEnv(t)
	author := env.staff(t, "owner@news.test")
	editor := env.staff(t, "fixer@news.test")
	cat := env.category(t, "Metro", nil)
	art := env.article(t, author.ID, cat.ID, "Transit", false)

	_, err := env.articles.Update(env.ctx, editor.ID, art.ID, ArticleInput{
		Title:      "Transit (corrected)",
		Content:    art.Content,
		CategoryID: cat.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.accounts.Delete(env.ctx, editor.ID))

	got, err := env.articles.GetByID(env.ctx, art.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UpdatedByID)
	assert.Empty(t, got.UpdatedByName)
	assert.NotNil(t, got.ModifiedAt)
	assert.Equal(t, author.ID, got.CreatedByID)
}

func TestAccountProfile(t *testing.T) {
	env := newTestEnv(t)
	me := env.staff(t, "me@news.test")
	env.staff(t, "taken@news.test")

	got, err := env.accounts.GetProfile(env.ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, me.Email, got.Email)

	updated, err := env.accounts.UpdateProfile(env.ctx, me.ID, ProfileInput{Name: " New Name ", Email: "ME2@news.test"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "me2@news.test", updated.Email)
	assert.Equal(t, types.RoleStaff, updated.Role)

	_, err = env.accounts.UpdateProfile(env.ctx, me.ID, ProfileInput{Name: "x", Email: "taken@news.test"})
	assert.True(t, apierr.IsConflict(err), "want conflict, got %v", err)

	_, err = env.accounts.GetProfile(env.ctx, 0)
	assert.True(t, apierr.IsUnauthorized(err))
}
