package news

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/newsroom-backend/internal/data/repos/testutil"
	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/platform/dbctx"
)

func TestArticleRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewArticleRepo(db, testutil.Logger(t))

	author := testutil.SeedAccount(t, ctx, tx, "writer@news.test", types.RoleStaff)
	editor := testutil.SeedAccount(t, ctx, tx, "editor@news.test", types.RoleLecturer)
	sports := testutil.SeedCategory(t, ctx, tx, "Sports", nil)
	tech := testutil.SeedCategory(t, ctx, tx, "Tech", nil)
	football := testutil.SeedTag(t, ctx, tx, "football")
	ai := testutil.SeedTag(t, ctx, tx, "ai")

	a := &types.Article{
		Title:       "Cup final",
		Headline:    "A late winner",
		Content:     "match report",
		CategoryID:  sports.ID,
		CreatedByID: author.ID,
		Published:   true,
		CreatedAt:   time.Now().UTC(),
		Tags:        []*types.Tag{football},
	}
	if err := repo.Create(dbc, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	draft := testutil.SeedArticle(t, ctx, tx, "Chip roadmap", tech.ID, editor.ID, false, ai)

	got, err := repo.GetByID(dbc, a.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: err=%v got=%v", err, got)
	}
	if got.Category == nil || got.Category.ID != sports.ID {
		t.Fatalf("GetByID category: got=%v", got.Category)
	}
	if got.CreatedBy == nil || got.CreatedBy.ID != author.ID {
		t.Fatalf("GetByID creator: got=%v", got.CreatedBy)
	}
	if len(got.Tags) != 1 || got.Tags[0].ID != football.ID {
		t.Fatalf("GetByID tags: got=%v", got.Tags)
	}

	if err := repo.IncrementViews(dbc, a.ID); err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}
	if err := repo.IncrementViews(dbc, a.ID); err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}
	got, _ = repo.GetByID(dbc, a.ID)
	if got.Views != 2 {
		t.Fatalf("Views: want=2 got=%d", got.Views)
	}

	published := true
	rows, err := repo.List(dbc, types.ArticleFilter{Published: &published})
	if err != nil || len(rows) != 1 || rows[0].ID != a.ID {
		t.Fatalf("List published: err=%v rows=%v", err, rows)
	}
	rows, err = repo.List(dbc, types.ArticleFilter{TagName: " AI "})
	if err != nil || len(rows) != 1 || rows[0].ID != draft.ID {
		t.Fatalf("List by tag: err=%v rows=%v", err, rows)
	}
	rows, err = repo.List(dbc, types.ArticleFilter{Query: "WINNER"})
	if err != nil || len(rows) != 1 || rows[0].ID != a.ID {
		t.Fatalf("List by query: err=%v rows=%v", err, rows)
	}
	rows, err = repo.List(dbc, types.ArticleFilter{CreatedByID: &editor.ID})
	if err != nil || len(rows) != 1 || rows[0].ID != draft.ID {
		t.Fatalf("List by creator: err=%v rows=%v", err, rows)
	}
	rows, err = repo.List(dbc, types.ArticleFilter{CategoryID: &tech.ID})
	if err != nil || len(rows) != 1 || rows[0].ID != draft.ID {
		t.Fatalf("List by category: err=%v rows=%v", err, rows)
	}

	locked, err := repo.GetByIDForUpdate(dbc, a.ID)
	if err != nil || locked == nil {
		t.Fatalf("GetByIDForUpdate: err=%v got=%v", err, locked)
	}
	now := time.Now().UTC()
	locked.Title = "Cup final (updated)"
	locked.UpdatedByID = &editor.ID
	locked.ModifiedAt = &now
	locked.Tags = []*types.Tag{ai}
	if err := repo.Update(dbc, locked); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = repo.GetByID(dbc, a.ID)
	if got.Title != "Cup final (updated)" || got.Views != 2 {
		t.Fatalf("GetByID after Update: got=%+v", got)
	}
	if got.UpdatedBy == nil || got.UpdatedBy.ID != editor.ID {
		t.Fatalf("GetByID after Update updater: got=%v", got.UpdatedBy)
	}
	if len(got.Tags) != 1 || got.Tags[0].ID != ai.ID {
		t.Fatalf("GetByID after Update tags: got=%v", got.Tags)
	}

	if n, err := repo.CountByCreator(dbc, author.ID); err != nil || n != 1 {
		t.Fatalf("CountByCreator: want=1 got=%d err=%v", n, err)
	}

	if n, err := repo.ClearUpdater(dbc, editor.ID); err != nil || n != 1 {
		t.Fatalf("ClearUpdater: want=1 got=%d err=%v", n, err)
	}
	got, _ = repo.GetByID(dbc, a.ID)
	if got.UpdatedByID != nil || got.UpdatedBy != nil || got.ModifiedAt == nil {
		t.Fatalf("GetByID after ClearUpdater: updatedBy=%v modified=%v", got.UpdatedByID, got.ModifiedAt)
	}

	if err := repo.Delete(dbc, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, err := repo.GetByID(dbc, a.ID); err != nil || got != nil {
		t.Fatalf("GetByID after Delete: err=%v got=%v", err, got)
	}
	var links int64
	if err := tx.Table("news_article_tag").Where("article_id = ?", a.ID).Count(&links).Error; err != nil || links != 0 {
		t.Fatalf("tag links after Delete: err=%v n=%d", err, links)
	}
}
