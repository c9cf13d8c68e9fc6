package content

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
	"github.com/guidedtopic/guidedtopic-backend/internal/data/repos/testutil"
)

func TestVideoRepoCRUD(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewVideoRepo(db, testutil.Logger(t))
	ctx := context.Background()

	author := testutil.SeedUser(t, ctx, tx, "videorepo@example.com", true)

	created, err := repo.Create(ctx, tx, []*types.Video{{
		ID:              uuid.New(),
		UserID:          author.ID,
		Title:           "intro",
		MediaURL:        "https://cdn.example.com/intro.mp4",
		DurationSeconds: 120,
		IsRemedial:      false,
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	remedial := testutil.SeedVideo(t, ctx, tx, author.ID, "remedial")
	if err := repo.UpdateFields(ctx, tx, remedial.ID, map[string]any{"is_remedial": true}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].Title != "intro" {
		t.Fatalf("GetByIDs: unexpected result %+v", got)
	}

	onlyRemedial, err := repo.List(ctx, tx, VideoFilter{Remedial: testutil.PtrBool(true)})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(onlyRemedial) != 1 || onlyRemedial[0].ID != remedial.ID {
		t.Fatalf("List(remedial): unexpected result %+v", onlyRemedial)
	}

	existing, err := repo.ExistingIDs(ctx, tx, []uuid.UUID{created[0].ID, uuid.New()})
	if err != nil {
		t.Fatalf("ExistingIDs: %v", err)
	}
	if len(existing) != 1 || !existing[created[0].ID] {
		t.Fatalf("ExistingIDs: unexpected result %+v", existing)
	}
}

func TestVideoDeleteCascadesOwnedQuestionsOnly(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	videoRepo := NewVideoRepo(db, testutil.Logger(t))
	questionRepo := NewQuestionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	author := testutil.SeedUser(t, ctx, tx, "cascade@example.com", true)
	doomed := testutil.SeedVideo(t, ctx, tx, author.ID, "doomed")
	survivor := testutil.SeedVideo(t, ctx, tx, author.ID, "survivor")

	// Owned by the doomed video.
	owned := testutil.SeedQuestion(t, ctx, tx, doomed.ID, 10)
	// Owned elsewhere but targeting the doomed video: must survive as a
	// dangling redirect.
	referencing := testutil.SeedQuestion(t, ctx, tx, survivor.ID, 20)
	referencing.AnswerATarget = testutil.PtrUUID(doomed.ID)
	if err := questionRepo.Save(ctx, tx, referencing); err != nil {
		t.Fatalf("Save referencing: %v", err)
	}

	if err := videoRepo.Delete(ctx, tx, doomed.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	gone, err := questionRepo.GetByIDs(ctx, tx, []uuid.UUID{owned.ID})
	if err != nil {
		t.Fatalf("GetByIDs(owned): %v", err)
	}
	if len(gone) != 0 {
		t.Fatalf("owned question should be cascade-deleted, got %+v", gone)
	}

	kept, err := questionRepo.GetByIDs(ctx, tx, []uuid.UUID{referencing.ID})
	if err != nil {
		t.Fatalf("GetByIDs(referencing): %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("referencing question must survive the target delete")
	}
	if kept[0].AnswerATarget == nil || *kept[0].AnswerATarget != doomed.ID {
		t.Fatalf("referencing question should keep its dangling target, got %+v", kept[0].AnswerATarget)
	}

	existing, err := videoRepo.ExistingIDs(ctx, tx, []uuid.UUID{doomed.ID, survivor.ID})
	if err != nil {
		t.Fatalf("ExistingIDs: %v", err)
	}
	if existing[doomed.ID] || !existing[survivor.ID] {
		t.Fatalf("deleted video must stop resolving: %+v", existing)
	}
}

func TestIncrementViewsIsAtomicUnderConcurrency(t *testing.T) {
	db := testutil.DB(t)
	repo := NewVideoRepo(db, testutil.Logger(t))
	ctx := context.Background()

	// Concurrent increments need real committed writes, so this test works
	// on the shared handle and cleans up after itself.
	author := &types.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", Username: uuid.NewString(), Password: "pw"}
	if err := db.WithContext(ctx).Create(author).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	v := &types.Video{ID: uuid.New(), UserID: author.ID, Title: "hot", MediaURL: "https://cdn.example.com/hot.mp4", DurationSeconds: types.DurationUnknown}
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		t.Fatalf("seed video: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("id = ?", v.ID).Delete(&types.Video{})
		db.Unscoped().Where("id = ?", author.ID).Delete(&types.User{})
	})

	const workers = 100
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.IncrementViews(ctx, nil, v.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}

	got, err := repo.GetByIDs(ctx, nil, []uuid.UUID{v.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: %v (%d rows)", err, len(got))
	}
	if got[0].TotalViews != workers {
		t.Fatalf("TotalViews = %d, want %d (lost updates)", got[0].TotalViews, workers)
	}
}
