package content

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/guidedtopic/guidedtopic-backend/internal/data/repos/testutil"
)

func TestQuestionRepoListOrder(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewQuestionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	author := testutil.SeedUser(t, ctx, tx, "questionrepo@example.com", true)
	v := testutil.SeedVideo(t, ctx, tx, author.ID, "ordered")

	late := testutil.SeedQuestion(t, ctx, tx, v.ID, 30)
	early := testutil.SeedQuestion(t, ctx, tx, v.ID, 5)
	mid := testutil.SeedQuestion(t, ctx, tx, v.ID, 10)

	got, err := repo.ListByVideo(ctx, tx, v.ID)
	if err != nil {
		t.Fatalf("ListByVideo: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].ID != early.ID || got[1].ID != mid.ID || got[2].ID != late.ID {
		t.Fatalf("unexpected order: %v %v %v", got[0].PoseTime, got[1].PoseTime, got[2].PoseTime)
	}
}

func TestQuestionRepoSaveKeepsAllSlots(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewQuestionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	author := testutil.SeedUser(t, ctx, tx, "slots@example.com", true)
	v := testutil.SeedVideo(t, ctx, tx, author.ID, "slots")
	target := testutil.SeedVideo(t, ctx, tx, author.ID, "target")

	q := testutil.SeedQuestion(t, ctx, tx, v.ID, 10)
	q.Prompt = "revised"
	q.AnswerBText = "go deeper"
	q.AnswerBTarget = testutil.PtrUUID(target.ID)
	if err := repo.Save(ctx, tx, q); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{q.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: %v (%d rows)", err, len(got))
	}
	slots := got[0].Slots()
	if len(slots) != 5 {
		t.Fatalf("every question must carry all five slots")
	}
	if slots[1].Text != "go deeper" || slots[1].TargetVideoID == nil || *slots[1].TargetVideoID != target.ID {
		t.Fatalf("slot B not persisted: %+v", slots[1])
	}
	if !slots[2].IsEmpty() || !slots[3].IsEmpty() || !slots[4].IsEmpty() {
		t.Fatalf("unused slots must stay empty")
	}

	if err := repo.Delete(ctx, tx, q.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = repo.GetByIDs(ctx, tx, []uuid.UUID{q.ID})
	if err != nil {
		t.Fatalf("GetByIDs after delete: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("question should be gone after delete")
	}
}
