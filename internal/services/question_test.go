package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	contentrepo "github.com/guidedtopic/guidedtopic-backend/internal/data/repos/content"
	"github.com/guidedtopic/guidedtopic-backend/internal/data/repos/testutil"
	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
	"github.com/guidedtopic/guidedtopic-backend/internal/pkg/apperr"
	"github.com/guidedtopic/guidedtopic-backend/internal/requestdata"
	"github.com/guidedtopic/guidedtopic-backend/internal/services"
)

func authorCtx(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:          userID,
		IsAuthenticated: true,
		CanAuthor:       true,
	})
}

func learnerCtx(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:          userID,
		IsAuthenticated: true,
	})
}

func newQuestionService(tb testing.TB, tx *gorm.DB, strict bool) services.QuestionService {
	tb.Helper()
	log := testutil.Logger(tb)
	return services.NewQuestionService(
		tx, log,
		contentrepo.NewVideoRepo(tx, log),
		contentrepo.NewQuestionRepo(tx, log),
		nil,
		strict,
	)
}

func TestCreateQuestionRejectsNonAuthors(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newQuestionService(t, tx, false)

	author := testutil.SeedUser(t, context.Background(), tx, "author@example.com", true)
	learner := testutil.SeedUser(t, context.Background(), tx, "learner@example.com", false)
	video := testutil.SeedVideo(t, context.Background(), tx, author.ID, "intro")

	_, _, err := svc.CreateQuestion(learnerCtx(learner.ID), video.ID, services.QuestionInput{
		Prompt:   "What next?",
		PoseTime: "00:00:10",
	})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateQuestionValidatesInput(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newQuestionService(t, tx, false)

	author := testutil.SeedUser(t, context.Background(), tx, "author@example.com", true)
	ctx := authorCtx(author.ID)
	video := testutil.SeedVideo(t, context.Background(), tx, author.ID, "intro")

	cases := []struct {
		name    string
		in      services.QuestionInput
		wantErr error
	}{
		{
			name:    "empty prompt",
			in:      services.QuestionInput{Prompt: "  ", PoseTime: "00:00:10"},
			wantErr: apperr.ErrInvalidArgument,
		},
		{
			name:    "malformed pose time",
			in:      services.QuestionInput{Prompt: "p", PoseTime: "90 seconds"},
			wantErr: apperr.ErrInvalidTimeFormat,
		},
		{
			name: "duplicate slot label",
			in: services.QuestionInput{
				Prompt:   "p",
				PoseTime: "00:00:10",
				Slots: []services.SlotInput{
					{Label: types.SlotA, Text: "one"},
					{Label: types.SlotA, Text: "two"},
				},
			},
			wantErr: apperr.ErrInvalidArgument,
		},
		{
			name: "unknown slot label",
			in: services.QuestionInput{
				Prompt:   "p",
				PoseTime: "00:00:10",
				Slots:    []services.SlotInput{{Label: "f", Text: "one"}},
			},
			wantErr: apperr.ErrInvalidArgument,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.CreateQuestion(ctx, video.ID, tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateQuestionBoundsPoseTimeByKnownDuration(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newQuestionService(t, tx, false)

	author := testutil.SeedUser(t, context.Background(), tx, "author@example.com", true)
	ctx := authorCtx(author.ID)

	video := testutil.SeedVideo(t, context.Background(), tx, author.ID, "short clip")
	if err := tx.Model(video).Update("duration_seconds", 60).Error; err != nil {
		t.Fatalf("set duration: %v", err)
	}

	_, _, err := svc.CreateQuestion(ctx, video.ID, services.QuestionInput{
		Prompt:   "past the end",
		PoseTime: "00:02:00",
	})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	// An unknown duration never bounds pose time.
	unbounded := testutil.SeedVideo(t, context.Background(), tx, author.ID, "live recording")
	q, _, err := svc.CreateQuestion(ctx, unbounded.ID, services.QuestionInput{
		Prompt:   "way out",
		PoseTime: "10:00:00",
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if q.PoseTime != 36000 {
		t.Fatalf("expected pose time 36000, got %d", q.PoseTime)
	}
}

func TestCreateQuestionDanglingTargetPolicy(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	author := testutil.SeedUser(t, context.Background(), tx, "author@example.com", true)
	ctx := authorCtx(author.ID)
	video := testutil.SeedVideo(t, context.Background(), tx, author.ID, "intro")
	missing := uuid.New()

	in := services.QuestionInput{
		Prompt:   "Where to?",
		PoseTime: "00:00:30",
		Slots: []services.SlotInput{
			{Label: types.SlotA, Text: "stay"},
			{Label: types.SlotB, Text: "jump", TargetVideoID: testutil.PtrUUID(missing)},
		},
	}

	tolerant := newQuestionService(t, tx, false)
	q, warnings, err := tolerant.CreateQuestion(ctx, video.ID, in)
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Label != types.SlotB || warnings[0].TargetVideoID != missing {
		t.Fatalf("expected one warning for slot b, got %+v", warnings)
	}
	if slot, _ := q.Slot(types.SlotB); slot.TargetVideoID == nil || *slot.TargetVideoID != missing {
		t.Fatalf("tolerant write must keep the dangling target, got %+v", slot)
	}

	strict := newQuestionService(t, tx, true)
	_, _, err = strict.CreateQuestion(ctx, video.ID, in)
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("strict mode expected ErrInvalidArgument, got %v", err)
	}
}

func TestUpdateQuestionClearsStaleSlots(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newQuestionService(t, tx, false)

	author := testutil.SeedUser(t, context.Background(), tx, "author@example.com", true)
	ctx := authorCtx(author.ID)
	video := testutil.SeedVideo(t, context.Background(), tx, author.ID, "intro")
	next := testutil.SeedVideo(t, context.Background(), tx, author.ID, "deep dive")

	q, _, err := svc.CreateQuestion(ctx, video.ID, services.QuestionInput{
		Prompt:   "Ready to go deeper?",
		PoseTime: "00:01:00",
		Slots: []services.SlotInput{
			{Label: types.SlotA, Text: "yes", TargetVideoID: testutil.PtrUUID(next.ID)},
			{Label: types.SlotB, Text: "not yet"},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	updated, warnings, err := svc.UpdateQuestion(ctx, q.ID, services.QuestionInput{
		Prompt:   "Ready?",
		PoseTime: "00:01:30",
		Slots: []services.SlotInput{
			{Label: types.SlotB, Text: "replay this part"},
		},
	})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %+v", warnings)
	}
	if updated.PoseTime != 90 {
		t.Fatalf("expected pose time 90, got %d", updated.PoseTime)
	}
	if slotA, _ := updated.Slot(types.SlotA); !slotA.IsEmpty() {
		t.Fatalf("slot a should have been cleared, got %+v", slotA)
	}
	if slotB, _ := updated.Slot(types.SlotB); slotB.Text != "replay this part" || slotB.TargetVideoID != nil {
		t.Fatalf("unexpected slot b: %+v", slotB)
	}
}

func TestInspectGraphReportsDanglingRedirects(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newQuestionService(t, tx, false)

	author := testutil.SeedUser(t, context.Background(), tx, "author@example.com", true)
	ctx := authorCtx(author.ID)
	video := testutil.SeedVideo(t, context.Background(), tx, author.ID, "intro")
	missing := uuid.New()

	q, _, err := svc.CreateQuestion(ctx, video.ID, services.QuestionInput{
		Prompt:   "Where to?",
		PoseTime: "00:00:30",
		Slots: []services.SlotInput{
			{Label: types.SlotA, Text: "gone", TargetVideoID: testutil.PtrUUID(missing)},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	dangling, err := svc.InspectGraph(ctx)
	if err != nil {
		t.Fatalf("InspectGraph: %v", err)
	}
	if len(dangling) != 1 {
		t.Fatalf("expected one dangling edge, got %d", len(dangling))
	}
	if dangling[0].QuestionID != q.ID || dangling[0].Slot != types.SlotA || dangling[0].Target != missing {
		t.Fatalf("unexpected dangling edge: %+v", dangling[0])
	}
}
