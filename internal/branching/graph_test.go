package branching

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
)

func video(id string) *types.Video {
	return &types.Video{ID: uuid.MustParse(id), Title: "v", MediaURL: "https://cdn.example.com/v.mp4"}
}

func question(id, videoID string, poseTime int) *types.Question {
	return &types.Question{
		ID:       uuid.MustParse(id),
		VideoID:  uuid.MustParse(videoID),
		Prompt:   "q",
		PoseTime: poseTime,
	}
}

const (
	vidA = "11111111-1111-1111-1111-111111111111"
	vidB = "22222222-2222-2222-2222-222222222222"
	vidC = "33333333-3333-3333-3333-333333333333"

	qid1 = "aaaaaaaa-0000-0000-0000-000000000001"
	qid2 = "aaaaaaaa-0000-0000-0000-000000000002"
	qid3 = "aaaaaaaa-0000-0000-0000-000000000003"
)

func ptrUUID(s string) *uuid.UUID {
	u := uuid.MustParse(s)
	return &u
}

func TestBuildGraphEdgesAndNodes(t *testing.T) {
	q := question(qid1, vidA, 10)
	q.AnswerAText = "right"
	q.AnswerATarget = nil // continue
	q.AnswerBText = "wrong"
	q.AnswerBTarget = ptrUUID(vidB)
	// slots C-E left unused

	g := BuildGraph([]*types.Video{video(vidA), video(vidB)}, []*types.Question{q})

	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount = %d, want 2", g.NodeCount())
	}
	if !g.HasNode(uuid.MustParse(vidA)) || !g.HasNode(uuid.MustParse(vidB)) {
		t.Fatalf("expected both videos as nodes")
	}
	edges := g.Edges()
	if len(edges) != 2 {
		t.Fatalf("len(edges) = %d, want 2 (empty slots contribute no edge)", len(edges))
	}
	if edges[0].Slot != types.SlotA || edges[0].Target != nil {
		t.Fatalf("edge A should be a nil-target continue edge: %+v", edges[0])
	}
	if edges[1].Slot != types.SlotB || edges[1].Target == nil || *edges[1].Target != uuid.MustParse(vidB) {
		t.Fatalf("edge B should target vidB: %+v", edges[1])
	}
}

func TestValidateReportsDanglingOnly(t *testing.T) {
	q := question(qid1, vidA, 5)
	q.AnswerAText = "ok"
	q.AnswerATarget = ptrUUID(vidB) // live
	q.AnswerBText = "gone"
	q.AnswerBTarget = ptrUUID(vidC) // vidC not in graph
	q.AnswerCText = "stay"
	q.AnswerCTarget = nil // never dangling

	g := BuildGraph([]*types.Video{video(vidA), video(vidB)}, []*types.Question{q})
	dangling := g.Validate()
	if len(dangling) != 1 {
		t.Fatalf("len(dangling) = %d, want 1", len(dangling))
	}
	d := dangling[0]
	if d.Slot != types.SlotB || d.Target != uuid.MustParse(vidC) {
		t.Fatalf("unexpected dangling report: %+v", d)
	}
}

func TestGraphToleratesCycles(t *testing.T) {
	// vidA's question loops back to vidA itself and over to vidB; vidB's
	// question returns to vidA. Cycles are load-bearing remediation flows.
	qa := question(qid1, vidA, 1)
	qa.AnswerAText = "again"
	qa.AnswerATarget = ptrUUID(vidA)
	qa.AnswerBText = "remedial"
	qa.AnswerBTarget = ptrUUID(vidB)
	qb := question(qid2, vidB, 1)
	qb.AnswerAText = "back"
	qb.AnswerATarget = ptrUUID(vidA)

	g := BuildGraph([]*types.Video{video(vidA), video(vidB)}, []*types.Question{qa, qb})
	if got := g.Validate(); len(got) != 0 {
		t.Fatalf("cyclic graph should validate clean, got %+v", got)
	}
	if len(g.Edges()) != 3 {
		t.Fatalf("len(edges) = %d, want 3", len(g.Edges()))
	}
}

func TestSortQuestionsTieBreaksByID(t *testing.T) {
	early := question(qid3, vidA, 5)
	tieHigh := question(qid2, vidA, 10)
	tieLow := question(qid1, vidA, 10)

	qs := []*types.Question{tieHigh, early, tieLow}
	SortQuestions(qs)

	if qs[0].ID != early.ID || qs[1].ID != tieLow.ID || qs[2].ID != tieHigh.ID {
		t.Fatalf("unexpected order: %v, %v, %v", qs[0].ID, qs[1].ID, qs[2].ID)
	}
}
