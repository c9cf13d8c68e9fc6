package branching

import (
	"fmt"

	"github.com/google/uuid"

	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
	"github.com/guidedtopic/guidedtopic-backend/internal/pkg/apperr"
)

// Policy controls how a dangling redirect resolves at playback time.
type Policy int

const (
	// PolicyFallback treats a dangling target as "continue current video"
	// and flags the navigation so the caller can log it. The learner never
	// sees a hard failure. This is the default.
	PolicyFallback Policy = iota
	// PolicyStrict surfaces apperr.ErrBrokenRedirect instead of falling
	// back.
	PolicyStrict
)

// Navigation is the resolver output for a chosen answer.
type Navigation struct {
	NextVideoID uuid.UUID `json:"next_video_id"`
	IsRedirect  bool      `json:"is_redirect"`
	// BrokenRedirect is set when the slot's target was dangling and the
	// fallback policy kicked in.
	BrokenRedirect bool `json:"-"`
}

// DueQuestions returns the un-presented questions of a video with
// pose_time <= elapsed, ordered pose_time ascending then id ascending. The
// player presents them one at a time; each question fires at most once per
// session because presented ids are excluded.
func DueQuestions(questions []*types.Question, elapsed int, presented map[uuid.UUID]bool) []*types.Question {
	var due []*types.Question
	for _, q := range questions {
		if q == nil || q.PoseTime > elapsed {
			continue
		}
		if presented[q.ID] {
			continue
		}
		due = append(due, q)
	}
	SortQuestions(due)
	return due
}

// ResolveAnswer resolves one hop of the branching graph: the learner chose
// a slot on a question. videoExists answers whether a target id still
// resolves to a live video. Selecting an empty slot is rejected with
// apperr.ErrInvalidSelection and implies no state change for the caller.
func ResolveAnswer(q *types.Question, label types.SlotLabel, videoExists func(uuid.UUID) bool, policy Policy) (Navigation, error) {
	slot, ok := q.Slot(label)
	if !ok {
		return Navigation{}, fmt.Errorf("%w: unknown slot label %q", apperr.ErrInvalidSelection, label)
	}
	if slot.IsEmpty() {
		return Navigation{}, fmt.Errorf("%w: slot %s is not configured", apperr.ErrInvalidSelection, label)
	}

	if slot.TargetVideoID == nil {
		return Navigation{NextVideoID: q.VideoID, IsRedirect: false}, nil
	}

	target := *slot.TargetVideoID
	if videoExists != nil && !videoExists(target) {
		if policy == PolicyStrict {
			return Navigation{}, fmt.Errorf("%w: question %s slot %s targets %s", apperr.ErrBrokenRedirect, q.ID, label, target)
		}
		return Navigation{NextVideoID: q.VideoID, IsRedirect: false, BrokenRedirect: true}, nil
	}

	return Navigation{NextVideoID: target, IsRedirect: true}, nil
}

// NextElapsed applies the navigation rule for the playback cursor: elapsed
// resets to zero only when navigation lands on a different video; a
// "continue" keeps the current position.
func NextElapsed(current uuid.UUID, elapsed int, nav Navigation) int {
	if nav.NextVideoID != current {
		return 0
	}
	return elapsed
}
