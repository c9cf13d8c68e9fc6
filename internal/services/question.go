package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guidedtopic/guidedtopic-backend/internal/branching"
	"github.com/guidedtopic/guidedtopic-backend/internal/clients/redis"
	contentrepo "github.com/guidedtopic/guidedtopic-backend/internal/data/repos/content"
	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
	"github.com/guidedtopic/guidedtopic-backend/internal/pkg/apperr"
	"github.com/guidedtopic/guidedtopic-backend/internal/platform/logger"
	"github.com/guidedtopic/guidedtopic-backend/internal/timecode"
)

// SlotInput is one authored answer slot. Blank text marks the slot unused;
// a nil target means "continue current video".
type SlotInput struct {
	Label         types.SlotLabel `json:"label"`
	Text          string          `json:"text"`
	TargetVideoID *uuid.UUID      `json:"target_video_id"`
}

// QuestionInput is the authoring payload. PoseTime arrives in the HH:MM:SS
// display format and is parsed through the time codec.
type QuestionInput struct {
	Prompt   string      `json:"prompt"`
	PoseTime string      `json:"pose_time"`
	Slots    []SlotInput `json:"slots"`
}

// TargetWarning reports an answer slot whose target video does not exist.
// Under the default tolerant policy these are advisory; the write proceeds.
type TargetWarning struct {
	Label         types.SlotLabel `json:"label"`
	TargetVideoID uuid.UUID       `json:"target_video_id"`
}

type QuestionService interface {
	CreateQuestion(ctx context.Context, videoID uuid.UUID, in QuestionInput) (*types.Question, []TargetWarning, error)
	UpdateQuestion(ctx context.Context, questionID uuid.UUID, in QuestionInput) (*types.Question, []TargetWarning, error)
	DeleteQuestion(ctx context.Context, questionID uuid.UUID) error
	ListQuestions(ctx context.Context, videoID uuid.UUID) ([]*types.Question, error)
	InspectGraph(ctx context.Context) ([]branching.Dangling, error)
}

type questionService struct {
	db            *gorm.DB
	log           *logger.Logger
	videoRepo     contentrepo.VideoRepo
	questionRepo  contentrepo.QuestionRepo
	questionCache *redis.QuestionCache
	strictTargets bool
}

func NewQuestionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	videoRepo contentrepo.VideoRepo,
	questionRepo contentrepo.QuestionRepo,
	questionCache *redis.QuestionCache,
	strictTargets bool,
) QuestionService {
	return &questionService{
		db:            db,
		log:           baseLog.With("service", "QuestionService"),
		videoRepo:     videoRepo,
		questionRepo:  questionRepo,
		questionCache: questionCache,
		strictTargets: strictTargets,
	}
}

func (qs *questionService) CreateQuestion(ctx context.Context, videoID uuid.UUID, in QuestionInput) (*types.Question, []TargetWarning, error) {
	if _, err := requireAuthor(ctx); err != nil {
		return nil, nil, err
	}
	videos, err := qs.videoRepo.GetByIDs(ctx, nil, []uuid.UUID{videoID})
	if err != nil {
		return nil, nil, fmt.Errorf("load video: %w", err)
	}
	if len(videos) == 0 {
		return nil, nil, fmt.Errorf("%w: video %s", apperr.ErrNotFound, videoID)
	}

	q := &types.Question{ID: uuid.New(), VideoID: videoID}
	warnings, err := qs.applyInput(ctx, q, videos[0], in)
	if err != nil {
		return nil, nil, err
	}
	if _, err := qs.questionRepo.Create(ctx, nil, []*types.Question{q}); err != nil {
		qs.log.Error("CreateQuestion failed", "error", err, "video_id", videoID)
		return nil, nil, fmt.Errorf("create question: %w", err)
	}
	qs.questionCache.Invalidate(ctx, videoID)
	return q, warnings, nil
}

func (qs *questionService) UpdateQuestion(ctx context.Context, questionID uuid.UUID, in QuestionInput) (*types.Question, []TargetWarning, error) {
	if _, err := requireAuthor(ctx); err != nil {
		return nil, nil, err
	}
	questions, err := qs.questionRepo.GetByIDs(ctx, nil, []uuid.UUID{questionID})
	if err != nil {
		return nil, nil, fmt.Errorf("load question: %w", err)
	}
	if len(questions) == 0 {
		return nil, nil, fmt.Errorf("%w: question %s", apperr.ErrNotFound, questionID)
	}
	q := questions[0]

	videos, err := qs.videoRepo.GetByIDs(ctx, nil, []uuid.UUID{q.VideoID})
	if err != nil {
		return nil, nil, fmt.Errorf("load owning video: %w", err)
	}
	var owning *types.Video
	if len(videos) > 0 {
		owning = videos[0]
	}

	warnings, err := qs.applyInput(ctx, q, owning, in)
	if err != nil {
		return nil, nil, err
	}
	// Authoring edits are last-writer-wins: the full record is written
	// back, all five slots included.
	if err := qs.questionRepo.Save(ctx, nil, q); err != nil {
		qs.log.Error("UpdateQuestion failed", "error", err, "question_id", questionID)
		return nil, nil, fmt.Errorf("update question: %w", err)
	}
	qs.questionCache.Invalidate(ctx, q.VideoID)
	return q, warnings, nil
}

// applyInput validates and writes the authoring payload onto q. It re-checks
// every invariant on every write instead of trusting caller discipline.
func (qs *questionService) applyInput(ctx context.Context, q *types.Question, owning *types.Video, in QuestionInput) ([]TargetWarning, error) {
	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", apperr.ErrInvalidArgument)
	}
	poseTime, err := timecode.ParseClock(strings.TrimSpace(in.PoseTime))
	if err != nil {
		return nil, err
	}
	if owning != nil && owning.HasKnownDuration() && poseTime > owning.DurationSeconds {
		return nil, fmt.Errorf("%w: pose time %s is past the video duration %s",
			apperr.ErrInvalidArgument, timecode.FormatClock(poseTime), timecode.FormatClock(owning.DurationSeconds))
	}
	if len(in.Slots) > len(types.SlotLabels) {
		return nil, fmt.Errorf("%w: at most five answer slots", apperr.ErrInvalidArgument)
	}

	// Start from five empty slots so partial payloads cannot leave stale
	// answers behind.
	slots := map[types.SlotLabel]SlotInput{}
	for _, s := range in.Slots {
		if _, known := slotIndex(s.Label); !known {
			return nil, fmt.Errorf("%w: unknown slot label %q", apperr.ErrInvalidArgument, s.Label)
		}
		if _, dup := slots[s.Label]; dup {
			return nil, fmt.Errorf("%w: duplicate slot label %q", apperr.ErrInvalidArgument, s.Label)
		}
		slots[s.Label] = s
	}

	var targets []uuid.UUID
	for _, s := range slots {
		if s.Text != "" && s.TargetVideoID != nil {
			targets = append(targets, *s.TargetVideoID)
		}
	}
	existing, err := qs.videoRepo.ExistingIDs(ctx, nil, targets)
	if err != nil {
		return nil, fmt.Errorf("check targets: %w", err)
	}

	var warnings []TargetWarning
	for _, label := range types.SlotLabels {
		s := slots[label]
		text := strings.TrimSpace(s.Text)
		target := s.TargetVideoID
		if text == "" {
			// Unused slot: no text, no redirect.
			target = nil
		} else if target != nil && !existing[*target] {
			if qs.strictTargets {
				return nil, fmt.Errorf("%w: slot %s targets unknown video %s", apperr.ErrInvalidArgument, label, *target)
			}
			warnings = append(warnings, TargetWarning{Label: label, TargetVideoID: *target})
		}
		q.SetSlot(types.AnswerSlot{Label: label, Text: text, TargetVideoID: target})
	}

	q.Prompt = prompt
	q.PoseTime = poseTime
	return warnings, nil
}

func slotIndex(label types.SlotLabel) (int, bool) {
	for i, l := range types.SlotLabels {
		if l == label {
			return i, true
		}
	}
	return 0, false
}

func (qs *questionService) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	if _, err := requireAuthor(ctx); err != nil {
		return err
	}
	questions, err := qs.questionRepo.GetByIDs(ctx, nil, []uuid.UUID{questionID})
	if err != nil {
		return fmt.Errorf("load question: %w", err)
	}
	if len(questions) == 0 {
		return fmt.Errorf("%w: question %s", apperr.ErrNotFound, questionID)
	}
	if err := qs.questionRepo.Delete(ctx, nil, questionID); err != nil {
		qs.log.Error("DeleteQuestion failed", "error", err, "question_id", questionID)
		return fmt.Errorf("delete question: %w", err)
	}
	qs.questionCache.Invalidate(ctx, questions[0].VideoID)
	return nil
}

// ListQuestions returns a video's questions pre-sorted for authoring and
// review views.
func (qs *questionService) ListQuestions(ctx context.Context, videoID uuid.UUID) ([]*types.Question, error) {
	if _, err := requireAuthor(ctx); err != nil {
		return nil, err
	}
	videos, err := qs.videoRepo.GetByIDs(ctx, nil, []uuid.UUID{videoID})
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("%w: video %s", apperr.ErrNotFound, videoID)
	}
	return qs.questionRepo.ListByVideo(ctx, nil, videoID)
}

// InspectGraph rebuilds the whole branching graph and reports dangling
// redirects for the authoring review surface.
func (qs *questionService) InspectGraph(ctx context.Context) ([]branching.Dangling, error) {
	if _, err := requireAuthor(ctx); err != nil {
		return nil, err
	}
	videos, err := qs.videoRepo.List(ctx, nil, contentrepo.VideoFilter{})
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	var questions []*types.Question
	for _, v := range videos {
		vq, err := qs.questionRepo.ListByVideo(ctx, nil, v.ID)
		if err != nil {
			return nil, fmt.Errorf("list questions for %s: %w", v.ID, err)
		}
		questions = append(questions, vq...)
	}
	return branching.BuildGraph(videos, questions).Validate(), nil
}
