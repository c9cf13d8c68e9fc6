package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guidedtopic/guidedtopic-backend/internal/branching"
	"github.com/guidedtopic/guidedtopic-backend/internal/clients/redis"
	contentrepo "github.com/guidedtopic/guidedtopic-backend/internal/data/repos/content"
	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
	"github.com/guidedtopic/guidedtopic-backend/internal/pkg/apperr"
	"github.com/guidedtopic/guidedtopic-backend/internal/platform/logger"
)

// PlaybackView is what the player needs to start or resume a video.
type PlaybackView struct {
	Video     *types.Video      `json:"video"`
	Questions []*types.Question `json:"questions"`
}

// DueQuestionView is the single next due question projected for the
// learner: only visible (non-empty) slots, labels preserved for routing.
type DueQuestionView struct {
	QuestionID uuid.UUID          `json:"question_id"`
	Prompt     string             `json:"prompt"`
	PoseTime   int                `json:"pose_time"`
	Slots      []types.AnswerSlot `json:"slots"`
}

// PlaybackService answers the stateless resolver queries: the session
// cursor (elapsed + presented set) always arrives from the client; the
// server holds no live session object.
type PlaybackService interface {
	OpenPlayback(ctx context.Context, videoID uuid.UUID, start bool) (*PlaybackView, error)
	NextQuestion(ctx context.Context, videoID uuid.UUID, elapsed int, presented []uuid.UUID) (*DueQuestionView, error)
	ChooseAnswer(ctx context.Context, questionID uuid.UUID, label types.SlotLabel) (branching.Navigation, error)
}

type playbackService struct {
	db            *gorm.DB
	log           *logger.Logger
	videoRepo     contentrepo.VideoRepo
	questionRepo  contentrepo.QuestionRepo
	questionCache *redis.QuestionCache
}

func NewPlaybackService(
	db *gorm.DB,
	baseLog *logger.Logger,
	videoRepo contentrepo.VideoRepo,
	questionRepo contentrepo.QuestionRepo,
	questionCache *redis.QuestionCache,
) PlaybackService {
	return &playbackService{
		db:            db,
		log:           baseLog.With("service", "PlaybackService"),
		videoRepo:     videoRepo,
		questionRepo:  questionRepo,
		questionCache: questionCache,
	}
}

// OpenPlayback loads the video and its ordered questions. When start is
// true this is the session's first entry into the video and the view
// counter is bumped exactly once, atomically.
func (ps *playbackService) OpenPlayback(ctx context.Context, videoID uuid.UUID, start bool) (*PlaybackView, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}
	videos, err := ps.videoRepo.GetByIDs(ctx, nil, []uuid.UUID{videoID})
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("%w: video %s", apperr.ErrNotFound, videoID)
	}
	v := videos[0]

	questions, err := ps.loadQuestions(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if start {
		if err := ps.videoRepo.IncrementViews(ctx, nil, videoID); err != nil {
			// The learner still gets their video; the counter is best
			// effort but must never under-report silently.
			ps.log.Error("view count increment failed", "error", err, "video_id", videoID)
		} else {
			v.TotalViews++
		}
	}

	return &PlaybackView{Video: v, Questions: questions}, nil
}

// NextQuestion returns the single next due question for the client's
// cursor, or nil when playback simply continues. Ties at the same pose
// time come back one at a time, lowest id first.
func (ps *playbackService) NextQuestion(ctx context.Context, videoID uuid.UUID, elapsed int, presented []uuid.UUID) (*DueQuestionView, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}
	if elapsed < 0 {
		return nil, fmt.Errorf("%w: negative elapsed time", apperr.ErrInvalidArgument)
	}
	questions, err := ps.loadQuestions(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, nil
	}

	presentedSet := make(map[uuid.UUID]bool, len(presented))
	for _, id := range presented {
		presentedSet[id] = true
	}

	session := branching.ResumeSession(videoID, elapsed, presentedSet)
	due, err := session.Observe(elapsed, questions)
	if err != nil {
		return nil, err
	}
	if due == nil {
		return nil, nil
	}
	return &DueQuestionView{
		QuestionID: due.ID,
		Prompt:     due.Prompt,
		PoseTime:   due.PoseTime,
		Slots:      due.VisibleSlots(),
	}, nil
}

// ChooseAnswer resolves one navigation hop for a chosen slot. Dangling
// redirects fall back to "continue current video": the broken edge is
// logged for the authors, never surfaced to the learner.
func (ps *playbackService) ChooseAnswer(ctx context.Context, questionID uuid.UUID, label types.SlotLabel) (branching.Navigation, error) {
	if _, err := caller(ctx); err != nil {
		return branching.Navigation{}, err
	}
	questions, err := ps.questionRepo.GetByIDs(ctx, nil, []uuid.UUID{questionID})
	if err != nil {
		return branching.Navigation{}, fmt.Errorf("load question: %w", err)
	}
	if len(questions) == 0 {
		return branching.Navigation{}, fmt.Errorf("%w: question %s", apperr.ErrNotFound, questionID)
	}
	q := questions[0]

	exists := func(id uuid.UUID) bool {
		found, err := ps.videoRepo.ExistingIDs(ctx, nil, []uuid.UUID{id})
		if err != nil {
			ps.log.Error("target existence check failed", "error", err, "video_id", id)
			return false
		}
		return found[id]
	}

	nav, err := branching.ResolveAnswer(q, label, exists, branching.PolicyFallback)
	if err != nil {
		return branching.Navigation{}, err
	}
	if nav.BrokenRedirect {
		ps.log.Warn("broken redirect resolved by fallback",
			"question_id", q.ID, "slot", label, "video_id", q.VideoID)
	}
	return nav, nil
}

func (ps *playbackService) loadQuestions(ctx context.Context, videoID uuid.UUID) ([]*types.Question, error) {
	if cached, ok := ps.questionCache.Get(ctx, videoID); ok {
		return cached, nil
	}
	questions, err := ps.questionRepo.ListByVideo(ctx, nil, videoID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	ps.questionCache.Set(ctx, videoID, questions)
	return questions, nil
}
