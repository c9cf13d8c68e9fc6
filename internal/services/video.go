package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guidedtopic/guidedtopic-backend/internal/clients/redis"
	contentrepo "github.com/guidedtopic/guidedtopic-backend/internal/data/repos/content"
	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
	"github.com/guidedtopic/guidedtopic-backend/internal/pkg/apperr"
	"github.com/guidedtopic/guidedtopic-backend/internal/platform/logger"
)

// CreateVideoInput carries the metadata for a new video. MediaURL must
// already be resolved by the upload collaborator; this service never talks
// to object storage.
type CreateVideoInput struct {
	Title           string
	Description     string
	MediaURL        string
	DurationSeconds int
	IsRemedial      bool
}

// UpdateVideoInput is a partial metadata revision; nil fields are left
// untouched.
type UpdateVideoInput struct {
	Title       *string
	Description *string
	IsRemedial  *bool
	Duration    *int
}

type VideoService interface {
	CreateVideo(ctx context.Context, in CreateVideoInput) (*types.Video, error)
	GetVideo(ctx context.Context, videoID uuid.UUID) (*types.Video, error)
	ListVideos(ctx context.Context, remedial *bool, page, perPage int) ([]*types.Video, error)
	UpdateVideo(ctx context.Context, videoID uuid.UUID, in UpdateVideoInput) (*types.Video, error)
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error
	ResolveMediaURL(ctx context.Context, videoID uuid.UUID) (string, error)
}

type videoService struct {
	db            *gorm.DB
	log           *logger.Logger
	videoRepo     contentrepo.VideoRepo
	questionCache *redis.QuestionCache
}

func NewVideoService(db *gorm.DB, baseLog *logger.Logger, videoRepo contentrepo.VideoRepo, questionCache *redis.QuestionCache) VideoService {
	return &videoService{
		db:            db,
		log:           baseLog.With("service", "VideoService"),
		videoRepo:     videoRepo,
		questionCache: questionCache,
	}
}

func (vs *videoService) CreateVideo(ctx context.Context, in CreateVideoInput) (*types.Video, error) {
	rd, err := requireAuthor(ctx)
	if err != nil {
		return nil, err
	}
	if in.Title == "" || in.MediaURL == "" {
		return nil, fmt.Errorf("%w: title and media url are required", apperr.ErrInvalidArgument)
	}
	duration := in.DurationSeconds
	if duration < 0 {
		duration = types.DurationUnknown
	}

	v := &types.Video{
		ID:              uuid.New(),
		UserID:          rd.UserID,
		Title:           in.Title,
		Description:     in.Description,
		MediaURL:        in.MediaURL,
		DurationSeconds: duration,
		IsRemedial:      in.IsRemedial,
	}
	if _, err := vs.videoRepo.Create(ctx, nil, []*types.Video{v}); err != nil {
		vs.log.Error("CreateVideo failed", "error", err, "user_id", rd.UserID)
		return nil, fmt.Errorf("create video: %w", err)
	}
	return v, nil
}

func (vs *videoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*types.Video, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}
	return vs.loadVideo(ctx, videoID)
}

func (vs *videoService) loadVideo(ctx context.Context, videoID uuid.UUID) (*types.Video, error) {
	videos, err := vs.videoRepo.GetByIDs(ctx, nil, []uuid.UUID{videoID})
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("%w: video %s", apperr.ErrNotFound, videoID)
	}
	return videos[0], nil
}

func (vs *videoService) ListVideos(ctx context.Context, remedial *bool, page, perPage int) ([]*types.Video, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}
	if perPage <= 0 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}
	return vs.videoRepo.List(ctx, nil, contentrepo.VideoFilter{
		Remedial: remedial,
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	})
}

func (vs *videoService) UpdateVideo(ctx context.Context, videoID uuid.UUID, in UpdateVideoInput) (*types.Video, error) {
	v, err := vs.loadVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwnerOrAdmin(ctx, v.UserID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be blank", apperr.ErrInvalidArgument)
		}
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.IsRemedial != nil {
		fields["is_remedial"] = *in.IsRemedial
	}
	if in.Duration != nil {
		d := *in.Duration
		if d < 0 {
			d = types.DurationUnknown
		}
		fields["duration_seconds"] = d
	}
	if len(fields) == 0 {
		return v, nil
	}
	if err := vs.videoRepo.UpdateFields(ctx, nil, videoID, fields); err != nil {
		vs.log.Error("UpdateVideo failed", "error", err, "video_id", videoID)
		return nil, fmt.Errorf("update video: %w", err)
	}
	return vs.loadVideo(ctx, videoID)
}

// DeleteVideo removes the video and cascades to its owned questions.
// Questions on other videos that target this one survive; their redirects
// go dangling and playback falls back at resolution time.
func (vs *videoService) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	v, err := vs.loadVideo(ctx, videoID)
	if err != nil {
		return err
	}
	rd, err := requireOwnerOrAdmin(ctx, v.UserID)
	if err != nil {
		return err
	}
	if err := vs.videoRepo.Delete(ctx, nil, videoID); err != nil {
		vs.log.Error("DeleteVideo failed", "error", err, "video_id", videoID)
		return fmt.Errorf("delete video: %w", err)
	}
	vs.questionCache.Invalidate(ctx, videoID)
	vs.log.Info("video deleted", "video_id", videoID, "by", rd.UserID, "admin_override", rd.UserID != v.UserID)
	return nil
}

// ResolveMediaURL returns the stored playback locator for the player.
func (vs *videoService) ResolveMediaURL(ctx context.Context, videoID uuid.UUID) (string, error) {
	if _, err := caller(ctx); err != nil {
		return "", err
	}
	v, err := vs.loadVideo(ctx, videoID)
	if err != nil {
		return "", err
	}
	return v.MediaURL, nil
}
