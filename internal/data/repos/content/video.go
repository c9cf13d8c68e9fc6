package content

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
	"github.com/guidedtopic/guidedtopic-backend/internal/platform/logger"
)

// VideoFilter narrows List; a nil Remedial returns everything.
type VideoFilter struct {
	Remedial *bool
	Limit    int
	Offset   int
}

type VideoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, videos []*types.Video) ([]*types.Video, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) ([]*types.Video, error)
	List(ctx context.Context, tx *gorm.DB, filter VideoFilter) ([]*types.Video, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, videoID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) error
	IncrementViews(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) error
	ExistingIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	return &videoRepo{db: db, log: baseLog.With("repo", "VideoRepo")}
}

func (vr *videoRepo) Create(ctx context.Context, tx *gorm.DB, videos []*types.Video) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	if len(videos) == 0 {
		return []*types.Video{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (vr *videoRepo) GetByIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var results []*types.Video
	if len(videoIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", videoIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *videoRepo) List(ctx context.Context, tx *gorm.DB, filter VideoFilter) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	q := transaction.WithContext(ctx).Model(&types.Video{}).Order("created_at ASC, id ASC")
	if filter.Remedial != nil {
		q = q.Where("is_remedial = ?", *filter.Remedial)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	var results []*types.Video
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *videoRepo) UpdateFields(ctx context.Context, tx *gorm.DB, videoID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Video{}).
		Where("id = ?", videoID).
		Updates(fields).Error
}

// Delete soft-deletes the video and, in the same statement batch, its owned
// questions; gorm soft deletes bypass the database cascade so the owned
// rows are swept here. Questions elsewhere that merely target this video
// are untouched and become dangling redirects.
func (vr *videoRepo) Delete(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		if err := inner.Where("video_id = ?", videoID).Delete(&types.Question{}).Error; err != nil {
			return err
		}
		return inner.Where("id = ?", videoID).Delete(&types.Video{}).Error
	})
}

// IncrementViews applies the view-count bump as an atomic in-database
// increment so concurrent playback starts never lose updates.
func (vr *videoRepo) IncrementViews(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Video{}).
		Where("id = ?", videoID).
		UpdateColumn("total_views", gorm.Expr("total_views + 1")).Error
}

func (vr *videoRepo) ExistingIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	out := make(map[uuid.UUID]bool, len(videoIDs))
	if len(videoIDs) == 0 {
		return out, nil
	}
	var found []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Video{}).
		Where("id IN ?", videoIDs).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}
