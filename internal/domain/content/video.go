package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DurationUnknown is the sentinel stored when a video's duration has not
// been measured yet (duration is not calculated on upload).
const DurationUnknown = -1

type Video struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Title       string `gorm:"column:title;not null" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`

	// MediaURL is the already-resolved playback locator. Upload and storage
	// happen outside this service; a Video row is only created once the
	// locator exists.
	MediaURL string `gorm:"column:media_url;not null" json:"media_url"`

	DurationSeconds int  `gorm:"column:duration_seconds;not null;default:-1" json:"duration_seconds"`
	IsRemedial      bool `gorm:"column:is_remedial;not null;default:false;index" json:"is_remedial"`

	// TotalViews only ever moves through the atomic increment on VideoRepo;
	// it is never written from a loaded copy.
	TotalViews int `gorm:"column:total_views;not null;default:0" json:"total_views"`

	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Video) TableName() string { return "video" }

// HasKnownDuration reports whether pose times can be bounds-checked against
// this video.
func (v *Video) HasKnownDuration() bool { return v.DurationSeconds >= 0 }
