package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotLabel identifies one of the five fixed answer positions on a question.
type SlotLabel string

const (
	SlotA SlotLabel = "A"
	SlotB SlotLabel = "B"
	SlotC SlotLabel = "C"
	SlotD SlotLabel = "D"
	SlotE SlotLabel = "E"
)

// SlotLabels lists the five labels in presentation order.
var SlotLabels = [5]SlotLabel{SlotA, SlotB, SlotC, SlotD, SlotE}

// AnswerSlot is the logical view of one answer position. Empty Text means
// the slot is unused; a nil TargetVideoID means "continue current video".
type AnswerSlot struct {
	Label         SlotLabel  `json:"label"`
	Text          string     `json:"text"`
	TargetVideoID *uuid.UUID `json:"target_video_id,omitempty"`
}

// IsEmpty reports whether the slot is unused and therefore unselectable.
func (s AnswerSlot) IsEmpty() bool { return s.Text == "" }

// Question is a timed branch point owned by exactly one video. The five
// answer slots are stored as fixed parallel column pairs so every question
// always carries all five, possibly empty. Target references are weak:
// deleting the target video leaves the reference dangling on purpose.
type Question struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VideoID uuid.UUID `gorm:"type:uuid;not null;index" json:"video_id"`
	Video   *Video    `gorm:"constraint:OnDelete:CASCADE;foreignKey:VideoID;references:ID" json:"video,omitempty"`

	Prompt string `gorm:"column:prompt;type:text;not null" json:"prompt"`

	// PoseTime is the elapsed-seconds offset at which the question becomes
	// due during playback.
	PoseTime int `gorm:"column:pose_time;not null;default:0;index" json:"pose_time"`

	AnswerAText   string     `gorm:"column:answer_a_text;type:text" json:"answer_a_text"`
	AnswerATarget *uuid.UUID `gorm:"type:uuid;column:answer_a_target" json:"answer_a_target,omitempty"`
	AnswerBText   string     `gorm:"column:answer_b_text;type:text" json:"answer_b_text"`
	AnswerBTarget *uuid.UUID `gorm:"type:uuid;column:answer_b_target" json:"answer_b_target,omitempty"`
	AnswerCText   string     `gorm:"column:answer_c_text;type:text" json:"answer_c_text"`
	AnswerCTarget *uuid.UUID `gorm:"type:uuid;column:answer_c_target" json:"answer_c_target,omitempty"`
	AnswerDText   string     `gorm:"column:answer_d_text;type:text" json:"answer_d_text"`
	AnswerDTarget *uuid.UUID `gorm:"type:uuid;column:answer_d_target" json:"answer_d_target,omitempty"`
	AnswerEText   string     `gorm:"column:answer_e_text;type:text" json:"answer_e_text"`
	AnswerETarget *uuid.UUID `gorm:"type:uuid;column:answer_e_target" json:"answer_e_target,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Question) TableName() string { return "question" }

// Slots returns the five answer positions in label order.
func (q *Question) Slots() [5]AnswerSlot {
	return [5]AnswerSlot{
		{Label: SlotA, Text: q.AnswerAText, TargetVideoID: q.AnswerATarget},
		{Label: SlotB, Text: q.AnswerBText, TargetVideoID: q.AnswerBTarget},
		{Label: SlotC, Text: q.AnswerCText, TargetVideoID: q.AnswerCTarget},
		{Label: SlotD, Text: q.AnswerDText, TargetVideoID: q.AnswerDTarget},
		{Label: SlotE, Text: q.AnswerEText, TargetVideoID: q.AnswerETarget},
	}
}

// Slot returns the answer position for a label; ok is false for an unknown
// label.
func (q *Question) Slot(label SlotLabel) (AnswerSlot, bool) {
	for _, s := range q.Slots() {
		if s.Label == label {
			return s, true
		}
	}
	return AnswerSlot{}, false
}

// SetSlot writes one answer position back onto the flat columns. Unknown
// labels are ignored.
func (q *Question) SetSlot(slot AnswerSlot) {
	switch slot.Label {
	case SlotA:
		q.AnswerAText, q.AnswerATarget = slot.Text, slot.TargetVideoID
	case SlotB:
		q.AnswerBText, q.AnswerBTarget = slot.Text, slot.TargetVideoID
	case SlotC:
		q.AnswerCText, q.AnswerCTarget = slot.Text, slot.TargetVideoID
	case SlotD:
		q.AnswerDText, q.AnswerDTarget = slot.Text, slot.TargetVideoID
	case SlotE:
		q.AnswerEText, q.AnswerETarget = slot.Text, slot.TargetVideoID
	}
}

// VisibleSlots returns the non-empty slots in label order. Labels are
// preserved so the chosen answer can be routed back by label.
func (q *Question) VisibleSlots() []AnswerSlot {
	var out []AnswerSlot
	for _, s := range q.Slots() {
		if !s.IsEmpty() {
			out = append(out, s)
		}
	}
	return out
}
