package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, canAuthor bool) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  email,
		Password:  "pw",
		CanAuthor: canAuthor,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedVideo(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, title string) *types.Video {
	tb.Helper()
	v := &types.Video{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           title,
		MediaURL:        fmt.Sprintf("https://cdn.example.com/%s.mp4", uuid.NewString()),
		DurationSeconds: types.DurationUnknown,
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed video: %v", err)
	}
	return v
}

func SeedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, videoID uuid.UUID, poseTime int) *types.Question {
	tb.Helper()
	q := &types.Question{
		ID:          uuid.New(),
		VideoID:     videoID,
		Prompt:      "prompt",
		PoseTime:    poseTime,
		AnswerAText: "answer a",
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrBool(v bool) *bool { return &v }
