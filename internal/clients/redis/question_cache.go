package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
	"github.com/guidedtopic/guidedtopic-backend/internal/platform/envutil"
	"github.com/guidedtopic/guidedtopic-backend/internal/platform/logger"
)

// QuestionCache fronts the read-mostly per-video question list that every
// playback resolver query needs. Authoring mutations invalidate the video's
// entry. A nil *QuestionCache is valid and means "cache disabled"; callers
// never branch on configuration.
type QuestionCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewQuestionCache connects using REDIS_ADDR. An empty REDIS_ADDR disables
// the cache by returning (nil, nil).
func NewQuestionCache(log *logger.Logger) (*QuestionCache, error) {
	addr := strings.TrimSpace(envutil.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		log.Info("REDIS_ADDR not set; question cache disabled")
		return nil, nil
	}
	ttlSeconds := envutil.GetEnvAsInt("QUESTION_CACHE_TTL", 300, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &QuestionCache{
		log: log.With("client", "QuestionCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func key(videoID uuid.UUID) string {
	return "guidedtopic:questions:" + videoID.String()
}

// Get returns the cached question list for a video, or (nil, false) on a
// miss. Cache errors degrade to a miss.
func (c *QuestionCache) Get(ctx context.Context, videoID uuid.UUID) ([]*types.Question, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key(videoID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("question cache get failed", "video_id", videoID, "error", err)
		}
		return nil, false
	}
	var questions []*types.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		c.log.Warn("question cache entry corrupt, dropping", "video_id", videoID, "error", err)
		_ = c.rdb.Del(ctx, key(videoID)).Err()
		return nil, false
	}
	return questions, true
}

// Set stores a video's ordered question list.
func (c *QuestionCache) Set(ctx context.Context, videoID uuid.UUID, questions []*types.Question) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		c.log.Warn("question cache marshal failed", "video_id", videoID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key(videoID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("question cache set failed", "video_id", videoID, "error", err)
	}
}

// Invalidate drops a video's entry after an authoring mutation.
func (c *QuestionCache) Invalidate(ctx context.Context, videoID uuid.UUID) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, key(videoID)).Err(); err != nil {
		c.log.Warn("question cache invalidate failed", "video_id", videoID, "error", err)
	}
}

// Close tears down the connection.
func (c *QuestionCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
