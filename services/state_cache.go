package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RoomState is the live snapshot polling clients converge on: the persisted
// room fields plus the server-side timestamp of the current question, which
// the answer recorder scores against.
type RoomState struct {
	RoomID               uint      `json:"room_id"`
	Code                 string    `json:"code"`
	Status               string    `json:"status"`
	CurrentQuestionIndex int       `json:"current_question_index"`
	TotalQuestions       int       `json:"total_questions"`
	QuestionStartedAt    time.Time `json:"question_started_at"`
}

// RoomStateCache keeps room snapshots in Redis under room:<CODE> keys with a
// TTL, so stale rooms age out on their own.
type RoomStateCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRoomStateCache(client *redis.Client) *RoomStateCache {
	return &RoomStateCache{redis: client, ttl: 2 * time.Hour}
}

func (c *RoomStateCache) key(code string) string {
	return "room:" + strings.ToUpper(code)
}

func (c *RoomStateCache) Store(ctx context.Context, state *RoomState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal room state: %w", err)
	}

	if err := c.redis.Set(ctx, c.key(state.Code), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store room state: %w", err)
	}
	return nil
}

// Get returns the cached state, or nil when the key is absent or unreadable.
// Callers fall back to the database on a miss.
func (c *RoomStateCache) Get(ctx context.Context, code string) *RoomState {
	data, err := c.redis.Get(ctx, c.key(code)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error getting room state for %s: %v", code, err)
		}
		return nil
	}

	var state RoomState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		log.Printf("Failed to unmarshal room state for %s: %v", code, err)
		return nil
	}
	return &state
}
