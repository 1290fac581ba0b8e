package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomStateCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := NewRoomStateCache(client)

	startedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	state := &RoomState{
		RoomID:               7,
		Code:                 "ABC123",
		Status:               "playing",
		CurrentQuestionIndex: 2,
		TotalQuestions:       5,
		QuestionStartedAt:    startedAt,
	}
	require.NoError(t, cache.Store(context.Background(), state))

	got := cache.Get(context.Background(), "ABC123")
	require.NotNil(t, got)
	assert.Equal(t, uint(7), got.RoomID)
	assert.Equal(t, "playing", got.Status)
	assert.Equal(t, 2, got.CurrentQuestionIndex)
	assert.Equal(t, 5, got.TotalQuestions)
	assert.True(t, got.QuestionStartedAt.Equal(startedAt))
}

func TestRoomStateCacheLookupIsCaseInsensitive(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := NewRoomStateCache(client)

	require.NoError(t, cache.Store(context.Background(), &RoomState{RoomID: 1, Code: "ABC123"}))

	assert.NotNil(t, cache.Get(context.Background(), "abc123"))
}

func TestRoomStateCacheMissReturnsNil(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := NewRoomStateCache(client)

	assert.Nil(t, cache.Get(context.Background(), "NOROOM"))
}

func TestRoomStateCacheEntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := NewRoomStateCache(client)

	require.NoError(t, cache.Store(context.Background(), &RoomState{RoomID: 1, Code: "ABC123"}))

	mr.FastForward(3 * time.Hour)
	assert.Nil(t, cache.Get(context.Background(), "ABC123"))
}
