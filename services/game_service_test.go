package services

import (
	"context"
	"testing"
	"time"

	"github.com/Thayer574/quizshow/models"
	"github.com/Thayer574/quizshow/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance server time between the question start and the
// recorded answer.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func newTestCache(t *testing.T) *RoomStateCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRoomStateCache(client)
}

func seedQuestion(t *testing.T, store *repository.MemoryStore, createdBy uint, roomID *uint, correct string) *models.Question {
	t.Helper()
	q := &models.Question{
		CreatedBy:     createdBy,
		RoomID:        roomID,
		QuestionText:  "What is the capital of France?",
		CorrectAnswer: correct,
		WrongAnswer1:  "London",
		WrongAnswer2:  "Berlin",
		WrongAnswer3:  "Madrid",
	}
	require.NoError(t, store.CreateQuestion(context.Background(), q))
	return q
}

func TestSoloSessionScoresFromClientElapsed(t *testing.T) {
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	svc := NewGameServiceWithClock(store, store, store, nil, clock.Now)
	player := seedUser(t, store, "player@example.com", "Alice")
	question := seedQuestion(t, store, player.ID, nil, "Paris")

	session, err := svc.StartSession(context.Background(), player.ID, nil, nil)
	require.NoError(t, err)

	// 10 seconds elapsed leaves 5 remaining: 500 + floor(5/15*500) = 666.
	answer, err := svc.RecordAnswer(context.Background(), player.ID, session.ID, &RecordAnswerRequest{
		QuestionID:     question.ID,
		SelectedAnswer: "Paris",
		TimeToAnswer:   10000,
	}, nil)
	require.NoError(t, err)

	assert.True(t, answer.IsCorrect)
	assert.Equal(t, 666, answer.PointsEarned)
	assert.Equal(t, 10000, answer.TimeToAnswer)

	updated, err := store.GetSessionByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 666, updated.FinalScore)
}

func TestWrongAnswerScoresZero(t *testing.T) {
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	svc := NewGameServiceWithClock(store, store, store, nil, clock.Now)
	player := seedUser(t, store, "player@example.com", "Alice")
	question := seedQuestion(t, store, player.ID, nil, "Paris")

	session, err := svc.StartSession(context.Background(), player.ID, nil, nil)
	require.NoError(t, err)

	answer, err := svc.RecordAnswer(context.Background(), player.ID, session.ID, &RecordAnswerRequest{
		QuestionID:     question.ID,
		SelectedAnswer: "London",
		TimeToAnswer:   1000,
	}, nil)
	require.NoError(t, err)

	assert.False(t, answer.IsCorrect)
	assert.Equal(t, 0, answer.PointsEarned)

	updated, err := store.GetSessionByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.FinalScore)
}

func TestTimeoutSentinelNeverMatchesCorrectAnswer(t *testing.T) {
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	svc := NewGameServiceWithClock(store, store, store, nil, clock.Now)
	player := seedUser(t, store, "player@example.com", "Alice")
	// A question whose correct answer is literally the sentinel text.
	question := seedQuestion(t, store, player.ID, nil, models.TimeoutAnswer)

	session, err := svc.StartSession(context.Background(), player.ID, nil, nil)
	require.NoError(t, err)

	answer, err := svc.RecordAnswer(context.Background(), player.ID, session.ID, &RecordAnswerRequest{
		QuestionID:     question.ID,
		SelectedAnswer: models.TimeoutAnswer,
		TimeToAnswer:   15000,
	}, nil)
	require.NoError(t, err)

	assert.False(t, answer.IsCorrect)
	assert.Equal(t, 0, answer.PointsEarned)
}

func TestDuplicateAnswerIsRejected(t *testing.T) {
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	svc := NewGameServiceWithClock(store, store, store, nil, clock.Now)
	player := seedUser(t, store, "player@example.com", "Alice")
	question := seedQuestion(t, store, player.ID, nil, "Paris")

	session, err := svc.StartSession(context.Background(), player.ID, nil, nil)
	require.NoError(t, err)

	req := &RecordAnswerRequest{QuestionID: question.ID, SelectedAnswer: "Paris", TimeToAnswer: 3000}
	_, err = svc.RecordAnswer(context.Background(), player.ID, session.ID, req, nil)
	require.NoError(t, err)

	_, err = svc.RecordAnswer(context.Background(), player.ID, session.ID, req, nil)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)

	// The retry must not double-count: one row, one score credit.
	assert.Len(t, store.GetAnswers(context.Background(), session.ID), 1)
	updated, err := store.GetSessionByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 900, updated.FinalScore)
}

func TestRecordAnswerRejectsForeignSession(t *testing.T) {
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	svc := NewGameServiceWithClock(store, store, store, nil, clock.Now)
	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")
	question := seedQuestion(t, store, alice.ID, nil, "Paris")

	session, err := svc.StartSession(context.Background(), alice.ID, nil, nil)
	require.NoError(t, err)

	_, err = svc.RecordAnswer(context.Background(), bob.ID, session.ID, &RecordAnswerRequest{
		QuestionID:     question.ID,
		SelectedAnswer: "Paris",
	}, nil)
	assert.ErrorIs(t, err, ErrNotSessionOwner)
}

func TestRecordAnswerUnknownSessionAndQuestion(t *testing.T) {
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	svc := NewGameServiceWithClock(store, store, store, nil, clock.Now)
	player := seedUser(t, store, "player@example.com", "Alice")

	_, err := svc.RecordAnswer(context.Background(), player.ID, 42, &RecordAnswerRequest{QuestionID: 1, SelectedAnswer: "x"}, nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	session, err := svc.StartSession(context.Background(), player.ID, nil, nil)
	require.NoError(t, err)

	_, err = svc.RecordAnswer(context.Background(), player.ID, session.ID, &RecordAnswerRequest{QuestionID: 999, SelectedAnswer: "x"}, nil)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestEndSessionReturnsAccumulatedScore(t *testing.T) {
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	svc := NewGameServiceWithClock(store, store, store, nil, clock.Now)
	player := seedUser(t, store, "player@example.com", "Alice")
	q1 := seedQuestion(t, store, player.ID, nil, "Paris")
	q2 := seedQuestion(t, store, player.ID, nil, "Paris")

	session, err := svc.StartSession(context.Background(), player.ID, nil, nil)
	require.NoError(t, err)

	_, err = svc.RecordAnswer(context.Background(), player.ID, session.ID, &RecordAnswerRequest{QuestionID: q1.ID, SelectedAnswer: "Paris", TimeToAnswer: 0}, nil)
	require.NoError(t, err)
	_, err = svc.RecordAnswer(context.Background(), player.ID, session.ID, &RecordAnswerRequest{QuestionID: q2.ID, SelectedAnswer: "London", TimeToAnswer: 0}, nil)
	require.NoError(t, err)

	ended, err := svc.EndSession(context.Background(), player.ID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000, ended.FinalScore)
	require.NotNil(t, ended.EndedAt)
	assert.Equal(t, clock.Now(), *ended.EndedAt)

	_, err = svc.EndSession(context.Background(), player.ID+1, session.ID)
	assert.ErrorIs(t, err, ErrNotSessionOwner)
}

func TestStartSessionByNonOwnerLeavesRoomAlone(t *testing.T) {
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	svc := NewGameServiceWithClock(store, store, store, nil, clock.Now)
	roomSvc := NewRoomServiceWithClock(store, store, store, nil, clock.Now)
	owner := seedUser(t, store, "host@example.com", "Host")
	player := seedUser(t, store, "player@example.com", "Alice")

	room, err := roomSvc.CreateRoom(context.Background(), owner.ID)
	require.NoError(t, err)

	session, err := svc.StartSession(context.Background(), player.ID, &room.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, player.ID, session.UserID)

	refreshed, err := store.GetRoomByID(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusWaiting, refreshed.Status)
}

func TestStartSessionUnknownRoom(t *testing.T) {
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	svc := NewGameServiceWithClock(store, store, store, nil, clock.Now)
	player := seedUser(t, store, "player@example.com", "Alice")

	missing := uint(404)
	_, err := svc.StartSession(context.Background(), player.ID, &missing, nil)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

// Full room round: the owner starts the game, two players answer the same
// question at different server times, and the leaderboard reflects the speed
// bonus. Client-reported timing and scoring fields are ignored for room play.
func TestRoomRoundScoresAgainstServerClock(t *testing.T) {
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	cache := newTestCache(t)
	roomSvc := NewRoomServiceWithClock(store, store, store, cache, clock.Now)
	gameSvc := NewGameServiceWithClock(store, store, store, cache, clock.Now)

	owner := seedUser(t, store, "host@example.com", "Host")
	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")

	room, err := roomSvc.CreateRoom(context.Background(), owner.ID)
	require.NoError(t, err)
	question := seedQuestion(t, store, owner.ID, &room.ID, "Paris")

	_, err = roomSvc.JoinRoom(context.Background(), room.Code, alice.ID, "Alice", nil)
	require.NoError(t, err)
	_, err = roomSvc.JoinRoom(context.Background(), room.Code, bob.ID, "Bob", nil)
	require.NoError(t, err)

	// Owner kickoff flips the room to playing and stamps the question start.
	_, err = gameSvc.StartSession(context.Background(), owner.ID, &room.ID, nil)
	require.NoError(t, err)

	refreshed, err := store.GetRoomByID(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusPlaying, refreshed.Status)

	aliceSession, err := gameSvc.StartSession(context.Background(), alice.ID, &room.ID, nil)
	require.NoError(t, err)
	bobSession, err := gameSvc.StartSession(context.Background(), bob.ID, &room.ID, nil)
	require.NoError(t, err)

	// Alice answers 10 seconds in. Her client claims an instant answer and a
	// jackpot; the server clock decides.
	clock.Advance(10 * time.Second)
	aliceAnswer, err := gameSvc.RecordAnswer(context.Background(), alice.ID, aliceSession.ID, &RecordAnswerRequest{
		QuestionID:     question.ID,
		SelectedAnswer: "Paris",
		TimeToAnswer:   1,
		IsCorrect:      true,
		PointsEarned:   99999,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 666, aliceAnswer.PointsEarned)
	assert.Equal(t, 10000, aliceAnswer.TimeToAnswer)

	// Bob answers 14 seconds in: 500 + floor(1/15*500) = 533.
	clock.Advance(4 * time.Second)
	bobAnswer, err := gameSvc.RecordAnswer(context.Background(), bob.ID, bobSession.ID, &RecordAnswerRequest{
		QuestionID:     question.ID,
		SelectedAnswer: "Paris",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 533, bobAnswer.PointsEarned)

	board, err := gameSvc.GetLeaderboard(context.Background(), room.ID)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "Alice", board[0].Name)
	assert.Equal(t, 666, board[0].FinalScore)
	assert.Equal(t, "Bob", board[1].Name)
	assert.Equal(t, 533, board[1].FinalScore)
	assert.Equal(t, 0, board[2].FinalScore)
}

func TestGetLeaderboardUnknownRoom(t *testing.T) {
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	svc := NewGameServiceWithClock(store, store, store, nil, clock.Now)

	_, err := svc.GetLeaderboard(context.Background(), 77)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
