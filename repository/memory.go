package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Thayer574/quizshow/models"
)

// MemoryStore is an in-memory implementation of all repositories. It backs
// unit tests and lets the service run without a database during development.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[uint]*models.User
	rooms    map[uint]*models.Room
	members  []*models.RoomMember
	question map[uint]*models.Question
	sessions map[uint]*models.GameSession
	answers  []*models.PlayerAnswer
	nextID   map[string]uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uint]*models.User),
		rooms:    make(map[uint]*models.Room),
		question: make(map[uint]*models.Question),
		sessions: make(map[uint]*models.GameSession),
		nextID:   make(map[string]uint),
	}
}

func (s *MemoryStore) allocID(table string) uint {
	s.nextID[table]++
	return s.nextID[table]
}

// --- UserRepository ---

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	user.ID = s.allocID("users")
	user.CreatedAt = time.Now()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryStore) UpdateUserName(_ context.Context, id uint, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.Name = name
	user.UpdatedAt = time.Now()
	return nil
}

// --- RoomRepository ---

func (s *MemoryStore) CreateRoom(_ context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rooms {
		if existing.Code == room.Code {
			return ErrDuplicate
		}
	}
	room.ID = s.allocID("rooms")
	room.CreatedAt = time.Now()
	copied := *room
	s.rooms[room.ID] = &copied
	return nil
}

func (s *MemoryStore) GetRoomByCode(_ context.Context, code string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, room := range s.rooms {
		if room.Code == code {
			copied := *room
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetRoomByID(_ context.Context, id uint) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *room
	return &copied, nil
}

func (s *MemoryStore) AddMember(_ context.Context, member *models.RoomMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.members {
		if existing.RoomID == member.RoomID && existing.UserID == member.UserID {
			return ErrDuplicate
		}
	}
	member.ID = s.allocID("room_members")
	member.CreatedAt = time.Now()
	copied := *member
	s.members = append(s.members, &copied)
	return nil
}

func (s *MemoryStore) ListMembers(_ context.Context, roomID uint) ([]models.RoomMemberInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := []models.RoomMemberInfo{}
	for _, member := range s.members {
		if member.RoomID != roomID {
			continue
		}
		name := ""
		if user, ok := s.users[member.UserID]; ok {
			name = user.Name
		}
		infos = append(infos, models.RoomMemberInfo{
			ID:       member.ID,
			UserID:   member.UserID,
			Name:     name,
			JoinedAt: member.JoinedAt,
		})
	}
	return infos, nil
}

func (s *MemoryStore) AdvanceRoomQuestion(_ context.Context, roomID uint, fromIndex int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return false, nil
	}
	if room.CurrentQuestionIndex != fromIndex {
		return false, nil
	}
	room.CurrentQuestionIndex = fromIndex + 1
	room.UpdatedAt = time.Now()
	return true, nil
}

func (s *MemoryStore) ResetRoomForPlay(_ context.Context, roomID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return ErrNotFound
	}
	room.CurrentQuestionIndex = 0
	room.Status = models.RoomStatusPlaying
	room.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) FinishRoom(_ context.Context, roomID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return ErrNotFound
	}
	room.Status = models.RoomStatusFinished
	room.UpdatedAt = time.Now()
	return nil
}

// --- QuestionRepository ---

func (s *MemoryStore) CreateQuestion(_ context.Context, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	question.ID = s.allocID("questions")
	question.CreatedAt = time.Now()
	copied := *question
	s.question[question.ID] = &copied
	return nil
}

func (s *MemoryStore) GetQuestionByID(_ context.Context, id uint) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	question, ok := s.question[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *question
	return &copied, nil
}

func (s *MemoryStore) GetRoomQuestions(_ context.Context, roomID uint) ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := []models.Question{}
	for _, question := range s.question {
		if question.RoomID != nil && *question.RoomID == roomID {
			questions = append(questions, *question)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}

func (s *MemoryStore) GetUserQuestions(_ context.Context, userID uint) ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := []models.Question{}
	for _, question := range s.question {
		if question.CreatedBy == userID && question.RoomID == nil {
			questions = append(questions, *question)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}

// --- GameRepository ---

func (s *MemoryStore) CreateSession(_ context.Context, session *models.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.ID = s.allocID("game_sessions")
	session.CreatedAt = time.Now()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *MemoryStore) GetSessionByID(_ context.Context, id uint) (*models.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *MemoryStore) CreateAnswer(_ context.Context, answer *models.PlayerAnswer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.answers {
		if existing.GameSessionID == answer.GameSessionID && existing.QuestionID == answer.QuestionID {
			return ErrDuplicate
		}
	}
	answer.ID = s.allocID("player_answers")
	answer.CreatedAt = time.Now()
	copied := *answer
	s.answers = append(s.answers, &copied)
	return nil
}

func (s *MemoryStore) AddSessionScore(_ context.Context, sessionID uint, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	session.FinalScore += points
	session.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) EndSession(_ context.Context, sessionID uint, endedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	session.EndedAt = &endedAt
	session.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) ListLeaderboard(_ context.Context, roomID uint) ([]models.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type ranked struct {
		entry models.LeaderboardEntry
		id    uint
	}
	rankedEntries := []ranked{}
	for _, session := range s.sessions {
		if session.RoomID == nil || *session.RoomID != roomID {
			continue
		}
		name := ""
		if user, ok := s.users[session.UserID]; ok {
			name = user.Name
		}
		rankedEntries = append(rankedEntries, ranked{
			entry: models.LeaderboardEntry{
				UserID:     session.UserID,
				Name:       name,
				FinalScore: session.FinalScore,
			},
			id: session.ID,
		})
	}
	sort.Slice(rankedEntries, func(i, j int) bool {
		if rankedEntries[i].entry.FinalScore != rankedEntries[j].entry.FinalScore {
			return rankedEntries[i].entry.FinalScore > rankedEntries[j].entry.FinalScore
		}
		return rankedEntries[i].id < rankedEntries[j].id
	})

	entries := make([]models.LeaderboardEntry, 0, len(rankedEntries))
	for _, r := range rankedEntries {
		entries = append(entries, r.entry)
	}
	return entries, nil
}

// GetAnswers returns recorded answers for a session in insertion order.
// Used by results views and tests.
func (s *MemoryStore) GetAnswers(_ context.Context, sessionID uint) []models.PlayerAnswer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	answers := []models.PlayerAnswer{}
	for _, answer := range s.answers {
		if answer.GameSessionID == sessionID {
			answers = append(answers, *answer)
		}
	}
	return answers
}
