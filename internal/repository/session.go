package repository

import (
	"sync"
	"time"

	"github.com/stpnv0/TravelBot/internal/domain"
)

// SessionStore — хранилище состояния диалогов, ключ — chat_id.
// Сессия создаётся при первом обращении и заменяется свежей при
// сбросе; навигационный раздел меню живёт отдельно от сессии
// бронирования и сброс его не трогает.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*domain.BookingSession
	sections map[int64]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*domain.BookingSession),
		sections: make(map[int64]string),
	}
}

// Get возвращает сессию чата, создавая свежую при первом обращении.
func (s *SessionStore) Get(chatID int64) *domain.BookingSession {
	s.mu.RLock()
	sess, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[chatID]; ok {
		return sess
	}
	sess = domain.NewBookingSession(chatID)
	s.sessions[chatID] = sess
	return sess
}

// Reset заменяет сессию чата свежим экземпляром и возвращает его.
func (s *SessionStore) Reset(chatID int64) *domain.BookingSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := domain.NewBookingSession(chatID)
	s.sessions[chatID] = sess
	return sess
}

func (s *SessionStore) Section(chatID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sections[chatID]
}

func (s *SessionStore) SetSection(chatID int64, section string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[chatID] = section
}

// SweepExpired сбрасывает незавершённые диалоги бронирования, в которых
// не было активности дольше ttl. Возвращает chat_id сброшенных сессий.
// Замок сессии берётся через TryLock: сессия, которой прямо сейчас
// владеет обработчик, не просрочена и пропускается до следующего тика.
func (s *SessionStore) SweepExpired(ttl time.Duration) []int64 {
	deadline := time.Now().UTC().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []int64
	for chatID, sess := range s.sessions {
		if !sess.TryLock() {
			continue
		}
		if sess.Active() && sess.UpdatedAt.Before(deadline) {
			s.sessions[chatID] = domain.NewBookingSession(chatID)
			expired = append(expired, chatID)
		}
		sess.Unlock()
	}
	return expired
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
