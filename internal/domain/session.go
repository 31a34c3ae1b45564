package domain

import (
	"sync"
	"time"
)

type Stage string

const (
	StageIdle                     Stage = "idle"
	StageSelectingCity            Stage = "selecting_city"
	StageSelectingPriceBand       Stage = "selecting_price_band"
	StageViewingHotels            Stage = "viewing_hotels"
	StageSelectingRoom            Stage = "selecting_room"
	StageEnteringCheckIn          Stage = "entering_check_in"
	StageEnteringCheckOutAndGuest Stage = "entering_check_out_and_guests"
	StageEnteringContactName      Stage = "entering_contact_name"
	StageEnteringContactPhone     Stage = "entering_contact_phone"
	StageEnteringContactEmail     Stage = "entering_contact_email"
	StageCompleted                Stage = "completed"
)

// BookingSession — состояние многошагового диалога бронирования одного чата.
// Сессией владеет ровно один диалог: отмена или завершение заменяют её
// свежим экземпляром.
type BookingSession struct {
	mu sync.Mutex

	ChatID int64
	Stage  Stage

	CityID      string
	CityName    string
	PriceBandID string

	// Hotels — снимок отфильтрованного списка; его порядок определяет
	// разрешение номерного выбора пользователя.
	Hotels []Hotel

	HotelID       string
	HotelName     string
	RoomType      string
	PricePerNight int

	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
	Guests   int

	Total            int
	FreeCancellation bool

	GuestName string
	Phone     string
	Email     string

	UpdatedAt time.Time
}

func NewBookingSession(chatID int64) *BookingSession {
	return &BookingSession{
		ChatID:    chatID,
		Stage:     StageIdle,
		Guests:    2,
		UpdatedAt: time.Now().UTC(),
	}
}

// Active — диалог бронирования в процессе (сообщения сначала попадают в FSM).
func (s *BookingSession) Active() bool {
	return s.Stage != StageIdle && s.Stage != StageCompleted
}

func (s *BookingSession) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// Lock удерживается обработчиком на время одного шага диалога.
// Подметание просроченных сессий берёт замок через TryLock, поэтому
// сессия не сбрасывается посреди обработки сообщения.
func (s *BookingSession) Lock() { s.mu.Lock() }

func (s *BookingSession) Unlock() { s.mu.Unlock() }

func (s *BookingSession) TryLock() bool { return s.mu.TryLock() }
