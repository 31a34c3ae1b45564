package ports

import (
	"time"

	"github.com/stpnv0/TravelBot/internal/domain"
)

type SessionStore interface {
	Get(chatID int64) *domain.BookingSession
	Reset(chatID int64) *domain.BookingSession
	Section(chatID int64) string
	SetSection(chatID int64, section string)
	SweepExpired(ttl time.Duration) []int64
}
