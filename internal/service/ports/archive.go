package ports

import (
	"context"

	"github.com/stpnv0/TravelBot/internal/domain"
)

type BookingArchive interface {
	Save(ctx context.Context, rec *domain.BookingRecord) error
	ListByChat(ctx context.Context, chatID int64) ([]*domain.BookingRecord, error)
}
