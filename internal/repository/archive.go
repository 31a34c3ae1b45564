package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/stpnv0/TravelBot/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

// BookingArchive хранит завершённые бронирования в Postgres. Архив лежит
// вне горячего пути диалога: запись выполняется сервисом в отдельной
// горутине уже после ответа пользователю.
type BookingArchive struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewBookingArchive(db *dbpg.DB) *BookingArchive {
	return &BookingArchive{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *BookingArchive) Save(ctx context.Context, rec *domain.BookingRecord) error {
	query := `INSERT INTO bookings
			  (id, chat_id, city_name, hotel_id, hotel_name, room_type,
			   check_in, check_out, nights, guests, total, free_cancellation, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecWithRetry(ctx, r.strategy, query,
		rec.ID, rec.ChatID, rec.CityName, rec.HotelID, rec.HotelName, rec.RoomType,
		rec.CheckIn, rec.CheckOut, rec.Nights, rec.Guests, rec.Total,
		rec.FreeCancellation, rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// повторная доставка апдейта, запись уже есть
			return nil
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	return nil
}

func (r *BookingArchive) ListByChat(ctx context.Context, chatID int64) ([]*domain.BookingRecord, error) {
	query := `SELECT id, chat_id, city_name, hotel_id, hotel_name, room_type,
			  		 check_in, check_out, nights, guests, total, free_cancellation, created_at
			  FROM bookings
			  WHERE chat_id = $1
			  ORDER BY created_at DESC`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var res []*domain.BookingRecord
	for rows.Next() {
		var rec domain.BookingRecord
		if err = rows.Scan(
			&rec.ID, &rec.ChatID, &rec.CityName, &rec.HotelID, &rec.HotelName, &rec.RoomType,
			&rec.CheckIn, &rec.CheckOut, &rec.Nights, &rec.Guests, &rec.Total,
			&rec.FreeCancellation, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		res = append(res, &rec)
	}

	return res, rows.Err()
}

// Count нужен HTTP-ручке health для проверки связи с базой.
func (r *BookingArchive) Count(ctx context.Context) (int, error) {
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, `SELECT COUNT(*) FROM bookings`)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	var n int
	if err = row.Scan(&n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return n, nil
}
