package domain

import "time"

// BookingRecord — итог завершённого бронирования, сохраняемый в архив.
type BookingRecord struct {
	ID               string    `json:"id"`
	ChatID           int64     `json:"chat_id"`
	CityName         string    `json:"city_name"`
	HotelID          string    `json:"hotel_id"`
	HotelName        string    `json:"hotel_name"`
	RoomType         string    `json:"room_type"`
	CheckIn          time.Time `json:"check_in"`
	CheckOut         time.Time `json:"check_out"`
	Nights           int       `json:"nights"`
	Guests           int       `json:"guests"`
	Total            int       `json:"total"`
	FreeCancellation bool      `json:"free_cancellation"`
	CreatedAt        time.Time `json:"created_at"`
}
