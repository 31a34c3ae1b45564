package dto

type QuoteRequest struct {
	HotelID  string `json:"hotel_id" binding:"required"`
	RoomType string `json:"room_type" binding:"required"`
	Nights   int    `json:"nights" binding:"required,gt=0"`
	Guests   int    `json:"guests" binding:"required,gt=0"`
}

type ResolveRequest struct {
	Query string `json:"query" binding:"required"`
	Name  string `json:"name"`
}
