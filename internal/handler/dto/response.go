package dto

import (
	"github.com/samber/lo"
	"github.com/stpnv0/TravelBot/internal/domain"
)

type CityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoomTypeResponse struct {
	Type     string `json:"type"`
	Price    int    `json:"price"`
	Capacity int    `json:"capacity"`
}

type HotelResponse struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Address          string             `json:"address"`
	Stars            int                `json:"stars"`
	Rating           float64            `json:"rating"`
	PricePerNight    int                `json:"price_per_night"`
	Amenities        []string           `json:"amenities"`
	FreeCancellation bool               `json:"free_cancellation"`
	Description      string             `json:"description"`
	RoomTypes        []RoomTypeResponse `json:"room_types"`
}

type QuoteResponse struct {
	HotelName        string `json:"hotel_name"`
	RoomType         string `json:"room_type"`
	PricePerNight    int    `json:"price_per_night"`
	Nights           int    `json:"nights"`
	Guests           int    `json:"guests"`
	Total            int    `json:"total"`
	FreeCancellation bool   `json:"free_cancellation"`
}

type ResolveResponse struct {
	Response string `json:"response"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToCityResponse(c domain.City) CityResponse {
	return CityResponse{ID: c.ID, Name: c.Name}
}

func ToHotelResponse(h *domain.Hotel) HotelResponse {
	return HotelResponse{
		ID:               h.ID,
		Name:             h.Name,
		Address:          h.Address,
		Stars:            h.Stars,
		Rating:           h.Rating,
		PricePerNight:    h.PricePerNight,
		Amenities:        h.Amenities,
		FreeCancellation: h.FreeCancellation,
		Description:      h.Description,
		RoomTypes: lo.Map(h.RoomTypes, func(rt domain.RoomType, _ int) RoomTypeResponse {
			return RoomTypeResponse{Type: rt.Type, Price: rt.Price, Capacity: rt.Capacity}
		}),
	}
}

func ToQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		HotelName:        q.HotelName,
		RoomType:         q.RoomType,
		PricePerNight:    q.PricePerNight,
		Nights:           q.Nights,
		Guests:           q.Guests,
		Total:            q.Total,
		FreeCancellation: q.FreeCancellation,
	}
}
