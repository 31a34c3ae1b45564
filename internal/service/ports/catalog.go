package ports

import "github.com/stpnv0/TravelBot/internal/domain"

type CatalogRepo interface {
	Cities() []domain.City
	PriceBands() []domain.PriceBand
	HotelsByCity(cityID string) []domain.Hotel
	FilterByPriceBand(hotels []domain.Hotel, bandID string) []domain.Hotel
	HotelByID(hotelID string) (*domain.Hotel, error)
	PriceQuote(hotelID, roomType string, nights, guests int) (*domain.Quote, error)
}
