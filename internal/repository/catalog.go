package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/stpnv0/TravelBot/internal/domain"
)

// CatalogRepository — неизменяемый каталог городов, отелей и ценовых
// диапазонов, загруженный из JSON-файла на старте.
type CatalogRepository struct {
	cities []domain.City
	bands  []domain.PriceBand
}

type catalogFile struct {
	Cities     []domain.City      `json:"cities"`
	PriceBands []domain.PriceBand `json:"price_bands"`
}

func NewCatalogRepo(path string) (*CatalogRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hotels database: %w", err)
	}

	var file catalogFile
	if err = json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse hotels database: %w", err)
	}

	if len(file.Cities) == 0 {
		return nil, fmt.Errorf("%w: hotels database has no cities", domain.ErrValidation)
	}
	if len(file.PriceBands) == 0 {
		return nil, fmt.Errorf("%w: hotels database has no price bands", domain.ErrValidation)
	}

	return &CatalogRepository{
		cities: file.Cities,
		bands:  file.PriceBands,
	}, nil
}

// Cities возвращает города в порядке датасета.
func (r *CatalogRepository) Cities() []domain.City {
	return r.cities
}

func (r *CatalogRepository) PriceBands() []domain.PriceBand {
	return r.bands
}

// HotelsByCity возвращает отели города; неизвестный город — пустой список,
// не ошибка.
func (r *CatalogRepository) HotelsByCity(cityID string) []domain.Hotel {
	for _, c := range r.cities {
		if c.ID == cityID {
			return c.Hotels
		}
	}
	return nil
}

// FilterByPriceBand оставляет отели с ценой за ночь внутри диапазона
// (границы включительно). Неизвестный диапазон — вход без изменений.
func (r *CatalogRepository) FilterByPriceBand(hotels []domain.Hotel, bandID string) []domain.Hotel {
	band, ok := lo.Find(r.bands, func(b domain.PriceBand) bool { return b.ID == bandID })
	if !ok {
		return hotels
	}

	return lo.Filter(hotels, func(h domain.Hotel, _ int) bool {
		return h.PricePerNight >= band.Min && h.PricePerNight <= band.Max
	})
}

// HotelByID ищет отель по всем городам.
func (r *CatalogRepository) HotelByID(hotelID string) (*domain.Hotel, error) {
	for _, c := range r.cities {
		for i := range c.Hotels {
			if c.Hotels[i].ID == hotelID {
				return &c.Hotels[i], nil
			}
		}
	}
	return nil, domain.ErrHotelNotFound
}

// PriceQuote рассчитывает стоимость проживания.
func (r *CatalogRepository) PriceQuote(hotelID, roomType string, nights, guests int) (*domain.Quote, error) {
	hotel, err := r.HotelByID(hotelID)
	if err != nil {
		return nil, err
	}

	room, ok := lo.Find(hotel.RoomTypes, func(rt domain.RoomType) bool { return rt.Type == roomType })
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	if guests > room.Capacity {
		return nil, domain.ErrCapacityExceeded
	}

	return &domain.Quote{
		HotelName:        hotel.Name,
		RoomType:         room.Type,
		PricePerNight:    room.Price,
		Nights:           nights,
		Guests:           guests,
		Total:            room.Price * nights,
		FreeCancellation: hotel.FreeCancellation,
	}, nil
}
