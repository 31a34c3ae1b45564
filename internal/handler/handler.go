package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/lo"
	"github.com/stpnv0/TravelBot/internal/domain"
	"github.com/stpnv0/TravelBot/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

type CatalogRepo interface {
	Cities() []domain.City
	HotelsByCity(cityID string) []domain.Hotel
	FilterByPriceBand(hotels []domain.Hotel, bandID string) []domain.Hotel
	HotelByID(hotelID string) (*domain.Hotel, error)
	PriceQuote(hotelID, roomType string, nights, guests int) (*domain.Quote, error)
}

type IntentSvc interface {
	Resolve(query, userName string) string
}

type ArchiveStats interface {
	Count(ctx context.Context) (int, error)
}

// Handler — служебный read-only API над каталогом и движком интентов.
// Чатовое ядро он не трогает: сессии и диалог живут только в боте.
// stats может быть nil, если архив бронирований выключен.
type Handler struct {
	catalog CatalogRepo
	intents IntentSvc
	stats   ArchiveStats
}

func NewHandler(catalog CatalogRepo, intents IntentSvc, stats ArchiveStats) *Handler {
	return &Handler{
		catalog: catalog,
		intents: intents,
		stats:   stats,
	}
}

func (h *Handler) ListCities(c *ginext.Context) {
	resp := lo.Map(h.catalog.Cities(), func(city domain.City, _ int) dto.CityResponse {
		return dto.ToCityResponse(city)
	})

	c.JSON(http.StatusOK, resp)
}

// ListHotels отдаёт отели города; параметр band дополнительно фильтрует
// по ценовому диапазону. Неизвестный город — пустой список, не 404.
func (h *Handler) ListHotels(c *ginext.Context) {
	hotels := h.catalog.HotelsByCity(c.Param("id"))
	if band := c.Query("band"); band != "" {
		hotels = h.catalog.FilterByPriceBand(hotels, band)
	}

	resp := make([]dto.HotelResponse, 0, len(hotels))
	for i := range hotels {
		resp = append(resp, dto.ToHotelResponse(&hotels[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetHotel(c *ginext.Context) {
	hotel, err := h.catalog.HotelByID(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHotelResponse(hotel))
}

func (h *Handler) Quote(c *ginext.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	quote, err := h.catalog.PriceQuote(req.HotelID, req.RoomType, req.Nights, req.Guests)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

func (h *Handler) Resolve(c *ginext.Context) {
	var req dto.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ResolveResponse{
		Response: h.intents.Resolve(req.Query, req.Name),
	})
}

// Health отвечает статусом сервиса; при включённом архиве заодно
// проверяет связь с базой.
func (h *Handler) Health(c *ginext.Context) {
	if h.stats == nil {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
		return
	}

	count, err := h.stats.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ginext.H{"status": "degraded"})
		return
	}

	c.JSON(http.StatusOK, ginext.H{"status": "ok", "bookings": count})
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrHotelNotFound), errors.Is(err, domain.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCapacityExceeded):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
