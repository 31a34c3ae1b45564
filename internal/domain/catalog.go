package domain

type City struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Hotels []Hotel `json:"hotels"`
}

type Hotel struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Address          string     `json:"address"`
	Stars            int        `json:"stars"`
	Rating           float64    `json:"rating"`
	PricePerNight    int        `json:"price_per_night"`
	Amenities        []string   `json:"amenities"`
	FreeCancellation bool       `json:"free_cancellation"`
	Description      string     `json:"description"`
	RoomTypes        []RoomType `json:"room_types"`
}

type RoomType struct {
	Type     string `json:"type"`
	Price    int    `json:"price"`
	Capacity int    `json:"capacity"`
}

// PriceBand — именованный диапазон цены за ночь, границы включительно.
type PriceBand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
}

// Quote — рассчитанная стоимость проживания для конкретного номера.
type Quote struct {
	HotelName        string `json:"hotel_name"`
	RoomType         string `json:"room_type"`
	PricePerNight    int    `json:"price_per_night"`
	Nights           int    `json:"nights"`
	Guests           int    `json:"guests"`
	Total            int    `json:"total"`
	FreeCancellation bool   `json:"free_cancellation"`
}
