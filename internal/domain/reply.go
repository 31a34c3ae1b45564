package domain

// KeyboardKind — символьный сигнал транспорту, какую клавиатуру показать
// со следующим сообщением. Само построение клавиатуры живёт в транспорте.
type KeyboardKind string

const (
	KeyboardMain       KeyboardKind = "main"
	KeyboardSection    KeyboardKind = "section"
	KeyboardCities     KeyboardKind = "cities"
	KeyboardPriceBands KeyboardKind = "price_bands"
	KeyboardHotels     KeyboardKind = "hotels"
	KeyboardRooms      KeyboardKind = "rooms"
	KeyboardGuests     KeyboardKind = "guests"
	KeyboardCancel     KeyboardKind = "cancel"
	KeyboardBackToMain KeyboardKind = "back_to_main"
)

type Keyboard struct {
	Kind KeyboardKind
	// Section — имя раздела для KeyboardSection.
	Section string
	// Size — число вариантов для нумерованных клавиатур (отели, номера).
	Size int
}

type Reply struct {
	Text     string
	Keyboard Keyboard
}
