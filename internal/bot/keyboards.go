package bot

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stpnv0/TravelBot/internal/domain"
	"github.com/stpnv0/TravelBot/internal/service"
	"github.com/stpnv0/TravelBot/internal/service/ports"
)

// Кнопки главного меню и навигации.
const (
	btnSearchHotel    = "🔍 Подобрать отель"
	btnSectionBooking = "🏨 Бронирование отелей"
	btnSectionPayment = "💳 Оплата и возврат"
	btnSectionAbout   = "ℹ️ О сервисе"
	btnSectionSupport = "📞 Помощь и поддержка"
	btnBackToMain     = "◀️ Назад в главное меню"
)

// Идентификаторы разделов второго уровня.
const (
	sectionBooking = "booking"
	sectionPayment = "payment"
	sectionAbout   = "about"
	sectionSupport = "support"
)

var sectionButtons = map[string][]string{
	sectionBooking: {
		"📝 Пошаговая инструкция",
		"🔍 Поиск и фильтры",
		"👥 Информация о гостях",
		"🏨 Условия заселения",
	},
	sectionPayment: {
		"💳 Способы оплаты",
		"💰 Предоплата",
		"🔄 Оплата частями (Сплит)",
		"🔄 Отмена и возврат",
		"📄 Подтверждение брони",
	},
	sectionAbout: {
		"✈️ О Яндекс Путешествиях",
		"📱 Мобильное приложение",
		"👤 Личный кабинет",
		"🎁 Бонусы и кешбэк",
		"🔒 Безопасность",
	},
	sectionSupport: {
		"📞 Служба поддержки",
		"❓ Частые вопросы",
	},
}

// Keyboards строит reply-клавиатуры по символьному сигналу ядра.
type Keyboards struct {
	catalog ports.CatalogRepo
}

func NewKeyboards(catalog ports.CatalogRepo) *Keyboards {
	return &Keyboards{catalog: catalog}
}

func (k *Keyboards) Build(kb domain.Keyboard) tgbotapi.ReplyKeyboardMarkup {
	switch kb.Kind {
	case domain.KeyboardSection:
		return k.section(kb.Section)
	case domain.KeyboardCities:
		return k.cities()
	case domain.KeyboardPriceBands:
		return k.priceBands()
	case domain.KeyboardHotels, domain.KeyboardRooms:
		return numberedKeyboard(kb.Size)
	case domain.KeyboardGuests:
		return guestsKeyboard()
	case domain.KeyboardCancel:
		return singleRowKeyboard(service.ButtonCancel)
	case domain.KeyboardBackToMain:
		return singleRowKeyboard(btnBackToMain)
	default:
		return mainKeyboard()
	}
}

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSearchHotel)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSectionBooking)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSectionPayment)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSectionAbout)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSectionSupport)),
	)
}

func (k *Keyboards) section(section string) tgbotapi.ReplyKeyboardMarkup {
	buttons, ok := sectionButtons[section]
	if !ok {
		return mainKeyboard()
	}

	rows := make([][]tgbotapi.KeyboardButton, 0, len(buttons)+1)
	for _, b := range buttons {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(b)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBackToMain)))

	return tgbotapi.NewReplyKeyboard(rows...)
}

func (k *Keyboards) cities() tgbotapi.ReplyKeyboardMarkup {
	cities := k.catalog.Cities()

	rows := make([][]tgbotapi.KeyboardButton, 0, len(cities)+1)
	for _, c := range cities {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(c.Name)))
	}
	rows = append(rows, cancelRow())

	return tgbotapi.NewReplyKeyboard(rows...)
}

func (k *Keyboards) priceBands() tgbotapi.ReplyKeyboardMarkup {
	bands := k.catalog.PriceBands()

	rows := make([][]tgbotapi.KeyboardButton, 0, len(bands)+2)
	for _, b := range bands {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(b.Name)))
	}
	rows = append(rows, backRow(), cancelRow())

	return tgbotapi.NewReplyKeyboard(rows...)
}

// numberedKeyboard — кнопки "1".."n" рядами по три, размер ряда подобран
// под ширину экрана телефона.
func numberedKeyboard(n int) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton

	row := make([]tgbotapi.KeyboardButton, 0, 3)
	for i := 1; i <= n; i++ {
		row = append(row, tgbotapi.NewKeyboardButton(strconv.Itoa(i)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = make([]tgbotapi.KeyboardButton, 0, 3)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, backRow(), cancelRow())

	return tgbotapi.NewReplyKeyboard(rows...)
}

func guestsKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("1 гость"),
			tgbotapi.NewKeyboardButton("2 гостя"),
			tgbotapi.NewKeyboardButton("3 гостя"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("4 гостя"),
			tgbotapi.NewKeyboardButton("5 гостей"),
			tgbotapi.NewKeyboardButton("6 гостей"),
		),
		cancelRow(),
	)
}

func singleRowKeyboard(button string) tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(button)),
	)
}

func backRow() []tgbotapi.KeyboardButton {
	return tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(service.ButtonBack))
}

func cancelRow() []tgbotapi.KeyboardButton {
	return tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(service.ButtonCancel))
}
