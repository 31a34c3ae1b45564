package service

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/stpnv0/TravelBot/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.Russian)

func formatPrice(n int) string {
	return pricePrinter.Sprintf("%d", n)
}

// FormatHotelCard — карточка отеля; с showRooms добавляется нумерованный
// список номеров, порядок которого определяет выбор пользователя.
func FormatHotelCard(h *domain.Hotel, showRooms bool) string {
	stars := strings.Repeat("⭐", h.Stars)
	rating := fmt.Sprintf("%s %.1f/5.0", strings.Repeat("⭐", int(h.Rating)), h.Rating)

	amenities := strings.Join(lo.Slice(h.Amenities, 0, 4), ", ")
	if len(h.Amenities) > 4 {
		amenities += fmt.Sprintf(" и ещё %d", len(h.Amenities)-4)
	}

	cancellation := "❌ Без возврата"
	if h.FreeCancellation {
		cancellation = "✅ Бесплатная отмена"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏨 *%s*\n%s | %s\n\n", h.Name, stars, rating)
	fmt.Fprintf(&sb, "📍 %s\n💰 От %s ₽/ночь\n\n", h.Address, formatPrice(h.PricePerNight))
	fmt.Fprintf(&sb, "✨ *Удобства:* %s\n%s\n\n📝 %s", amenities, cancellation, h.Description)

	if showRooms {
		sb.WriteString("\n\n*Доступные номера:*")
		for i, room := range h.RoomTypes {
			fmt.Fprintf(&sb, "\n%d. %s - %s ₽ (до %d чел.)",
				i+1, room.Type, formatPrice(room.Price), room.Capacity)
		}
	}

	return sb.String()
}

// FormatHotelsList — нумерованный список отелей снимка.
func FormatHotelsList(hotels []domain.Hotel) string {
	if len(hotels) == 0 {
		return "😔 К сожалению, отели не найдены. Попробуйте изменить параметры поиска."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏨 *Найдено отелей: %d*\n\n", len(hotels))

	for i, h := range hotels {
		fmt.Fprintf(&sb, "%d. *%s* %s\n", i+1, h.Name, strings.Repeat("⭐", h.Stars))
		fmt.Fprintf(&sb, "   💰 От %s ₽/ночь | ⭐ %.1f/5.0\n", formatPrice(h.PricePerNight), h.Rating)
		fmt.Fprintf(&sb, "   📍 %s\n\n", h.Address)
	}

	return sb.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Не указано"
	}
	return s
}

// FormatBookingSummary — итог завершённого бронирования.
func FormatBookingSummary(sess *domain.BookingSession, confirmationID string) string {
	var sb strings.Builder

	sb.WriteString("📋 *Итоговая информация о бронировании:*\n\n")
	fmt.Fprintf(&sb, "🎫 *Номер брони:* %s\n", confirmationID)
	fmt.Fprintf(&sb, "🏨 *Отель:* %s (%s)\n", sess.HotelName, sess.CityName)
	fmt.Fprintf(&sb, "🏠 *Тип номера:* %s\n", sess.RoomType)
	fmt.Fprintf(&sb, "👥 *Количество гостей:* %d\n\n", sess.Guests)

	sb.WriteString("📅 *Даты:*\n")
	fmt.Fprintf(&sb, "   • Заезд: %s\n", sess.CheckIn.Format("02.01.2006"))
	fmt.Fprintf(&sb, "   • Выезд: %s\n", sess.CheckOut.Format("02.01.2006"))
	fmt.Fprintf(&sb, "   • Ночей: %d\n\n", sess.Nights)

	sb.WriteString("💰 *Стоимость:*\n")
	fmt.Fprintf(&sb, "   • За ночь: %s ₽\n", formatPrice(sess.PricePerNight))
	fmt.Fprintf(&sb, "   • Всего: %s ₽\n\n", formatPrice(sess.Total))

	sb.WriteString("👤 *Контактные данные:*\n")
	fmt.Fprintf(&sb, "   • Имя: %s\n", orUnknown(sess.GuestName))
	fmt.Fprintf(&sb, "   • Телефон: %s\n", orUnknown(sess.Phone))
	fmt.Fprintf(&sb, "   • Email: %s\n", orUnknown(sess.Email))

	if sess.FreeCancellation {
		sb.WriteString("\n✅ *Бесплатная отмена* до даты заезда")
	} else {
		sb.WriteString("\n❌ *Невозвратный тариф*")
	}

	return sb.String()
}

// FormatBookingHistory — список завершённых бронирований чата.
func FormatBookingHistory(records []*domain.BookingRecord) string {
	if len(records) == 0 {
		return "📭 У вас пока нет завершённых бронирований."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗂 *Ваши бронирования: %d*\n\n", len(records))

	for i, r := range records {
		fmt.Fprintf(&sb, "%d. *%s* (%s), %s\n", i+1, r.HotelName, r.CityName, r.RoomType)
		fmt.Fprintf(&sb, "   📅 %s — %s, ночей: %d\n", r.CheckIn.Format("02.01.2006"), r.CheckOut.Format("02.01.2006"), r.Nights)
		fmt.Fprintf(&sb, "   💰 %s ₽ | 🎫 %s\n\n", formatPrice(r.Total), r.ID)
	}

	return sb.String()
}
