package bot

import (
	"context"

	"github.com/stpnv0/TravelBot/internal/domain"
	"github.com/stpnv0/TravelBot/internal/service"
	"github.com/stpnv0/TravelBot/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// buttonQueries переводит нажатую кнопку темы в канонический запрос
// к базе знаний.
var buttonQueries = map[string]string{
	// Бронирование отелей
	"📝 Пошаговая инструкция": "как забронировать отель",
	"🔍 Поиск и фильтры":      "фильтры поиск",
	"👥 Информация о гостях":  "данные гостей",
	"🏨 Условия заселения":    "условия заселения",

	// Оплата и возврат
	"💳 Способы оплаты":          "способы оплаты",
	"💰 Предоплата":              "предоплата",
	"🔄 Оплата частями (Сплит)":  "сплит оплата частями",
	"🔄 Отмена и возврат":        "отмена бронирования",
	"📄 Подтверждение брони":     "подтверждение бронирования",

	// О сервисе
	"✈️ О Яндекс Путешествиях": "что такое яндекс путешествия",
	"📱 Мобильное приложение":  "приложение",
	"👤 Личный кабинет":        "личный кабинет",
	"🎁 Бонусы и кешбэк":       "бонусы кешбэк",
	"🔒 Безопасность":          "безопасность",

	// Помощь и поддержка
	"📞 Служба поддержки": "поддержка",
	"❓ Частые вопросы":    "помощь",
}

var sectionPrompts = map[string]string{
	sectionBooking: "🏨 *Бронирование отелей*\n\nВыберите тему:",
	sectionPayment: "💳 *Оплата и возврат*\n\nВыберите тему:",
	sectionAbout:   "ℹ️ *О сервисе Яндекс Путешествия*\n\nВыберите тему:",
	sectionSupport: "📞 *Помощь и поддержка*\n\nВыберите тему:",
}

var sectionByButton = map[string]string{
	btnSectionBooking: sectionBooking,
	btnSectionPayment: sectionPayment,
	btnSectionAbout:   sectionAbout,
	btnSectionSupport: sectionSupport,
}

const helpText = `📚 *Справка по боту Яндекс Путешествий:*

Этот бот отвечает на вопросы по сервису *Яндекс Путешествия*.

*Основные разделы:*
🏨 *Бронирование отелей* — как забронировать, поиск, условия
💳 *Оплата и возврат* — способы оплаты, отмена, возврат средств
ℹ️ *О сервисе* — информация о Яндекс Путешествиях
📞 *Помощь и поддержка* — техподдержка и частые вопросы

*Как пользоваться:*
• Используйте кнопки для навигации
• Кнопка "🔍 Подобрать отель" запустит пошаговый подбор
• Или напишите вопрос своими словами
• Кнопка "◀️ Назад" вернёт в главное меню

📞 По вопросам вне бота — служба поддержки Яндекс Путешествий.`

type IntentResolver interface {
	Resolve(query, userName string) string
	Greeting(userName string) string
}

type BookingFlow interface {
	Start(chatID int64) *domain.Reply
	Handle(ctx context.Context, chatID int64, text string) (*domain.Reply, bool)
	KeyboardFor(sess *domain.BookingSession) domain.Keyboard
	History(ctx context.Context, chatID int64) ([]*domain.BookingRecord, error)
}

// Handler — маршрутизация входящего сообщения: сначала активный диалог
// бронирования, затем навигация по меню, затем база знаний. Транспорт
// (поллер) только доставляет текст сюда и отправляет ответ.
type Handler struct {
	intents  IntentResolver
	booking  BookingFlow
	sessions ports.SessionStore
	logger   logger.Logger
}

func NewHandler(intents IntentResolver, booking BookingFlow, sessions ports.SessionStore, log logger.Logger) *Handler {
	return &Handler{
		intents:  intents,
		booking:  booking,
		sessions: sessions,
		logger:   log,
	}
}

// Command обрабатывает телеграм-команду; nil означает, что команда
// не распознана и текст пойдёт обычным маршрутом.
func (h *Handler) Command(ctx context.Context, command string, chatID int64, userName string) *domain.Reply {
	switch command {
	case "start":
		h.sessions.SetSection(chatID, "")
		return &domain.Reply{
			Text:     h.intents.Greeting(userName),
			Keyboard: domain.Keyboard{Kind: domain.KeyboardMain},
		}
	case "help":
		return &domain.Reply{
			Text:     helpText,
			Keyboard: domain.Keyboard{Kind: domain.KeyboardMain},
		}
	case "search":
		return h.booking.Start(chatID)
	case "bookings":
		return h.history(ctx, chatID)
	default:
		return nil
	}
}

// HandleText — зонтичный маршрут для обычного текста и кнопок.
func (h *Handler) HandleText(ctx context.Context, chatID int64, userName, text string) *domain.Reply {
	sess := h.sessions.Get(chatID)

	// Активный диалог бронирования получает сообщение первым.
	if sess.Active() {
		if reply, handled := h.booking.Handle(ctx, chatID, text); handled {
			return reply
		}
		// Непотреблённый токен: отвечает база знаний, клавиатура
		// остаётся у текущего шага диалога.
		return &domain.Reply{
			Text:     h.intents.Resolve(h.toQuery(text), userName),
			Keyboard: h.booking.KeyboardFor(sess),
		}
	}

	if text == btnBackToMain {
		h.sessions.SetSection(chatID, "")
		return &domain.Reply{
			Text:     "📱 *Главное меню*\n\nВыберите раздел:",
			Keyboard: domain.Keyboard{Kind: domain.KeyboardMain},
		}
	}

	if section, ok := sectionByButton[text]; ok {
		h.sessions.SetSection(chatID, section)
		return &domain.Reply{
			Text:     sectionPrompts[section],
			Keyboard: domain.Keyboard{Kind: domain.KeyboardSection, Section: section},
		}
	}

	if text == btnSearchHotel {
		return h.booking.Start(chatID)
	}

	return &domain.Reply{
		Text:     h.intents.Resolve(h.toQuery(text), userName),
		Keyboard: h.currentKeyboard(chatID),
	}
}

func (h *Handler) toQuery(text string) string {
	if query, ok := buttonQueries[text]; ok {
		return query
	}
	return text
}

func (h *Handler) currentKeyboard(chatID int64) domain.Keyboard {
	if section := h.sessions.Section(chatID); section != "" {
		return domain.Keyboard{Kind: domain.KeyboardSection, Section: section}
	}
	return domain.Keyboard{Kind: domain.KeyboardMain}
}

func (h *Handler) history(ctx context.Context, chatID int64) *domain.Reply {
	records, err := h.booking.History(ctx, chatID)
	if err != nil {
		h.logger.Error("failed to load booking history",
			logger.Int64("chat_id", chatID),
			logger.String("error", err.Error()),
		)
		return &domain.Reply{
			Text:     "😔 Не удалось загрузить историю бронирований. Попробуйте позже.",
			Keyboard: h.currentKeyboard(chatID),
		}
	}

	return &domain.Reply{
		Text:     service.FormatBookingHistory(records),
		Keyboard: h.currentKeyboard(chatID),
	}
}
