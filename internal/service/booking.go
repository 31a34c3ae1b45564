package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/TravelBot/internal/domain"
	"github.com/stpnv0/TravelBot/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

const dateLayout = "02.01.2006"

// Кнопки, которыми управляется диалог бронирования.
const (
	ButtonCancel = "❌ Отменить бронирование"
	ButtonBack   = "⬅️ Назад"
)

var (
	dateRe         = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
	leadingDigitRe = regexp.MustCompile(`^(\d+)`)
)

// BookingService — конечный автомат диалога подбора и бронирования отеля.
// Handle потребляет сообщение только если оно осмысленно на текущем шаге;
// непотреблённые сообщения уходят наверх в разрешение интентов.
type BookingService struct {
	catalog    ports.CatalogRepo
	sessions   ports.SessionStore
	archive    ports.BookingArchive
	logger     logger.Logger
	sessionTTL time.Duration
	now        func() time.Time
}

func NewBookingService(
	catalog ports.CatalogRepo,
	sessions ports.SessionStore,
	archive ports.BookingArchive,
	log logger.Logger,
	sessionTTL time.Duration,
) *BookingService {
	return &BookingService{
		catalog:    catalog,
		sessions:   sessions,
		archive:    archive,
		logger:     log,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Start начинает диалог подбора отеля с чистой сессии.
func (s *BookingService) Start(chatID int64) *domain.Reply {
	sess := s.sessions.Reset(chatID)
	sess.Lock()
	sess.Stage = domain.StageSelectingCity
	sess.Touch()
	sess.Unlock()

	return &domain.Reply{
		Text:     s.cityPrompt(),
		Keyboard: domain.Keyboard{Kind: domain.KeyboardCities},
	}
}

// Handle прогоняет сообщение через автомат. Второе значение — потреблено
// ли сообщение; false означает, что текст не опознан на текущем шаге и
// должен уйти в разрешение интентов с клавиатурой этого шага.
func (s *BookingService) Handle(ctx context.Context, chatID int64, text string) (*domain.Reply, bool) {
	sess := s.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	// Между Get и Lock сессию могло заменить подметание просроченных;
	// устаревший указатель сообщение не потребляет.
	if s.sessions.Get(chatID) != sess {
		return nil, false
	}

	if !sess.Active() {
		return nil, false
	}

	// Отмена проверяется раньше любой логики шага.
	if isCancel(text) {
		s.sessions.Reset(chatID)
		return &domain.Reply{
			Text:     "❌ Бронирование отменено.\n\nВыберите раздел из меню 👇",
			Keyboard: domain.Keyboard{Kind: domain.KeyboardMain},
		}, true
	}

	switch sess.Stage {
	case domain.StageSelectingCity:
		return s.handleCity(sess, text)
	case domain.StageSelectingPriceBand:
		return s.handlePriceBand(sess, text)
	case domain.StageViewingHotels:
		return s.handleHotelChoice(sess, text)
	case domain.StageSelectingRoom:
		return s.handleRoomChoice(sess, text)
	case domain.StageEnteringCheckIn:
		return s.handleCheckIn(sess, text)
	case domain.StageEnteringCheckOutAndGuest:
		return s.handleCheckOutAndGuests(ctx, sess, text)
	case domain.StageEnteringContactName,
		domain.StageEnteringContactPhone,
		domain.StageEnteringContactEmail:
		// Шаги сбора контактов есть в модели данных, но в текущем потоке
		// недостижимы: диалог завершается после ввода числа гостей.
		return nil, false
	default:
		return nil, false
	}
}

// KeyboardFor — клавиатура повторного запроса текущего шага. Её показывает
// транспорт, когда непотреблённое сообщение ушло в разрешение интентов.
func (s *BookingService) KeyboardFor(sess *domain.BookingSession) domain.Keyboard {
	switch sess.Stage {
	case domain.StageSelectingCity:
		return domain.Keyboard{Kind: domain.KeyboardCities}
	case domain.StageSelectingPriceBand:
		return domain.Keyboard{Kind: domain.KeyboardPriceBands}
	case domain.StageViewingHotels:
		return domain.Keyboard{Kind: domain.KeyboardHotels, Size: len(sess.Hotels)}
	case domain.StageSelectingRoom:
		return domain.Keyboard{Kind: domain.KeyboardRooms, Size: s.roomCount(sess)}
	case domain.StageEnteringCheckIn:
		return domain.Keyboard{Kind: domain.KeyboardCancel}
	case domain.StageEnteringCheckOutAndGuest:
		if sess.CheckOut.IsZero() {
			return domain.Keyboard{Kind: domain.KeyboardCancel}
		}
		return domain.Keyboard{Kind: domain.KeyboardGuests}
	default:
		return domain.Keyboard{Kind: domain.KeyboardMain}
	}
}

// ResetExpired сбрасывает брошенные диалоги; вызывается планировщиком.
func (s *BookingService) ResetExpired(_ context.Context) ([]int64, error) {
	return s.sessions.SweepExpired(s.sessionTTL), nil
}

func (s *BookingService) handleCity(sess *domain.BookingSession, text string) (*domain.Reply, bool) {
	for _, city := range s.catalog.Cities() {
		if strings.EqualFold(text, city.Name) {
			sess.CityID = city.ID
			sess.CityName = city.Name
			sess.Stage = domain.StageSelectingPriceBand
			sess.Touch()

			return &domain.Reply{
				Text:     fmt.Sprintf("🏙 Город: *%s*\n\n%s", city.Name, s.bandPrompt()),
				Keyboard: domain.Keyboard{Kind: domain.KeyboardPriceBands},
			}, true
		}
	}

	// не город — пусть ответит база знаний
	return nil, false
}

func (s *BookingService) handlePriceBand(sess *domain.BookingSession, text string) (*domain.Reply, bool) {
	if text == ButtonBack {
		sess.Stage = domain.StageSelectingCity
		sess.Touch()
		return &domain.Reply{
			Text:     s.cityPrompt(),
			Keyboard: domain.Keyboard{Kind: domain.KeyboardCities},
		}, true
	}

	band, ok := s.matchBand(text)
	if !ok {
		return nil, false
	}

	hotels := s.catalog.FilterByPriceBand(s.catalog.HotelsByCity(sess.CityID), band.ID)
	if len(hotels) == 0 {
		// пустой результат — повторный запрос без смены шага
		return &domain.Reply{
			Text:     "😔 В этом диапазоне отелей не нашлось. Выберите другой диапазон цен:",
			Keyboard: domain.Keyboard{Kind: domain.KeyboardPriceBands},
		}, true
	}

	sess.PriceBandID = band.ID
	sess.Hotels = hotels
	sess.Stage = domain.StageViewingHotels
	sess.Touch()

	return &domain.Reply{
		Text:     FormatHotelsList(hotels) + "Выберите отель по номеру 👇",
		Keyboard: domain.Keyboard{Kind: domain.KeyboardHotels, Size: len(hotels)},
	}, true
}

func (s *BookingService) handleHotelChoice(sess *domain.BookingSession, text string) (*domain.Reply, bool) {
	if text == ButtonBack {
		sess.Stage = domain.StageSelectingPriceBand
		sess.Touch()
		return &domain.Reply{
			Text:     s.bandPrompt(),
			Keyboard: domain.Keyboard{Kind: domain.KeyboardPriceBands},
		}, true
	}

	idx, ok := pickIndex(text, len(sess.Hotels))
	if !ok {
		return nil, false
	}

	hotel := sess.Hotels[idx]
	sess.HotelID = hotel.ID
	sess.HotelName = hotel.Name
	sess.Stage = domain.StageSelectingRoom
	sess.Touch()

	return &domain.Reply{
		Text:     FormatHotelCard(&hotel, true) + "\n\nВыберите номер по его порядковому номеру 👇",
		Keyboard: domain.Keyboard{Kind: domain.KeyboardRooms, Size: len(hotel.RoomTypes)},
	}, true
}

func (s *BookingService) handleRoomChoice(sess *domain.BookingSession, text string) (*domain.Reply, bool) {
	if text == ButtonBack {
		sess.Stage = domain.StageViewingHotels
		sess.Touch()
		return &domain.Reply{
			Text:     FormatHotelsList(sess.Hotels) + "Выберите отель по номеру 👇",
			Keyboard: domain.Keyboard{Kind: domain.KeyboardHotels, Size: len(sess.Hotels)},
		}, true
	}

	hotel, err := s.catalog.HotelByID(sess.HotelID)
	if err != nil {
		// каталог сменился под ногами — начинаем диалог заново
		s.sessions.Reset(sess.ChatID)
		return &domain.Reply{
			Text:     "😔 Отель больше недоступен. Попробуйте начать поиск заново.",
			Keyboard: domain.Keyboard{Kind: domain.KeyboardMain},
		}, true
	}

	idx, ok := pickIndex(text, len(hotel.RoomTypes))
	if !ok {
		return nil, false
	}

	room := hotel.RoomTypes[idx]
	sess.RoomType = room.Type
	sess.PricePerNight = room.Price
	sess.Stage = domain.StageEnteringCheckIn
	sess.Touch()

	return &domain.Reply{
		Text: fmt.Sprintf("🏠 Номер: *%s* (%s ₽/ночь)\n\n📅 Введите дату заезда в формате ДД.ММ.ГГГГ, например 10.03.2026",
			room.Type, formatPrice(room.Price)),
		Keyboard: domain.Keyboard{Kind: domain.KeyboardCancel},
	}, true
}

func (s *BookingService) handleCheckIn(sess *domain.BookingSession, text string) (*domain.Reply, bool) {
	checkIn, err := s.parseDate(text)
	if err != nil {
		return &domain.Reply{
			Text:     "⚠️ Не понял дату. Введите дату заезда в формате ДД.ММ.ГГГГ, например 10.03.2026",
			Keyboard: domain.Keyboard{Kind: domain.KeyboardCancel},
		}, true
	}

	if checkIn.Before(s.today()) {
		return &domain.Reply{
			Text:     "⚠️ Дата заезда не может быть в прошлом. Введите другую дату:",
			Keyboard: domain.Keyboard{Kind: domain.KeyboardCancel},
		}, true
	}

	sess.CheckIn = checkIn
	sess.Stage = domain.StageEnteringCheckOutAndGuest
	sess.Touch()

	return &domain.Reply{
		Text:     "📅 Теперь введите дату выезда в формате ДД.ММ.ГГГГ:",
		Keyboard: domain.Keyboard{Kind: domain.KeyboardCancel},
	}, true
}

func (s *BookingService) handleCheckOutAndGuests(ctx context.Context, sess *domain.BookingSession, text string) (*domain.Reply, bool) {
	// Фаза A: дата выезда ещё не введена.
	if sess.CheckOut.IsZero() {
		checkOut, err := s.parseDate(text)
		if err != nil {
			return &domain.Reply{
				Text:     "⚠️ Не понял дату. Введите дату выезда в формате ДД.ММ.ГГГГ:",
				Keyboard: domain.Keyboard{Kind: domain.KeyboardCancel},
			}, true
		}

		if !checkOut.After(sess.CheckIn) {
			return &domain.Reply{
				Text:     "⚠️ Дата выезда должна быть позже даты заезда. Введите другую дату:",
				Keyboard: domain.Keyboard{Kind: domain.KeyboardCancel},
			}, true
		}

		sess.CheckOut = checkOut
		sess.Nights = int(checkOut.Sub(sess.CheckIn).Hours() / 24)
		sess.Touch()

		return &domain.Reply{
			Text:     fmt.Sprintf("🌙 Ночей: %d\n\n👥 Сколько будет гостей?", sess.Nights),
			Keyboard: domain.Keyboard{Kind: domain.KeyboardGuests},
		}, true
	}

	// Фаза B: дата выезда есть, ждём число гостей.
	m := leadingDigitRe.FindStringSubmatch(normalizeText(text))
	if m == nil {
		return nil, false
	}
	guests, err := strconv.Atoi(m[1])
	if err != nil || guests < 1 {
		return nil, false
	}

	quote, err := s.catalog.PriceQuote(sess.HotelID, sess.RoomType, sess.Nights, guests)
	if err != nil {
		if errors.Is(err, domain.ErrCapacityExceeded) {
			return &domain.Reply{
				Text:     "⚠️ Этот номер не вместит столько гостей. Укажите меньшее количество:",
				Keyboard: domain.Keyboard{Kind: domain.KeyboardGuests},
			}, true
		}
		s.sessions.Reset(sess.ChatID)
		return &domain.Reply{
			Text:     "😔 Не удалось рассчитать стоимость. Попробуйте начать поиск заново.",
			Keyboard: domain.Keyboard{Kind: domain.KeyboardMain},
		}, true
	}

	sess.Guests = guests
	sess.Total = quote.Total
	sess.FreeCancellation = quote.FreeCancellation
	sess.Stage = domain.StageCompleted

	confirmationID := uuid.New().String()
	summary := FormatBookingSummary(sess, confirmationID)

	s.archiveCompleted(ctx, sess, confirmationID)

	s.logger.Info("booking completed",
		logger.Int64("chat_id", sess.ChatID),
		logger.String("hotel_id", sess.HotelID),
		logger.String("room_type", sess.RoomType),
		logger.Int("nights", sess.Nights),
		logger.Int("total", sess.Total),
	)

	// завершённый диалог сразу уступает место свежей сессии
	s.sessions.Reset(sess.ChatID)

	return &domain.Reply{
		Text:     summary,
		Keyboard: domain.Keyboard{Kind: domain.KeyboardMain},
	}, true
}

// archiveCompleted пишет бронь в архив в отдельной горутине: архив не
// должен задерживать ответ пользователю и не участвует в ядре диалога.
func (s *BookingService) archiveCompleted(ctx context.Context, sess *domain.BookingSession, confirmationID string) {
	if s.archive == nil {
		return
	}

	rec := &domain.BookingRecord{
		ID:               confirmationID,
		ChatID:           sess.ChatID,
		CityName:         sess.CityName,
		HotelID:          sess.HotelID,
		HotelName:        sess.HotelName,
		RoomType:         sess.RoomType,
		CheckIn:          sess.CheckIn,
		CheckOut:         sess.CheckOut,
		Nights:           sess.Nights,
		Guests:           sess.Guests,
		Total:            sess.Total,
		FreeCancellation: sess.FreeCancellation,
		CreatedAt:        s.now().UTC(),
	}

	go func() {
		if err := s.archive.Save(context.WithoutCancel(ctx), rec); err != nil {
			s.logger.Error("failed to archive booking",
				logger.String("booking_id", rec.ID),
				logger.String("error", err.Error()),
			)
		}
	}()
}

// History — завершённые бронирования чата из архива.
func (s *BookingService) History(ctx context.Context, chatID int64) ([]*domain.BookingRecord, error) {
	if s.archive == nil {
		return nil, nil
	}
	return s.archive.ListByChat(ctx, chatID)
}

func (s *BookingService) cityPrompt() string {
	var sb strings.Builder
	sb.WriteString("🏙 *В какой город едем?*\n\n")
	for _, c := range s.catalog.Cities() {
		fmt.Fprintf(&sb, "• %s\n", c.Name)
	}
	sb.WriteString("\nВыберите город из меню или напишите его название.")
	return sb.String()
}

func (s *BookingService) bandPrompt() string {
	var sb strings.Builder
	sb.WriteString("💰 *Выберите диапазон цены за ночь:*\n\n")
	for _, b := range s.catalog.PriceBands() {
		fmt.Fprintf(&sb, "• %s\n", b.Name)
	}
	return sb.String()
}

func (s *BookingService) matchBand(text string) (domain.PriceBand, bool) {
	for _, b := range s.catalog.PriceBands() {
		if strings.EqualFold(text, b.Name) || text == b.ID {
			return b, true
		}
	}
	return domain.PriceBand{}, false
}

func (s *BookingService) roomCount(sess *domain.BookingSession) int {
	hotel, err := s.catalog.HotelByID(sess.HotelID)
	if err != nil {
		return 0
	}
	return len(hotel.RoomTypes)
}

func (s *BookingService) parseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if !dateRe.MatchString(text) {
		return time.Time{}, fmt.Errorf("%w: expected DD.MM.YYYY", domain.ErrValidation)
	}
	t, err := time.Parse(dateLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	return t, nil
}

func (s *BookingService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func isCancel(text string) bool {
	return text == ButtonCancel || text == "/cancel"
}

// pickIndex разбирает 1-based выбор из нумерованного списка. Нечисловой
// или выходящий за диапазон ввод игнорируется, не считаясь ошибкой.
func pickIndex(text string, size int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n > size {
		return 0, false
	}
	return n - 1, true
}
