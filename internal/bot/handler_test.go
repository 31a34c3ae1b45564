package bot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stpnv0/TravelBot/internal/domain"
	"github.com/stpnv0/TravelBot/internal/repository"
	"github.com/stpnv0/TravelBot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

const catalogFixture = `{
  "cities": [
    {
      "id": "test",
      "name": "Тестбург",
      "hotels": [
        {
          "id": "h1",
          "name": "Гранд Тест",
          "address": "Тестовая улица, 1",
          "stars": 3,
          "rating": 4.0,
          "price_per_night": 4000,
          "free_cancellation": true,
          "room_types": [
            { "type": "Стандарт", "price": 4000, "capacity": 2 }
          ]
        }
      ]
    }
  ],
  "price_bands": [
    { "id": "budget", "name": "До 5 000 ₽", "min": 0, "max": 5000 }
  ]
}`

const knowledgeFixture = `{
  "entries": [
    { "category": "greeting", "patterns": ["привет"], "response": "" },
    { "category": "payment", "patterns": ["способы оплаты", "оплата"], "response": "payment answer" },
    { "category": "support", "patterns": ["поддержка"], "response": "support answer" }
  ],
  "synonyms": [
    { "term": "оплата", "variants": ["оплатить"] }
  ]
}`

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

func newTestHandler(t *testing.T) (*Handler, *repository.SessionStore) {
	t.Helper()
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "hotels.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(catalogFixture), 0o644))
	catalog, err := repository.NewCatalogRepo(catalogPath)
	require.NoError(t, err)

	knowledgePath := filepath.Join(dir, "knowledge.json")
	require.NoError(t, os.WriteFile(knowledgePath, []byte(knowledgeFixture), 0o644))
	knowledge, err := repository.NewKnowledgeRepo(knowledgePath)
	require.NoError(t, err)

	log := newTestLogger(t)
	sessions := repository.NewSessionStore()
	intents := service.NewIntentService(knowledge)
	booking := service.NewBookingService(catalog, sessions, nil, log, 30*time.Minute)

	return NewHandler(intents, booking, sessions, log), sessions
}

func TestHandler_Command(t *testing.T) {
	t.Run("start greets and resets section", func(t *testing.T) {
		h, sessions := newTestHandler(t)
		sessions.SetSection(1, sectionPayment)

		reply := h.Command(context.Background(), "start", 1, "Анна")

		require.NotNil(t, reply)
		assert.Contains(t, reply.Text, "Анна")
		assert.Equal(t, domain.KeyboardMain, reply.Keyboard.Kind)
		assert.Empty(t, sessions.Section(1))
	})

	t.Run("help", func(t *testing.T) {
		h, _ := newTestHandler(t)

		reply := h.Command(context.Background(), "help", 1, "")

		require.NotNil(t, reply)
		assert.Contains(t, reply.Text, "Справка по боту")
	})

	t.Run("search starts booking dialog", func(t *testing.T) {
		h, sessions := newTestHandler(t)

		reply := h.Command(context.Background(), "search", 1, "")

		require.NotNil(t, reply)
		assert.Equal(t, domain.KeyboardCities, reply.Keyboard.Kind)
		assert.Equal(t, domain.StageSelectingCity, sessions.Get(1).Stage)
	})

	t.Run("bookings without archive", func(t *testing.T) {
		h, _ := newTestHandler(t)

		reply := h.Command(context.Background(), "bookings", 1, "")

		require.NotNil(t, reply)
		assert.Contains(t, reply.Text, "пока нет завершённых бронирований")
	})

	t.Run("unknown command is not consumed", func(t *testing.T) {
		h, _ := newTestHandler(t)
		assert.Nil(t, h.Command(context.Background(), "weather", 1, ""))
	})
}

func TestHandler_HandleText_Sections(t *testing.T) {
	h, sessions := newTestHandler(t)

	reply := h.HandleText(context.Background(), 1, "", btnSectionPayment)
	assert.Contains(t, reply.Text, "Оплата и возврат")
	assert.Equal(t, domain.KeyboardSection, reply.Keyboard.Kind)
	assert.Equal(t, sectionPayment, reply.Keyboard.Section)
	assert.Equal(t, sectionPayment, sessions.Section(1))

	// кнопка темы внутри раздела превращается в канонический запрос
	reply = h.HandleText(context.Background(), 1, "", "💳 Способы оплаты")
	assert.Equal(t, "payment answer", reply.Text)
	assert.Equal(t, domain.KeyboardSection, reply.Keyboard.Kind)
	assert.Equal(t, sectionPayment, reply.Keyboard.Section)

	reply = h.HandleText(context.Background(), 1, "", btnBackToMain)
	assert.Contains(t, reply.Text, "Главное меню")
	assert.Equal(t, domain.KeyboardMain, reply.Keyboard.Kind)
	assert.Empty(t, sessions.Section(1))
}

func TestHandler_HandleText_FreeText(t *testing.T) {
	h, _ := newTestHandler(t)

	reply := h.HandleText(context.Background(), 1, "", "как оплатить?")
	assert.Equal(t, "payment answer", reply.Text)
	assert.Equal(t, domain.KeyboardMain, reply.Keyboard.Kind)

	reply = h.HandleText(context.Background(), 1, "", "расскажи анекдот")
	assert.Contains(t, reply.Text, "Не нашёл информацию")
}

func TestHandler_HandleText_SearchButton(t *testing.T) {
	h, sessions := newTestHandler(t)

	reply := h.HandleText(context.Background(), 1, "", btnSearchHotel)

	assert.Equal(t, domain.KeyboardCities, reply.Keyboard.Kind)
	assert.Equal(t, domain.StageSelectingCity, sessions.Get(1).Stage)
}

func TestHandler_HandleText_ActiveBookingConsumesFirst(t *testing.T) {
	h, sessions := newTestHandler(t)
	h.HandleText(context.Background(), 1, "", btnSearchHotel)

	reply := h.HandleText(context.Background(), 1, "", "Тестбург")

	assert.Contains(t, reply.Text, "Город: *Тестбург*")
	assert.Equal(t, domain.StageSelectingPriceBand, sessions.Get(1).Stage)
}

func TestHandler_HandleText_UnconsumedDuringBookingGoesToKnowledgeBase(t *testing.T) {
	h, sessions := newTestHandler(t)
	h.HandleText(context.Background(), 1, "", btnSearchHotel)

	// вопрос посреди диалога: отвечает база знаний, шаг не меняется
	reply := h.HandleText(context.Background(), 1, "", "какие способы оплаты?")

	assert.Equal(t, "payment answer", reply.Text)
	assert.Equal(t, domain.KeyboardCities, reply.Keyboard.Kind)
	assert.Equal(t, domain.StageSelectingCity, sessions.Get(1).Stage)
}

func TestHandler_HandleText_CancelCommandDuringBooking(t *testing.T) {
	h, sessions := newTestHandler(t)
	h.HandleText(context.Background(), 1, "", btnSearchHotel)

	reply := h.HandleText(context.Background(), 1, "", "/cancel")

	assert.Contains(t, reply.Text, "Бронирование отменено")
	assert.Equal(t, domain.StageIdle, sessions.Get(1).Stage)
}

type failingFlow struct {
	BookingFlow
}

func (f *failingFlow) History(_ context.Context, _ int64) ([]*domain.BookingRecord, error) {
	return nil, errors.New("archive down")
}

func TestHandler_Bookings_HistoryError(t *testing.T) {
	h, _ := newTestHandler(t)
	h.booking = &failingFlow{BookingFlow: h.booking}

	reply := h.Command(context.Background(), "bookings", 1, "")

	require.NotNil(t, reply)
	assert.Contains(t, reply.Text, "Не удалось загрузить историю")
}
