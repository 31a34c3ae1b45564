package service

import (
	"testing"
	"time"

	"github.com/stpnv0/TravelBot/internal/domain"
	"github.com/stretchr/testify/assert"
)

type fakeKnowledge struct {
	entries  []domain.KnowledgeEntry
	synonyms []domain.SynonymGroup
}

func (f *fakeKnowledge) Entries() []domain.KnowledgeEntry { return f.entries }
func (f *fakeKnowledge) Synonyms() []domain.SynonymGroup  { return f.synonyms }

func testKnowledge() *fakeKnowledge {
	return &fakeKnowledge{
		entries: []domain.KnowledgeEntry{
			{
				Category: domain.CategoryGreeting,
				Patterns: []string{"привет", "здравствуй"},
				Response: "",
			},
			{
				Category: "booking_howto",
				Patterns: []string{"как забронировать отель", "забронировать отель", "бронирование"},
				Response: "booking answer",
			},
			{
				Category: "cancellation",
				Patterns: []string{"отмена бронирования", "отмена"},
				Response: "cancellation answer",
			},
			{
				Category: "payment",
				Patterns: []string{"оплата", "способы оплаты"},
				Response: "payment answer",
			},
		},
		synonyms: []domain.SynonymGroup{
			{Term: "бронирование", Variants: []string{"бронь", "резерв"}},
			{Term: "оплата", Variants: []string{"оплатить", "платить"}},
		},
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "ПРИВЕТ", "привет"},
		{"punctuation replaced", "как забронировать отель?!", "как забронировать отель"},
		{"whitespace collapsed", "  как \t оплатить \n ", "как оплатить"},
		{"underscore and digits kept", "сплит_24 на 2 части", "сплит_24 на 2 части"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeText(tt.in))
		})
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	inputs := []string{"Как Забронировать ОТЕЛЬ?!", "  спасибо,  бот  ", "оплата"}
	for _, in := range inputs {
		once := normalizeText(in)
		assert.Equal(t, once, normalizeText(once))
	}
}

func TestExpandSynonyms(t *testing.T) {
	groups := []domain.SynonymGroup{
		{Term: "бронирование", Variants: []string{"бронь", "резерв"}},
		{Term: "оплата", Variants: []string{"оплатить", "платить"}},
	}

	t.Run("appends canonical term once", func(t *testing.T) {
		got := expandSynonyms("хочу бронь и резерв", groups)
		assert.Equal(t, "хочу бронь и резерв бронирование", got)
	})

	t.Run("multiple groups in table order", func(t *testing.T) {
		got := expandSynonyms("оплатить бронь", groups)
		assert.Equal(t, "оплатить бронь бронирование оплата", got)
	})

	t.Run("no variants matched", func(t *testing.T) {
		got := expandSynonyms("просто вопрос", groups)
		assert.Equal(t, "просто вопрос", got)
	})

	t.Run("empty groups", func(t *testing.T) {
		assert.Equal(t, "текст", expandSynonyms("текст", nil))
	})
}

func TestIntentService_Resolve_ExactMatch(t *testing.T) {
	svc := NewIntentService(testKnowledge())

	got := svc.Resolve("Как забронировать отель?", "")

	assert.Equal(t, "booking answer", got)
}

func TestIntentService_Resolve_SynonymMatch(t *testing.T) {
	svc := NewIntentService(testKnowledge())

	// "бронь" раскрывается в "бронирование" и зацепляет запись о бронировании
	got := svc.Resolve("у меня вопрос про бронь", "")

	assert.Equal(t, "booking answer", got)
}

func TestIntentService_Resolve_ExactBeatsSynonym(t *testing.T) {
	svc := NewIntentService(testKnowledge())

	// "резерв" раскрывается в "бронирование" и даёт очки записи о
	// бронировании, но точные шаблоны отмены с бонусом перевешивают.
	got := svc.Resolve("отмена бронирования, хочу резерв", "")

	assert.Equal(t, "cancellation answer", got)
}

func TestIntentService_Resolve_TieGoesToEarlierEntry(t *testing.T) {
	repo := &fakeKnowledge{
		entries: []domain.KnowledgeEntry{
			{Category: "first", Patterns: []string{"тариф"}, Response: "first answer"},
			{Category: "second", Patterns: []string{"тариф"}, Response: "second answer"},
		},
	}
	svc := NewIntentService(repo)

	got := svc.Resolve("какой тариф", "")

	assert.Equal(t, "first answer", got)
}

func TestIntentService_Resolve_Fallback(t *testing.T) {
	svc := NewIntentService(testKnowledge())

	got := svc.Resolve("расскажи анекдот", "")

	assert.Equal(t, fallbackResponse, got)
}

func TestIntentService_Resolve_EmptyQueryFallsBack(t *testing.T) {
	svc := NewIntentService(testKnowledge())

	assert.Equal(t, fallbackResponse, svc.Resolve("", ""))
	assert.Equal(t, fallbackResponse, svc.Resolve("   ?!  ", ""))
}

func TestIntentService_Resolve_GreetingUsesTimeOfDay(t *testing.T) {
	svc := NewIntentService(testKnowledge())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}

	got := svc.Resolve("привет", "Анна")

	assert.Contains(t, got, "Доброе утро, Анна")
}

func TestIntentService_Greeting(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want string
	}{
		{"morning lower bound", 5, "Доброе утро"},
		{"morning upper bound", 11, "Доброе утро"},
		{"day lower bound", 12, "Добрый день"},
		{"day upper bound", 17, "Добрый день"},
		{"evening", 18, "Добрый вечер"},
		{"night", 3, "Добрый вечер"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewIntentService(testKnowledge())
			svc.now = func() time.Time {
				return time.Date(2026, 3, 10, tt.hour, 0, 0, 0, time.UTC)
			}

			assert.Contains(t, svc.Greeting(""), tt.want)
		})
	}
}

func TestIntentService_Greeting_WithoutName(t *testing.T) {
	svc := NewIntentService(testKnowledge())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	}

	got := svc.Greeting("")

	assert.Contains(t, got, "Добрый день!")
	assert.NotContains(t, got, "Добрый день,")
}
