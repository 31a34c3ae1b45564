package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/stpnv0/TravelBot/internal/domain"
	"github.com/stpnv0/TravelBot/internal/service/ports"
)

// exactMatchBonus начисляется, когда шаблон найден в запросе и без
// расширения синонимами.
const exactMatchBonus = 15

const fallbackResponse = `🤔 Не нашёл информацию по вашему вопросу.

*Попробуйте спросить:*
• Как забронировать отель?
• Какие способы оплаты?
• Как отменить бронирование?
• Что такое Яндекс Путешествия?

Или выберите тему из меню ниже 👇

📞 По другим вопросам обратитесь в *службу поддержки* Яндекс Путешествий.`

// IntentService подбирает ответ из базы знаний по свободному тексту
// или по фразе, сопоставленной кнопке.
type IntentService struct {
	repo ports.KnowledgeRepo
	now  func() time.Time
}

func NewIntentService(repo ports.KnowledgeRepo) *IntentService {
	return &IntentService{
		repo: repo,
		now:  time.Now,
	}
}

// Resolve возвращает текст ответа на запрос. Функция чистая: всегда
// отвечает строкой, ничего не сохраняет.
//
// Каждый найденный в расширенном запросе шаблон добавляет к счёту записи
// свою длину в рунах; совпадение без участия синонимов даёт ещё
// exactMatchBonus. Побеждает строго лучший счёт, при равенстве — более
// ранняя запись. Нулевой счёт означает fallback-ответ.
func (s *IntentService) Resolve(query, userName string) string {
	normalized := normalizeText(query)
	expanded := expandSynonyms(normalized, s.repo.Synonyms())

	entries := s.repo.Entries()

	var best *domain.KnowledgeEntry
	bestScore := 0

	for i := range entries {
		score := 0
		for _, pattern := range entries[i].Patterns {
			pattern = strings.ToLower(pattern)
			if !strings.Contains(expanded, pattern) {
				continue
			}
			score += utf8.RuneCountInString(pattern)
			if strings.Contains(normalized, pattern) {
				score += exactMatchBonus
			}
		}

		if score > bestScore {
			bestScore = score
			best = &entries[i]
		}
	}

	if best == nil {
		return fallbackResponse
	}

	if best.Category == domain.CategoryGreeting {
		return s.Greeting(userName)
	}

	return best.Response
}

// Greeting строит приветствие по времени суток, персонализированное
// именем пользователя, если оно известно.
func (s *IntentService) Greeting(userName string) string {
	hour := s.now().Hour()

	var timeGreeting string
	switch {
	case hour >= 5 && hour < 12:
		timeGreeting = "Доброе утро"
	case hour >= 12 && hour < 18:
		timeGreeting = "Добрый день"
	default:
		timeGreeting = "Добрый вечер"
	}

	namePart := ""
	if userName != "" {
		namePart = ", " + userName
	}

	return fmt.Sprintf(`👋 %s%s!

Я бот-помощник по *Яндекс Путешествиям*.

Помогу вам с:
🏨 Бронированием отелей
💳 Вопросами по оплате
ℹ️ Информацией о сервисе
📞 Технической поддержкой

*Выберите раздел* из меню ниже 👇`, timeGreeting, namePart)
}
