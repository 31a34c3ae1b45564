package service

import (
	"regexp"
	"strings"

	"github.com/stpnv0/TravelBot/internal/domain"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// normalizeText приводит запрос к нижнему регистру, заменяет всё, кроме
// букв, цифр и подчёркивания, на пробел и схлопывает пробельные серии.
// Чистая и идемпотентная функция: пустой вход даёт пустой выход.
func normalizeText(text string) string {
	text = strings.ToLower(text)
	text = nonWordRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// expandSynonyms дописывает к нормализованному запросу каноничные термины,
// чей вариант встретился в запросе как подстрока. Каждый термин добавляется
// не более одного раза, порядок — порядок групп в таблице. Исходный текст
// не изменяется.
//
// Подстрочное сравнение сознательно допускает ложные срабатывания на
// фрагментах слов — это известное ограничение точности, сохранённое ради
// совместимости поведения.
func expandSynonyms(text string, groups []domain.SynonymGroup) string {
	var sb strings.Builder
	sb.WriteString(text)

	for _, g := range groups {
		for _, variant := range g.Variants {
			if strings.Contains(text, variant) {
				sb.WriteString(" ")
				sb.WriteString(g.Term)
				break
			}
		}
	}

	return sb.String()
}
