package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/stpnv0/TravelBot/internal/domain"
)

// KnowledgeRepository держит базу знаний и таблицу синонимов в памяти.
// Датасет загружается один раз на старте и дальше только читается,
// поэтому безопасен для конкурентного доступа без блокировок.
type KnowledgeRepository struct {
	entries  []domain.KnowledgeEntry
	synonyms []domain.SynonymGroup
}

type knowledgeFile struct {
	Entries  []domain.KnowledgeEntry `json:"entries"`
	Synonyms []domain.SynonymGroup   `json:"synonyms"`
}

func NewKnowledgeRepo(path string) (*KnowledgeRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var file knowledgeFile
	if err = json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}

	if len(file.Entries) == 0 {
		return nil, fmt.Errorf("%w: knowledge base has no entries", domain.ErrValidation)
	}
	for i, e := range file.Entries {
		if len(e.Patterns) == 0 {
			return nil, fmt.Errorf("%w: entry %d (%s) has no patterns", domain.ErrValidation, i, e.Category)
		}
	}

	return &KnowledgeRepository{
		entries:  file.Entries,
		synonyms: file.Synonyms,
	}, nil
}

// Entries возвращает записи в порядке загрузки. Порядок значим:
// при равном счёте совпадений выигрывает более ранняя запись.
func (r *KnowledgeRepository) Entries() []domain.KnowledgeEntry {
	return r.entries
}

func (r *KnowledgeRepository) Synonyms() []domain.SynonymGroup {
	return r.synonyms
}
