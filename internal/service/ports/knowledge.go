package ports

import "github.com/stpnv0/TravelBot/internal/domain"

type KnowledgeRepo interface {
	Entries() []domain.KnowledgeEntry
	Synonyms() []domain.SynonymGroup
}
