package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stpnv0/TravelBot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKnowledge(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewKnowledgeRepo(t *testing.T) {
	t.Run("loads dataset preserving order", func(t *testing.T) {
		repo, err := NewKnowledgeRepo(writeKnowledge(t, `{
			"entries": [
				{ "category": "first", "patterns": ["раз"], "response": "1" },
				{ "category": "second", "patterns": ["два"], "response": "2" }
			],
			"synonyms": [
				{ "term": "бронирование", "variants": ["бронь"] }
			]
		}`))

		require.NoError(t, err)
		require.Len(t, repo.Entries(), 2)
		assert.Equal(t, "first", repo.Entries()[0].Category)
		assert.Equal(t, "second", repo.Entries()[1].Category)
		require.Len(t, repo.Synonyms(), 1)
		assert.Equal(t, "бронирование", repo.Synonyms()[0].Term)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewKnowledgeRepo(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := NewKnowledgeRepo(writeKnowledge(t, "не json"))
		assert.Error(t, err)
	})

	t.Run("no entries", func(t *testing.T) {
		_, err := NewKnowledgeRepo(writeKnowledge(t, `{"entries": [], "synonyms": []}`))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("entry without patterns", func(t *testing.T) {
		_, err := NewKnowledgeRepo(writeKnowledge(t, `{
			"entries": [{ "category": "broken", "patterns": [], "response": "x" }]
		}`))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("synonyms are optional", func(t *testing.T) {
		repo, err := NewKnowledgeRepo(writeKnowledge(t, `{
			"entries": [{ "category": "ok", "patterns": ["вопрос"], "response": "ответ" }]
		}`))
		require.NoError(t, err)
		assert.Empty(t, repo.Synonyms())
	})
}
