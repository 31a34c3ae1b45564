package domain

// CategoryGreeting помечает запись, на которую бот отвечает динамическим
// приветствием вместо сохранённого текста.
const CategoryGreeting = "greeting"

type KnowledgeEntry struct {
	Category string   `json:"category"`
	Patterns []string `json:"patterns"`
	Response string   `json:"response"`
}

// SynonymGroup связывает каноничный термин с вариантами его написания.
// Порядок групп в датасете значим: термины дописываются к запросу
// в порядке следования групп.
type SynonymGroup struct {
	Term     string   `json:"term"`
	Variants []string `json:"variants"`
}
