// catalog - чистые функции конвейера листинга: фильтр -> фасеты -> пагинатор,
// а также разрешение детальной страницы по /content/{type}/{id}.
//
// Все функции синхронные, не мутируют входные срезы и не держат состояния:
// каждый запрос пересчитывает результат заново.
package catalog

import (
	"github.com/pribylovaa/vocal-site/internal/models"
)

// Apply возвращает подпоследовательность records, удовлетворяющую фильтрам f.
//
// Правила:
//   - f.Type == "all" (или пусто) либо совпадение r.Type;
//   - f.Topic == "all" (или пусто) либо совпадение r.Category;
//   - пустой f.Query пропускает всё, иначе регистронезависимая подстрока
//     в Title, Description, Excerpt или Location.
//
// Порядок сохраняется, источник не меняется. f.Page игнорируется.
func Apply(records []models.ContentRecord, f models.FilterState) []models.ContentRecord {
	m := newMatcher(f)

	out := make([]models.ContentRecord, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}

	return out
}

// ByType - фильтр только по подтипу (вход для фасета тем).
func ByType(records []models.ContentRecord, t string) []models.ContentRecord {
	return Apply(records, models.FilterState{Type: t, Topic: models.All})
}

// Matches сообщает, проходит ли одна запись фильтры f.
func Matches(r models.ContentRecord, f models.FilterState) bool {
	return newMatcher(f).match(r)
}

type matcher struct {
	typ   string
	topic string
	query *foldedQuery
}

func newMatcher(f models.FilterState) matcher {
	m := matcher{typ: f.Type, topic: f.Topic}
	if f.Query != "" {
		m.query = newFoldedQuery(f.Query)
	}

	return m
}

func (m matcher) match(r models.ContentRecord) bool {
	if !isAll(m.typ) && string(r.Type) != m.typ {
		return false
	}

	if !isAll(m.topic) && r.Category != m.topic {
		return false
	}

	if m.query != nil && !m.query.matchAny(r.Title, r.Description, r.Excerpt, r.Location) {
		return false
	}

	return true
}

func isAll(v string) bool {
	return v == "" || v == models.All
}
