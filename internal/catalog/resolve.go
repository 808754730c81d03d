package catalog

import (
	"errors"

	"github.com/pribylovaa/vocal-site/internal/models"
)

// ErrNotFound - по (type, id) ничего не нашлось.
var ErrNotFound = errors.New("content not found")

// Resolve ищет запись по id и токену пути в объединении коллекций
// (в порядке передачи: сначала news, затем media).
//
// Токен сравнивается с Type или Category. Совпадение по Type приоритетнее:
// сначала весь проход по подтипу, и только потом по категории, чтобы
// категория с именем чужого подтипа не перехватывала запись.
func Resolve(token string, id int, collections ...[]models.ContentRecord) (models.ContentRecord, error) {
	for _, c := range collections {
		for _, r := range c {
			if r.ID == id && string(r.Type) == token {
				return r, nil
			}
		}
	}

	for _, c := range collections {
		for _, r := range c {
			if r.ID == id && r.Category != "" && r.Category == token {
				return r, nil
			}
		}
	}

	return models.ContentRecord{}, ErrNotFound
}

// Related возвращает до limit записей с той же категорией и другим id,
// в порядке коллекции. Запись без категории связанных не имеет.
func Related(records []models.ContentRecord, of models.ContentRecord, limit int) []models.ContentRecord {
	out := make([]models.ContentRecord, 0, limit)
	if of.Category == "" || limit <= 0 {
		return out
	}

	for _, r := range records {
		if len(out) == limit {
			break
		}

		if r.Category == of.Category && r.ID != of.ID {
			out = append(out, r)
		}
	}

	return out
}
