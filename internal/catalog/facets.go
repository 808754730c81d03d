package catalog

import "github.com/pribylovaa/vocal-site/internal/models"

// Topics возвращает различные непустые категории в порядке первого появления.
// Записи без категории в фасет не попадают, но фильтр "all" пропускает их.
func Topics(records []models.ContentRecord) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0)

	for _, r := range records {
		if r.Category == "" {
			continue
		}

		if _, ok := seen[r.Category]; ok {
			continue
		}

		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}

	return out
}

// Types возвращает различные подтипы в порядке первого появления.
func Types(records []models.ContentRecord) []models.ContentType {
	seen := make(map[models.ContentType]struct{}, 8)
	out := make([]models.ContentType, 0, 8)

	for _, r := range records {
		if _, ok := seen[r.Type]; ok {
			continue
		}

		seen[r.Type] = struct{}{}
		out = append(out, r.Type)
	}

	return out
}

// FacetsFor собирает фасеты для листинга: подтипы по всей коллекции,
// темы по коллекции, отфильтрованной только по подтипу selectedType.
func FacetsFor(records []models.ContentRecord, selectedType string) models.Facets {
	return models.Facets{
		Types:  Types(records),
		Topics: Topics(ByType(records, selectedType)),
	}
}
