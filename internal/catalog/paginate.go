package catalog

import "github.com/pribylovaa/vocal-site/internal/models"

// DefaultPageSize - размер страницы листингов.
const DefaultPageSize = 12

// Paginate режет records на страницы размером size и возвращает срез страницы page.
//
// Правила:
//   - size <= 0 -> DefaultPageSize;
//   - totalPages = ceil(len/size), для пустого входа отображается как 1;
//   - page приводится в [1, max(totalPages, 1)], выход за границы не ошибка;
//   - возвращаемый срез - копия, вход не меняется; для пустого входа пустой (не nil).
func Paginate(records []models.ContentRecord, page, size int) ([]models.ContentRecord, models.Pagination) {
	if size <= 0 {
		size = DefaultPageSize
	}

	n := len(records)
	totalPages := (n + size - 1) / size
	displayPages := max(totalPages, 1)

	page = min(max(page, 1), displayPages)

	start := min((page-1)*size, n)
	end := min(start+size, n)

	items := make([]models.ContentRecord, end-start)
	copy(items, records[start:end])

	return items, models.Pagination{
		Page:       page,
		PageSize:   size,
		TotalItems: n,
		TotalPages: displayPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// TotalPages - число страниц для n элементов (0 для пустого входа).
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}

	return (n + size - 1) / size
}
