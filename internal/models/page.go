package models

// Pagination - метаданные страницы листинга.
//
// TotalPages для пустого результата равен 1: пейджер не показывает "0 страниц".
type Pagination struct {
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Facets - опции фильтров, вычисленные из текущей коллекции.
type Facets struct {
	Types  []ContentType
	Topics []string
}

// ListingPage - результат одного прохода конвейера фильтр -> пагинатор.
type ListingPage struct {
	// Listing - ключ листинга ("newsroom", "articles", "gallery" ...).
	Listing string
	// Title - заголовок страницы.
	Title string
	// Badge - подпись категории над заголовком.
	Badge string
	// Description - подзаголовок страницы.
	Description string
	// Filter - применённое (нормализованное) состояние фильтров.
	Filter FilterState
	// Facets - опции фильтров.
	Facets Facets
	// Items - срез текущей страницы.
	Items []ContentRecord
	// Pagination - метаданные пагинации.
	Pagination Pagination
}
