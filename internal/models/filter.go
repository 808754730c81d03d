package models

// All - значение фильтра "без ограничения" для подтипа и темы.
const All = "all"

// FilterState - состояние фильтров одного листинга.
//
// Особенности:
//   - Type/Topic по умолчанию All, Query пустой, Page 1;
//   - любая смена Type/Topic/Query сбрасывает Page в 1;
//   - Page только запрошенная позиция, приведение в диапазон делает пагинатор.
type FilterState struct {
	Type  string
	Topic string
	Query string
	Page  int
}

// NewFilterState возвращает состояние по умолчанию.
func NewFilterState() FilterState {
	return FilterState{Type: All, Topic: All, Page: 1}
}

// WithType меняет подтип и сбрасывает страницу.
func (f FilterState) WithType(t string) FilterState {
	if t == "" {
		t = All
	}

	if t != f.Type {
		f.Type = t
		f.Page = 1
	}

	return f
}

// WithTopic меняет тему и сбрасывает страницу.
func (f FilterState) WithTopic(topic string) FilterState {
	if topic == "" {
		topic = All
	}

	if topic != f.Topic {
		f.Topic = topic
		f.Page = 1
	}

	return f
}

// WithQuery меняет строку поиска и сбрасывает страницу.
func (f FilterState) WithQuery(q string) FilterState {
	if q != f.Query {
		f.Query = q
		f.Page = 1
	}

	return f
}

// WithPage меняет только страницу.
func (f FilterState) WithPage(page int) FilterState {
	f.Page = page
	return f
}

// Normalize подставляет значения по умолчанию в пустые поля.
func (f FilterState) Normalize() FilterState {
	if f.Type == "" {
		f.Type = All
	}

	if f.Topic == "" {
		f.Topic = All
	}

	if f.Page == 0 {
		f.Page = 1
	}

	return f
}
