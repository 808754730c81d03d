package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// foldedQuery - строка поиска, приведённая к case-fold форме.
// Caser не потокобезопасен, поэтому живёт только в рамках одного прохода фильтра.
type foldedQuery struct {
	caser  cases.Caser
	folded string
}

func newFoldedQuery(q string) *foldedQuery {
	c := cases.Fold()
	return &foldedQuery{caser: c, folded: c.String(q)}
}

// matchAny - true, если запрос входит подстрокой хотя бы в одно непустое поле.
func (q *foldedQuery) matchAny(fields ...string) bool {
	for _, f := range fields {
		if f == "" {
			continue
		}

		if strings.Contains(q.caser.String(f), q.folded) {
			return true
		}
	}

	return false
}

// ContainsFold - регистронезависимая проверка подстроки (Unicode case folding).
// Пустой needle всегда совпадает.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}

	return newFoldedQuery(needle).matchAny(haystack)
}
