// reading готовит длинный текст к показу: очистка HTML, оглавление по h2,
// подсчёт слов и времени чтения. Результаты кэшируются: датасет неизменяем.
package reading

import (
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pribylovaa/vocal-site/internal/models"
)

// WordsPerMinute - скорость чтения для оценки времени.
const WordsPerMinute = 200

// Renderer - потокобезопасный рендер ReadingView с LRU-кэшем.
type Renderer struct {
	policy *bluemonday.Policy
	cache  *lru.Cache[string, models.ReadingView]
}

// New создаёт рендер. cacheSize <= 0 - 256 записей.
func New(cacheSize int) (*Renderer, error) {
	if cacheSize <= 0 {
		cacheSize = 256
	}

	cache, err := lru.New[string, models.ReadingView](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}

	// UGC-политика: p, a, strong, списки, заголовки; ссылки nofollow, внешние в новой вкладке.
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{policy: p, cache: cache}, nil
}

// Render возвращает ReadingView записи.
// Без Content тело строится из Summary одним абзацем.
func (r *Renderer) Render(rec models.ContentRecord) (models.ReadingView, error) {
	key := fmt.Sprintf("%s/%d", rec.Collection, rec.ID)
	if v, ok := r.cache.Get(key); ok {
		return v, nil
	}

	raw := rec.Content
	if strings.TrimSpace(raw) == "" {
		raw = "<p>" + html.EscapeString(rec.Summary()) + "</p>"
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.policy.Sanitize(raw)))
	if err != nil {
		return models.ReadingView{}, fmt.Errorf("reading: parse html: %w", err)
	}

	outline := make([]models.Heading, 0)
	used := make(map[string]int)

	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}

		anchor := uniqueAnchor(used, Slugify(text))
		s.SetAttr("id", anchor)
		outline = append(outline, models.Heading{Anchor: anchor, Text: text})
	})

	body, err := doc.Find("body").Html()
	if err != nil {
		return models.ReadingView{}, fmt.Errorf("reading: render html: %w", err)
	}

	words := len(strings.Fields(doc.Text()))

	v := models.ReadingView{
		HTML:           strings.TrimSpace(body),
		Outline:        outline,
		Words:          words,
		ReadingMinutes: Minutes(words),
	}

	r.cache.Add(key, v)

	return v, nil
}

// Minutes - время чтения в минутах, округление вверх, минимум 1.
func Minutes(words int) int {
	return max(1, (words+WordsPerMinute-1)/WordsPerMinute)
}

// Slugify - якорь из заголовка: строчные буквы и цифры, остальное схлопывается в "-".
func Slugify(s string) string {
	var b strings.Builder
	dash := false

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}

		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "section"
	}

	return out
}

func uniqueAnchor(used map[string]int, base string) string {
	used[base]++
	if n := used[base]; n > 1 {
		return fmt.Sprintf("%s-%d", base, n)
	}

	return base
}
