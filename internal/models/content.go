// models содержит доменные сущности сайта.
// Эти типы используются слоями каталога, хранилища, сервиса и транспорта.
package models

import (
	"fmt"
	"time"
)

// ContentType - подтип материала (дискриминатор записи).
type ContentType string

const (
	TypeArticle        ContentType = "Article"
	TypePressStatement ContentType = "Press Statement"
	TypeReport         ContentType = "Report"
	TypePublication    ContentType = "Publication"
	TypePhoto          ContentType = "Photo"
	TypeYouTube        ContentType = "YouTube"
	TypeVideo          ContentType = "Video"
	TypePodcast        ContentType = "Podcast"
)

// Capability - способ показа детальной страницы материала.
type Capability int

const (
	// CapabilityUnknown - тип не поддерживается (не должен доживать до рантайма).
	CapabilityUnknown Capability = iota
	// Readable - длинный текст (статьи, отчёты, заявления, фото).
	Readable
	// Playable - воспроизведение (видео, подкасты).
	Playable
)

func (c Capability) String() string {
	switch c {
	case Readable:
		return "readable"
	case Playable:
		return "playable"
	default:
		return "unknown"
	}
}

// Capability возвращает способ показа для подтипа.
// Switch исчерпывающий: новый подтип без ветки вернёт CapabilityUnknown,
// и загрузка датасета с ним упадёт на Validate.
func (t ContentType) Capability() Capability {
	switch t {
	case TypeArticle, TypePressStatement, TypeReport, TypePublication, TypePhoto:
		return Readable
	case TypeVideo, TypeYouTube, TypePodcast:
		return Playable
	default:
		return CapabilityUnknown
	}
}

// Known сообщает, поддерживается ли подтип.
func (t ContentType) Known() bool {
	return t.Capability() != CapabilityUnknown
}

// Collection - исходная коллекция записи. id уникален только внутри коллекции.
type Collection string

const (
	CollectionNews  Collection = "news"
	CollectionMedia Collection = "media"
)

// ContentRecord - доменная сущность публикуемого материала.
//
// Особенности:
//   - ID уникален только внутри своей коллекции (news/media);
//   - Excerpt/Description взаимозаменяемы, хотя бы одно непустое;
//   - Date - календарная дата (UTC, полночь);
//   - Category/Duration/Content/EmbedURL/Location - опциональны.
type ContentRecord struct {
	// ID - числовой идентификатор внутри коллекции.
	ID int
	// Collection - коллекция, из которой пришла запись.
	Collection Collection
	// Title - заголовок.
	Title string
	// Excerpt - тизер (новости).
	Excerpt string
	// Description - описание (медиа).
	Description string
	// Date - дата публикации, по ней сортируем.
	Date time.Time
	// Type - подтип материала.
	Type ContentType
	// Category - тема; может быть пустой.
	Category string
	// ImageURL - ссылка на обложку.
	ImageURL string
	// Duration - длительность для медиа ("42 min").
	Duration string
	// Content - длинный текст в HTML.
	Content string
	// EmbedURL - ссылка для встраиваемого плеера.
	EmbedURL string
	// Location - место съёмки (фото).
	Location string
}

// Summary возвращает первое непустое из Excerpt, Description.
func (r ContentRecord) Summary() string {
	if r.Excerpt != "" {
		return r.Excerpt
	}

	return r.Description
}

// Validate проверяет инварианты одной записи.
func (r ContentRecord) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("record %q: id must be > 0", r.Title)
	}

	if r.Title == "" {
		return fmt.Errorf("record %d: empty title", r.ID)
	}

	if r.Summary() == "" {
		return fmt.Errorf("record %d: excerpt or description is required", r.ID)
	}

	if r.Date.IsZero() {
		return fmt.Errorf("record %d: empty date", r.ID)
	}

	if !r.Type.Known() {
		return fmt.Errorf("record %d: unsupported type %q", r.ID, r.Type)
	}

	return nil
}
