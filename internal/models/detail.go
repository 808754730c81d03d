package models

// Heading - раздел длинного текста (для оглавления).
type Heading struct {
	Anchor string
	Text   string
}

// ReadingView - подготовленный к чтению длинный текст.
type ReadingView struct {
	// HTML - очищенный от опасной разметки контент.
	HTML string
	// Outline - заголовки h2 в порядке следования.
	Outline []Heading
	// Words - число слов в тексте.
	Words int
	// ReadingMinutes - оценка времени чтения, минимум 1.
	ReadingMinutes int
}

// PlaybackView - данные медиаплеера.
type PlaybackView struct {
	EmbedURL   string
	Duration   string
	ShareTitle string
}

// Detail - результат разрешения /content/{type}/{id}.
//
// Ровно одно из Reading/Playback заполнено в зависимости от Capability.
type Detail struct {
	Record        ContentRecord
	Capability    Capability
	CategoryTitle string
	Reading       *ReadingView
	Playback      *PlaybackView
	Related       []ContentRecord
}

// SharePayload - данные для платформенного share/clipboard на клиенте.
type SharePayload struct {
	Title string
	Text  string
	URL   string
}

// Download - результат симулированной выгрузки публикации.
type Download struct {
	FileName string
	URL      string
	Message  string
}
