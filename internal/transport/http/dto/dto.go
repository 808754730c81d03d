// dto - JSON-представление ответов HTTP API.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout - формат календарной даты в ответах.
const DateLayout = "2006-01-02"

type Content struct {
	ID         int    `json:"id"`
	Collection string `json:"collection"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	// Summary - первое непустое из excerpt/description (текст карточки).
	Summary     string `json:"summary"`
	Excerpt     string `json:"excerpt,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"image_url"`
	Duration    string `json:"duration,omitempty"`
	EmbedURL    string `json:"embed_url,omitempty"`
	Location    string `json:"location,omitempty"`
	// Path - относительная ссылка на детальную страницу.
	Path string `json:"path"`
}

type Filter struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Query string `json:"q"`
	Page  int    `json:"page"`
}

type Facets struct {
	Types  []string `json:"types"`
	Topics []string `json:"topics"`
}

type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

type Listing struct {
	Listing     string `json:"listing"`
	Title       string `json:"title"`
	Badge       string `json:"badge"`
	Description string `json:"description,omitempty"`
	// ResultCount - сколько записей прошло фильтры ("Found N Results").
	ResultCount int        `json:"result_count"`
	Filter      Filter     `json:"filter"`
	Facets      Facets     `json:"facets"`
	Items       []Content  `json:"items"`
	Pagination  Pagination `json:"pagination"`
}

type Heading struct {
	Anchor string `json:"anchor"`
	Text   string `json:"text"`
}

type Reading struct {
	HTML           string    `json:"html"`
	Outline        []Heading `json:"outline"`
	Words          int       `json:"words"`
	ReadingMinutes int       `json:"reading_minutes"`
}

type Playback struct {
	EmbedURL   string `json:"embed_url"`
	Duration   string `json:"duration,omitempty"`
	ShareTitle string `json:"share_title"`
}

type Detail struct {
	Item          Content   `json:"item"`
	Capability    string    `json:"capability"`
	CategoryTitle string    `json:"category_title"`
	Reading       *Reading  `json:"reading,omitempty"`
	Playback      *Playback `json:"playback,omitempty"`
	Related       []Content `json:"related"`
}

type Share struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

type Download struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
	Message  string `json:"message"`
}

type Receipt struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Page struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type HomeTab struct {
	Key   string    `json:"key"`
	Items []Content `json:"items"`
}

type Home struct {
	News  []HomeTab `json:"news"`
	Media []HomeTab `json:"media"`
}

type SocialPost struct {
	ID       int    `json:"id"`
	Handle   string `json:"handle"`
	Date     string `json:"date"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
	Likes    string `json:"likes"`
	Comments string `json:"comments"`
	Shares   string `json:"shares"`
}

type SocialFeed struct {
	Platform string       `json:"platform"`
	Posts    []SocialPost `json:"posts"`
}

type Social struct {
	Feeds []SocialFeed `json:"feeds"`
}
