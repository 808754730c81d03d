// rss - выдача новостей сайта лентой RSS 2.0.
package rss

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/pribylovaa/vocal-site/internal/models"
)

// contentNS - расширение content:encoded для полного HTML-тела.
const contentNS = "http://purl.org/rss/1.0/modules/content/"

// rss - корневая структура RSS-ленты.
type rss struct {
	XMLName   xml.Name `xml:"rss"`
	Version   string   `xml:"version,attr"`
	ContentNS string   `xml:"xmlns:content,attr"`
	Channel   channel  `xml:"channel"`
}

type channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	Language      string `xml:"language,omitempty"`
	LastBuildDate string `xml:"lastBuildDate,omitempty"`
	Items         []item `xml:"item"`
}

// item - одна запись ленты.
type item struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	GUID        guid       `xml:"guid"`
	PubDate     string     `xml:"pubDate"`
	Description string     `xml:"description"`
	Categories  []string   `xml:"category,omitempty"`
	ContentHTML *cdata     `xml:"content:encoded,omitempty"`
	Enclosure   *enclosure `xml:"enclosure,omitempty"`
}

type guid struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type cdata struct {
	Value string `xml:",cdata"`
}

type enclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int64  `xml:"length,attr"`
}

// Channel - параметры канала.
type Channel struct {
	Title       string
	BaseURL     string
	Description string
}

// Write пишет ленту по records (порядок сохраняется).
// Ссылки на материалы: <BaseURL>/content/<type>/<id>.
func Write(w io.Writer, ch Channel, records []models.ContentRecord) error {
	const op = "rss.Write"

	doc := rss{
		Version:   "2.0",
		ContentNS: contentNS,
		Channel: channel{
			Title:       ch.Title,
			Link:        ch.BaseURL,
			Description: ch.Description,
			Language:    "en",
			Items:       make([]item, 0, len(records)),
		},
	}

	if len(records) > 0 {
		doc.Channel.LastBuildDate = records[0].Date.UTC().Format(time.RFC1123Z)
	}

	for _, r := range records {
		it, err := toItem(ch.BaseURL, r)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		doc.Channel.Items = append(doc.Channel.Items, it)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return enc.Close()
}

func toItem(base string, r models.ContentRecord) (item, error) {
	link, err := url.JoinPath(base, "content", string(r.Type), strconv.Itoa(r.ID))
	if err != nil {
		return item{}, err
	}

	it := item{
		Title:       r.Title,
		Link:        link,
		GUID:        guid{IsPermaLink: "true", Value: link},
		PubDate:     r.Date.UTC().Format(time.RFC1123Z),
		Description: r.Summary(),
	}

	if r.Category != "" {
		it.Categories = []string{r.Category}
	}

	if r.Content != "" {
		it.ContentHTML = &cdata{Value: r.Content}
	}

	if r.ImageURL != "" {
		it.Enclosure = &enclosure{URL: r.ImageURL, Type: "image/jpeg"}
	}

	return it, nil
}
