package mongo

import (
	"time"

	"github.com/pribylovaa/vocal-site/internal/models"
)

type contentDoc struct {
	Collection  string    `bson:"collection"`
	ID          int       `bson:"id"`
	Type        string    `bson:"type"`
	Title       string    `bson:"title"`
	Excerpt     string    `bson:"excerpt,omitempty"`
	Description string    `bson:"description,omitempty"`
	Date        time.Time `bson:"date"`
	Category    string    `bson:"category,omitempty"`
	ImageURL    string    `bson:"image_url,omitempty"`
	Duration    string    `bson:"duration,omitempty"`
	Content     string    `bson:"content,omitempty"`
	EmbedURL    string    `bson:"embed_url,omitempty"`
	Location    string    `bson:"location,omitempty"`
}

type pageDoc struct {
	Slug        string `bson:"slug"`
	Title       string `bson:"title"`
	Description string `bson:"description,omitempty"`
}

type socialDoc struct {
	Position int    `bson:"position"`
	Platform string `bson:"platform"`
	ID       int    `bson:"id"`
	Handle   string `bson:"handle,omitempty"`
	Date     string `bson:"date,omitempty"`
	Content  string `bson:"content"`
	ImageURL string `bson:"image_url,omitempty"`
	Likes    string `bson:"likes,omitempty"`
	Comments string `bson:"comments,omitempty"`
	Shares   string `bson:"shares,omitempty"`
}

func toContentDoc(c models.Collection, r models.ContentRecord) contentDoc {
	return contentDoc{
		Collection:  string(c),
		ID:          r.ID,
		Type:        string(r.Type),
		Title:       r.Title,
		Excerpt:     r.Excerpt,
		Description: r.Description,
		Date:        r.Date.UTC(),
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Duration:    r.Duration,
		Content:     r.Content,
		EmbedURL:    r.EmbedURL,
		Location:    r.Location,
	}
}

func (d contentDoc) record() models.ContentRecord {
	return models.ContentRecord{
		ID:          d.ID,
		Collection:  models.Collection(d.Collection),
		Title:       d.Title,
		Excerpt:     d.Excerpt,
		Description: d.Description,
		Date:        d.Date.UTC(),
		Type:        models.ContentType(d.Type),
		Category:    d.Category,
		ImageURL:    d.ImageURL,
		Duration:    d.Duration,
		Content:     d.Content,
		EmbedURL:    d.EmbedURL,
		Location:    d.Location,
	}
}

func toSocialDoc(pos int, p models.SocialPost) socialDoc {
	return socialDoc{
		Position: pos,
		Platform: p.Platform,
		ID:       p.ID,
		Handle:   p.Handle,
		Date:     p.Date,
		Content:  p.Content,
		ImageURL: p.ImageURL,
		Likes:    p.Likes,
		Comments: p.Comments,
		Shares:   p.Shares,
	}
}

func (d socialDoc) post() models.SocialPost {
	return models.SocialPost{
		ID:       d.ID,
		Platform: d.Platform,
		Handle:   d.Handle,
		Date:     d.Date,
		Content:  d.Content,
		ImageURL: d.ImageURL,
		Likes:    d.Likes,
		Comments: d.Comments,
		Shares:   d.Shares,
	}
}
