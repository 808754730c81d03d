package dto

import (
	"net/url"
	"strconv"

	"github.com/pribylovaa/vocal-site/internal/models"
)

// ContentPath - "/content/<type>/<id>" с экранированием подтипа ("Press%20Statement").
func ContentPath(r models.ContentRecord) string {
	return "/content/" + url.PathEscape(string(r.Type)) + "/" + strconv.Itoa(r.ID)
}

func ContentFrom(r models.ContentRecord) Content {
	return Content{
		ID:          r.ID,
		Collection:  string(r.Collection),
		Type:        string(r.Type),
		Title:       r.Title,
		Summary:     r.Summary(),
		Excerpt:     r.Excerpt,
		Description: r.Description,
		Date:        r.Date.UTC().Format(DateLayout),
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Duration:    r.Duration,
		EmbedURL:    r.EmbedURL,
		Location:    r.Location,
		Path:        ContentPath(r),
	}
}

func ContentsFrom(rs []models.ContentRecord) []Content {
	out := make([]Content, 0, len(rs))
	for _, r := range rs {
		out = append(out, ContentFrom(r))
	}

	return out
}

func ListingFrom(p *models.ListingPage) Listing {
	types := make([]string, 0, len(p.Facets.Types))
	for _, t := range p.Facets.Types {
		types = append(types, string(t))
	}

	topics := p.Facets.Topics
	if topics == nil {
		topics = []string{}
	}

	return Listing{
		Listing:     p.Listing,
		Title:       p.Title,
		Badge:       p.Badge,
		Description: p.Description,
		ResultCount: p.Pagination.TotalItems,
		Filter: Filter{
			Type:  p.Filter.Type,
			Topic: p.Filter.Topic,
			Query: p.Filter.Query,
			Page:  p.Filter.Page,
		},
		Facets:     Facets{Types: types, Topics: topics},
		Items:      ContentsFrom(p.Items),
		Pagination: PaginationFrom(p.Pagination),
	}
}

func PaginationFrom(p models.Pagination) Pagination {
	return Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
	}
}

func DetailFrom(d *models.Detail) Detail {
	out := Detail{
		Item:          ContentFrom(d.Record),
		Capability:    d.Capability.String(),
		CategoryTitle: d.CategoryTitle,
		Related:       ContentsFrom(d.Related),
	}

	if d.Reading != nil {
		outline := make([]Heading, 0, len(d.Reading.Outline))
		for _, h := range d.Reading.Outline {
			outline = append(outline, Heading{Anchor: h.Anchor, Text: h.Text})
		}

		out.Reading = &Reading{
			HTML:           d.Reading.HTML,
			Outline:        outline,
			Words:          d.Reading.Words,
			ReadingMinutes: d.Reading.ReadingMinutes,
		}
	}

	if d.Playback != nil {
		out.Playback = &Playback{
			EmbedURL:   d.Playback.EmbedURL,
			Duration:   d.Playback.Duration,
			ShareTitle: d.Playback.ShareTitle,
		}
	}

	return out
}

func ShareFrom(p *models.SharePayload) Share {
	return Share{Title: p.Title, Text: p.Text, URL: p.URL}
}

func DownloadFrom(d *models.Download) Download {
	return Download{FileName: d.FileName, URL: d.URL, Message: d.Message}
}

func ReceiptFrom(r *models.Receipt) Receipt {
	return Receipt{ID: r.ID, Kind: string(r.Kind), Status: r.Status, SubmittedAt: r.SubmittedAt}
}

func PageFrom(p *models.StaticPage) Page {
	return Page{Slug: p.Slug, Title: p.Title, Description: p.Description}
}

func HomeFrom(h *models.Home) Home {
	tabs := func(in []models.HomeTab) []HomeTab {
		out := make([]HomeTab, 0, len(in))
		for _, t := range in {
			out = append(out, HomeTab{Key: t.Key, Items: ContentsFrom(t.Items)})
		}
		return out
	}

	return Home{News: tabs(h.News), Media: tabs(h.Media)}
}

func SocialFrom(feeds []models.SocialFeed) Social {
	out := Social{Feeds: make([]SocialFeed, 0, len(feeds))}

	for _, f := range feeds {
		posts := make([]SocialPost, 0, len(f.Posts))
		for _, p := range f.Posts {
			posts = append(posts, SocialPost{
				ID:       p.ID,
				Handle:   p.Handle,
				Date:     p.Date,
				Content:  p.Content,
				ImageURL: p.ImageURL,
				Likes:    p.Likes,
				Comments: p.Comments,
				Shares:   p.Shares,
			})
		}

		out.Feeds = append(out.Feeds, SocialFeed{Platform: f.Platform, Posts: posts})
	}

	return out
}
