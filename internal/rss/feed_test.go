package rss

import (
	"bytes"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/vocal-site/internal/models"
)

func TestWrite_ParsesBack(t *testing.T) {
	t.Parallel()

	records := []models.ContentRecord{
		{
			ID:       3,
			Title:    "Annual Impact Report 2025",
			Excerpt:  "Highlights & challenges",
			Date:     time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
			Type:     models.TypeReport,
			Category: "Reports",
			Content:  "<h2>Executive Summary</h2><p>text</p>",
			ImageURL: "https://images.example.org/r.jpg",
		},
		{
			ID:          2,
			Title:       "Statement on Civic Space",
			Description: "Official position",
			Date:        time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC),
			Type:        models.TypePressStatement,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Channel{
		Title:       "VOCAL Africa",
		BaseURL:     "https://vocalafrica.org",
		Description: "News & Publications",
	}, records))

	feed, err := gofeed.NewParser().ParseString(buf.String())
	require.NoError(t, err)

	require.Equal(t, "rss", feed.FeedType)
	require.Equal(t, "VOCAL Africa", feed.Title)
	require.Len(t, feed.Items, 2)

	first := feed.Items[0]
	require.Equal(t, "Annual Impact Report 2025", first.Title)
	require.Equal(t, "https://vocalafrica.org/content/Report/3", first.Link)
	require.Equal(t, "Highlights & challenges", first.Description)
	require.Equal(t, []string{"Reports"}, first.Categories)
	require.Contains(t, first.Content, "<h2>Executive Summary</h2>")
	require.NotNil(t, first.PublishedParsed)
	require.True(t, first.PublishedParsed.Equal(records[0].Date))
	require.Len(t, first.Enclosures, 1)

	second := feed.Items[1]
	require.Equal(t, "https://vocalafrica.org/content/Press%20Statement/2", second.Link)
	require.Equal(t, "Official position", second.Description)
	require.Empty(t, second.Categories)
}

func TestWrite_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Channel{Title: "t", BaseURL: "http://localhost"}, nil))

	feed, err := gofeed.NewParser().ParseString(buf.String())
	require.NoError(t, err)
	require.Empty(t, feed.Items)
}
