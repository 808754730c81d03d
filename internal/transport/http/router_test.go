package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/vocal-site/internal/config"
	"github.com/pribylovaa/vocal-site/internal/service"
	"github.com/pribylovaa/vocal-site/internal/storage/memory"
	"github.com/pribylovaa/vocal-site/internal/storage/seed"
	"github.com/pribylovaa/vocal-site/internal/transport/http/dto"
	"github.com/pribylovaa/vocal-site/internal/transport/http/handlers"
	apierrors "github.com/pribylovaa/vocal-site/internal/transport/http/errors"
)

// newTestServer - сайт на встроенном датасете без искусственных задержек.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ds, err := seed.Embedded().Load(context.Background())
	require.NoError(t, err)

	st, err := memory.New(ds)
	require.NoError(t, err)

	cfg := config.Config{
		Catalog:     config.CatalogConfig{PageSize: 12},
		Submissions: config.SubmissionsConfig{ThrottleMax: 100, ThrottleWindow: time.Minute},
		Site:        config.SiteConfig{BaseURL: "https://vocalafrica.org", Title: "VOCAL Africa"},
	}

	svc, err := service.New(st, cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(NewRouter(svc, Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Site:   handlers.Site{Title: cfg.Site.Title, BaseURL: cfg.Site.BaseURL},
	}))
	t.Cleanup(srv.Close)

	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func post(t *testing.T, srv *httptest.Server, path, body string, out any) int {
	t.Helper()

	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func TestRouter_ContentDetail(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var d dto.Detail
	require.Equal(t, http.StatusOK, get(t, srv, "/api/content/Report/3", &d))
	require.Equal(t, "readable", d.Capability)
	require.Equal(t, "Report", d.CategoryTitle)
	require.NotNil(t, d.Reading)
	require.NotEmpty(t, d.Reading.Outline)
	require.Equal(t, "/content/Report/3", d.Item.Path)

	var nf apierrors.ErrorResponse
	require.Equal(t, http.StatusNotFound, get(t, srv, "/api/content/Report/999", &nf))
	require.Equal(t, "not_found", nf.Error.Code)
	require.Equal(t, "/", nf.Error.Home)
	require.NotEmpty(t, nf.Error.RequestID)

	var bad apierrors.ErrorResponse
	require.Equal(t, http.StatusBadRequest, get(t, srv, "/api/content/Report/abc", &bad))
	require.Equal(t, "invalid_argument", bad.Error.Code)

	var ps dto.Detail
	require.Equal(t, http.StatusOK, get(t, srv, "/api/content/Press%20Statement/2", &ps))
	require.Equal(t, "Press Statement", ps.Item.Type)
	require.Equal(t, "/content/Press%20Statement/2", ps.Item.Path)

	var media dto.Detail
	require.Equal(t, http.StatusOK, get(t, srv, "/api/content/YouTube/2", &media))
	require.Equal(t, "playable", media.Capability)
	require.NotNil(t, media.Playback)
	require.Nil(t, media.Reading)
}

func TestRouter_Newsroom(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var l dto.Listing
	require.Equal(t, http.StatusOK, get(t, srv, "/api/newsroom", &l))
	require.Equal(t, 25, l.ResultCount)
	require.Len(t, l.Items, 12)
	require.Equal(t, 3, l.Pagination.TotalPages)
	require.Equal(t, "all", l.Filter.Type)

	var clamped dto.Listing
	require.Equal(t, http.StatusOK, get(t, srv, "/api/newsroom?page=99", &clamped))
	require.Equal(t, 3, clamped.Pagination.Page)
	require.Len(t, clamped.Items, 1)

	var huge dto.Listing
	require.Equal(t, http.StatusOK, get(t, srv, "/api/newsroom?page=99999999999999999999", &huge))
	require.Equal(t, 3, huge.Pagination.Page)

	var hugeNeg dto.Listing
	require.Equal(t, http.StatusOK, get(t, srv, "/api/newsroom?page=-99999999999999999999", &hugeNeg))
	require.Equal(t, 1, hugeNeg.Pagination.Page)

	var articles dto.Listing
	require.Equal(t, http.StatusOK, get(t, srv, "/api/listings/articles?page=99999999999999999999", &articles))
	require.Equal(t, 2, articles.Pagination.Page)
	require.False(t, articles.Pagination.HasNext)

	var hr dto.Listing
	require.Equal(t, http.StatusOK, get(t, srv, "/api/newsroom?topic=Human+Rights", &hr))
	require.Equal(t, 9, hr.ResultCount)

	var q dto.Listing
	require.Equal(t, http.StatusOK, get(t, srv, "/api/newsroom?q=+REPORT+", &q))
	require.Equal(t, "REPORT", q.Filter.Query)
	require.NotZero(t, q.ResultCount)

	var none dto.Listing
	require.Equal(t, http.StatusOK, get(t, srv, "/api/newsroom?q=zzzz-nothing", &none))
	require.Empty(t, none.Items)
	require.NotNil(t, none.Items)
	require.Equal(t, 1, none.Pagination.TotalPages)

	var bad apierrors.ErrorResponse
	require.Equal(t, http.StatusBadRequest, get(t, srv, "/api/newsroom?page=two", &bad))
	require.Equal(t, "invalid_argument", bad.Error.Code)
}

func TestRouter_Listings(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var reports dto.Listing
	require.Equal(t, http.StatusOK, get(t, srv, "/api/listings/reports", &reports))
	require.Equal(t, "Impact Reports", reports.Title)
	require.Equal(t, "Reports", reports.Badge)
	require.Equal(t, 3, reports.ResultCount)

	var gallery dto.Listing
	require.Equal(t, http.StatusOK, get(t, srv, "/api/listings/gallery", &gallery))
	require.Equal(t, 6, gallery.ResultCount)

	require.Equal(t, http.StatusNotFound, get(t, srv, "/api/listings/events", nil))
}

func TestRouter_PagesHomeSocial(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var p dto.Page
	require.Equal(t, http.StatusOK, get(t, srv, "/api/pages/leadership", &p))
	require.Equal(t, "leadership", p.Slug)
	require.Equal(t, http.StatusNotFound, get(t, srv, "/api/pages/nope", nil))

	var home dto.Home
	require.Equal(t, http.StatusOK, get(t, srv, "/api/home", &home))
	require.Len(t, home.News, 5)
	require.Len(t, home.Media, 3)

	var social dto.Social
	require.Equal(t, http.StatusOK, get(t, srv, "/api/social?platform=instagram", &social))
	require.Len(t, social.Feeds, 1)
	require.Equal(t, "instagram", social.Feeds[0].Platform)
	require.Equal(t, http.StatusBadRequest, get(t, srv, "/api/social?platform=myspace", nil))
}

func TestRouter_ShareAndDownload(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var sh dto.Share
	require.Equal(t, http.StatusOK, get(t, srv, "/api/content/Report/3/share", &sh))
	require.Equal(t, "https://vocalafrica.org/content/Report/3", sh.URL)

	var dl dto.Download
	require.Equal(t, http.StatusOK, post(t, srv, "/api/content/Report/3/download", "", &dl))
	require.Equal(t, "Report has been downloaded successfully.", dl.Message)
	require.Equal(t, "#", dl.URL)
	require.True(t, strings.HasSuffix(dl.FileName, ".pdf"))

	require.Equal(t, http.StatusBadRequest, post(t, srv, "/api/content/YouTube/2/download", "", nil))
}

func TestRouter_Submissions(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var rc dto.Receipt
	require.Equal(t, http.StatusAccepted, post(t, srv, "/api/newsletter", `{"email":"jane@example.org"}`, &rc))
	require.Equal(t, "newsletter", rc.Kind)
	require.Equal(t, "accepted", rc.Status)

	var verr apierrors.ErrorResponse
	require.Equal(t, http.StatusBadRequest, post(t, srv, "/api/newsletter", `{"email":"nope"}`, &verr))
	require.Equal(t, []string{"email:email"}, verr.Error.Fields)

	require.Equal(t, http.StatusBadRequest, post(t, srv, "/api/newsletter", `{"email":"a@b.org","extra":1}`, nil))
	require.Equal(t, http.StatusBadRequest, post(t, srv, "/api/contact", `{`, nil))

	require.Equal(t, http.StatusAccepted, post(t, srv, "/api/contact",
		`{"name":"Amina","email":"a@b.org","message":"Hello"}`, nil))
	require.Equal(t, http.StatusAccepted, post(t, srv, "/api/donations",
		`{"email":"a@b.org","amount":1000,"currency":"KES","frequency":"monthly"}`, nil))
}

func TestRouter_Feed(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/feed.xml")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "application/rss+xml")

	feed, err := gofeed.NewParser().Parse(resp.Body)
	require.NoError(t, err)
	require.Len(t, feed.Items, 25)
	require.Equal(t, "https://vocalafrica.org/content/Article/1", feed.Items[0].Link)
}
